package webapp

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/pmarin/filedex/app"
	"github.com/pmarin/filedex/models"
	"github.com/pmarin/filedex/web"
)

// WebApp serves the HTML start page and the JSON API over one open store.
type WebApp struct {
	Store     *app.Store
	Searcher  *app.Searcher
	AppConfig *models.AppConfig
	templates *template.Template
}

func NewWebApp(store *app.Store, cfg *models.AppConfig) (*WebApp, error) {
	webapp := &WebApp{
		Store:     store,
		Searcher:  app.NewSearcher(store),
		AppConfig: cfg,
	}
	if err := webapp.initTemplates(); err != nil {
		return nil, err
	}
	return webapp, nil
}

func (webapp *WebApp) initTemplates() error {
	funcMap := template.FuncMap{
		"humanizeBytes": humanizeBytes,
	}

	ts, err := template.New("startpage.html").Funcs(funcMap).
		ParseFS(web.Templates, "templates/startpage.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	webapp.templates = ts
	return nil
}

func (webapp *WebApp) GetListenAddr() string {
	port := 8080
	if webapp.AppConfig != nil && webapp.AppConfig.Server.Port > 0 {
		port = webapp.AppConfig.Server.Port
	}
	return fmt.Sprintf(":%d", port)
}

func (webapp *WebApp) GetRouter() http.Handler {
	return router(webapp)
}
