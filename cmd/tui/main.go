package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/pmarin/filedex/app"
	"github.com/pmarin/filedex/models"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
	inputStyle = lipgloss.NewStyle().
			Margin(1, 0, 1, 0)
	tableStyle = lipgloss.NewStyle().
			Margin(0, 0, 1, 0)
)

type model struct {
	textInput textinput.Model
	table     table.Model
	searcher  *app.Searcher
	results   []models.ScoredResult
	err       error
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	var enter = key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("⏎", "search/open"),
	)
	var toggleFocus = key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "toggle focus"),
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, enter):
			if m.textInput.Focused() {
				query := m.textInput.Value()
				if query != "" {
					results, err := m.searcher.Search(query, nil, 0, 50)
					if err != nil {
						m.err = err
						return m, nil
					}
					m.err = nil
					m.results = results
					m.updateTable()
					m.textInput.Blur()
					m.table.Focus()
				}
				return m, nil
			} else if m.table.Focused() && len(m.results) > 0 {
				selected := m.table.Cursor()
				if selected < len(m.results) {
					if err := openFile(m.results[selected].File.Path); err != nil {
						m.err = err
					}
				}
				return m, nil
			}
		case key.Matches(msg, toggleFocus):
			if m.textInput.Focused() {
				m.textInput.Blur()
				m.table.Focus()
			} else {
				m.table.Blur()
				m.textInput.Focus()
			}
			return m, nil
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			return m, tea.Quit
		}

		if m.textInput.Focused() {
			m.textInput, cmd = m.textInput.Update(msg)
			return m, cmd
		}
		if m.table.Focused() {
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
		var tiCmd, tCmd tea.Cmd
		m.textInput, tiCmd = m.textInput.Update(msg)
		m.table, tCmd = m.table.Update(msg)
		return m, tea.Batch(tiCmd, tCmd)

	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(msg.Height - 8)
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(inputStyle.Render(m.textInput.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(fmt.Sprintf("Error: %v\n", m.err))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\nPress Enter to search (in input) or open file (in table), Tab to toggle focus, Esc to quit.\n")

	return baseStyle.Render(b.String())
}

func (m *model) updateTable() {
	rows := []table.Row{}
	for _, r := range m.results {
		rows = append(rows, table.Row{
			fmt.Sprintf("%.2f", r.Score),
			r.File.Name,
			formatSize(r.File.Size),
			r.File.ModTime.Format("2006-01-02 15:04"),
			strings.Join(r.Tags, ", "),
		})
	}
	m.table.SetRows(rows)
}

func main() {
	configPath := "filedex.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	store, err := app.Open(cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	searcher := app.NewSearcher(store)

	fd := os.Stdout.Fd()
	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 100
	}

	scoreCol := 6
	sizeCol := 10
	modCol := 17
	tagsCol := 20
	nameCol := width - scoreCol - sizeCol - modCol - tagsCol - 8
	if nameCol < 10 {
		nameCol = 10
	}

	ti := textinput.New()
	ti.Placeholder = "Enter search query..."
	ti.Focus()
	ti.Width = 50

	columns := []table.Column{
		{Title: "Score", Width: scoreCol},
		{Title: "Name", Width: nameCol},
		{Title: "Size", Width: sizeCol},
		{Title: "Modified", Width: modCol},
		{Title: "Tags", Width: tagsCol},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(styles)

	m := model{
		textInput: ti,
		table:     t,
		searcher:  searcher,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting program: %v\n", err)
		os.Exit(1)
	}
}
