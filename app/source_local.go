package app

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pmarin/filedex/models"
)

// LocalSource walks a local directory tree and emits one FileRecord per
// regular file found. Directories are processed by a pool of workers over a
// shared queue; the resulting record set does not depend on traversal order.
type LocalSource struct {
	RootPath     string
	ExcludePaths []string
	NumWorkers   int
}

func NewLocalSource(rootPath string, excludePaths []string, numWorkers int) *LocalSource {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU() * 2
	}
	return &LocalSource{
		RootPath:     rootPath,
		ExcludePaths: excludePaths,
		NumWorkers:   numWorkers,
	}
}

func (l *LocalSource) Name() string {
	return "local"
}

func (l *LocalSource) Walk() <-chan models.FileRecord {
	filesCh := make(chan models.FileRecord, 10000)

	go func() {
		defer close(filesCh)
		l.walkRootParallel(l.RootPath, filesCh)
	}()

	return filesCh
}

func (l *LocalSource) walkRootParallel(root string, filesCh chan<- models.FileRecord) {
	dirQueue := make(chan string, 100000)
	var wg sync.WaitGroup
	var activeWorkers int32

	dirQueue <- root
	atomic.AddInt32(&activeWorkers, 1)

	for i := 0; i < l.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.dirWorker(dirQueue, filesCh, &activeWorkers)
		}()
	}

	wg.Wait()
}

func (l *LocalSource) dirWorker(
	dirQueue chan string,
	filesCh chan<- models.FileRecord,
	activeWorkers *int32,
) {
	for dir := range dirQueue {
		l.processDirectory(dir, dirQueue, filesCh, activeWorkers)

		if atomic.AddInt32(activeWorkers, -1) == 0 {
			// Last pending directory done, release the other workers.
			close(dirQueue)
			return
		}
	}
}

func (l *LocalSource) excluded(path string) bool {
	for _, exclude := range l.ExcludePaths {
		if matched, _ := filepath.Match(exclude, path); matched {
			return true
		}
		if strings.HasPrefix(path, exclude) {
			return true
		}
	}
	return false
}

func (l *LocalSource) processDirectory(
	dir string,
	dirQueue chan string,
	filesCh chan<- models.FileRecord,
	activeWorkers *int32,
) {
	if l.excluded(dir) {
		return
	}

	f, err := os.Open(dir)
	if err != nil {
		// Unreadable directories are skipped; the scan keeps going.
		log.Printf("Error opening %s: %v", dir, err)
		return
	}

	entries, err := f.ReadDir(-1)
	f.Close()
	if err != nil {
		log.Printf("Error reading %s: %v", dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if l.excluded(path) {
			continue
		}

		// entry.IsDir() does not follow symlinks, so symlinked directory
		// trees are not descended into.
		if entry.IsDir() {
			atomic.AddInt32(activeWorkers, 1)
			select {
			case dirQueue <- path:
			default:
				// Queue full, process inline to avoid deadlock.
				atomic.AddInt32(activeWorkers, -1)
				l.processDirectory(path, dirQueue, filesCh, activeWorkers)
			}
			continue
		}

		// Stat rather than entry.Info(): it follows file symlinks, and
		// files can disappear or become unreadable mid-walk, which is
		// non-fatal per file. Anything not regular after resolution
		// (sockets, fifos, symlinked directories) is ignored.
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		filesCh <- models.FileRecord{
			Path:    path,
			Name:    entry.Name(),
			Ext:     extractExt(entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
	}
}

// extractExt returns the lower-cased extension of name without the leading
// dot, or "" when the name has no extension. A dot that starts or ends the
// name does not count: ".bashrc" and "file." both have no extension.
func extractExt(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name || ext == "." {
		return ""
	}
	return strings.ToLower(ext[1:])
}
