package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pmarin/filedex/app"
	"github.com/pmarin/filedex/models"
)

const usage = `Usage: filedex <command> [options]

Commands:
  index <path>           scan a directory tree into the index
  search <query>         fuzzy-search the index
  tag-add <path> <tag>   attach a tag to a path
  tag-remove <path> <tag> detach a tag from a path
  list-tags              list all tags with usage counts
  show <path>            print the indexed record for a path
  stats                  print index statistics
`

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "index":
		err = cmdIndex(os.Args[2:])
	case "search":
		err = cmdSearch(os.Args[2:])
	case "tag-add":
		err = cmdTagAdd(os.Args[2:])
	case "tag-remove":
		err = cmdTagRemove(os.Args[2:])
	case "list-tags":
		err = cmdListTags(os.Args[2:])
	case "show":
		err = cmdShow(os.Args[2:])
	case "stats":
		err = cmdStats(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// storeFlags adds the flags every subcommand shares and returns pointers to
// them. The store path is resolved here, in the CLI: config file first, then
// the -db flag; the core only ever sees the final path.
func storeFlags(fs *flag.FlagSet) (db *string, config *string) {
	db = fs.String("db", "", "path to the index database (default from config, then filedex.db)")
	config = fs.String("config", "filedex.yaml", "path to the configuration file")
	return db, config
}

func openStore(dbFlag, configPath string) (*app.Store, *models.AppConfig, error) {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	path := cfg.Store.Path
	if dbFlag != "" {
		path = dbFlag
	}
	store, err := app.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

func cmdIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	db, config := storeFlags(fs)
	verbose := fs.Bool("verbose", false, "log progress while scanning")
	workers := fs.Int("workers", 0, "walker goroutines (0 = twice the CPU count)")
	var excludes stringList
	fs.Var(&excludes, "exclude", "path prefix or glob to skip (repeatable)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("index needs a directory path")
	}
	root := fs.Arg(0)

	store, cfg, err := openStore(*db, *config)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := app.ScanOptions{
		Workers: *workers,
		Exclude: append(cfg.Scan.ExcludePaths, excludes...),
	}
	if opts.Workers == 0 {
		opts.Workers = cfg.Scan.Workers
	}
	if *verbose {
		opts.Progress = func(n int) { log.Printf("indexed %d files...", n) }
	}

	count, err := app.Scan(store, root, opts)
	if errors.Is(err, app.ErrPathNotFound) {
		return fmt.Errorf("path does not exist: %s", root)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d files\n", count)
	return nil
}

func cmdSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	db, config := storeFlags(fs)
	ext := fs.String("ext", "", "filter by extension")
	tag := fs.String("tag", "", "filter by tag")
	minSize := fs.Int64("min-size", 0, "minimum size in bytes")
	maxSize := fs.Int64("max-size", 0, "maximum size in bytes")
	after := fs.String("after", "", "modified on or after (YYYY-MM-DD)")
	before := fs.String("before", "", "modified on or before (YYYY-MM-DD)")
	limit := fs.Int("limit", 0, "maximum number of results")
	threshold := fs.Float64("threshold", 0, "minimum similarity score")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("search needs a query")
	}
	query := fs.Arg(0)

	store, cfg, err := openStore(*db, *config)
	if err != nil {
		return err
	}
	defer store.Close()

	effLimit := *limit
	if effLimit == 0 {
		effLimit = cfg.Search.Limit
	}
	effThreshold := *threshold
	if effThreshold == 0 {
		effThreshold = cfg.Search.Threshold
	}

	filter := &app.FileFilter{
		Ext:     *ext,
		Tag:     *tag,
		MinSize: *minSize,
		MaxSize: *maxSize,
		After:   *after,
		Before:  *before,
	}

	results, err := app.NewSearcher(store).Search(query, filter, effThreshold, effLimit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("No results")
		return nil
	}

	for _, r := range results {
		line := fmt.Sprintf("[%.2f] %s | %s | %d bytes | %s",
			r.Score, r.File.Name, r.File.Ext, r.File.Size,
			r.File.ModTime.Format("2006-01-02 15:04:05"))
		if len(r.Tags) > 0 {
			line += " | tags: " + strings.Join(r.Tags, ",")
		}
		fmt.Println(line)
		fmt.Printf("       %s\n", r.File.Path)
	}
	return nil
}

func cmdTagAdd(args []string) error {
	fs := flag.NewFlagSet("tag-add", flag.ExitOnError)
	db, config := storeFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 2 {
		return errors.New("tag-add needs a path and a tag")
	}
	path, tag := fs.Arg(0), fs.Arg(1)

	store, _, err := openStore(*db, *config)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.AddTag(path, tag); err != nil {
		return err
	}
	fmt.Printf("Tagged %s with %q\n", path, tag)
	return nil
}

func cmdTagRemove(args []string) error {
	fs := flag.NewFlagSet("tag-remove", flag.ExitOnError)
	db, config := storeFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 2 {
		return errors.New("tag-remove needs a path and a tag")
	}
	path, tag := fs.Arg(0), fs.Arg(1)

	store, _, err := openStore(*db, *config)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RemoveTag(path, tag); err != nil {
		return err
	}
	fmt.Printf("Removed tag %q from %s\n", tag, path)
	return nil
}

func cmdListTags(args []string) error {
	fs := flag.NewFlagSet("list-tags", flag.ExitOnError)
	db, config := storeFlags(fs)
	fs.Parse(args)

	store, _, err := openStore(*db, *config)
	if err != nil {
		return err
	}
	defer store.Close()

	counts, err := store.TagCounts()
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Println("No tags")
		return nil
	}
	for _, tc := range counts {
		fmt.Printf("%s (%d)\n", tc.Tag, tc.Count)
	}
	return nil
}

func cmdShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	db, config := storeFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return errors.New("show needs a path")
	}
	path := fs.Arg(0)

	store, _, err := openStore(*db, *config)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.GetByPath(path)
	if errors.Is(err, app.ErrNotIndexed) {
		fmt.Printf("%s is not indexed\n", path)
		return nil
	}
	if err != nil {
		return err
	}
	tags, err := store.TagsFor(path)
	if err != nil {
		return err
	}

	fmt.Printf("Path:     %s\n", rec.Path)
	fmt.Printf("Name:     %s\n", rec.Name)
	fmt.Printf("Ext:      %s\n", rec.Ext)
	fmt.Printf("Size:     %d bytes\n", rec.Size)
	fmt.Printf("Modified: %s\n", rec.ModTime.Format("2006-01-02 15:04:05"))
	if len(tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(tags, ", "))
	}
	return nil
}

func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	db, config := storeFlags(fs)
	fs.Parse(args)

	store, _, err := openStore(*db, *config)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := app.NewSearcher(store).Stats()
	if err != nil {
		return err
	}

	fmt.Printf("Files:         %d\n", stats.TotalFiles)
	fmt.Printf("Total size:    %d bytes\n", stats.TotalSize)
	fmt.Printf("Average size:  %d bytes\n", stats.AvgFileSize)
	fmt.Printf("Tagged paths:  %d\n", stats.TaggedPaths)
	fmt.Printf("Distinct tags: %d\n", stats.DistinctTags)
	if !stats.LastScan.IsZero() {
		fmt.Printf("Last scan:     %s\n", stats.LastScan.Format("2006-01-02 15:04:05"))
	}
	if len(stats.TopExtensions) > 0 {
		fmt.Println("Top extensions:")
		for _, ext := range stats.TopExtensions {
			fmt.Printf("  %-8s %d files, %d bytes\n", ext.Extension, ext.Count, ext.Size)
		}
	}
	return nil
}
