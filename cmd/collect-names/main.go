// Command collect-names walks library directories and dumps the video
// filenames it finds, together with what the name parser makes of them.
// The CSV output is used to build and review test suites for media name
// parsing.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vmunix/medley/pkg/medianame"
)

var videoExts = map[string]bool{
	"mkv": true, "mp4": true, "avi": true, "m4v": true,
	"mov": true, "wmv": true, "flv": true, "webm": true,
}

func main() {
	output := flag.String("output", "testdata/names.csv", "Output CSV file")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: collect-names [-output file] <dir> [dir...]")
		os.Exit(2)
	}

	if err := run(*output, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(output string, roots []string) error {
	seen := make(map[string]bool)
	var rows [][]string

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtree; keep going with the rest.
				fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
				return fs.SkipDir
			}
			if d.IsDir() {
				return nil
			}
			name := d.Name()
			ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
			if !videoExts[ext] || seen[name] {
				return nil
			}
			seen[name] = true
			rows = append(rows, parseRow(name))
			return nil
		})
		if err != nil {
			return fmt.Errorf("walk %s: %w", root, err)
		}
	}

	if len(rows) == 0 {
		return fmt.Errorf("no video files found")
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "title", "year", "season", "episode"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	fmt.Printf("Wrote %d names to %s\n", len(rows), output)
	return nil
}

// parseRow runs the parser over one filename so misparses are easy to spot
// in the output.
func parseRow(name string) []string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	title, year := medianame.ParseTitle(stem)

	season, episode := "", ""
	if ep, ok := medianame.ParseEpisode(stem); ok {
		season = strconv.Itoa(ep.Season)
		episode = strconv.Itoa(ep.Episode)
	}

	yearStr := ""
	if year > 0 {
		yearStr = strconv.Itoa(year)
	}
	return []string{name, title, yearStr, season, episode}
}
