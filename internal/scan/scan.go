package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Scanner walks a source tree and extracts documentation from files whose
// extension matches a registered language parser.
type Scanner struct {
	root     string
	exclude  []string
	parsers  map[string]LanguageParser
	maxProcs int
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithExclude sets the exclude patterns. Patterns are matched against each
// path segment (filepath.Match syntax), so "node_modules" skips the whole
// directory and "*.generated.cs" skips matching files.
func WithExclude(patterns []string) ScannerOption {
	return func(s *Scanner) {
		s.exclude = patterns
	}
}

// WithParsers restricts scanning to the given parsers instead of the
// built-in set.
func WithParsers(parsers []LanguageParser) ScannerOption {
	return func(s *Scanner) {
		s.parsers = indexParsers(parsers)
	}
}

// WithMaxParallel caps the number of files parsed concurrently.
func WithMaxParallel(n int) ScannerOption {
	return func(s *Scanner) {
		if n >= 1 {
			s.maxProcs = n
		}
	}
}

// NewScanner creates a Scanner rooted at the given directory with all
// built-in language parsers registered.
func NewScanner(root string, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		root:     root,
		parsers:  indexParsers(AllParsers()),
		maxProcs: runtime.GOMAXPROCS(0),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// indexParsers builds the extension lookup table.
func indexParsers(parsers []LanguageParser) map[string]LanguageParser {
	index := make(map[string]LanguageParser)
	for _, p := range parsers {
		for _, ext := range p.Extensions() {
			index[strings.ToLower(ext)] = p
		}
	}
	return index
}

// Scan walks the tree, parses matching files concurrently, and returns the
// per-file results sorted by path. Files with no documented elements are
// omitted.
func (s *Scanner) Scan(ctx context.Context) ([]FileDoc, error) {
	files, err := s.collectFiles()
	if err != nil {
		return nil, err
	}

	// Results are filled by index so output order never depends on
	// goroutine scheduling.
	results := make([]FileDoc, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxProcs)

	for i, relPath := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			doc, err := s.parseFile(relPath)
			if err != nil {
				return err
			}
			results[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]FileDoc, 0, len(results))
	for _, doc := range results {
		if len(doc.Items) > 0 {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// collectFiles walks the root and returns the sorted relative paths of
// files with a registered parser, honoring exclude patterns.
func (s *Scanner) collectFiles() ([]string, error) {
	var files []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if path != s.root && (s.excluded(name) || name == ".git") {
				return filepath.SkipDir
			}
			return nil
		}

		if s.excluded(name) {
			return nil
		}
		if _, ok := s.parsers[strings.ToLower(filepath.Ext(name))]; !ok {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.root, err)
	}

	sort.Strings(files)
	return files, nil
}

// excluded reports whether a path segment matches any exclude pattern.
func (s *Scanner) excluded(name string) bool {
	for _, pattern := range s.exclude {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// parseFile reads one file and runs its language parser.
func (s *Scanner) parseFile(relPath string) (FileDoc, error) {
	parser := s.parsers[strings.ToLower(filepath.Ext(relPath))]

	content, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if err != nil {
		return FileDoc{}, fmt.Errorf("reading %s: %w", relPath, err)
	}

	items := parser.Parse(content)
	for i := range items {
		items[i].SourceFile = relPath
	}

	return FileDoc{Path: relPath, Language: parser.Language(), Items: items}, nil
}
