package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"intl-extract/internal/parser"

	"github.com/rs/zerolog/log"
)

// SupportedExtensions lists source file types handled by the tool.
var SupportedExtensions = map[string]bool{
	".dart": true,
}

// generatedSuffixes mark code produced by build_runner and intl_utils.
var generatedSuffixes = []string{".g.dart", ".freezed.dart", ".gr.dart"}

// Walker traverses directories and dispatches files to the correct parser.
type Walker struct {
	parsers []parser.Parser
}

// NewWalker creates a Walker with default parsers.
func NewWalker() *Walker {
	return &Walker{
		parsers: []parser.Parser{
			parser.NewDartParser(),
		},
	}
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	Path   string
	Ext    string
	Parser parser.Parser
}

// Walk discovers all supported source files under the given roots. A root
// may also be a single file, which is taken even if it looks generated.
func (w *Walker) Walk(roots ...string) ([]FileEntry, error) {
	var entries []FileEntry
	seen := make(map[string]bool)

	add := func(path string) {
		if seen[path] {
			return
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !SupportedExtensions[ext] {
			return
		}
		for _, p := range w.parsers {
			if p.CanParse(ext) {
				seen[path] = true
				entries = append(entries, FileEntry{Path: path, Ext: ext, Parser: p})
				return
			}
		}
	}

	for _, root := range roots {
		root, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve root path: %w", err)
		}

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat root: %w", err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				log.Warn().Err(err).Str("path", path).Msg("Error walking path")
				return nil
			}

			if info.IsDir() {
				if path != root && skipDir(info.Name()) {
					return filepath.SkipDir
				}
				return nil
			}

			if isGenerated(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk directory: %w", err)
		}
	}

	log.Info().Int("count", len(entries)).Strs("roots", roots).Msg("Discovered files")
	return entries, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "build" || name == "generated"
}

func isGenerated(path string) bool {
	for _, suffix := range generatedSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}
