package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"intl-extract/internal/resource"
)

// ResourceExt is the extension of resource files.
const ResourceExt = ".arb"

// Resolve builds the resource file set of the project at root.
//
// A missing resource directory yields an empty set. A directory without
// resource files yields one proposed file that does not exist yet. Otherwise
// every resource file is a target, the main-locale file first.
func Resolve(root string, s Settings, ws resource.Workspace) (resource.Set, error) {
	set := resource.Set{ClassName: firstNonEmpty(s.ClassName, DefaultClassName)}

	dir := s.ResourceDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("dir", dir).Msg("Resource directory not found")
		return set, nil
	}
	if err != nil {
		return set, fmt.Errorf("list resource directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ResourceExt) {
			continue
		}
		names = append(names, e.Name())
	}

	if len(names) == 0 {
		proposed := firstNonEmpty(s.TemplateFile, "intl_"+firstNonEmpty(s.MainLocale, DefaultMainLocale)+ResourceExt)
		log.Info().Str("dir", dir).Str("file", proposed).Msg("No resource files, proposing a new one")
		names = []string{proposed}
	}

	sortResourceNames(names, s)

	for _, name := range names {
		set.Files = append(set.Files, resource.NewFile(filepath.Join(dir, name), ws))
	}

	if s.LookupFile != "" {
		lookup := resource.NewFile(filepath.Join(dir, s.LookupFile), ws)
		if !lookup.Exists() {
			log.Warn().Str("file", lookup.Path()).Msg("Configured lookup file does not exist")
		}
		set.Lookup = lookup
	}

	return set, nil
}

// sortResourceNames puts the template or main-locale file first and sorts the
// rest by name.
func sortResourceNames(names []string, s Settings) {
	main, err := language.Parse(firstNonEmpty(s.MainLocale, DefaultMainLocale))
	hasMain := err == nil

	rank := func(name string) int {
		if s.TemplateFile != "" && name == s.TemplateFile {
			return 0
		}
		if tag, ok := LocaleOf(name); ok && hasMain && tag == main {
			return 1
		}
		return 2
	}

	sort.SliceStable(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
}

// LocaleOf extracts the locale of a resource file name such as
// "intl_en.arb", "app_zh_Hant.arb" or "de.arb".
func LocaleOf(name string) (language.Tag, bool) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))

	candidates := []string{base}
	if i := strings.Index(base, "_"); i >= 0 {
		candidates = append([]string{base[i+1:]}, candidates...)
	}

	for _, c := range candidates {
		tag, err := language.Parse(strings.ReplaceAll(c, "_", "-"))
		if err == nil {
			return tag, true
		}
	}
	return language.Und, false
}
