package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const (
	DefaultResourceDir = "lib/l10n"
	DefaultClassName   = "S"
	DefaultMainLocale  = "en"

	pubspecFile = "pubspec.yaml"
	l10nFile    = "l10n.yaml"
)

// Settings locate the resource files of a project.
type Settings struct {
	// ResourceDir is relative to the project root unless absolute.
	ResourceDir string
	// ClassName is the generated localization class.
	ClassName string
	// MainLocale orders the template file first.
	MainLocale string
	// TemplateFile, when set, names the main resource file.
	TemplateFile string
	// LookupFile, when set, names the file searched for value reuse.
	LookupFile string
}

// Defaults returns the settings used when a project configures nothing.
func Defaults() Settings {
	return Settings{
		ResourceDir: DefaultResourceDir,
		ClassName:   DefaultClassName,
		MainLocale:  DefaultMainLocale,
	}
}

type pubspec struct {
	FlutterIntl *struct {
		ClassName  string `yaml:"class_name"`
		MainLocale string `yaml:"main_locale"`
		ArbDir     string `yaml:"arb_dir"`
		LookupFile string `yaml:"lookup_file"`
	} `yaml:"flutter_intl"`
}

type l10nConfig struct {
	ArbDir           string   `yaml:"arb-dir"`
	TemplateArbFile  string   `yaml:"template-arb-file"`
	OutputClass      string   `yaml:"output-class"`
	LookupFile       string   `yaml:"lookup-file"`
	PreferredLocales []string `yaml:"preferred-supported-locales"`
}

// LoadSettings reads l10n.yaml and the flutter_intl section of pubspec.yaml
// under root, in that order, over the defaults. Missing files are skipped.
func LoadSettings(root string) (Settings, error) {
	s := Defaults()

	var l10n l10nConfig
	found, err := readYAML(filepath.Join(root, l10nFile), &l10n)
	if err != nil {
		return s, err
	}
	if found {
		s.ResourceDir = firstNonEmpty(l10n.ArbDir, s.ResourceDir)
		s.ClassName = firstNonEmpty(l10n.OutputClass, s.ClassName)
		s.TemplateFile = l10n.TemplateArbFile
		s.LookupFile = firstNonEmpty(l10n.LookupFile, s.LookupFile)
		if len(l10n.PreferredLocales) > 0 {
			s.MainLocale = l10n.PreferredLocales[0]
		}
	}

	var ps pubspec
	found, err = readYAML(filepath.Join(root, pubspecFile), &ps)
	if err != nil {
		return s, err
	}
	if found && ps.FlutterIntl != nil {
		fi := ps.FlutterIntl
		s.ResourceDir = firstNonEmpty(fi.ArbDir, s.ResourceDir)
		s.ClassName = firstNonEmpty(fi.ClassName, s.ClassName)
		s.MainLocale = firstNonEmpty(fi.MainLocale, s.MainLocale)
		s.LookupFile = firstNonEmpty(fi.LookupFile, s.LookupFile)
	}

	return s, nil
}

// Override replaces fields of s with the non-empty fields of o.
func (s Settings) Override(o Settings) Settings {
	s.ResourceDir = firstNonEmpty(o.ResourceDir, s.ResourceDir)
	s.ClassName = firstNonEmpty(o.ClassName, s.ClassName)
	s.MainLocale = firstNonEmpty(o.MainLocale, s.MainLocale)
	s.TemplateFile = firstNonEmpty(o.TemplateFile, s.TemplateFile)
	s.LookupFile = firstNonEmpty(o.LookupFile, s.LookupFile)
	return s
}

func readYAML(path string, out any) (bool, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- project configuration
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("parse YAML from %s: %w", path, err)
	}

	log.Debug().Str("path", path).Msg("Loaded project configuration")
	return true, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
