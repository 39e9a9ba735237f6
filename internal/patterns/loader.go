package patterns

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/DevSymphony/cmdlens/pkg/schema"
)

// DefaultSources is the fixed load order of rule sets. It defines matching priority.
var DefaultSources = []string{"git", "npm", "docker", "common"}

// documentExts are tried in order for every source name.
var documentExts = []string{".json", ".yaml", ".yml"}

var (
	// ErrRulesDir is returned when a configured rules directory cannot be used.
	ErrRulesDir = errors.New("patterns: rules directory is not accessible")

	errSourceMissing = errors.New("rule set not found")
)

//go:embed rules/*.json
var defaultRules embed.FS

// DefaultFS returns the rule sets shipped with cmdlens.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(defaultRules, "rules")
	if err != nil {
		panic(err) // the embed pattern guarantees the directory
	}
	return sub
}

// InvalidPattern describes a rule skipped because its regex did not compile.
type InvalidPattern struct {
	Index int
	Regex string
	Err   error
}

// SourceReport summarizes how one rule-set source loaded.
type SourceReport struct {
	Name    string
	Path    string // empty when no document exists for the source
	Rules   int
	Invalid []InvalidPattern
	Err     error // read or parse failure; the whole source was skipped
}

// Found reports whether a document exists for the source.
func (r SourceReport) Found() bool {
	return r.Path != ""
}

// Loader handles loading rule-set documents.
type Loader struct {
	log zerolog.Logger
}

// NewLoader creates a new rule-set loader.
func NewLoader(log zerolog.Logger) *Loader {
	return &Loader{log: log}
}

// LoadDir loads rule sets from a directory on disk.
// Missing documents are skipped; a directory that cannot be read is an error.
func (l *Loader) LoadDir(dir string, names ...string) ([]RuleSet, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRulesDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRulesDir, dir)
	}
	return l.LoadFS(os.DirFS(dir), names...), nil
}

// LoadFS loads the named rule sets from fsys in order (DefaultSources when none given).
// A source that fails to read or parse is logged and skipped; loading continues.
func (l *Loader) LoadFS(fsys fs.FS, names ...string) []RuleSet {
	if len(names) == 0 {
		names = DefaultSources
	}

	sets := make([]RuleSet, 0, len(names))
	for _, name := range names {
		set, report := l.loadSource(fsys, name)
		switch {
		case errors.Is(report.Err, errSourceMissing):
			l.log.Debug().Str("source", name).Msg("rule set not present")
			continue
		case report.Err != nil:
			l.log.Warn().Err(report.Err).Str("source", name).Msg("skipping rule set")
			continue
		}
		for _, bad := range report.Invalid {
			l.log.Warn().Err(bad.Err).Str("source", name).Int("index", bad.Index).Msg("skipping rule")
		}
		l.log.Debug().Str("source", name).Str("path", report.Path).Int("rules", report.Rules).Msg("rule set loaded")
		sets = append(sets, set)
	}
	return sets
}

// Check loads the named rule sets and reports on each without logging.
func (l *Loader) Check(fsys fs.FS, names ...string) []SourceReport {
	if len(names) == 0 {
		names = DefaultSources
	}
	reports := make([]SourceReport, 0, len(names))
	for _, name := range names {
		_, report := l.loadSource(fsys, name)
		if errors.Is(report.Err, errSourceMissing) {
			report.Err = nil
		}
		reports = append(reports, report)
	}
	return reports
}

func (l *Loader) loadSource(fsys fs.FS, name string) (RuleSet, SourceReport) {
	report := SourceReport{Name: name}

	doc, p, err := readDocument(fsys, name)
	report.Path = p
	if err != nil {
		report.Err = err
		return RuleSet{}, report
	}

	set := RuleSet{
		Name:     name,
		Rules:    make([]Rule, 0, len(doc.Patterns)),
		Commands: doc.Commands,
	}
	for i, def := range doc.Patterns {
		rule, err := compileRule(name, def)
		if err != nil {
			report.Invalid = append(report.Invalid, InvalidPattern{Index: i, Regex: def.Regex, Err: err})
			continue
		}
		set.Rules = append(set.Rules, rule)
	}
	report.Rules = len(set.Rules)
	return set, report
}

// readDocument finds and decodes the first existing document for name.
func readDocument(fsys fs.FS, name string) (*schema.RuleSetDocument, string, error) {
	for _, ext := range documentExts {
		p := name + ext
		data, err := fs.ReadFile(fsys, p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, p, fmt.Errorf("failed to read rule set: %w", err)
		}
		doc, err := decodeDocument(p, data)
		if err != nil {
			return nil, p, err
		}
		return doc, p, nil
	}
	return nil, "", errSourceMissing
}

func decodeDocument(p string, data []byte) (*schema.RuleSetDocument, error) {
	var doc schema.RuleSetDocument
	switch path.Ext(p) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse rule set %s: %w", p, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse rule set %s: %w", p, err)
		}
	}
	return &doc, nil
}
