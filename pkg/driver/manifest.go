package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"troll/interpreter-go/pkg/diagnostics"
)

// ManifestName is the project file looked up by FindManifest.
const ManifestName = "troll.yml"

// Manifest represents the parsed contents of troll.yml.
type Manifest struct {
	Path         string
	Name         string
	Entry        string
	Authors      []string
	Scripts      map[string]string
	ScriptOrder  []string
	LogLevel     string
	Color        string
	MaxCallDepth int
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses troll.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from dir towards the filesystem root and returns the
// path of the first troll.yml found, or "" when there is none.
func FindManifest(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	for {
		candidate := filepath.Join(current, ManifestName)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("manifest: stat %s: %w", candidate, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

// Dir returns the directory holding the manifest; relative paths in the
// manifest are resolved against it.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// EntryPath returns the absolute path of the entry script, or "" if none is set.
func (m *Manifest) EntryPath() string {
	if m.Entry == "" {
		return ""
	}
	return m.resolve(m.Entry)
}

// ResolveScript maps a script name declared under scripts: to its path.
func (m *Manifest) ResolveScript(name string) (string, bool) {
	script, ok := m.Scripts[name]
	if !ok {
		return "", false
	}
	return m.resolve(script), true
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.Dir(), filepath.FromSlash(path))
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Entry != "" && !strings.HasSuffix(m.Entry, ".troll") {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must be a .troll file", m.Entry))
	}
	for _, name := range m.ScriptOrder {
		script := m.Scripts[name]
		if script == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("script %q must name a file", name))
		} else if !strings.HasSuffix(script, ".troll") {
			errs.Issues = append(errs.Issues, fmt.Sprintf("script %q must be a .troll file", name))
		}
	}
	if m.LogLevel != "" {
		if _, err := ParseLogLevel(m.LogLevel); err != nil {
			errs.Issues = append(errs.Issues, err.Error())
		}
	}
	if m.Color != "" {
		if _, err := diagnostics.ParseColorMode(m.Color); err != nil {
			errs.Issues = append(errs.Issues, err.Error())
		}
	}
	if m.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, "max_call_depth must not be negative")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

type manifestFile struct {
	Name         string     `yaml:"name"`
	Entry        string     `yaml:"entry"`
	Authors      stringList `yaml:"authors"`
	Scripts      scriptMap  `yaml:"scripts"`
	LogLevel     string     `yaml:"log_level"`
	Color        string     `yaml:"color"`
	MaxCallDepth int        `yaml:"max_call_depth"`
}

// scriptMap keeps scripts in declaration order.
type scriptMap struct {
	items []scriptMapEntry
}

type scriptMapEntry struct {
	name string
	path string
}

func (sm *scriptMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		sm.items = nil
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("manifest: scripts must be a mapping")
	}
	items := make([]scriptMapEntry, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var key, path string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("manifest: scripts must not use empty keys")
		}
		if err := value.Content[i+1].Decode(&path); err != nil {
			return fmt.Errorf("manifest: script %q: %w", key, err)
		}
		items = append(items, scriptMapEntry{name: key, path: strings.TrimSpace(path)})
	}
	sm.items = items
	return nil
}

type stringList []string

func (l stringList) Clone() []string {
	if len(l) == 0 {
		return nil
	}
	out := make([]string, 0, len(l))
	for _, item := range l {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			if str = strings.TrimSpace(str); str != "" {
				items = append(items, str)
			}
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("manifest: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path:         path,
		Name:         strings.TrimSpace(mf.Name),
		Entry:        strings.TrimSpace(mf.Entry),
		Authors:      mf.Authors.Clone(),
		Scripts:      make(map[string]string, len(mf.Scripts.items)),
		ScriptOrder:  make([]string, 0, len(mf.Scripts.items)),
		LogLevel:     strings.TrimSpace(mf.LogLevel),
		Color:        strings.TrimSpace(mf.Color),
		MaxCallDepth: mf.MaxCallDepth,
	}
	for _, item := range mf.Scripts.items {
		if _, exists := result.Scripts[item.name]; exists {
			continue
		}
		result.Scripts[item.name] = item.path
		result.ScriptOrder = append(result.ScriptOrder, item.name)
	}
	return result
}
