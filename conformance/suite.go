package conformance

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/txtar"
	"gopkg.in/yaml.v3"
)

// VectorsFile is the archive member holding a suite's vector table.
const VectorsFile = "vectors.yaml"

//go:embed suites/*.txtar
var builtinSuites embed.FS

// Vector is one (format, arguments, expected output) triple.
type Vector struct {
	Name    string   `yaml:"name,omitempty"`
	Format  string   `yaml:"format"`
	Args    []Arg    `yaml:"args,omitempty"`
	Display string   `yaml:"display,omitempty"`  // how the value is named in failures
	Want    string   `yaml:"want"`
	Also    []string `yaml:"also,omitempty"`     // other accepted outputs
	WantErr string   `yaml:"want_err,omitempty"` // expected error substring
}

// Values decodes the vector's arguments.
func (v Vector) Values() ([]any, error) {
	values := make([]any, len(v.Args))
	for i, a := range v.Args {
		x, err := a.Decode()
		if err != nil {
			return nil, err
		}
		values[i] = x
	}
	return values, nil
}

// Describe names the vector's value for messages.
func (v Vector) Describe() string {
	if v.Display != "" {
		return v.Display
	}
	parts := make([]string, len(v.Args))
	for i, a := range v.Args {
		parts[i] = a.Value
	}
	return strings.Join(parts, ", ")
}

// accepts reports whether got is one of the expected outputs.
func (v Vector) accepts(got string) bool {
	if got == v.Want {
		return true
	}
	for _, alt := range v.Also {
		if got == alt {
			return true
		}
	}
	return false
}

// Suite is a named, ordered set of vectors.
type Suite struct {
	Name    string
	Purpose string
	Vectors []Vector

	Path    string // source file, empty for built-in suites
	archive *txtar.Archive
}

// Summary returns the first line of the purpose.
func (s *Suite) Summary() string {
	line, _, _ := strings.Cut(s.Purpose, "\n")
	return line
}

// ParseSuite parses a txtar suite archive. The archive comment is the
// suite's purpose and the vectors.yaml member holds its vectors.
func ParseSuite(name string, data []byte) (*Suite, error) {
	archive := txtar.Parse(data)
	s := &Suite{
		Name:    name,
		Purpose: strings.TrimSpace(string(archive.Comment)),
		archive: archive,
	}

	found := false
	for _, f := range archive.Files {
		if f.Name != VectorsFile {
			continue
		}
		found = true
		dec := yaml.NewDecoder(bytes.NewReader(f.Data))
		dec.KnownFields(true)
		if err := dec.Decode(&s.Vectors); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("suite %s: %s: %w", name, VectorsFile, err)
		}
	}
	if !found {
		return nil, fmt.Errorf("suite %s: no %s in archive", name, VectorsFile)
	}

	for i := range s.Vectors {
		v := &s.Vectors[i]
		if v.Name == "" {
			v.Name = fmt.Sprintf("#%d", i+1)
		}
		if v.Format == "" {
			return nil, fmt.Errorf("suite %s: vector %s: empty format", name, v.Name)
		}
		if _, err := v.Values(); err != nil {
			return nil, fmt.Errorf("suite %s: vector %s: %w", name, v.Name, err)
		}
	}
	return s, nil
}

// LoadFile reads a suite from a .txtar file. The suite is named after the file.
func LoadFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseSuite(suiteName(path), data)
	if err != nil {
		return nil, err
	}
	s.Path = path
	return s, nil
}

// LoadDir reads every .txtar suite in dir, sorted by name.
func LoadDir(dir string) ([]*Suite, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	suites := make([]*Suite, 0, len(paths))
	for _, p := range paths {
		s, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// Builtin returns the suites compiled into the package, sorted by name.
func Builtin() ([]*Suite, error) {
	paths, err := fs.Glob(builtinSuites, "suites/*.txtar")
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	suites := make([]*Suite, 0, len(paths))
	for _, p := range paths {
		data, err := builtinSuites.ReadFile(p)
		if err != nil {
			return nil, err
		}
		s, err := ParseSuite(suiteName(p), data)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

func suiteName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".txtar")
}

// Archive renders the suite back to txtar form. Members other than
// vectors.yaml are carried over unchanged.
func (s *Suite) Archive() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s.Vectors); err != nil {
		return nil, fmt.Errorf("suite %s: encoding vectors: %w", s.Name, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	out := &txtar.Archive{Comment: []byte(s.Purpose + "\n")}
	if s.archive != nil {
		out.Comment = s.archive.Comment
		for _, f := range s.archive.Files {
			if f.Name != VectorsFile {
				out.Files = append(out.Files, f)
			}
		}
	}
	out.Files = append([]txtar.File{{Name: VectorsFile, Data: buf.Bytes()}}, out.Files...)
	return txtar.Format(out), nil
}
