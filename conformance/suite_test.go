package conformance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sampleSuite = `Sample suite.
Second line of the purpose.

-- notes.txt --
kept as is
-- vectors.yaml --
- name: hex
  format: "%x"
  args: ["int32:-42"]
  want: "ffffffd6"
- format: "%d"
  args: [{type: int64, value: "7"}]
  want: "7"
  also: ["+7"]
`

func TestParseSuite(t *testing.T) {
	s, err := ParseSuite("sample", []byte(sampleSuite))
	require.NoError(t, err)
	require.Equal(t, "sample", s.Name)
	require.Equal(t, "Sample suite.\nSecond line of the purpose.", s.Purpose)
	require.Equal(t, "Sample suite.", s.Summary())

	want := []Vector{
		{Name: "hex", Format: "%x", Args: []Arg{{"int32", "-42"}}, Want: "ffffffd6"},
		{Name: "#2", Format: "%d", Args: []Arg{{"int64", "7"}}, Want: "7", Also: []string{"+7"}},
	}
	if diff := cmp.Diff(want, s.Vectors); diff != "" {
		t.Errorf("vectors mismatch (-want +got):\n%s", diff)
	}
	require.True(t, s.Vectors[1].accepts("+7"))
	require.False(t, s.Vectors[1].accepts("07"))
}

func TestParseSuiteErrors(t *testing.T) {
	tests := map[string]string{
		"no vectors":    "comment only\n",
		"unknown field": "-- vectors.yaml --\n- format: \"%d\"\n  wnat: \"1\"\n",
		"empty format":  "-- vectors.yaml --\n- want: \"1\"\n",
		"bad argument":  "-- vectors.yaml --\n- format: \"%d\"\n  args: [{type: int8, value: \"1000\"}]\n",
		"not a list":    "-- vectors.yaml --\nformat: x\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSuite(name, []byte(data))
			require.Error(t, err)
		})
	}
}

func TestSuiteArchiveRoundTrip(t *testing.T) {
	s, err := ParseSuite("sample", []byte(sampleSuite))
	require.NoError(t, err)
	s.Vectors[0].Want = "changed"

	data, err := s.Archive()
	require.NoError(t, err)

	again, err := ParseSuite("sample", data)
	require.NoError(t, err)
	require.Equal(t, s.Purpose, again.Purpose)
	if diff := cmp.Diff(s.Vectors, again.Vectors); diff != "" {
		t.Errorf("vectors changed across Archive (-want +got):\n%s", diff)
	}
	require.Contains(t, string(data), "-- notes.txt --\nkept as is\n")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txtar"), []byte(sampleSuite), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txtar"), []byte(sampleSuite), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0644))

	suites, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, suites, 2)
	require.Equal(t, "a", suites[0].Name)
	require.Equal(t, "b", suites[1].Name)
	require.Equal(t, filepath.Join(dir, "a.txtar"), suites[0].Path)
}

func TestBuiltin(t *testing.T) {
	suites, err := Builtin()
	require.NoError(t, err)

	names := make([]string, len(suites))
	for i, s := range suites {
		names[i] = s.Name
		require.NotEmpty(t, s.Vectors, s.Name)
		require.NotEmpty(t, s.Purpose, s.Name)
	}
	require.Contains(t, names, "hex_lower")
	require.Contains(t, names, "errors")
}
