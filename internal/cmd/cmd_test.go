// SPDX-License-Identifier: MIT
package cmd_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fio/internal/cmd"
)

const table = `
sectors: [agriculture, industry]
transactions:
  - [10, 20]
  - [30, 40]
production: [100, 200]
final_demand: [[70], [130]]
value_added: [[60, 140]]
employment: [5, 8]
`

// execute runs a fresh command tree and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	root := cmd.NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), errOut.String(), err
}

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o644))

	return path
}

func TestRoot_Subcommands(t *testing.T) {
	root := cmd.NewRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"analyze", "threads", "version"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestAnalyze_JSON(t *testing.T) {
	out, _, err := execute(t, "analyze", "-i", writeTable(t), "--format", "json", "--threads", "2")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.NotEmpty(t, doc["run_id"])
	assert.Equal(t, []any{"agriculture", "industry"}, doc["sectors"])
	assert.Contains(t, doc, "extraction")
	assert.Contains(t, doc, "field_of_influence")
}

func TestAnalyze_EnvAndOutputFile(t *testing.T) {
	t.Setenv("FIO_FORMAT", "yaml")
	t.Setenv("FIO_SKIP_INFLUENCE", "true")
	dest := filepath.Join(t.TempDir(), "report.yaml")

	out, _, err := execute(t, "analyze", "-i", writeTable(t), "-o", dest, "--rank-one")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "leontief_inverse:")
	assert.NotContains(t, string(data), "field_of_influence:\n  -")
	assert.Contains(t, string(data), "rank_one: true")
}

func TestAnalyze_Text(t *testing.T) {
	out, _, err := execute(t, "analyze", "-i", writeTable(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Output multipliers")
	assert.Contains(t, out, "agriculture")
}

func TestAnalyze_Errors(t *testing.T) {
	_, _, err := execute(t, "analyze")
	require.Error(t, err, "input is required")

	_, _, err = execute(t, "analyze", "-i", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	_, _, err = execute(t, "analyze", "-i", writeTable(t), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")

	_, _, err = execute(t, "analyze", "-i", writeTable(t), "--epsilon", "-1")
	require.Error(t, err)

	_, _, err = execute(t, "analyze", "-i", writeTable(t), "-o", t.TempDir())
	require.Error(t, err, "output path is a directory")
}

func TestAnalyze_OutputFileComplete(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "report.json")
	out, _, err := execute(t, "analyze", "-i", writeTable(t), "-o", dest, "--format", "json")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, []any{"agriculture", "industry"}, doc["sectors"])
}

func TestAnalyze_SingleSector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transactions: [[10]]\nproduction: [100]\n"), 0o644))

	out, _, err := execute(t, "analyze", "-i", path, "--format", "json")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "leontief_linkages")
}

func TestThreadsAndVersion(t *testing.T) {
	out, _, err := execute(t, "threads")
	require.NoError(t, err)
	assert.Contains(t, out, "workers: ")

	out, _, err = execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fio "+cmd.Version)
}
