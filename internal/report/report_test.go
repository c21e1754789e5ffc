// SPDX-License-Identifier: MIT
package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fio/internal/report"
	"github.com/katalvlaran/fio/internal/table"
	"github.com/katalvlaran/fio/ioa"
	"github.com/katalvlaran/fio/parallel"
)

const threeSector = `
sectors: [agriculture, industry, services]
transactions:
  - [1, 4, 7]
  - [2, 5, 8]
  - [3, 6, 9]
production: [100, 200, 300]
final_demand:
  - [80, 8]
  - [180, 5]
  - [270, 12]
value_added:
  - [60, 120, 200]
  - [34, 65, 76]
employment: [10, 20, 30]
`

func mustTable(t *testing.T, doc string) *table.Table {
	t.Helper()
	tab, err := table.Decode(strings.NewReader(doc))
	require.NoError(t, err)

	return tab
}

func baseOptions() report.Options {
	return report.Options{
		RunID:    "test-run",
		Epsilon:  1e-3,
		Executor: parallel.Sequential(),
	}
}

func TestRun_Full(t *testing.T) {
	rep, err := report.Run(mustTable(t, threeSector), baseOptions())
	require.NoError(t, err)

	assert.Equal(t, "test-run", rep.RunID)
	assert.True(t, rep.Stats.Productive)
	assert.Less(t, rep.SpectralRadius, 1.0)
	assert.Equal(t, 0.01, rep.Technical[0][0])
	assert.Len(t, rep.Leontief, 3)

	require.NotNil(t, rep.ValueAdded)
	assert.Equal(t, ioa.AccountValueAdded, rep.ValueAdded.Account)
	require.NotNil(t, rep.Employment)
	assert.Equal(t, ioa.AccountEmployment, rep.Employment.Account)

	require.NotNil(t, rep.Extraction)
	for i := range rep.Extraction.Total {
		for j := 0; j < 2; j++ {
			assert.Equal(t, rep.Extraction.Backward[i][j]+rep.Extraction.Forward[i][j], rep.Extraction.Total[i][j])
		}
	}

	require.Len(t, rep.Influence, 3)
	assert.True(t, rep.Stats.InfluenceOn)
	// 2 inverses + 3 backward + 3 forward + 9 influence cells.
	assert.Equal(t, int64(17), rep.Stats.Inversions)
	assert.Equal(t, 1, rep.Stats.Workers)
}

func TestRun_RankOneAndSkip(t *testing.T) {
	opts := baseOptions()
	opts.RankOne = true
	rep, err := report.Run(mustTable(t, threeSector), opts)
	require.NoError(t, err)
	// 2 inverses + 1 base inverse per extraction direction; influence uses L only.
	assert.Equal(t, int64(4), rep.Stats.Inversions)

	full, err := report.Run(mustTable(t, threeSector), baseOptions())
	require.NoError(t, err)
	for i := range full.Influence {
		assert.InDeltaSlice(t, full.Influence[i], rep.Influence[i], 1e-6*(1+full.Influence[i][0]))
	}

	opts = baseOptions()
	opts.SkipInfluence = true
	rep, err = report.Run(mustTable(t, threeSector), opts)
	require.NoError(t, err)
	assert.Nil(t, rep.Influence)
	assert.Equal(t, int64(8), rep.Stats.Inversions)
}

func TestRun_OptionalAccounts(t *testing.T) {
	rep, err := report.Run(mustTable(t, `
transactions: [[10, 20], [30, 40]]
production: [100, 200]
final_demand: [[1], [2]]
`), baseOptions())
	require.NoError(t, err)
	assert.Nil(t, rep.ValueAdded)
	assert.Nil(t, rep.Employment)
	assert.Nil(t, rep.Extraction, "extraction needs both final demand and value added")
	assert.Equal(t, []string{"S1", "S2"}, rep.Sectors)
}

func TestRun_SingleSector(t *testing.T) {
	rep, err := report.Run(mustTable(t, "transactions: [[10]]\nproduction: [100]"), baseOptions())
	require.NoError(t, err)

	assert.Equal(t, []float64{1}, rep.LeontiefLinkages.Forward)
	assert.Equal(t, []float64{1}, rep.LeontiefLinkages.Backward)
	assert.Nil(t, rep.LeontiefLinkages.PowerOfDispersion)
	assert.Nil(t, rep.LeontiefLinkages.SensitivityOfDispersion)
	assert.Equal(t, []float64{1}, rep.GhoshLinkages.Forward)
	assert.Nil(t, rep.GhoshLinkages.PowerOfDispersion)
	assert.True(t, rep.Stats.Productive)
	require.Len(t, rep.Influence, 1)
	// 2 inverses + 1 influence cell.
	assert.Equal(t, int64(3), rep.Stats.Inversions)

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, rep, "text"))
	assert.Contains(t, buf.String(), "Leontief linkages")
}

func TestRun_Errors(t *testing.T) {
	_, err := report.Run(mustTable(t, "transactions: [[1]]\nproduction: [1]"), baseOptions())
	require.ErrorIs(t, err, ioa.ErrSingularMatrix)

	_, err = report.Run(mustTable(t, "transactions: [[1, 2], [3, 4]]\nproduction: [10, 0]"), baseOptions())
	require.ErrorIs(t, err, ioa.ErrDegenerate)

	opts := baseOptions()
	opts.Epsilon = 0
	_, err = report.Run(mustTable(t, threeSector), opts)
	require.ErrorIs(t, err, ioa.ErrDegenerate)
}

func TestRender(t *testing.T) {
	rep, err := report.Run(mustTable(t, threeSector), baseOptions())
	require.NoError(t, err)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, rep, "json"))
		var doc map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		assert.Equal(t, "test-run", doc["run_id"])
		assert.Contains(t, doc, "leontief_linkages")
		assert.Contains(t, doc, "field_of_influence")
		va := doc["value_added_multipliers"].(map[string]any)
		assert.NotContains(t, va, "Generator")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, rep, "YAML"))
		var doc map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
		assert.Equal(t, []any{"agriculture", "industry", "services"}, doc["sectors"])
		assert.Contains(t, doc, "extraction")
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Render(&buf, rep, "text"))
		out := buf.String()
		for _, want := range []string{
			"Leontief linkages", "Output multipliers", "Employment multipliers",
			"Hypothetical extraction", "Field of influence", "services", "17 inversions", "run test-run",
		} {
			assert.Contains(t, out, want)
		}
		assert.NotContains(t, out, "not productive")
	})

	t.Run("unknown", func(t *testing.T) {
		err := report.Render(&bytes.Buffer{}, rep, "csv")
		require.ErrorIs(t, err, report.ErrUnknownFormat)
	})
}
