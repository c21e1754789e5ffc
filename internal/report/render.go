// SPDX-License-Identifier: MIT
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fio/ioa"
)

// Render formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// ErrUnknownFormat is returned by Render for a format it does not know.
var ErrUnknownFormat = errors.New("report: unknown format")

var (
	accentColor = lipgloss.Color("#4682B4")
	mutedColor  = lipgloss.Color("#888888")
	warnColor   = lipgloss.Color("#FF8800")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accentColor)
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	warnStyle    = lipgloss.NewStyle().Foreground(warnColor).Bold(true)
	cellStyle    = lipgloss.NewStyle().Width(12).Align(lipgloss.Right)
	nameStyle    = lipgloss.NewStyle().Width(16)
)

// Render writes r to w in the given format (json, yaml or text).
func Render(w io.Writer, r *Report, format string) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		_, err := io.WriteString(w, Text(r))
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Text returns the human-readable rendering of r: a summary line followed by
// one per-sector table per analysis.
func Text(r *Report) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Input-output structural analysis"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(summary(r)))
	b.WriteString("\n")
	if !r.Stats.Productive {
		b.WriteString(warnStyle.Render(fmt.Sprintf(
			"warning: spectral radius %.4f >= 1, the economy is not productive", r.SpectralRadius)))
		b.WriteString("\n")
	}

	section(&b, r.Sectors, "Leontief linkages",
		column{"backward", r.LeontiefLinkages.Backward},
		column{"forward", r.LeontiefLinkages.Forward},
		column{"power", r.LeontiefLinkages.PowerOfDispersion},
		column{"sensitivity", r.LeontiefLinkages.SensitivityOfDispersion},
	)
	section(&b, r.Sectors, "Ghosh linkages",
		column{"backward", r.GhoshLinkages.Backward},
		column{"forward", r.GhoshLinkages.Forward},
	)
	section(&b, r.Sectors, "Output multipliers",
		column{"total", r.Output.Total},
		column{"direct", r.Output.Direct},
		column{"indirect", r.Output.Indirect},
	)
	for _, m := range []*satellite{sat("Value-added multipliers", r.ValueAdded), sat("Employment multipliers", r.Employment)} {
		if m == nil {
			continue
		}
		section(&b, r.Sectors, m.title,
			column{"requirement", m.req},
			column{"multiplier", m.mult},
			column{"indirect", m.ind},
		)
	}
	if e := r.Extraction; e != nil {
		section(&b, r.Sectors, "Hypothetical extraction",
			column{"backward", col(e.Backward, 0)},
			column{"backward %", percent(col(e.Backward, 1))},
			column{"forward", col(e.Forward, 0)},
			column{"forward %", percent(col(e.Forward, 1))},
			column{"total %", percent(col(e.Total, 1))},
		)
	}
	if r.Influence != nil {
		cols := make([]column, len(r.Sectors))
		for j, name := range r.Sectors {
			cols[j] = column{name, col(r.Influence, j)}
		}
		section(&b, r.Sectors, "Field of influence", cols...)
	}

	return b.String()
}

// summary is the one-line run description.
func summary(r *Report) string {
	parts := []string{
		fmt.Sprintf("%s sectors", humanize.Comma(int64(r.Stats.Sectors))),
		fmt.Sprintf("%s inversions", humanize.Comma(r.Stats.Inversions)),
		fmt.Sprintf("%d workers", r.Stats.Workers),
		fmt.Sprintf("ρ(A) = %.4f", r.SpectralRadius),
	}
	if r.Stats.InfluenceOn {
		cells := int64(r.Stats.Sectors) * int64(r.Stats.Sectors)
		parts = append(parts, fmt.Sprintf("%s perturbed cells", humanize.Comma(cells)))
	}
	if r.Stats.RankOne {
		parts = append(parts, "rank-one updates")
	}
	if r.RunID != "" {
		parts = append(parts, "run "+r.RunID)
	}

	return strings.Join(parts, " · ")
}

type column struct {
	name   string
	values []float64
}

type satellite struct {
	title          string
	req, mult, ind []float64
}

// sat adapts a satellite result for section; nil when the account is absent.
func sat(title string, m *ioa.SatelliteMultipliers) *satellite {
	if m == nil {
		return nil
	}

	return &satellite{title: title, req: m.Requirements, mult: m.Multiplier, ind: m.Indirect}
}

// section renders one titled table: a row per sector, a column per series.
func section(b *strings.Builder, sectors []string, title string, cols ...column) {
	b.WriteString("\n")
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")

	head := []string{nameStyle.Render("sector")}
	for _, c := range cols {
		head = append(head, cellStyle.Render(c.name))
	}
	b.WriteString(mutedStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, head...)))
	b.WriteString("\n")

	for i, name := range sectors {
		line := []string{nameStyle.Render(name)}
		for _, c := range cols {
			v := ""
			if i < len(c.values) {
				v = humanize.FormatFloat("#,###.####", c.values[i])
			}
			line = append(line, cellStyle.Render(v))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, line...))
		b.WriteString("\n")
	}
}

// col extracts column j of a row slice.
func col(rows [][]float64, j int) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		out[i] = row[j]
	}

	return out
}

func percent(v []float64) []float64 {
	out := make([]float64, len(v))
	for k, x := range v {
		out[k] = 100 * x
	}

	return out
}
