// SPDX-License-Identifier: MIT
// Package table decodes an input-output table from YAML.
//
// Document layout (n sectors, all matrices row-major, row i sells to column j):
//
//	sectors:      [agriculture, industry, services]   # optional, n names
//	transactions: [[...], [...], [...]]               # n×n, required
//	production:   [...]                               # n, required
//	final_demand: [[...], ...]                        # n×k, optional
//	value_added:  [[...], ...]                        # k×n, optional
//	employment:   [...]                               # n, optional
//
// Decode checks shapes and finiteness only; economic validity (non-zero
// production, invertibility) is left to package ioa.
package table

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fio/matrix"
)

// ErrInvalidTable wraps every shape or content error reported by Decode.
var ErrInvalidTable = errors.New("table: invalid table")

// Table is one decoded input-output table.
type Table struct {
	Sectors      []string    `yaml:"sectors,omitempty"`
	Transactions [][]float64 `yaml:"transactions"`
	Production   []float64   `yaml:"production"`
	FinalDemand  [][]float64 `yaml:"final_demand,omitempty"`
	ValueAdded   [][]float64 `yaml:"value_added,omitempty"`
	Employment   []float64   `yaml:"employment,omitempty"`
}

// Load opens path and decodes it.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads one YAML document from r. Unknown keys are rejected.
// Missing sector names are filled with S1..Sn.
func Decode(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Table
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidTable)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if len(t.Sectors) == 0 {
		t.Sectors = make([]string, t.N())
		for k := range t.Sectors {
			t.Sectors[k] = fmt.Sprintf("S%d", k+1)
		}
	}

	return &t, nil
}

// N returns the number of sectors.
func (t *Table) N() int { return len(t.Transactions) }

// Validate checks every shape against n = len(Transactions).
func (t *Table) Validate() error {
	n := t.N()
	if n == 0 {
		return fmt.Errorf("%w: transactions are empty", ErrInvalidTable)
	}
	if err := checkRect("transactions", t.Transactions, n); err != nil {
		return err
	}
	if len(t.Production) != n {
		return fmt.Errorf("%w: production has %d entries, want %d", ErrInvalidTable, len(t.Production), n)
	}
	if err := checkFinite("production", t.Production); err != nil {
		return err
	}
	if len(t.Sectors) != 0 && len(t.Sectors) != n {
		return fmt.Errorf("%w: %d sector names for %d sectors", ErrInvalidTable, len(t.Sectors), n)
	}
	if t.FinalDemand != nil {
		if len(t.FinalDemand) != n {
			return fmt.Errorf("%w: final_demand has %d rows, want %d", ErrInvalidTable, len(t.FinalDemand), n)
		}
		if err := checkRect("final_demand", t.FinalDemand, -1); err != nil {
			return err
		}
	}
	if t.ValueAdded != nil {
		if err := checkRect("value_added", t.ValueAdded, n); err != nil {
			return err
		}
	}
	if t.Employment != nil {
		if len(t.Employment) != n {
			return fmt.Errorf("%w: employment has %d entries, want %d", ErrInvalidTable, len(t.Employment), n)
		}
		if err := checkFinite("employment", t.Employment); err != nil {
			return err
		}
	}

	return nil
}

// TransactionsMatrix returns T as an n×n matrix.
func (t *Table) TransactionsMatrix() (*matrix.Dense, error) { return dense(t.Transactions) }

// FinalDemandMatrix returns FD as an n×k matrix, or nil when absent.
func (t *Table) FinalDemandMatrix() (*matrix.Dense, error) { return dense(t.FinalDemand) }

// ValueAddedMatrix returns VA as a k×n matrix, or nil when absent.
func (t *Table) ValueAddedMatrix() (*matrix.Dense, error) { return dense(t.ValueAdded) }

// ValueAddedTotals returns the column sums of VA (value added per sector),
// or nil when VA is absent.
func (t *Table) ValueAddedTotals() ([]float64, error) {
	va, err := t.ValueAddedMatrix()
	if err != nil || va == nil {
		return nil, err
	}

	return matrix.ColSums(va)
}

// checkRect verifies that every row has the width of the first row and,
// when cols ≥ 0, that this width equals cols. Entries must be finite.
func checkRect(name string, rows [][]float64, cols int) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrInvalidTable, name)
	}
	w := len(rows[0])
	if cols >= 0 && w != cols {
		return fmt.Errorf("%w: %s has %d columns, want %d", ErrInvalidTable, name, w, cols)
	}
	if w == 0 {
		return fmt.Errorf("%w: %s has empty rows", ErrInvalidTable, name)
	}
	for i, row := range rows {
		if len(row) != w {
			return fmt.Errorf("%w: %s row %d has %d columns, want %d", ErrInvalidTable, name, i, len(row), w)
		}
		if err := checkFinite(fmt.Sprintf("%s row %d", name, i), row); err != nil {
			return err
		}
	}

	return nil
}

func checkFinite(name string, v []float64) error {
	for k, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s[%d] is not finite", ErrInvalidTable, name, k)
		}
	}

	return nil
}

// dense flattens row-major literals; nil in, nil out.
func dense(rows [][]float64) (*matrix.Dense, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	r, c := len(rows), len(rows[0])
	flat := make([]float64, 0, r*c)
	for _, row := range rows {
		flat = append(flat, row...)
	}

	return matrix.NewDenseFrom(r, c, flat)
}
