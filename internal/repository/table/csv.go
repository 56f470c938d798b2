// Package table reads and writes recipe tables as CSV.
package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/kailas-cloud/recipedex/internal/domain"
	"github.com/kailas-cloud/recipedex/internal/domain/recipe"
)

// Encoding names accepted by Read.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder wraps r so that it yields UTF-8 for the named encoding.
func Decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case EncodingLatin1, "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	case EncodingUTF8, "utf-8", "":
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// Read parses a recipe table from UTF-8 CSV. Empty cells read as null.
// Every required column must be present; other columns are kept as passthrough,
// except the combined column, which is always recomputed.
func Read(r io.Reader) (*recipe.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.NewMissingColumn(recipe.RequiredColumns[0])
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}
	for _, col := range recipe.RequiredColumns {
		if _, ok := pos[col]; !ok {
			return nil, domain.NewMissingColumn(col)
		}
	}

	var extraCols []string
	var extraPos []int
	for i, name := range header {
		if isKnownColumn(name) || pos[name] != i {
			continue
		}
		extraCols = append(extraCols, name)
		extraPos = append(extraPos, i)
	}

	var recipes []recipe.Recipe
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("read csv row %d: expected %d fields, saw %d", line, len(header), len(rec))
		}

		cell := func(i int) recipe.Text {
			if i >= len(rec) || rec[i] == "" {
				return recipe.Null()
			}
			return recipe.Some(rec[i])
		}

		extra := make([]recipe.Text, len(extraPos))
		for j, i := range extraPos {
			extra[j] = cell(i)
		}
		recipes = append(recipes, recipe.New(
			cell(pos[recipe.ColumnTitle]),
			cell(pos[recipe.ColumnIngredients]),
			cell(pos[recipe.ColumnInstructions]),
			cell(pos[recipe.ColumnTags]),
			cell(pos[recipe.ColumnImageName]),
			extra...,
		))
	}

	return recipe.NewTable(extraCols, recipes), nil
}

// Write emits the table as UTF-8 CSV: passthrough columns first, then the
// required columns, then the combined column. Null cells are written empty.
func Write(w io.Writer, t *recipe.Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(t.ExtraColumns())+len(recipe.RequiredColumns)+1)
	header = append(header, t.ExtraColumns()...)
	header = append(header, recipe.RequiredColumns...)
	header = append(header, recipe.ColumnCombined)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, r := range t.Recipes() {
		row := make([]string, 0, len(header))
		for _, x := range r.Extra() {
			row = append(row, x.String())
		}
		row = append(row,
			r.Title().String(),
			r.Ingredients().String(),
			r.Instructions().String(),
			r.Tags().String(),
			r.ImageName().String(),
			r.Combined(),
		)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func isKnownColumn(name string) bool {
	if name == recipe.ColumnCombined {
		return true
	}
	for _, c := range recipe.RequiredColumns {
		if c == name {
			return true
		}
	}
	return false
}
