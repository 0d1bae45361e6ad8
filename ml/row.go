package ml

import (
	"fmt"
	"strconv"
)

// Cell is one named column value of a tabular row. Text cells carry the
// category exactly as selected; numeric cells carry encoded flags.
type Cell struct {
	Name    string
	Text    string
	Number  float64
	Numeric bool
}

// TextCell builds a categorical cell.
func TextCell(name, value string) Cell {
	return Cell{Name: name, Text: value}
}

// NumberCell builds a numeric cell.
func NumberCell(name string, value float64) Cell {
	return Cell{Name: name, Number: value, Numeric: true}
}

// Float returns the numeric view of the cell. Text cells are parsed, so a
// category such as "3" can feed a numeric split while "5+" cannot.
func (c Cell) Float() (float64, error) {
	if c.Numeric {
		return c.Number, nil
	}
	v, err := strconv.ParseFloat(c.Text, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: value %q is not numeric", c.Name, c.Text)
	}
	return v, nil
}

// String renders the value the way it was entered.
func (c Cell) String() string {
	if c.Numeric {
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	}
	return c.Text
}

// Row is an ordered single record handed to a model.
type Row []Cell

// Lookup finds a column by its external name.
func (r Row) Lookup(name string) (Cell, bool) {
	for _, c := range r {
		if c.Name == name {
			return c, true
		}
	}
	return Cell{}, false
}

// Columns lists the column names in order.
func (r Row) Columns() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}
