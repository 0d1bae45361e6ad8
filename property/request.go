package property

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"houseprice/ml"
)

// Column names the trained model expects.
const (
	ColumnPostedBy          = "POSTED_BY"
	ColumnUnderConstruction = "UNDER_CONSTRUCTION"
	ColumnRERA              = "RERA"
	ColumnBHK               = "BHK_NO."
	ColumnCity              = "City"
	ColumnSquareFtBin       = "SQUARE_FT_BIN"
)

// Field identifiers as they appear in forms and JSON.
const (
	FieldPostedBy    = "posted_by"
	FieldCity        = "city"
	FieldBHK         = "bhk"
	FieldSquareFtBin = "square_ft_bin"
)

// Input is the raw submission, straight from a form or JSON body.
type Input struct {
	PostedBy          string `json:"posted_by"`
	UnderConstruction bool   `json:"under_construction"`
	RERAApproved      bool   `json:"rera_approved"`
	BHK               string `json:"bhk"`
	City              string `json:"city"`
	SquareFtBin       string `json:"square_ft_bin"`
}

// Request is a validated submission. It is a value: once built it cannot be
// changed, only read.
type Request struct {
	postedBy          string
	underConstruction bool
	reraApproved      bool
	bhk               string
	city              string
	squareFtBin       string
}

// FieldError is a validation failure tied to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

type requiredField struct {
	name    string
	value   string
	options []string
	missing string
	label   string
}

// NewRequest checks that every selection is present and known, and returns
// the canonical request. All failing fields are reported, in form order.
func NewRequest(in Input) (Request, error) {
	fields := []requiredField{
		{FieldPostedBy, in.PostedBy, PostedByOptions, "Please select 'Posted By'", "Posted By"},
		{FieldCity, in.City, CityOptions, "Please select a city", "city"},
		{FieldBHK, in.BHK, BHKOptions, "Please select BHK", "BHK"},
		{FieldSquareFtBin, in.SquareFtBin, SquareFtOptions, "Please select square feet range", "square feet range"},
	}

	var err error
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		v := strings.TrimSpace(f.value)
		if v == "" {
			err = multierr.Append(err, &FieldError{Field: f.name, Message: f.missing})
			continue
		}
		canon, ok := canonical(f.options, v)
		if !ok {
			err = multierr.Append(err, &FieldError{
				Field:   f.name,
				Message: fmt.Sprintf("Unknown %s %q", f.label, v),
			})
			continue
		}
		values[f.name] = canon
	}
	if err != nil {
		return Request{}, err
	}

	return Request{
		postedBy:          values[FieldPostedBy],
		underConstruction: in.UnderConstruction,
		reraApproved:      in.RERAApproved,
		bhk:               values[FieldBHK],
		city:              values[FieldCity],
		squareFtBin:       values[FieldSquareFtBin],
	}, nil
}

// FieldErrors extracts the per-field failures from an error returned by
// NewRequest. It returns nil for any other error.
func FieldErrors(err error) []FieldError {
	var out []FieldError
	for _, e := range multierr.Errors(err) {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, *fe)
		}
	}
	return out
}

func (r Request) PostedBy() string        { return r.postedBy }
func (r Request) UnderConstruction() bool { return r.underConstruction }
func (r Request) RERAApproved() bool      { return r.reraApproved }
func (r Request) BHK() string             { return r.bhk }
func (r Request) City() string            { return r.city }
func (r Request) SquareFtBin() string     { return r.squareFtBin }

// Record builds the single-row table fed to the model. Flags are encoded 0/1,
// every other value is passed through as selected.
func (r Request) Record() ml.Row {
	return ml.Row{
		ml.TextCell(ColumnPostedBy, r.postedBy),
		ml.NumberCell(ColumnUnderConstruction, flag(r.underConstruction)),
		ml.NumberCell(ColumnRERA, flag(r.reraApproved)),
		ml.TextCell(ColumnBHK, r.bhk),
		ml.TextCell(ColumnCity, r.city),
		ml.TextCell(ColumnSquareFtBin, r.squareFtBin),
	}
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
