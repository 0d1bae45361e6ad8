// Package property describes a listing submitted for price prediction and the
// closed sets of values each field accepts.
package property

import "golang.org/x/text/cases"

var PostedByOptions = []string{"Dealer", "Owner", "Builder"}

var BHKOptions = []string{"1", "2", "3", "4", "5", "5+"}

var CityOptions = []string{
	"Bangalore", "Lalitpur", "Other", "Mumbai", "Pune", "Noida",
	"Kolkata", "Maharashtra", "Chennai", "Ghaziabad", "Jaipur",
	"Chandigarh", "Faridabad", "Mohali", "Vadodara", "Gurgaon",
	"Surat", "Nagpur", "Lucknow", "Indore", "Bhubaneswar", "Bhopal",
	"Kochi", "Visakhapatnam", "Bhiwadi", "Coimbatore", "Goa",
	"Dehradun", "Ranchi", "Mangalore", "Sonipat", "Gandhinagar",
	"Secunderabad", "Palghar", "Kanpur", "Guwahati", "Raipur",
	"Jamshedpur", "Rajkot", "Siliguri", "Agra", "Patna", "Panchkula",
	"Vijayawada", "Jamnagar", "Aurangabad", "Raigad", "Dharuhera",
	"Thrissur", "Durgapur", "Gwalior", "Meerut",
}

var SquareFtOptions = []string{
	"0-100", "100-200", "200-300", "300-400", "400-500",
	"500-700", "700-1000", "1000-1500", "1500-2000",
	"2000-5000", "5000+",
}

// Catalog groups the selectable values, in display order.
type Catalog struct {
	PostedBy []string `json:"posted_by"`
	BHK      []string `json:"bhk"`
	City     []string `json:"city"`
	SquareFt []string `json:"square_ft_bin"`
}

// Options returns a copy of the catalog.
func Options() Catalog {
	return Catalog{
		PostedBy: append([]string(nil), PostedByOptions...),
		BHK:      append([]string(nil), BHKOptions...),
		City:     append([]string(nil), CityOptions...),
		SquareFt: append([]string(nil), SquareFtOptions...),
	}
}

// canonical returns the catalog spelling of value, matching case-insensitively.
func canonical(options []string, value string) (string, bool) {
	fold := cases.Fold()
	want := fold.String(value)
	for _, opt := range options {
		if fold.String(opt) == want {
			return opt, true
		}
	}
	return "", false
}
