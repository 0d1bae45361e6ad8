package view

import (
	"strconv"

	"houseprice/property"
)

const (
	CurrencySymbol = "₹"
	CurrencyUnit   = "Lacs"
)

// FormatPrice renders a price with exactly two decimals and no grouping.
func FormatPrice(lacs float64) string {
	return strconv.FormatFloat(lacs, 'f', 2, 64)
}

// PriceLabel is the full display string, e.g. "₹ 150.00 Lacs".
func PriceLabel(lacs float64) string {
	return CurrencySymbol + " " + FormatPrice(lacs) + " " + CurrencyUnit
}

type SummaryLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Summary echoes the submitted request for display.
func Summary(req property.Request) []SummaryLine {
	return []SummaryLine{
		{Label: "Posted By", Value: req.PostedBy()},
		{Label: "City", Value: req.City()},
		{Label: "BHK", Value: req.BHK()},
		{Label: "Square Feet", Value: req.SquareFtBin()},
		{Label: "Under Construction", Value: yesNo(req.UnderConstruction())},
		{Label: "RERA Approved", Value: yesNo(req.RERAApproved())},
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
