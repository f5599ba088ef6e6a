package aggregate

import (
	"fmt"

	"attritionlens/domain/employee"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is reported instead of a rate when there is nothing to divide by.
const NotAvailable = "N/A"

// KPIs are the headline numbers of the overview tab
type KPIs struct {
	Total          int     `json:"total"`
	AttritionCount int     `json:"attrition_count"`
	Rate           float64 `json:"rate"`
	RateAvailable  bool    `json:"rate_available"`

	TotalLabel          string `json:"total_label"`
	AttritionCountLabel string `json:"attrition_count_label"`
	RateLabel           string `json:"rate_label"`
}

var printer = message.NewPrinter(language.English)

// ComputeKPIs counts records and leavers. With zero records the rate is the
// N/A sentinel rather than a division.
func ComputeKPIs(view *employee.View) KPIs {
	k := KPIs{Total: view.Len()}
	view.Each(func(r *employee.Record) {
		if r.Attrition == employee.Yes {
			k.AttritionCount++
		}
	})

	k.TotalLabel = printer.Sprintf("%d", k.Total)
	k.AttritionCountLabel = printer.Sprintf("%d", k.AttritionCount)
	k.RateLabel = NotAvailable
	if k.Total > 0 {
		k.Rate = float64(k.AttritionCount) / float64(k.Total) * 100
		k.RateAvailable = true
		k.RateLabel = fmt.Sprintf("%.2f%%", k.Rate)
	}
	return k
}
