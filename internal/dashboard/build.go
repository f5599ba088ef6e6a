package dashboard

import (
	"fmt"
	"html/template"

	"attritionlens/domain/employee"
	"attritionlens/internal/aggregate"
	apperrors "attritionlens/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ChartData is a catalog chart evaluated against a filtered view. Exactly one
// of the data fields is set, depending on Kind.
type ChartData struct {
	Chart
	NoteHTML template.HTML `json:"note_html"`

	Rates      *aggregate.Result        `json:"rates,omitempty"`
	Tenure     *aggregate.TenureResult  `json:"tenure,omitempty"`
	Histograms []aggregate.Histogram    `json:"histograms,omitempty"`
	Points     []aggregate.ScatterPoint `json:"points,omitempty"`
	Grouped    *aggregate.Result2       `json:"grouped,omitempty"`
}

// Payload is everything needed to draw one tab
type Payload struct {
	Tab    Tab             `json:"tab"`
	Title  string          `json:"title"`
	Rows   int             `json:"rows"`
	Empty  bool            `json:"empty"`
	Notice string          `json:"notice,omitempty"`
	KPIs   *aggregate.KPIs `json:"kpis,omitempty"`
	Charts []ChartData     `json:"charts"`
}

// Build evaluates the charts of tab over view. An empty view yields a payload
// carrying the empty-result notice and no charts; it is not an error.
func Build(view *employee.View, tab Tab) (*Payload, error) {
	if _, ok := tabTitles[tab]; !ok {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown tab %q", tab))
	}

	p := &Payload{Tab: tab, Title: tab.Title(), Rows: view.Len(), Charts: []ChartData{}}
	if view.IsEmpty() {
		p.Empty = true
		p.Notice = apperrors.EmptyResultNotice
		return p, nil
	}

	if tab == TabOverview {
		k := aggregate.ComputeKPIs(view)
		p.KPIs = &k
	}
	for _, c := range ChartsFor(tab) {
		data, err := Evaluate(view, c)
		if err != nil {
			return nil, err
		}
		p.Charts = append(p.Charts, data)
	}
	return p, nil
}

// Evaluate runs the aggregation a single chart declares.
func Evaluate(view *employee.View, c Chart) (ChartData, error) {
	data := ChartData{Chart: c, NoteHTML: RenderNote(c.Note)}
	switch c.Kind {
	case KindPie:
		r := aggregate.Distribution(view, c.Field)
		data.Rates = &r
	case KindRateBar:
		r := aggregate.RateBy(view, c.Field, c.Sort)
		data.Rates = &r
	case KindTenureBar:
		r := aggregate.RateByTenure(view)
		data.Tenure = &r
	case KindHistogram:
		data.Histograms = []aggregate.Histogram{aggregate.BuildHistogram(view, c.Field, c.Bins, false)}
		if c.Split {
			data.Histograms = append(data.Histograms, aggregate.BuildHistogram(view, c.Field, c.Bins, true))
		}
	case KindScatter:
		data.Points = aggregate.Scatter(view, c.Field, c.Second)
	case KindGroupedBar:
		r := aggregate.MeanBy2(view, c.Field, c.Second, employee.MonthlyIncome)
		data.Grouped = &r
	default:
		return ChartData{}, apperrors.InternalError(fmt.Sprintf("chart %d has unknown kind %q", c.ID, c.Kind))
	}
	return data, nil
}

// RenderNote converts a chart note from markdown to HTML.
func RenderNote(note string) template.HTML {
	if note == "" {
		return ""
	}
	// parsers keep state between calls
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return template.HTML(markdown.ToHTML([]byte(note), p, r))
}
