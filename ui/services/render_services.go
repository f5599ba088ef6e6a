package services

import (
	"fmt"
	"html/template"
	"io"

	"attritionlens/internal"
	"attritionlens/internal/aggregate"
	"attritionlens/internal/dashboard"
)

// Row is one labelled bar of a server-rendered chart
type Row struct {
	Label string
	Value string
	Count int
	Width float64 // percent of the widest bar
	Color string
}

// Panel is a chart ready for the HTML template
type Panel struct {
	ID       int
	Title    string
	XLabel   string
	YLabel   string
	Note     template.HTML
	Rows     []Row
	Series   []string
	Caption  string
	Tabulate bool
}

type RenderService struct {
	templates *template.Template
	logger    *internal.Logger
}

func NewRenderService(templates *template.Template) *RenderService {
	return &RenderService{
		templates: templates,
		logger:    internal.DefaultLogger.With("Render"),
	}
}

// Render executes a named template into w
func (s *RenderService) Render(w io.Writer, name string, data interface{}) error {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("failed to render %s: %v", name, err)
		return err
	}
	return nil
}

// Panels converts evaluated charts into bar rows. Scatter plots are summarised
// by point count since they do not reduce to bars.
func Panels(p *dashboard.Payload) []Panel {
	panels := make([]Panel, 0, len(p.Charts))
	for _, c := range p.Charts {
		panel := Panel{ID: c.ID, Title: c.Title, XLabel: c.XLabel, YLabel: c.YLabel, Note: c.NoteHTML}
		switch {
		case c.Rates != nil:
			panel.Rows = resultRows(*c.Rates, c.Kind == dashboard.KindPie, c.Colors)
		case c.Tenure != nil:
			panel.Rows = resultRows(c.Tenure.Result, false, nil)
			if c.Tenure.OutOfRange > 0 {
				panel.Caption = fmt.Sprintf("%d employees outside the 0-40 year bands are not shown.", c.Tenure.OutOfRange)
			}
		case c.Grouped != nil:
			panel.Rows = groupedRows(*c.Grouped, c.Colors)
		case len(c.Histograms) > 0:
			panel.Rows = histogramRows(c.Histograms[len(c.Histograms)-1], c.Colors)
		case c.Points != nil:
			panel.Caption = fmt.Sprintf("%d points plotted.", len(c.Points))
		}
		panel.Tabulate = len(panel.Rows) > 0
		panels = append(panels, panel)
	}
	return panels
}

func resultRows(r aggregate.Result, counts bool, colors map[string]string) []Row {
	max := 0.0
	for _, p := range r.Points {
		if p.Value > max {
			max = p.Value
		}
	}
	rows := make([]Row, 0, len(r.Points))
	for _, p := range r.Points {
		value := fmt.Sprintf("%.2f%%", p.Value)
		if counts {
			value = fmt.Sprintf("%d", p.Count)
		}
		rows = append(rows, Row{Label: p.Key, Value: value, Count: p.Count, Width: width(p.Value, max), Color: colors[p.Key]})
	}
	return rows
}

func groupedRows(r aggregate.Result2, colors map[string]string) []Row {
	max := 0.0
	for _, p := range r.Points {
		if p.Value > max {
			max = p.Value
		}
	}
	rows := make([]Row, 0, len(r.Points))
	for _, p := range r.Points {
		rows = append(rows, Row{
			Label: p.First + " / " + p.Second,
			Value: fmt.Sprintf("%.0f", p.Value),
			Count: p.Count,
			Width: width(p.Value, max),
			Color: colors[p.Second],
		})
	}
	return rows
}

// histogramRows lists one row per (bin, series) for non-empty bins.
func histogramRows(h aggregate.Histogram, colors map[string]string) []Row {
	max := 0.0
	for _, s := range h.Series {
		for _, n := range s.Counts {
			if n > max {
				max = n
			}
		}
	}
	var rows []Row
	for i := 0; i+1 < len(h.Edges); i++ {
		for _, s := range h.Series {
			if i >= len(s.Counts) || s.Counts[i] == 0 {
				continue
			}
			rows = append(rows, Row{
				Label: fmt.Sprintf("%.0f-%.0f (%s)", h.Edges[i], h.Edges[i+1], s.Name),
				Value: fmt.Sprintf("%.0f", s.Counts[i]),
				Count: int(s.Counts[i]),
				Width: width(s.Counts[i], max),
				Color: colors[s.Name],
			})
		}
	}
	return rows
}

func width(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max * 100
}
