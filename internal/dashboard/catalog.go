package dashboard

import (
	"fmt"
	"strings"

	"attritionlens/domain/employee"
	"attritionlens/internal/aggregate"
)

// Tab groups charts on the dashboard page
type Tab string

const (
	TabOverview     Tab = "overview"
	TabDemographics Tab = "demographics"
	TabJobMetrics   Tab = "job_metrics"
	TabSatisfaction Tab = "satisfaction"
	TabRawData      Tab = "raw"
)

var tabTitles = map[Tab]string{
	TabOverview:     "Overview",
	TabDemographics: "Demographics",
	TabJobMetrics:   "Job Metrics",
	TabSatisfaction: "Satisfaction & Performance",
	TabRawData:      "Raw Data",
}

// Tabs returns every tab in page order
func Tabs() []Tab {
	return []Tab{TabOverview, TabDemographics, TabJobMetrics, TabSatisfaction, TabRawData}
}

// Title is the human heading of the tab
func (t Tab) Title() string { return tabTitles[t] }

// ParseTab accepts a tab id; the empty string means the overview.
func ParseTab(s string) (Tab, error) {
	if s == "" {
		return TabOverview, nil
	}
	t := Tab(strings.ToLower(s))
	if _, ok := tabTitles[t]; !ok {
		return "", fmt.Errorf("unknown tab %q", s)
	}
	return t, nil
}

// Kind is how a chart is drawn and which aggregation feeds it
type Kind string

const (
	KindPie        Kind = "pie"
	KindRateBar    Kind = "rate_bar"
	KindHistogram  Kind = "histogram"
	KindScatter    Kind = "scatter"
	KindTenureBar  Kind = "tenure_bar"
	KindGroupedBar Kind = "grouped_bar"
)

// AttritionColors is the fixed Yes/No palette used wherever attrition status is a color
var AttritionColors = map[string]string{
	employee.Yes: "#FF6347",
	employee.No:  "#4CAF50",
}

const rateAxis = "Attrition Rate (%)"

// Chart declares one dashboard chart
type Chart struct {
	ID     int            `json:"id"`
	Tab    Tab            `json:"tab"`
	Title  string         `json:"title"`
	Kind   Kind           `json:"kind"`
	Field  employee.Field `json:"field"`
	Second employee.Field `json:"second,omitempty"`

	Sort       aggregate.SortPolicy `json:"sort,omitempty"`
	Bins       int                  `json:"bins,omitempty"`
	Split      bool                 `json:"split,omitempty"`
	ColorScale string               `json:"color_scale,omitempty"`
	Colors     map[string]string    `json:"colors,omitempty"`

	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Note   string `json:"note"`
}

func rateBar(id int, tab Tab, field employee.Field, title string, sort aggregate.SortPolicy, scale, xLabel, note string) Chart {
	if xLabel == "" {
		xLabel = string(field)
	}
	return Chart{
		ID: id, Tab: tab, Title: title, Kind: KindRateBar, Field: field,
		Sort: sort, ColorScale: scale, XLabel: xLabel, YLabel: rateAxis, Note: note,
	}
}

var catalog = []Chart{
	{
		ID: 1, Tab: TabOverview, Title: "Employee Attrition Distribution", Kind: KindPie,
		Field: employee.Attrition, Colors: AttritionColors, XLabel: "Attrition", YLabel: "Count",
		Note: "Share of employees who **left** versus those who **stayed**.",
	},
	rateBar(2, TabOverview, employee.Department, "Attrition Rate by Department", aggregate.SortByKey, "Reds", "",
		"Departments with a higher rate are candidates for HR follow-up."),
	rateBar(3, TabOverview, employee.JobRole, "Attrition Rate by Job Role", aggregate.SortByRateDesc, "Reds", "",
		"Roles ranked from highest to lowest attrition."),

	{
		ID: 4, Tab: TabDemographics, Title: "Age Distribution by Attrition Status", Kind: KindHistogram,
		Field: employee.Age, Bins: 20, Split: true, Colors: AttritionColors, XLabel: "Age", YLabel: "Employees",
		Note: "Headcount per age band, overall and split by attrition status.",
	},
	{
		ID: 5, Tab: TabDemographics, Title: "Attrition Rate by Gender", Kind: KindRateBar, Field: employee.Gender,
		Sort: aggregate.SortByKey, Colors: map[string]string{"Male": "#6A5ACD", "Female": "#FF69B4"},
		XLabel: string(employee.Gender), YLabel: rateAxis, Note: "Retention compared across genders.",
	},
	rateBar(6, TabDemographics, employee.MaritalStatus, "Attrition Rate by Marital Status", aggregate.SortByRateDesc, "Blues", "",
		"Attrition per marital status, highest first."),
	rateBar(7, TabDemographics, employee.EducationField, "Attrition Rate by Education Field", aggregate.SortByRateDesc, "Greens", "",
		"Attrition per field of study, highest first."),
	rateBar(8, TabDemographics, employee.Education, "Attrition Rate by Education Level", aggregate.SortByKey, "Purp",
		"Education Level (1=Below College, 5=Doctor)", "Attrition per education level."),

	{
		ID: 9, Tab: TabJobMetrics, Title: "Monthly Income Distribution by Attrition Status", Kind: KindHistogram,
		Field: employee.MonthlyIncome, Bins: 30, Split: true, Colors: AttritionColors, XLabel: "Monthly Income", YLabel: "Employees",
		Note: "Headcount per income band, overall and split by attrition status.",
	},
	rateBar(10, TabJobMetrics, employee.JobLevel, "Attrition Rate by Job Level", aggregate.SortByKey, "Oranges",
		"Job Level (1=Entry, 5=Executive)", "Attrition per seniority level."),
	rateBar(11, TabJobMetrics, employee.BusinessTravel, "Attrition Rate by Business Travel Frequency", aggregate.SortByRateDesc, "Viridis", "",
		"Attrition per travel frequency, highest first."),
	rateBar(12, TabJobMetrics, employee.OverTime, "Attrition Rate by Overtime", aggregate.SortByKey, "Plasma", "",
		"Attrition for employees with and without overtime."),
	{
		ID: 13, Tab: TabJobMetrics, Title: "Monthly Income vs. Years at Company by Attrition", Kind: KindScatter,
		Field: employee.YearsAtCompany, Second: employee.MonthlyIncome, Colors: AttritionColors,
		XLabel: "Years at Company", YLabel: "Monthly Income",
		Note: "One point per employee, colored by attrition status.",
	},
	{
		ID: 14, Tab: TabJobMetrics, Title: "Attrition Rate by Years At Company", Kind: KindTenureBar,
		Field: employee.YearsAtCompany, Sort: aggregate.SortByKey, ColorScale: "Thermal",
		XLabel: "Years At Company (Binned)", YLabel: rateAxis,
		Note: "Attrition per tenure band. Bands run `<1` through `30+`.",
	},
	rateBar(15, TabJobMetrics, employee.YearsInCurrentRole, "Attrition Rate by Years In Current Role", aggregate.SortByKey, "Electric",
		"Years In Current Role", "Attrition by time spent in the current role."),
	rateBar(16, TabJobMetrics, employee.NumCompaniesWorked, "Attrition Rate by Number of Companies Worked", aggregate.SortByKey, "Dense",
		"Number of Companies Worked", "Attrition by number of previous employers."),
	rateBar(17, TabJobMetrics, employee.YearsSinceLastPromotion, "Attrition Rate by Years Since Last Promotion", aggregate.SortByKey, "Rainbow",
		"Years Since Last Promotion", "Attrition by time since the last promotion."),

	rateBar(18, TabSatisfaction, employee.EnvironmentSatisfaction, "Attrition Rate by Environment Satisfaction", aggregate.SortByKey, "Plotly3",
		"Environment Satisfaction (1=Low, 4=High)", "Attrition per work environment rating."),
	rateBar(19, TabSatisfaction, employee.JobSatisfaction, "Attrition Rate by Job Satisfaction", aggregate.SortByKey, "Teal",
		"Job Satisfaction (1=Low, 4=High)", "Attrition per job satisfaction rating."),
	rateBar(20, TabSatisfaction, employee.RelationshipSatisfaction, "Attrition Rate by Relationship Satisfaction", aggregate.SortByKey, "Aggrnyl",
		"Relationship Satisfaction (1=Low, 4=High)", "Attrition per workplace relationship rating."),
	rateBar(21, TabSatisfaction, employee.WorkLifeBalance, "Attrition Rate by Work Life Balance", aggregate.SortByKey, "Pubu",
		"Work Life Balance (1=Bad, 4=Best)", "Attrition per work-life balance rating."),
	rateBar(22, TabSatisfaction, employee.PerformanceRating, "Attrition Rate by Performance Rating", aggregate.SortByKey, "Sunset",
		"Performance Rating (3=Excellent, 4=Outstanding)", "Attrition per performance rating."),
	rateBar(23, TabSatisfaction, employee.JobInvolvement, "Attrition Rate by Job Involvement", aggregate.SortByKey, "YlOrRd",
		"Job Involvement (1=Low, 4=High)", "Attrition per job involvement level."),
	{
		ID: 24, Tab: TabSatisfaction, Title: "Average Monthly Income by Education and Attrition", Kind: KindGroupedBar,
		Field: employee.Education, Second: employee.Attrition, Colors: AttritionColors,
		XLabel: "Education Level", YLabel: "Average Monthly Income",
		Note: "Mean income per education level, with leavers and stayers side by side.",
	},
}

// Catalog returns a copy of every chart in id order
func Catalog() []Chart {
	out := make([]Chart, len(catalog))
	copy(out, catalog)
	return out
}

// ChartsFor returns the charts of one tab in id order
func ChartsFor(tab Tab) []Chart {
	var out []Chart
	for _, c := range catalog {
		if c.Tab == tab {
			out = append(out, c)
		}
	}
	return out
}
