package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"

	"attritionlens/domain/employee"
)

// EmployeeGeneratorConfig configures the synthetic HR dataset generator
type EmployeeGeneratorConfig struct {
	Rows              int     `json:"rows"`
	BaseAttritionRate float64 `json:"base_attrition_rate"`
	Seed              int64   `json:"seed"`
}

// DefaultEmployeeConfig mirrors the size and attrition level of the public IBM HR sample
func DefaultEmployeeConfig() EmployeeGeneratorConfig {
	return EmployeeGeneratorConfig{
		Rows:              1470,
		BaseAttritionRate: 0.16,
		Seed:              42,
	}
}

// EmployeeGenerator produces employee rows with realistic attrition drivers
// (overtime, low satisfaction, short tenure, low income).
type EmployeeGenerator struct {
	config EmployeeGeneratorConfig
	rng    *rand.Rand
}

// NewEmployeeGenerator creates a new generator
func NewEmployeeGenerator(config EmployeeGeneratorConfig) *EmployeeGenerator {
	return &EmployeeGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	departments = []string{"Sales", "Research & Development", "Human Resources"}
	rolesByDept = map[string][]string{
		"Sales":                  {"Sales Executive", "Sales Representative", "Manager"},
		"Research & Development": {"Research Scientist", "Laboratory Technician", "Manufacturing Director", "Healthcare Representative", "Research Director", "Manager"},
		"Human Resources":        {"Human Resources", "Manager"},
	}
	educationFields = []string{"Life Sciences", "Medical", "Marketing", "Technical Degree", "Human Resources", "Other"}
	maritalStatuses = []string{"Single", "Married", "Divorced"}
	travelOptions   = []string{"Travel_Rarely", "Travel_Frequently", "Non-Travel"}
)

// Headers returns the generated column order: EmployeeNumber followed by every modelled field.
func Headers() []string {
	headers := []string{"EmployeeNumber"}
	for _, f := range employee.Fields() {
		headers = append(headers, string(f))
	}
	return headers
}

// GenerateRows returns header plus data rows as strings
func (g *EmployeeGenerator) GenerateRows() [][]string {
	headers := Headers()
	rows := make([][]string, 0, g.config.Rows+1)
	rows = append(rows, headers)
	for i := 0; i < g.config.Rows; i++ {
		rec := g.generateEmployee()
		row := make([]string, len(headers))
		row[0] = strconv.Itoa(i + 1)
		for j, h := range headers[1:] {
			row[j+1] = rec.Value(h)
		}
		rows = append(rows, row)
	}
	return rows
}

// GenerateRaw returns the dataset as a RawTable
func (g *EmployeeGenerator) GenerateRaw() *employee.RawTable {
	rows := g.GenerateRows()
	raw := &employee.RawTable{Headers: rows[0]}
	for _, row := range rows[1:] {
		m := make(map[string]string, len(row))
		for j, h := range raw.Headers {
			m[h] = row[j]
		}
		raw.Rows = append(raw.Rows, m)
	}
	return raw
}

// WriteCSV writes the generated dataset as CSV
func (g *EmployeeGenerator) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(g.GenerateRows()); err != nil {
		return fmt.Errorf("failed to write generated CSV: %w", err)
	}
	return nil
}

// WriteCSVFile writes the generated dataset to path
func (g *EmployeeGenerator) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return g.WriteCSV(f)
}

func (g *EmployeeGenerator) generateEmployee() employee.Record {
	dept := g.pick(departments)
	age := 18 + g.rng.Intn(43)
	jobLevel := 1 + int(math.Min(4, float64(g.rng.Intn(3)+(age-18)/12)))
	yearsAtCompany := g.rng.Intn(int(math.Min(40, float64(age-17))))
	yearsInRole := 0
	if yearsAtCompany > 0 {
		yearsInRole = g.rng.Intn(yearsAtCompany + 1)
	}
	income := 1000 + jobLevel*3500 + g.rng.Intn(2500)

	rec := employee.Record{
		Department:     dept,
		JobRole:        g.pick(rolesByDept[dept]),
		EducationField: g.pick(educationFields),
		Gender:         g.pick([]string{"Male", "Female"}),
		MaritalStatus:  g.pick(maritalStatuses),
		BusinessTravel: g.pick(travelOptions),
		OverTime:       employee.No,

		Education:                1 + g.rng.Intn(5),
		JobLevel:                 jobLevel,
		EnvironmentSatisfaction:  1 + g.rng.Intn(4),
		JobSatisfaction:          1 + g.rng.Intn(4),
		RelationshipSatisfaction: 1 + g.rng.Intn(4),
		WorkLifeBalance:          1 + g.rng.Intn(4),
		PerformanceRating:        3 + g.rng.Intn(2),
		JobInvolvement:           1 + g.rng.Intn(4),

		Age:                     float64(age),
		MonthlyIncome:           float64(income),
		YearsAtCompany:          float64(yearsAtCompany),
		YearsInCurrentRole:      float64(yearsInRole),
		NumCompaniesWorked:      float64(g.rng.Intn(10)),
		YearsSinceLastPromotion: float64(g.rng.Intn(yearsInRole + 1)),
	}
	if g.rng.Float64() < 0.28 {
		rec.OverTime = employee.Yes
	}

	p := g.config.BaseAttritionRate
	if rec.OverTime == employee.Yes {
		p *= 1.9
	}
	if rec.JobSatisfaction == 1 || rec.EnvironmentSatisfaction == 1 {
		p *= 1.5
	}
	if yearsAtCompany < 2 {
		p *= 1.6
	}
	if rec.MaritalStatus == "Single" {
		p *= 1.3
	}
	if jobLevel >= 4 {
		p *= 0.5
	}

	rec.Attrition = employee.No
	if g.rng.Float64() < math.Min(p, 0.95) {
		rec.Attrition = employee.Yes
		rec.AttritionBinary = 1
	}
	return rec
}

func (g *EmployeeGenerator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}
