package testkit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"attritionlens/domain/employee"
)

// Employee builds a record with the given department and attrition status and
// neutral defaults elsewhere.
func Employee(department, attrition string) employee.Record {
	rec := employee.Record{
		Attrition:                attrition,
		Department:               department,
		JobRole:                  "Sales Executive",
		EducationField:           "Life Sciences",
		Gender:                   "Female",
		MaritalStatus:            "Married",
		BusinessTravel:           "Travel_Rarely",
		OverTime:                 employee.No,
		Education:                3,
		JobLevel:                 2,
		EnvironmentSatisfaction:  3,
		JobSatisfaction:          3,
		RelationshipSatisfaction: 3,
		WorkLifeBalance:          3,
		PerformanceRating:        3,
		JobInvolvement:           3,
		Age:                      35,
		MonthlyIncome:            5000,
		YearsAtCompany:           5,
		YearsInCurrentRole:       2,
		NumCompaniesWorked:       1,
		YearsSinceLastPromotion:  1,
	}
	if attrition == employee.Yes {
		rec.AttritionBinary = 1
	}
	return rec
}

// NewTable wraps records in a table, deriving AttritionBinary the way the loader does.
func NewTable(records ...employee.Record) *employee.Table {
	out := make([]employee.Record, len(records))
	for i, r := range records {
		r.AttritionBinary = 0
		if r.Attrition == employee.Yes {
			r.AttritionBinary = 1
		}
		out[i] = r
	}
	cols := make([]string, 0)
	for _, f := range employee.Fields() {
		cols = append(cols, string(f))
	}
	return &employee.Table{Records: out, Columns: cols, Source: "testkit", Signature: "static"}
}

// GeneratedTable returns a deterministic synthetic table of n rows.
func GeneratedTable(n int, seed int64) *employee.Table {
	gen := NewEmployeeGenerator(EmployeeGeneratorConfig{Rows: n, BaseAttritionRate: 0.16, Seed: seed})
	records := make([]employee.Record, n)
	for i := range records {
		records[i] = gen.generateEmployee()
	}
	return NewTable(records...)
}

// WriteCSV writes rows to a temp file and returns its path.
func WriteCSV(t testing.TB, name string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()
	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// GeneratedCSV writes a synthetic dataset of n rows and returns its path.
func GeneratedCSV(t testing.TB, n int, seed int64) string {
	t.Helper()
	gen := NewEmployeeGenerator(EmployeeGeneratorConfig{Rows: n, BaseAttritionRate: 0.16, Seed: seed})
	return WriteCSV(t, "EA.csv", gen.GenerateRows())
}
