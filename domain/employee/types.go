package employee

import (
	"fmt"
	"strconv"
	"time"
)

// Kind classifies how a column participates in filtering and grouping
type Kind int

const (
	KindCategorical Kind = iota
	KindOrdinal
	KindNumeric
)

func (k Kind) String() string {
	switch k {
	case KindCategorical:
		return "categorical"
	case KindOrdinal:
		return "ordinal"
	case KindNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Field is a column name exactly as it appears in the source header (case-sensitive)
type Field string

// Categorical fields
const (
	Attrition      Field = "Attrition"
	Department     Field = "Department"
	JobRole        Field = "JobRole"
	EducationField Field = "EducationField"
	Gender         Field = "Gender"
	MaritalStatus  Field = "MaritalStatus"
	BusinessTravel Field = "BusinessTravel"
	OverTime       Field = "OverTime"
)

// Ordinal fields
const (
	Education                Field = "Education"
	JobLevel                 Field = "JobLevel"
	EnvironmentSatisfaction  Field = "EnvironmentSatisfaction"
	JobSatisfaction          Field = "JobSatisfaction"
	RelationshipSatisfaction Field = "RelationshipSatisfaction"
	WorkLifeBalance          Field = "WorkLifeBalance"
	PerformanceRating        Field = "PerformanceRating"
	JobInvolvement           Field = "JobInvolvement"
)

// Numeric fields
const (
	Age                     Field = "Age"
	MonthlyIncome           Field = "MonthlyIncome"
	YearsAtCompany          Field = "YearsAtCompany"
	YearsInCurrentRole      Field = "YearsInCurrentRole"
	NumCompaniesWorked      Field = "NumCompaniesWorked"
	YearsSinceLastPromotion Field = "YearsSinceLastPromotion"
)

// AttritionBinaryColumn is the derived column appended at load time.
const AttritionBinaryColumn = "Attrition_Binary"

// Literal values accepted for the Yes/No columns.
const (
	Yes = "Yes"
	No  = "No"
)

var fieldOrder = []Field{
	Attrition, Department, JobRole, EducationField, Gender, MaritalStatus, BusinessTravel, OverTime,
	Education, JobLevel, EnvironmentSatisfaction, JobSatisfaction, RelationshipSatisfaction,
	WorkLifeBalance, PerformanceRating, JobInvolvement,
	Age, MonthlyIncome, YearsAtCompany, YearsInCurrentRole, NumCompaniesWorked, YearsSinceLastPromotion,
}

var fieldKinds = func() map[Field]Kind {
	kinds := make(map[Field]Kind, len(fieldOrder))
	for i, f := range fieldOrder {
		switch {
		case i < 8:
			kinds[f] = KindCategorical
		case i < 16:
			kinds[f] = KindOrdinal
		default:
			kinds[f] = KindNumeric
		}
	}
	return kinds
}()

// Fields returns every modelled column in canonical order.
func Fields() []Field {
	out := make([]Field, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Kind returns the field's kind; unknown fields report KindCategorical.
func (f Field) Kind() Kind {
	return fieldKinds[f]
}

// Valid reports whether f is a modelled column.
func (f Field) Valid() bool {
	_, ok := fieldKinds[f]
	return ok
}

func (f Field) String() string { return string(f) }

// ParseField resolves a column name; matching is case-sensitive like the source header.
func ParseField(s string) (Field, error) {
	f := Field(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown field %q", s)
	}
	return f, nil
}

// Record is one employee row
type Record struct {
	Attrition      string `json:"Attrition"`
	Department     string `json:"Department"`
	JobRole        string `json:"JobRole"`
	EducationField string `json:"EducationField"`
	Gender         string `json:"Gender"`
	MaritalStatus  string `json:"MaritalStatus"`
	BusinessTravel string `json:"BusinessTravel"`
	OverTime       string `json:"OverTime"`

	Education                int `json:"Education"`
	JobLevel                 int `json:"JobLevel"`
	EnvironmentSatisfaction  int `json:"EnvironmentSatisfaction"`
	JobSatisfaction          int `json:"JobSatisfaction"`
	RelationshipSatisfaction int `json:"RelationshipSatisfaction"`
	WorkLifeBalance          int `json:"WorkLifeBalance"`
	PerformanceRating        int `json:"PerformanceRating"`
	JobInvolvement           int `json:"JobInvolvement"`

	Age                     float64 `json:"Age"`
	MonthlyIncome           float64 `json:"MonthlyIncome"`
	YearsAtCompany          float64 `json:"YearsAtCompany"`
	YearsInCurrentRole      float64 `json:"YearsInCurrentRole"`
	NumCompaniesWorked      float64 `json:"NumCompaniesWorked"`
	YearsSinceLastPromotion float64 `json:"YearsSinceLastPromotion"`

	AttritionBinary int `json:"Attrition_Binary"`

	// Extra holds source columns that are not modelled, by header name.
	Extra map[string]string `json:"-"`
}

// Text returns the value of a categorical field.
func (r *Record) Text(f Field) string {
	switch f {
	case Attrition:
		return r.Attrition
	case Department:
		return r.Department
	case JobRole:
		return r.JobRole
	case EducationField:
		return r.EducationField
	case Gender:
		return r.Gender
	case MaritalStatus:
		return r.MaritalStatus
	case BusinessTravel:
		return r.BusinessTravel
	case OverTime:
		return r.OverTime
	}
	return ""
}

// Number returns the value of an ordinal or numeric field.
func (r *Record) Number(f Field) (float64, bool) {
	switch f {
	case Education:
		return float64(r.Education), true
	case JobLevel:
		return float64(r.JobLevel), true
	case EnvironmentSatisfaction:
		return float64(r.EnvironmentSatisfaction), true
	case JobSatisfaction:
		return float64(r.JobSatisfaction), true
	case RelationshipSatisfaction:
		return float64(r.RelationshipSatisfaction), true
	case WorkLifeBalance:
		return float64(r.WorkLifeBalance), true
	case PerformanceRating:
		return float64(r.PerformanceRating), true
	case JobInvolvement:
		return float64(r.JobInvolvement), true
	case Age:
		return r.Age, true
	case MonthlyIncome:
		return r.MonthlyIncome, true
	case YearsAtCompany:
		return r.YearsAtCompany, true
	case YearsInCurrentRole:
		return r.YearsInCurrentRole, true
	case NumCompaniesWorked:
		return r.NumCompaniesWorked, true
	case YearsSinceLastPromotion:
		return r.YearsSinceLastPromotion, true
	}
	return 0, false
}

// Key returns the grouping key for any modelled field.
func (r *Record) Key(f Field) string {
	if f.Kind() == KindCategorical {
		return r.Text(f)
	}
	v, _ := r.Number(f)
	return FormatNumber(v)
}

// Value returns the display value of any source column, modelled or not.
func (r *Record) Value(column string) string {
	if column == AttritionBinaryColumn {
		return strconv.Itoa(r.AttritionBinary)
	}
	if f := Field(column); f.Valid() {
		return r.Key(f)
	}
	return r.Extra[column]
}

// FormatNumber renders integral values without a decimal point.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RawTable is an untyped header + rows grid as read from a source
type RawTable struct {
	Headers []string
	Rows    []map[string]string
}

// Table is the loaded, immutable employee dataset shared by every session
type Table struct {
	Records   []Record
	Columns   []string // source header order, without the derived column
	Source    string
	Signature string
	LoadedAt  time.Time
}

// Len returns the number of records
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// ExportColumns returns the source columns followed by the derived column.
func (t *Table) ExportColumns() []string {
	cols := make([]string, 0, len(t.Columns)+1)
	cols = append(cols, t.Columns...)
	return append(cols, AttritionBinaryColumn)
}
