package dataset

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"attritionlens/domain/employee"
	"attritionlens/internal/errors"
	"attritionlens/ports"
)

// Load reads a source and parses it into a table. A missing source yields a
// NOT_FOUND error; anything else that prevents a complete table yields LOAD_ERROR.
// No partial table is ever returned.
func Load(ctx context.Context, src ports.DatasetSource) (*employee.Table, error) {
	sig, err := src.Signature(ctx)
	if err != nil {
		return nil, err
	}
	return loadWithSignature(ctx, src, sig)
}

func loadWithSignature(ctx context.Context, src ports.DatasetSource, sig string) (*employee.Table, error) {
	raw, err := src.Read(ctx)
	if err != nil {
		if errors.IsNotFound(err) || errors.IsLoadError(err) {
			return nil, err
		}
		return nil, errors.LoadError(fmt.Sprintf("an error occurred while loading %s", src.Key()), err)
	}

	records, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	return &employee.Table{
		Records:   records,
		Columns:   sourceColumns(raw.Headers),
		Source:    src.Key(),
		Signature: sig,
		LoadedAt:  time.Now(),
	}, nil
}

// Parse converts a raw table into typed records and derives AttritionBinary.
func Parse(raw *employee.RawTable) ([]employee.Record, error) {
	if raw == nil || len(raw.Rows) == 0 {
		return nil, errors.LoadError("dataset has no data rows", nil)
	}
	if err := checkColumns(raw.Headers); err != nil {
		return nil, err
	}

	modelled := make(map[string]bool)
	for _, f := range employee.Fields() {
		modelled[string(f)] = true
	}

	records := make([]employee.Record, len(raw.Rows))
	for i, row := range raw.Rows {
		rec, err := parseRow(row)
		if err != nil {
			// header is line 1, so data row i sits on line i+2
			return nil, errors.LoadError(fmt.Sprintf("row %d", i+2), err)
		}
		for _, h := range raw.Headers {
			if modelled[h] || h == employee.AttritionBinaryColumn {
				continue
			}
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[h] = row[h]
		}
		records[i] = rec
	}
	return records, nil
}

// sourceColumns keeps the input column order minus a stale derived binary
// column, which is always recomputed from Attrition.
func sourceColumns(headers []string) []string {
	cols := make([]string, 0, len(headers))
	for _, h := range headers {
		if h != employee.AttritionBinaryColumn {
			cols = append(cols, h)
		}
	}
	return cols
}

func checkColumns(headers []string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, f := range employee.Fields() {
		if !present[string(f)] {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		return errors.LoadError(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	}
	return nil
}

func parseRow(row map[string]string) (employee.Record, error) {
	var rec employee.Record

	texts := map[employee.Field]*string{
		employee.Attrition:      &rec.Attrition,
		employee.Department:     &rec.Department,
		employee.JobRole:        &rec.JobRole,
		employee.EducationField: &rec.EducationField,
		employee.Gender:         &rec.Gender,
		employee.MaritalStatus:  &rec.MaritalStatus,
		employee.BusinessTravel: &rec.BusinessTravel,
		employee.OverTime:       &rec.OverTime,
	}
	for _, f := range employee.Fields() {
		dst, ok := texts[f]
		if !ok {
			continue
		}
		v := row[string(f)]
		if v == "" {
			return rec, fmt.Errorf("column %s is empty", f)
		}
		*dst = v
	}
	for _, f := range []employee.Field{employee.Attrition, employee.OverTime} {
		if v := *texts[f]; v != employee.Yes && v != employee.No {
			return rec, fmt.Errorf("column %s must be %q or %q, got %q", f, employee.Yes, employee.No, v)
		}
	}

	ordinals := map[employee.Field]*int{
		employee.Education:                &rec.Education,
		employee.JobLevel:                 &rec.JobLevel,
		employee.EnvironmentSatisfaction:  &rec.EnvironmentSatisfaction,
		employee.JobSatisfaction:          &rec.JobSatisfaction,
		employee.RelationshipSatisfaction: &rec.RelationshipSatisfaction,
		employee.WorkLifeBalance:          &rec.WorkLifeBalance,
		employee.PerformanceRating:        &rec.PerformanceRating,
		employee.JobInvolvement:           &rec.JobInvolvement,
	}
	for _, f := range employee.Fields() {
		dst, ok := ordinals[f]
		if !ok {
			continue
		}
		v, err := parseNumber(f, row[string(f)])
		if err != nil {
			return rec, err
		}
		if v != math.Trunc(v) {
			return rec, fmt.Errorf("column %s must be a whole number, got %q", f, row[string(f)])
		}
		*dst = int(v)
	}

	numerics := map[employee.Field]*float64{
		employee.Age:                     &rec.Age,
		employee.MonthlyIncome:           &rec.MonthlyIncome,
		employee.YearsAtCompany:          &rec.YearsAtCompany,
		employee.YearsInCurrentRole:      &rec.YearsInCurrentRole,
		employee.NumCompaniesWorked:      &rec.NumCompaniesWorked,
		employee.YearsSinceLastPromotion: &rec.YearsSinceLastPromotion,
	}
	for _, f := range employee.Fields() {
		dst, ok := numerics[f]
		if !ok {
			continue
		}
		v, err := parseNumber(f, row[string(f)])
		if err != nil {
			return rec, err
		}
		*dst = v
	}

	if rec.Attrition == employee.Yes {
		rec.AttritionBinary = 1
	}
	return rec, nil
}

func parseNumber(f employee.Field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("column %s is not numeric: %q", f, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("column %s is not a finite number: %q", f, s)
	}
	return v, nil
}
