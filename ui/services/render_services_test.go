package services

import (
	"testing"

	"attritionlens/domain/employee"
	"attritionlens/internal/dashboard"
	"attritionlens/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPanels_OverviewBars(t *testing.T) {
	table := testkit.NewTable(
		testkit.Employee("Sales", employee.Yes),
		testkit.Employee("Sales", employee.No),
		testkit.Employee("RnD", employee.Yes),
	)
	payload, err := dashboard.Build(employee.FullView(table), dashboard.TabOverview)
	require.NoError(t, err)

	panels := Panels(payload)
	require.Len(t, panels, len(payload.Charts))

	byID := map[int]Panel{}
	for _, p := range panels {
		byID[p.ID] = p
	}

	dept, ok := byID[2]
	require.True(t, ok, "department chart present")
	require.Len(t, dept.Rows, 2)
	assert.Equal(t, "RnD", dept.Rows[0].Label)
	assert.Equal(t, "100.00%", dept.Rows[0].Value)
	assert.InDelta(t, 100, dept.Rows[0].Width, 1e-9)
	assert.Equal(t, "50.00%", dept.Rows[1].Value)
	assert.InDelta(t, 50, dept.Rows[1].Width, 1e-9)
}

func TestPanels_EmptyPayload(t *testing.T) {
	payload, err := dashboard.Build(employee.NewView(testkit.NewTable(), nil), dashboard.TabDemographics)
	require.NoError(t, err)
	assert.Empty(t, Panels(payload))
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 0.0, width(5, 0))
	assert.InDelta(t, 25, width(1, 4), 1e-9)
}
