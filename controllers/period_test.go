package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"outtech105.com/busroute_server/models"
)

func periodRows() []models.RouteStop {
	rows := routeStops("AM_01", "A", "B")
	rows = append(rows, routeStops("MD_01", "B", "C")...)
	rows = append(rows, routeStops("PM_01", "C", "D")...)
	return append(rows, routeStops("NIGHT", "D", "E")...)
}

func routeIDs(rows []models.RouteStop) []string {
	var ids []string
	seen := map[string]bool{}
	for _, r := range rows {
		if !seen[r.RouteID] {
			seen[r.RouteID] = true
			ids = append(ids, r.RouteID)
		}
	}
	return ids
}

func TestFilterByPeriod(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  []string
	}{
		{name: "morning", token: "AM", want: []string{"AM_01"}},
		{name: "midday", token: "MD", want: []string{"MD_01"}},
		{name: "lower case token", token: " pm ", want: []string{"PM_01"}},
		{name: "empty token keeps everything", token: "", want: []string{"AM_01", "MD_01", "PM_01", "NIGHT"}},
		{name: "unknown token keeps everything", token: "EVENING", want: []string{"AM_01", "MD_01", "PM_01", "NIGHT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByPeriod(periodRows(), nil, tt.token, DefaultPeriods)
			assert.Equal(t, tt.want, routeIDs(got))
		})
	}
}

func TestFilterByPeriodPrefersExplicitAttribute(t *testing.T) {
	routes := map[string]models.Route{
		"AM_01": {ID: "AM_01", Period: "PM"},
		"NIGHT": {ID: "NIGHT", Period: "am"},
	}

	assert.Equal(t, []string{"NIGHT"}, routeIDs(FilterByPeriod(periodRows(), routes, "AM", DefaultPeriods)))
	assert.Equal(t, []string{"AM_01", "PM_01"}, routeIDs(FilterByPeriod(periodRows(), routes, "PM", DefaultPeriods)))
}

func TestFilterByPeriodCustomTable(t *testing.T) {
	table := PeriodTable{"NIGHT": "NIGHT"}

	assert.Equal(t, []string{"NIGHT"}, routeIDs(FilterByPeriod(periodRows(), nil, "night", table)))
	// 既定の AM はこの表には無いので絞り込まない
	assert.Len(t, routeIDs(FilterByPeriod(periodRows(), nil, "AM", table)), 4)
}

func TestRoutesInPeriod(t *testing.T) {
	routes := []models.Route{{ID: "AM_01"}, {ID: "MD_01"}, {ID: "X", Period: "AM"}}

	got := RoutesInPeriod(routes, "AM", DefaultPeriods)
	assert.Equal(t, []models.Route{{ID: "AM_01"}, {ID: "X", Period: "AM"}}, got)
	assert.Equal(t, routes, RoutesInPeriod(routes, "", DefaultPeriods))
}
