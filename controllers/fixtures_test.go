package controllers

import (
	"context"
	"errors"

	"outtech105.com/busroute_server/models"
)

func coord(v float64) *float64 {
	return &v
}

// 路線を停留所IDの並びから作る (停車順は10刻み)
func routeStops(routeID string, stopIDs ...string) []models.RouteStop {
	rows := make([]models.RouteStop, len(stopIDs))
	for i, id := range stopIDs {
		rows[i] = models.RouteStop{RouteID: routeID, StopID: id, Sequence: (i + 1) * 10}
	}
	return rows
}

func stopsNamed(ids ...string) []models.Stop {
	stops := make([]models.Stop, len(ids))
	for i, id := range ids {
		stops[i] = models.Stop{ID: id, Name: "Stop " + id, Lat: coord(21.0 + float64(i)/100), Lon: coord(105.8)}
	}
	return stops
}

func stopMap(ids ...string) map[string]models.Stop {
	m := make(map[string]models.Stop, len(ids))
	for _, s := range stopsNamed(ids...) {
		m[s.ID] = s
	}
	return m
}

// R1 = [S1,S2,S3,S4], R2 = [S3,S5,S6]
func scenarioRows() []models.RouteStop {
	rows := routeStops("R1", "S1", "S2", "S3", "S4")
	return append(rows, routeStops("R2", "S3", "S5", "S6")...)
}

func scenarioSnapshot() *models.Snapshot {
	return models.NewSnapshot(
		stopsNamed("S1", "S2", "S3", "S4", "S5", "S6"),
		[]models.Route{
			{ID: "R1", ShortName: "01", LongName: "Line One"},
			{ID: "R2", ShortName: "02", LongName: "Line Two"},
		},
		scenarioRows(),
	)
}

// 呼び出し回数を記録するプロバイダ
type spyProvider struct {
	models.TransitDataProvider
	routeStopCalls int
	routeCalls     int
	err            error
}

func (p *spyProvider) ListRouteStops(ctx context.Context) ([]models.RouteStop, error) {
	p.routeStopCalls++
	if p.err != nil {
		return nil, p.err
	}
	return p.TransitDataProvider.ListRouteStops(ctx)
}

func (p *spyProvider) ListRoutes(ctx context.Context) ([]models.Route, error) {
	p.routeCalls++
	return p.TransitDataProvider.ListRoutes(ctx)
}

var errBackend = errors.New("backend unavailable")
