package models

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const testSchema = `
CREATE TABLE stops (
	stop_id   TEXT PRIMARY KEY,
	stop_name TEXT NOT NULL,
	stop_lat  REAL,
	stop_lon  REAL
);
CREATE TABLE routes (
	route_id         TEXT PRIMARY KEY,
	route_short_name TEXT,
	route_long_name  TEXT,
	service_period   TEXT
);
CREATE TABLE route_stops (
	route_id      TEXT NOT NULL,
	stop_id       TEXT NOT NULL,
	stop_sequence INTEGER NOT NULL
);
INSERT INTO stops VALUES
	('S1', 'Long Bien', 21.04, 105.85),
	('S2', 'Ho Guom', 21.03, 105.85),
	('S3', 'Cau Giay', NULL, NULL);
INSERT INTO routes VALUES
	('AM_01', '01', 'Long Bien - Cau Giay', NULL),
	('R2', '02', NULL, 'PM');
INSERT INTO route_stops VALUES
	('R2', 'S3', 20),
	('AM_01', 'S2', 2),
	('R2', 'S1', 10),
	('AM_01', 'S1', 1),
	('AM_01', 'S3', 3);
`

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "transit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func TestSQLProviderStops(t *testing.T) {
	ctx := context.Background()
	provider := NewSQLProvider(openTestDB(t), "")

	stops, err := provider.FindStops(ctx, "S1", "S3", "S1", "NOPE")
	require.NoError(t, err)
	assert.Len(t, stops, 2)
	require.NotNil(t, stops["S1"].Lat)
	assert.Equal(t, 21.04, *stops["S1"].Lat)
	assert.Nil(t, stops["S3"].Lat)
	assert.Nil(t, stops["S3"].Lon)

	empty, err := provider.FindStops(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	found, err := provider.SearchStops(ctx, "GIAY")
	require.NoError(t, err)
	assert.Equal(t, []string{"S3"}, stopIDs(found))

	all, err := provider.SearchStops(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"S3", "S2", "S1"}, stopIDs(all))
}

func TestSQLProviderRoutes(t *testing.T) {
	ctx := context.Background()
	provider := NewSQLProvider(openTestDB(t), "")

	route, err := provider.FindRoute(ctx, "AM_01")
	require.NoError(t, err)
	assert.Equal(t, Route{ID: "AM_01", ShortName: "01", LongName: "Long Bien - Cau Giay"}, route)

	route, err = provider.FindRoute(ctx, "R2")
	require.NoError(t, err)
	assert.Equal(t, "", route.LongName)
	assert.Equal(t, "", route.Period)

	_, err = provider.FindRoute(ctx, "R9")
	assert.ErrorIs(t, err, ErrRouteNotFound)

	routes, err := provider.ListRoutes(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "AM_01", routes[0].ID)
}

func TestSQLProviderPeriodColumn(t *testing.T) {
	ctx := context.Background()
	provider := NewSQLProvider(openTestDB(t), "service_period")

	routes, err := provider.ListRoutes(ctx)
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "", routes[0].Period)
	assert.Equal(t, "PM", routes[1].Period)

	route, err := provider.FindRoute(ctx, "R2")
	require.NoError(t, err)
	assert.Equal(t, "PM", route.Period)
}

func TestSQLProviderRouteStopsAreOrdered(t *testing.T) {
	provider := NewSQLProvider(openTestDB(t), "")

	rows, err := provider.ListRouteStops(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []RouteStop{
		{RouteID: "AM_01", StopID: "S1", Sequence: 1},
		{RouteID: "AM_01", StopID: "S2", Sequence: 2},
		{RouteID: "AM_01", StopID: "S3", Sequence: 3},
		{RouteID: "R2", StopID: "S1", Sequence: 10},
		{RouteID: "R2", StopID: "S3", Sequence: 20},
	}, rows)
}

func TestSnapshotFromSQLProvider(t *testing.T) {
	ctx := context.Background()
	cache := NewCachedProvider(NewSQLProvider(openTestDB(t), "service_period"), 0)

	route, err := cache.FindRoute(ctx, "R2")
	require.NoError(t, err)
	assert.Equal(t, "PM", route.Period)

	stops, err := cache.FindStops(ctx, "S2")
	require.NoError(t, err)
	assert.Equal(t, "Ho Guom", stops["S2"].Name)
}
