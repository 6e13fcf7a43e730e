package models

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TransitDataProvider is the read-only view of stops, routes and route stops
// the journey search runs against. Implementations must be safe for
// concurrent use.
type TransitDataProvider interface {
	// FindStops returns the stops that exist among ids, keyed by ID.
	// Unknown ids are absent from the map, not an error.
	FindStops(ctx context.Context, ids ...string) (map[string]Stop, error)
	SearchStops(ctx context.Context, keyword string) ([]Stop, error)
	// FindRoute returns ErrRouteNotFound when id is unknown.
	FindRoute(ctx context.Context, id string) (Route, error)
	ListRoutes(ctx context.Context) ([]Route, error)
	// ListRouteStops returns every row ordered by route id, then sequence.
	ListRouteStops(ctx context.Context) ([]RouteStop, error)
}

// SQLProvider reads the stops, routes and route_stops tables.
type SQLProvider struct {
	db           *sqlx.DB
	periodColumn string
}

// periodColumnが空の場合、routesテーブルに時間帯カラムは無いものとして扱う
func NewSQLProvider(db *sqlx.DB, periodColumn string) *SQLProvider {
	return &SQLProvider{db: db, periodColumn: periodColumn}
}

func (p *SQLProvider) FindStops(ctx context.Context, ids ...string) (map[string]Stop, error) {
	return GetStopsByIDs(ctx, p.db, ids)
}

func (p *SQLProvider) SearchStops(ctx context.Context, keyword string) ([]Stop, error) {
	return GetStopsByKeyword(ctx, p.db, keyword)
}

func (p *SQLProvider) FindRoute(ctx context.Context, id string) (Route, error) {
	return GetRouteByID(ctx, p.db, p.periodColumn, id)
}

func (p *SQLProvider) ListRoutes(ctx context.Context) ([]Route, error) {
	return GetRoutes(ctx, p.db, p.periodColumn)
}

func (p *SQLProvider) ListRouteStops(ctx context.Context) ([]RouteStop, error) {
	return GetRouteStops(ctx, p.db)
}
