package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
)

var (
	ErrRouteNotFound = errors.New("route not found")
)

// 路線 (Periodが空の場合は路線IDの接頭辞で時間帯を判定する)
type Route struct {
	ID        string `db:"route_id"`
	ShortName string `db:"route_short_name"`
	LongName  string `db:"route_long_name"`
	Period    string `db:"period"`
}

// 路線上の停留所と停車順序
type RouteStop struct {
	RouteID  string `db:"route_id"`
	StopID   string `db:"stop_id"`
	Sequence int    `db:"stop_sequence"`
}

func routeColumns(periodColumn string) string {
	period := "''"
	if periodColumn != "" {
		period = fmt.Sprintf("COALESCE(%s, '')", periodColumn)
	}
	return fmt.Sprintf(
		"route_id, COALESCE(route_short_name, '') AS route_short_name, COALESCE(route_long_name, '') AS route_long_name, %s AS period",
		period,
	)
}

// 路線IDから路線情報を取得
func GetRouteByID(ctx context.Context, db *sqlx.DB, periodColumn, id string) (Route, error) {
	var route Route
	query := fmt.Sprintf(`SELECT %s FROM routes WHERE route_id = ?`, routeColumns(periodColumn))
	err := db.GetContext(ctx, &route, db.Rebind(query), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Route{}, ErrRouteNotFound
		}
		return Route{}, fmt.Errorf("executeQuery: %w", err)
	}
	return route, nil
}

// 全路線を取得
func GetRoutes(ctx context.Context, db *sqlx.DB, periodColumn string) ([]Route, error) {
	routes := make([]Route, 0, 10)
	query := fmt.Sprintf(`SELECT %s FROM routes ORDER BY route_id ASC`, routeColumns(periodColumn))
	if err := db.SelectContext(ctx, &routes, query); err != nil {
		return nil, fmt.Errorf("executeQuery: %w", err)
	}
	return routes, nil
}

// 全路線の停車順序を (路線ID, 停車順) で整列して取得
func GetRouteStops(ctx context.Context, db *sqlx.DB) ([]RouteStop, error) {
	routeStops := make([]RouteStop, 0, 100)
	err := db.SelectContext(ctx, &routeStops, `
SELECT route_id, stop_id, stop_sequence
FROM route_stops
ORDER BY route_id, stop_sequence ASC
`)
	if err != nil {
		return nil, fmt.Errorf("executeQuery: %w", err)
	}
	return routeStops, nil
}

// 路線ID・停車順で安定ソートしたコピーを返す
func SortRouteStops(rows []RouteStop) []RouteStop {
	sorted := make([]RouteStop, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RouteID != sorted[j].RouteID {
			return sorted[i].RouteID < sorted[j].RouteID
		}
		return sorted[i].Sequence < sorted[j].Sequence
	})
	return sorted
}
