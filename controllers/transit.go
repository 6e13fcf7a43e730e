package controllers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"outtech105.com/busroute_server/forms"
	"outtech105.com/busroute_server/models"
)

type Mode string

const (
	ModeDirect   Mode = "direct"
	ModeMultiHop Mode = "multi-hop"
	ModeAuto     Mode = "auto"
)

const AllPeriods = "ALL"

// 空文字は direct、旧APIの simple / dijkstra も受け付ける
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "direct", "simple":
		return ModeDirect, nil
	case "multi-hop", "multihop", "dijkstra":
		return ModeMultiHop, nil
	case "auto":
		return ModeAuto, nil
	}
	return "", newError(KindInvalidRequest, nil, "unknown mode %q (expected direct, multi-hop or auto)", s)
}

// 出発・到着停留所 (直通の場合は停車順付き)
type Endpoint struct {
	Stop     models.Stop
	Sequence *int
}

type Journey struct {
	Mode   Mode
	Period string
	// 直通の場合の路線
	Route *models.Route
	// 乗継の場合に利用する路線 (乗車順)
	Routes []models.Route
	From   Endpoint
	To     Endpoint
	Itinerary
}

// SearchJourney validates the request, narrows the route stops to the
// requested period and resolves the journey in the requested mode. direct
// never falls back to multi-hop; auto does, only when no direct route exists.
func SearchJourney(ctx context.Context, req forms.JourneySearchForm, provider models.TransitDataProvider, periods PeriodTable) (*Journey, error) {
	origin := strings.TrimSpace(req.FromStopID)
	destination := strings.TrimSpace(req.ToStopID)

	if origin == "" || destination == "" {
		return nil, newError(KindInvalidRequest, nil, "from_stop_id and to_stop_id are required")
	}
	if origin == destination {
		return nil, newError(KindInvalidRequest, nil, "from_stop_id and to_stop_id must be different")
	}
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return nil, err
	}

	// 出発・到着停留所が存在するか (グラフ構築前に確認)
	endpoints, err := provider.FindStops(ctx, origin, destination)
	if err != nil {
		return nil, fmt.Errorf("findStops: %w", err)
	}
	var missing []string
	for _, id := range []string{origin, destination} {
		if _, ok := endpoints[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, newError(KindUnknownStop, nil, "stop not found: %s", strings.Join(missing, ", "))
	}

	rows, period, err := routeStopsInPeriod(ctx, provider, req.TimePeriod, periods)
	if err != nil {
		return nil, err
	}

	journey := &Journey{
		Mode:   mode,
		Period: period,
		From:   Endpoint{Stop: endpoints[origin]},
		To:     Endpoint{Stop: endpoints[destination]},
	}

	switch mode {
	case ModeDirect:
		err = searchDirect(ctx, provider, rows, journey)
	case ModeMultiHop:
		err = searchMultiHop(ctx, provider, rows, journey)
	case ModeAuto:
		journey.Mode = ModeDirect
		err = searchDirect(ctx, provider, rows, journey)
		if KindOf(err) == KindNoPathFound {
			journey.Mode = ModeMultiHop
			err = searchMultiHop(ctx, provider, rows, journey)
		}
	}
	if err != nil {
		return nil, err
	}
	return journey, nil
}

// 時間帯で絞り込んだRouteStopと、適用した時間帯 (絞り込みなしは ALL) を返す
func routeStopsInPeriod(ctx context.Context, provider models.TransitDataProvider, token string, periods PeriodTable) ([]models.RouteStop, string, error) {
	rows, err := provider.ListRouteStops(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("listRouteStops: %w", err)
	}

	token, _, ok := periods.Lookup(token)
	if !ok {
		return rows, AllPeriods, nil
	}

	routes, err := provider.ListRoutes(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("listRoutes: %w", err)
	}
	routesByID := make(map[string]models.Route, len(routes))
	for _, route := range routes {
		routesByID[route.ID] = route
	}
	return FilterByPeriod(rows, routesByID, token, periods), token, nil
}

func searchDirect(ctx context.Context, provider models.TransitDataProvider, rows []models.RouteStop, journey *Journey) error {
	origin, destination := journey.From.Stop.ID, journey.To.Stop.ID

	seg, err := DirectSegment(rows, origin, destination)
	if err != nil {
		if errors.Is(err, ErrPathNotFound) {
			return newError(KindNoPathFound, err,
				"no route visits %s before %s", origin, destination)
		}
		return err
	}

	onSegment := SegmentRouteStops(rows, seg)
	ids := make([]string, len(onSegment))
	for i, row := range onSegment {
		ids[i] = row.StopID
	}
	stops, err := provider.FindStops(ctx, ids...)
	if err != nil {
		return fmt.Errorf("findStops: %w", err)
	}

	itinerary, err := AssembleSegment(onSegment, stops, seg)
	if err != nil {
		return err
	}

	route, err := lookupRoute(ctx, provider, seg.RouteID)
	if err != nil {
		return err
	}

	fromSeq, toSeq := seg.FromSeq, seg.ToSeq
	journey.Route = &route
	journey.Routes = nil
	journey.From.Sequence = &fromSeq
	journey.To.Sequence = &toSeq
	journey.Itinerary = *itinerary
	return nil
}

func searchMultiHop(ctx context.Context, provider models.TransitDataProvider, rows []models.RouteStop, journey *Journey) error {
	origin, destination := journey.From.Stop.ID, journey.To.Stop.ID

	graph := BuildGraph(rows)
	path, err := ShortestPath(graph, origin, destination)
	if err != nil {
		if errors.Is(err, ErrPathNotFound) {
			return newError(KindNoPathFound, err,
				"no connection between %s and %s", origin, destination)
		}
		return err
	}

	stops, err := provider.FindStops(ctx, path...)
	if err != nil {
		return fmt.Errorf("findStops: %w", err)
	}

	hopRoutes := PathRoutes(graph, path)
	itinerary, err := AssemblePath(path, hopRoutes, stops)
	if err != nil {
		return err
	}

	routes := make([]models.Route, 0, 2)
	seen := make(map[string]struct{})
	for _, routeID := range hopRoutes {
		if _, ok := seen[routeID]; ok {
			continue
		}
		seen[routeID] = struct{}{}
		route, err := lookupRoute(ctx, provider, routeID)
		if err != nil {
			return err
		}
		routes = append(routes, route)
	}

	journey.Route = nil
	journey.Routes = routes
	journey.From.Sequence = nil
	journey.To.Sequence = nil
	journey.Itinerary = *itinerary
	return nil
}

// route_stopsにある路線IDがroutesに無いのはデータ不整合
func lookupRoute(ctx context.Context, provider models.TransitDataProvider, routeID string) (models.Route, error) {
	route, err := provider.FindRoute(ctx, routeID)
	if err != nil {
		if errors.Is(err, models.ErrRouteNotFound) {
			return models.Route{}, newError(KindDataIntegrity, err,
				"route %s is referenced by route_stops but has no route record", routeID)
		}
		return models.Route{}, fmt.Errorf("findRoute: %w", err)
	}
	return route, nil
}
