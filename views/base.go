package views

import "outtech105.com/busroute_server/models"

// エラー時レスポンス
type ErrorView struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type StatusView struct {
	Status string `json:"status"`
}

// models.Stopに対応
type StopView struct {
	StopID   string   `json:"stop_id"`
	StopName string   `json:"stop_name"`
	StopLat  *float64 `json:"stop_lat"`
	StopLon  *float64 `json:"stop_lon"`
}

type StopsView struct {
	Stops []StopView `json:"stops"`
	Count int        `json:"count"`
}

// models.Routeに対応
type RouteView struct {
	RouteID        string `json:"route_id"`
	RouteShortName string `json:"route_short_name"`
	RouteLongName  string `json:"route_long_name"`
	Period         string `json:"period,omitempty"`
}

type RoutesView struct {
	Routes []RouteView `json:"routes"`
	Count  int         `json:"count"`
}

func NewStopView(s models.Stop) StopView {
	return StopView{StopID: s.ID, StopName: s.Name, StopLat: s.Lat, StopLon: s.Lon}
}

func NewStopsView(stops []models.Stop) StopsView {
	views := make([]StopView, len(stops))
	for i, s := range stops {
		views[i] = NewStopView(s)
	}
	return StopsView{Stops: views, Count: len(views)}
}

func NewRouteView(r models.Route) RouteView {
	return RouteView{RouteID: r.ID, RouteShortName: r.ShortName, RouteLongName: r.LongName, Period: r.Period}
}

func NewRoutesView(routes []models.Route) RoutesView {
	views := make([]RouteView, len(routes))
	for i, r := range routes {
		views[i] = NewRouteView(r)
	}
	return RoutesView{Routes: views, Count: len(views)}
}
