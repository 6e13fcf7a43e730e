package views

import "outtech105.com/busroute_server/controllers"

// 行程中の停留所
type JourneyStopView struct {
	StopID   string   `json:"stop_id"`
	StopName string   `json:"stop_name"`
	StopLat  *float64 `json:"stop_lat"`
	StopLon  *float64 `json:"stop_lon"`
	Position int      `json:"position"`
	RouteID  string   `json:"route_id,omitempty"`
}

type EndpointView struct {
	StopView
	Sequence *int `json:"sequence,omitempty"`
}

// 経路探索結果
type JourneyView struct {
	Success       bool              `json:"success"`
	Mode          string            `json:"mode"`
	Route         *RouteView        `json:"route,omitempty"`
	Routes        []RouteView       `json:"routes,omitempty"`
	From          EndpointView      `json:"from"`
	To            EndpointView      `json:"to"`
	TotalStops    int               `json:"total_stops"`
	DistanceStops int               `json:"distance_stops"`
	TimePeriod    string            `json:"time_period"`
	Journey       []JourneyStopView `json:"journey"`
}

// 一つの路線の停留所一覧
type RouteStopsView struct {
	Route RouteView         `json:"route"`
	Stops []JourneyStopView `json:"stops"`
	Count int               `json:"count"`
}

func NewJourneyView(j *controllers.Journey) JourneyView {
	view := JourneyView{
		Success:       true,
		Mode:          string(j.Mode),
		From:          EndpointView{StopView: NewStopView(j.From.Stop), Sequence: j.From.Sequence},
		To:            EndpointView{StopView: NewStopView(j.To.Stop), Sequence: j.To.Sequence},
		TotalStops:    j.TotalStops,
		DistanceStops: j.DistanceStops,
		TimePeriod:    j.Period,
		Journey:       NewJourneyStopViews(j.Stops),
	}
	if j.Route != nil {
		route := NewRouteView(*j.Route)
		view.Route = &route
	}
	for _, r := range j.Routes {
		view.Routes = append(view.Routes, NewRouteView(r))
	}
	return view
}

func NewJourneyStopViews(stops []controllers.JourneyStop) []JourneyStopView {
	views := make([]JourneyStopView, len(stops))
	for i, s := range stops {
		views[i] = JourneyStopView{
			StopID:   s.Stop.ID,
			StopName: s.Stop.Name,
			StopLat:  s.Stop.Lat,
			StopLon:  s.Stop.Lon,
			Position: s.Position,
			RouteID:  s.RouteID,
		}
	}
	return views
}
