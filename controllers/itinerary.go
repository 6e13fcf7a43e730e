package controllers

import (
	"sort"
	"strings"

	"outtech105.com/busroute_server/models"
)

type JourneyStop struct {
	Stop     models.Stop
	Position int
	RouteID  string
}

type Itinerary struct {
	Stops         []JourneyStop
	TotalStops    int
	DistanceStops int
}

func newItinerary(stops []JourneyStop) *Itinerary {
	return &Itinerary{
		Stops:         stops,
		TotalStops:    len(stops),
		DistanceStops: len(stops) - 1,
	}
}

// 区間内 [FromSeq, ToSeq] の停留所を停車順に並べる
// Positionは実際の停車順
func AssembleSegment(rows []models.RouteStop, stops map[string]models.Stop, seg Segment) (*Itinerary, error) {
	onSegment := SegmentRouteStops(rows, seg)
	if len(onSegment) == 0 {
		return nil, newError(KindDataIntegrity, nil,
			"no stops found on route %s between sequence %d and %d", seg.RouteID, seg.FromSeq, seg.ToSeq)
	}

	journey := make([]JourneyStop, 0, len(onSegment))
	var missing []string
	for _, row := range onSegment {
		stop, ok := stops[row.StopID]
		if !ok {
			missing = append(missing, row.StopID)
			continue
		}
		journey = append(journey, JourneyStop{Stop: stop, Position: row.Sequence, RouteID: seg.RouteID})
	}
	if len(missing) > 0 {
		return nil, missingStopsError(missing)
	}
	return newItinerary(journey), nil
}

// 区間に含まれるRouteStopを停車順に返す
func SegmentRouteStops(rows []models.RouteStop, seg Segment) []models.RouteStop {
	onSegment := make([]models.RouteStop, 0)
	for _, row := range rows {
		if row.RouteID == seg.RouteID && row.Sequence >= seg.FromSeq && row.Sequence <= seg.ToSeq {
			onSegment = append(onSegment, row)
		}
	}
	sort.SliceStable(onSegment, func(i, j int) bool {
		return onSegment[i].Sequence < onSegment[j].Sequence
	})
	return onSegment
}

// 停留所IDの経路を詳細付きの行程にする
// 複数路線にまたがるためPositionは 0..N-1 の通し番号
// hopRoutesはPathRoutesの結果 (nil可)
func AssemblePath(path []string, hopRoutes []string, stops map[string]models.Stop) (*Itinerary, error) {
	if len(path) == 0 {
		return nil, newError(KindDataIntegrity, nil, "empty path")
	}

	journey := make([]JourneyStop, 0, len(path))
	var missing []string
	for i, id := range path {
		stop, ok := stops[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		js := JourneyStop{Stop: stop, Position: i}
		if i > 0 && i-1 < len(hopRoutes) {
			js.RouteID = hopRoutes[i-1]
		}
		journey = append(journey, js)
	}
	if len(missing) > 0 {
		return nil, missingStopsError(missing)
	}
	return newItinerary(journey), nil
}

func missingStopsError(ids []string) *Error {
	return newError(KindDataIntegrity, nil,
		"stop records missing for %s (route_stops and stops are inconsistent)", strings.Join(ids, ", "))
}
