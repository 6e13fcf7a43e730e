package controllers

import (
	"sort"

	"outtech105.com/busroute_server/models"
)

// 1路線内の乗車区間
type Segment struct {
	RouteID string
	FromSeq int
	ToSeq   int
}

func (s Segment) Length() int {
	return s.ToSeq - s.FromSeq
}

// DirectSegment picks the shortest forward ride on a single route from origin
// to destination. origin must come strictly before destination in the
// route's sequence; ties on ride length go to the lowest route ID.
func DirectSegment(rows []models.RouteStop, origin, destination string) (Segment, error) {
	originSeqs := make(map[string][]int)
	destinationSeqs := make(map[string][]int)
	for _, row := range rows {
		switch row.StopID {
		case origin:
			originSeqs[row.RouteID] = append(originSeqs[row.RouteID], row.Sequence)
		case destination:
			destinationSeqs[row.RouteID] = append(destinationSeqs[row.RouteID], row.Sequence)
		}
	}

	routeIDs := make([]string, 0, len(originSeqs))
	for routeID := range originSeqs {
		if _, ok := destinationSeqs[routeID]; ok {
			routeIDs = append(routeIDs, routeID)
		}
	}
	sort.Strings(routeIDs)

	var best Segment
	found := false
	for _, routeID := range routeIDs {
		seg, ok := bestForwardPair(routeID, originSeqs[routeID], destinationSeqs[routeID])
		if !ok {
			continue
		}
		// 路線IDの昇順に走査しているので、同じ長さなら先の路線が残る
		if !found || seg.Length() < best.Length() {
			best = seg
			found = true
		}
	}

	if !found {
		return Segment{}, ErrPathNotFound
	}
	return best, nil
}

// 循環路線で同じ停留所が複数回現れる場合も、最短の順方向の組を選ぶ
func bestForwardPair(routeID string, fromSeqs, toSeqs []int) (Segment, bool) {
	var best Segment
	found := false
	for _, f := range fromSeqs {
		for _, t := range toSeqs {
			if f >= t {
				continue
			}
			seg := Segment{RouteID: routeID, FromSeq: f, ToSeq: t}
			if !found || seg.Length() < best.Length() ||
				(seg.Length() == best.Length() && seg.FromSeq < best.FromSeq) {
				best = seg
				found = true
			}
		}
	}
	return best, found
}
