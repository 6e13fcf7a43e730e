package controllers

import (
	"strings"

	"outtech105.com/busroute_server/models"
)

// 時間帯トークン → 路線ID接頭辞
type PeriodTable map[string]string

var DefaultPeriods = PeriodTable{
	"AM": "AM",
	"MD": "MD",
	"PM": "PM",
}

func normalizePeriod(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// 登録済みトークンなら正規化したトークンと接頭辞を返す
func (t PeriodTable) Lookup(token string) (string, string, bool) {
	token = normalizePeriod(token)
	if token == "" {
		return "", "", false
	}
	prefix, ok := t[token]
	return token, prefix, ok
}

// 指定時間帯に運行する路線の行だけを返す
// 未登録・空のトークンは絞り込みなし
func FilterByPeriod(rows []models.RouteStop, routes map[string]models.Route, token string, table PeriodTable) []models.RouteStop {
	token, prefix, ok := table.Lookup(token)
	if !ok {
		return rows
	}

	inPeriod := make(map[string]bool)
	filtered := make([]models.RouteStop, 0, len(rows))
	for _, row := range rows {
		keep, seen := inPeriod[row.RouteID]
		if !seen {
			keep = routeInPeriod(row.RouteID, routes, token, prefix)
			inPeriod[row.RouteID] = keep
		}
		if keep {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// 路線の時間帯属性を優先し、無ければIDの接頭辞で判定
func routeInPeriod(routeID string, routes map[string]models.Route, token, prefix string) bool {
	if route, ok := routes[routeID]; ok && route.Period != "" {
		return strings.EqualFold(route.Period, token)
	}
	return strings.HasPrefix(routeID, prefix)
}

// 指定時間帯の路線だけを返す (未登録・空のトークンはそのまま)
func RoutesInPeriod(routes []models.Route, token string, table PeriodTable) []models.Route {
	token, prefix, ok := table.Lookup(token)
	if !ok {
		return routes
	}

	byID := make(map[string]models.Route, len(routes))
	for _, route := range routes {
		byID[route.ID] = route
	}
	filtered := make([]models.Route, 0, len(routes))
	for _, route := range routes {
		if routeInPeriod(route.ID, byID, token, prefix) {
			filtered = append(filtered, route)
		}
	}
	return filtered
}
