package forms

// 経路探索のリクエストフォーマット
type JourneySearchForm struct {
	FromStopID string `json:"from_stop_id" binding:"required"`
	ToStopID   string `json:"to_stop_id" binding:"required"`
	TimePeriod string `json:"time_period"`
	// direct (既定) / multi-hop / auto, 旧名 simple / dijkstra も可
	// 大文字小文字を区別しないため値の検証はcontrollers.ParseModeで行う
	Mode string `json:"mode"`
}

// 停留所一覧の検索条件
type StopSearchForm struct {
	Query string `form:"q"`
}

// 路線一覧の検索条件
type RouteSearchForm struct {
	Period string `form:"period"`
}
