package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// 停留所 (座標はNULLの場合あり)
type Stop struct {
	ID   string   `db:"stop_id"`
	Name string   `db:"stop_name"`
	Lat  *float64 `db:"stop_lat"`
	Lon  *float64 `db:"stop_lon"`
}

// 停留所IDの一覧から停留所情報を取得 (存在しないIDは結果に含まれない)
func GetStopsByIDs(ctx context.Context, db *sqlx.DB, ids []string) (map[string]Stop, error) {
	stops := make(map[string]Stop, len(ids))
	if len(ids) == 0 {
		return stops, nil
	}

	query, args, err := sqlx.In(`
SELECT stop_id, stop_name, stop_lat, stop_lon FROM stops
WHERE stop_id IN (?)
`, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("buildQuery: %w", err)
	}

	var rows []Stop
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("executeQuery: %w", err)
	}
	for _, s := range rows {
		stops[s.ID] = s
	}
	return stops, nil
}

// 名前の部分一致で停留所を検索 (空文字なら全件)
func GetStopsByKeyword(ctx context.Context, db *sqlx.DB, keyword string) ([]Stop, error) {
	stops := make([]Stop, 0, 10)
	keyword = strings.TrimSpace(keyword)

	var err error
	if keyword == "" {
		err = db.SelectContext(ctx, &stops, `
SELECT stop_id, stop_name, stop_lat, stop_lon FROM stops
ORDER BY stop_name ASC
`)
	} else {
		err = db.SelectContext(ctx, &stops, db.Rebind(`
SELECT stop_id, stop_name, stop_lat, stop_lon FROM stops
WHERE LOWER(stop_name) LIKE ?
ORDER BY stop_name ASC
`), "%"+strings.ToLower(keyword)+"%")
	}
	if err != nil {
		return nil, fmt.Errorf("executeQuery: %w", err)
	}
	return stops, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func sortStopsByName(stops []Stop) {
	sort.SliceStable(stops, func(i, j int) bool {
		if stops[i].Name != stops[j].Name {
			return stops[i].Name < stops[j].Name
		}
		return stops[i].ID < stops[j].ID
	})
}
