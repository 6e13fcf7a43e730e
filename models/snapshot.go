package models

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Snapshot is an immutable in-memory copy of the transit tables.
type Snapshot struct {
	stops      map[string]Stop
	routes     map[string]Route
	routeStops []RouteStop
	loadedAt   time.Time
}

func NewSnapshot(stops []Stop, routes []Route, routeStops []RouteStop) *Snapshot {
	s := &Snapshot{
		stops:      make(map[string]Stop, len(stops)),
		routes:     make(map[string]Route, len(routes)),
		routeStops: SortRouteStops(routeStops),
		loadedAt:   time.Now(),
	}
	for _, stop := range stops {
		s.stops[stop.ID] = stop
	}
	for _, route := range routes {
		s.routes[route.ID] = route
	}
	return s
}

// 他のプロバイダから全データを読み込んでスナップショットを作成
func LoadSnapshot(ctx context.Context, source TransitDataProvider) (*Snapshot, error) {
	stops, err := source.SearchStops(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("loadStops: %w", err)
	}
	routes, err := source.ListRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loadRoutes: %w", err)
	}
	routeStops, err := source.ListRouteStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("loadRouteStops: %w", err)
	}
	return NewSnapshot(stops, routes, routeStops), nil
}

func (s *Snapshot) LoadedAt() time.Time {
	return s.loadedAt
}

func (s *Snapshot) FindStops(_ context.Context, ids ...string) (map[string]Stop, error) {
	found := make(map[string]Stop, len(ids))
	for _, id := range ids {
		if stop, ok := s.stops[id]; ok {
			found[id] = stop
		}
	}
	return found, nil
}

func (s *Snapshot) SearchStops(_ context.Context, keyword string) ([]Stop, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	stops := make([]Stop, 0, len(s.stops))
	for _, stop := range s.stops {
		if keyword == "" || strings.Contains(strings.ToLower(stop.Name), keyword) {
			stops = append(stops, stop)
		}
	}
	sortStopsByName(stops)
	return stops, nil
}

func (s *Snapshot) FindRoute(_ context.Context, id string) (Route, error) {
	route, ok := s.routes[id]
	if !ok {
		return Route{}, ErrRouteNotFound
	}
	return route, nil
}

func (s *Snapshot) ListRoutes(_ context.Context) ([]Route, error) {
	routes := make([]Route, 0, len(s.routes))
	for _, route := range s.routes {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].ID < routes[j].ID })
	return routes, nil
}

func (s *Snapshot) ListRouteStops(_ context.Context) ([]RouteStop, error) {
	rows := make([]RouteStop, len(s.routeStops))
	copy(rows, s.routeStops)
	return rows, nil
}

// 再読み込み1回あたりの上限
const DefaultReloadTimeout = 30 * time.Second

// CachedProvider serves reads from a Snapshot of source and reloads it once
// it is older than ttl. A failed reload keeps serving the previous snapshot.
// Reloads run outside the lock, one at a time, detached from the deadline of
// the request that triggered them.
type CachedProvider struct {
	source        TransitDataProvider
	ttl           time.Duration
	reloadTimeout time.Duration
	now           func() time.Time

	group    singleflight.Group
	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewCachedProvider(source TransitDataProvider, ttl time.Duration) *CachedProvider {
	return &CachedProvider{source: source, ttl: ttl, reloadTimeout: DefaultReloadTimeout, now: time.Now}
}

func (c *CachedProvider) current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *CachedProvider) fresh(s *Snapshot) bool {
	return s != nil && c.now().Sub(s.loadedAt) < c.ttl
}

// 有効期限切れならスナップショットを再読み込みして返す
func (c *CachedProvider) Current(ctx context.Context) (*Snapshot, error) {
	snapshot := c.current()
	if c.fresh(snapshot) {
		return snapshot, nil
	}

	v, err, _ := c.group.Do("snapshot", func() (any, error) {
		// 待っている間に他のgoroutineが更新済みの場合
		if s := c.current(); c.fresh(s) {
			return s, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.reloadTimeout)
		defer cancel()

		loaded, err := LoadSnapshot(loadCtx, c.source)
		if err != nil {
			return nil, err
		}
		loaded.loadedAt = c.now()

		c.mu.Lock()
		c.snapshot = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		if snapshot != nil {
			log.Printf("Snapshot reload failed, serving data loaded at %s: %v", snapshot.loadedAt.Format(time.RFC3339), err)
			return snapshot, nil
		}
		return nil, err
	}
	return v.(*Snapshot), nil
}

// 次回アクセス時に再読み込みさせる
func (c *CachedProvider) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}

func (c *CachedProvider) FindStops(ctx context.Context, ids ...string) (map[string]Stop, error) {
	s, err := c.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.FindStops(ctx, ids...)
}

func (c *CachedProvider) SearchStops(ctx context.Context, keyword string) ([]Stop, error) {
	s, err := c.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.SearchStops(ctx, keyword)
}

func (c *CachedProvider) FindRoute(ctx context.Context, id string) (Route, error) {
	s, err := c.Current(ctx)
	if err != nil {
		return Route{}, err
	}
	return s.FindRoute(ctx, id)
}

func (c *CachedProvider) ListRoutes(ctx context.Context) ([]Route, error) {
	s, err := c.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListRoutes(ctx)
}

func (c *CachedProvider) ListRouteStops(ctx context.Context) ([]RouteStop, error) {
	s, err := c.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListRouteStops(ctx)
}
