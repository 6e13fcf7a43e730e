package controllers

import (
	"container/heap"
	"math"
)

type queueItem struct {
	node int
	dist int
}

// (距離, ノード追加順) の小さい順に取り出す優先度付きキュー
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }

func (q nodeQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}

func (q nodeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *nodeQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

// ShortestPath returns the fewest-hop stop sequence from start to end.
// Among equal-length paths the one settled first in node insertion order wins.
func ShortestPath(g *Graph, start, end string) ([]string, error) {
	if !g.HasNode(start) || !g.HasNode(end) {
		return nil, ErrPathNotFound
	}
	if start == end {
		return []string{start}, nil
	}

	n := g.Len()
	dist := make([]int, n)
	prev := make([]int, n)
	visited := make([]bool, n)
	for i := range dist {
		dist[i] = math.MaxInt
		prev[i] = -1
	}

	s, t := g.index[start], g.index[end]
	dist[s] = 0
	queue := &nodeQueue{{node: s, dist: 0}}

	for queue.Len() > 0 {
		item := heap.Pop(queue).(queueItem)
		u := item.node
		if visited[u] || item.dist > dist[u] {
			continue
		}
		if u == t {
			break
		}
		visited[u] = true

		for _, edge := range g.adjacency[g.order[u]] {
			v := g.index[edge.To]
			alt := dist[u] + edge.Weight
			// 同距離では更新しない (先に確定した経路を優先)
			if alt < dist[v] {
				dist[v] = alt
				prev[v] = u
				heap.Push(queue, queueItem{node: v, dist: alt})
			}
		}
	}

	if dist[t] == math.MaxInt {
		return nil, ErrPathNotFound
	}

	hops := dist[t]
	path := make([]string, hops+1)
	for cur, i := t, hops; cur != -1; cur, i = prev[cur], i-1 {
		path[i] = g.order[cur]
	}
	return path, nil
}

// 経路の各区間を走る路線IDを返す (長さは len(path)-1)
// 直前の区間と同じ路線が使えればそれを優先し、乗換を増やさない
func PathRoutes(g *Graph, path []string) []string {
	if len(path) < 2 {
		return nil
	}
	routes := make([]string, 0, len(path)-1)
	previous := ""
	for i := 1; i < len(path); i++ {
		chosen := ""
		for _, edge := range g.Neighbors(path[i-1]) {
			if edge.To != path[i] {
				continue
			}
			if chosen == "" {
				chosen = edge.RouteID
			}
			if edge.RouteID == previous {
				chosen = edge.RouteID
				break
			}
		}
		routes = append(routes, chosen)
		previous = chosen
	}
	return routes
}
