package controllers

import "outtech105.com/busroute_server/models"

type Edge struct {
	To      string
	Weight  int
	RouteID string
}

// Graph is an undirected adjacency list over stop IDs. Nodes keep the order
// in which they were first added; the shortest-path search breaks ties on it.
type Graph struct {
	adjacency map[string][]Edge
	order     []string
	index     map[string]int
}

func NewGraph() *Graph {
	return &Graph{
		adjacency: make(map[string][]Edge),
		index:     make(map[string]int),
	}
}

func (g *Graph) addNode(id string) int {
	if i, ok := g.index[id]; ok {
		return i
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	return g.index[id]
}

// 双方向の重み1の辺を追加
func (g *Graph) AddEdge(from, to, routeID string) {
	g.addNode(from)
	g.addNode(to)
	g.adjacency[from] = append(g.adjacency[from], Edge{To: to, Weight: 1, RouteID: routeID})
	g.adjacency[to] = append(g.adjacency[to], Edge{To: from, Weight: 1, RouteID: routeID})
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

func (g *Graph) Neighbors(id string) []Edge {
	return g.adjacency[id]
}

func (g *Graph) Len() int {
	return len(g.order)
}

func (g *Graph) Nodes() []string {
	nodes := make([]string, len(g.order))
	copy(nodes, g.order)
	return nodes
}

// 同一路線で連続する停留所同士を辺で結ぶ
func BuildGraph(rows []models.RouteStop) *Graph {
	sorted := models.SortRouteStops(rows)
	g := NewGraph()
	for i := 0; i+1 < len(sorted); i++ {
		curr, next := sorted[i], sorted[i+1]
		if curr.RouteID != next.RouteID {
			continue
		}
		g.AddEdge(curr.StopID, next.StopID, curr.RouteID)
	}
	return g
}
