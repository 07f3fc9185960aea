// Package coloring assigns conflict-free color classes to graph vertices.
package coloring

import (
	"sort"

	"github.com/rhyrak/go-timetable/internal/graph"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Colorer produces a proper coloring: adjacent vertices never share a color.
// Implementations must be deterministic for a fixed vertex order.
type Colorer interface {
	Color(g *graph.ConflictGraph) model.ColorAssignment
}

// Greedy colors vertices once, in descending degree order with ties kept in
// input order, each taking the smallest color unused by its neighbours.
type Greedy struct{}

func (Greedy) Color(g *graph.ConflictGraph) model.ColorAssignment {
	n := g.Len()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return g.Degree(order[a]) > g.Degree(order[b])
	})

	colors := uncolored(n)
	for _, v := range order {
		colors[v] = smallestFree(g, colors, v)
	}
	return colors
}

// DSatur picks the next vertex by saturation (distinct neighbour colors),
// then degree, then input order.
type DSatur struct{}

func (DSatur) Color(g *graph.ConflictGraph) model.ColorAssignment {
	n := g.Len()
	colors := uncolored(n)
	saturation := make([]map[int]struct{}, n)
	for i := range saturation {
		saturation[i] = make(map[int]struct{})
	}

	for done := 0; done < n; done++ {
		best := -1
		for v := 0; v < n; v++ {
			if colors[v] >= 0 {
				continue
			}
			if best < 0 || better(g, saturation, v, best) {
				best = v
			}
		}
		c := smallestFree(g, colors, best)
		colors[best] = c
		for _, u := range g.Neighbors(best) {
			if colors[u] < 0 {
				saturation[u][c] = struct{}{}
			}
		}
	}
	return colors
}

// better reports whether v should be colored before the current pick w.
// Scanning runs in input order, so equal candidates keep the earlier one.
func better(g *graph.ConflictGraph, sat []map[int]struct{}, v, w int) bool {
	if sv, sw := len(sat[v]), len(sat[w]); sv != sw {
		return sv > sw
	}
	return g.Degree(v) > g.Degree(w)
}

func uncolored(n int) model.ColorAssignment {
	colors := make(model.ColorAssignment, n)
	for i := range colors {
		colors[i] = -1
	}
	return colors
}

func smallestFree(g *graph.ConflictGraph, colors model.ColorAssignment, v int) int {
	used := make(map[int]struct{}, g.Degree(v))
	for _, u := range g.Neighbors(v) {
		if colors[u] >= 0 {
			used[colors[u]] = struct{}{}
		}
	}
	c := 0
	for {
		if _, taken := used[c]; !taken {
			return c
		}
		c++
	}
}

// ColorCount is the number of distinct colors in use.
func ColorCount(colors model.ColorAssignment) int {
	highest := -1
	for _, c := range colors {
		if c > highest {
			highest = c
		}
	}
	return highest + 1
}

// IsProper reports whether no edge joins two vertices of the same color.
func IsProper(g *graph.ConflictGraph, colors model.ColorAssignment) bool {
	for _, e := range g.Edges() {
		if colors[e[0]] == colors[e[1]] {
			return false
		}
	}
	return true
}

func NewColorer(name string) Colorer {
	if name == "dsatur" {
		return DSatur{}
	}
	return Greedy{}
}
