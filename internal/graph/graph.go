// Package graph builds the undirected conflict graph over course sections.
package graph

import (
	"sort"

	"github.com/rhyrak/go-timetable/internal/timeparse"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// ConflictGraph is immutable once built. Vertices are indices into the
// course slice in input order.
type ConflictGraph struct {
	courses []*model.Course
	adj     [][]int
	index   map[model.CourseKey]int
	edges   int
}

// Builder constructs a conflict graph. Every implementation must produce the
// same edge set as Pairwise.
type Builder interface {
	Build(courses []*model.Course) *ConflictGraph
}

// Conflicts is the conflict predicate. Two sections of one course always
// conflict; otherwise they conflict only when they share a day and some
// pair of their meeting times overlaps. Unparseable times never overlap.
func Conflicts(a, b *model.Course) bool {
	return conflicts(a, b, timeparse.Overlaps)
}

func conflicts(a, b *model.Course, overlaps func(x, y string) bool) bool {
	if a.Code == b.Code {
		return true
	}
	if !a.SharesDay(b) {
		return false
	}
	for _, ta := range a.TimeTokens {
		for _, tb := range b.TimeTokens {
			if overlaps(ta, tb) {
				return true
			}
		}
	}
	return false
}

// newGraph freezes per-vertex neighbour sets into sorted adjacency lists.
func newGraph(courses []*model.Course, sets []map[int]struct{}) *ConflictGraph {
	g := &ConflictGraph{
		courses: courses,
		adj:     make([][]int, len(courses)),
		index:   make(map[model.CourseKey]int, len(courses)),
	}
	total := 0
	for i, c := range courses {
		g.index[c.Key()] = i
		list := make([]int, 0, len(sets[i]))
		for j := range sets[i] {
			list = append(list, j)
		}
		sort.Ints(list)
		g.adj[i] = list
		total += len(list)
	}
	g.edges = total / 2
	return g
}

func (g *ConflictGraph) Len() int {
	return len(g.courses)
}

func (g *ConflictGraph) Course(i int) *model.Course {
	return g.courses[i]
}

func (g *ConflictGraph) Courses() []*model.Course {
	return g.courses
}

// Degree is the number of edges incident to vertex i.
func (g *ConflictGraph) Degree(i int) int {
	return len(g.adj[i])
}

// Neighbors returns the sorted neighbour indices of i. Callers must not
// modify the returned slice.
func (g *ConflictGraph) Neighbors(i int) []int {
	return g.adj[i]
}

func (g *ConflictGraph) Adjacent(i, j int) bool {
	list := g.adj[i]
	k := sort.SearchInts(list, j)
	return k < len(list) && list[k] == j
}

// AdjacentKeys reports whether two course identities share an edge.
func (g *ConflictGraph) AdjacentKeys(a, b model.CourseKey) bool {
	i, ok := g.index[a]
	if !ok {
		return false
	}
	j, ok := g.index[b]
	if !ok {
		return false
	}
	return g.Adjacent(i, j)
}

func (g *ConflictGraph) Index(key model.CourseKey) (int, bool) {
	i, ok := g.index[key]
	return i, ok
}

func (g *ConflictGraph) EdgeCount() int {
	return g.edges
}

// Edges lists every edge once as (i, j) with i < j.
func (g *ConflictGraph) Edges() [][2]int {
	out := make([][2]int, 0, g.edges)
	for i, list := range g.adj {
		for _, j := range list {
			if i < j {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}
