package coloring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/internal/graph"
	"github.com/rhyrak/go-timetable/pkg/model"
)

func scenarioGraph() *graph.ConflictGraph {
	return graph.Pairwise{}.Build([]*model.Course{
		{Code: "CS101", CRN: "A", Days: []model.Weekday{model.Sunday, model.Tuesday}, TimeTokens: []string{"10:00-11:00"}},
		{Code: "CS101", CRN: "B", Days: []model.Weekday{model.Monday}, TimeTokens: []string{"09:00-10:00"}},
		{Code: "CS102", CRN: "C", Days: []model.Weekday{model.Sunday}, TimeTokens: []string{"10:30-11:30"}},
	})
}

func denseGraph() *graph.ConflictGraph {
	var courses []*model.Course
	times := []string{"08:00-09:30", "09:00-10:30", "10:00-11:30", "11:00-12:30"}
	for i := 0; i < 60; i++ {
		courses = append(courses, &model.Course{
			Code:       fmt.Sprintf("C%d", i%9),
			CRN:        fmt.Sprint(i),
			Days:       []model.Weekday{model.Weekday(i % 3)},
			TimeTokens: []string{times[i%len(times)]},
		})
	}
	return graph.DayBucket{}.Build(courses)
}

func TestGreedyScenario(t *testing.T) {
	g := scenarioGraph()
	colors := Greedy{}.Color(g)

	// A has degree 2 and is colored first.
	assert.Equal(t, model.ColorAssignment{0, 1, 1}, colors)
	assert.NotEqual(t, colors[0], colors[1])
	assert.NotEqual(t, colors[0], colors[2])
	assert.Equal(t, 2, ColorCount(colors))
}

func TestColorersAreProperAndDeterministic(t *testing.T) {
	g := denseGraph()
	for _, c := range []Colorer{Greedy{}, DSatur{}} {
		first := c.Color(g)
		second := c.Color(g)
		require.True(t, IsProper(g, first), "%T", c)
		assert.Equal(t, first, second, "%T", c)
		for _, col := range first {
			assert.GreaterOrEqual(t, col, 0)
		}
	}
}

func TestGreedyTiesKeepInputOrder(t *testing.T) {
	// Two isolated pairs: all degrees equal, so vertex 0 is colored first
	// and every first member of a pair gets color 0.
	g := graph.Pairwise{}.Build([]*model.Course{
		{Code: "A", CRN: "1"}, {Code: "A", CRN: "2"},
		{Code: "B", CRN: "3"}, {Code: "B", CRN: "4"},
	})
	assert.Equal(t, model.ColorAssignment{0, 1, 0, 1}, Greedy{}.Color(g))
}

func TestColorersOnCodeCliques(t *testing.T) {
	// Same code groups form cliques, so both colorers need exactly the
	// largest group size.
	g := graph.Pairwise{}.Build([]*model.Course{
		{Code: "A", CRN: "1"}, {Code: "A", CRN: "2"}, {Code: "A", CRN: "3"},
		{Code: "B", CRN: "4"}, {Code: "B", CRN: "5"},
	})
	assert.Equal(t, 3, ColorCount(Greedy{}.Color(g)))
	assert.Equal(t, 3, ColorCount(DSatur{}.Color(g)))
}

func TestIsProperDetectsClash(t *testing.T) {
	g := scenarioGraph()
	assert.False(t, IsProper(g, model.ColorAssignment{0, 0, 1}))
	assert.True(t, IsProper(g, model.ColorAssignment{0, 1, 1}))
}

func TestEmptyGraph(t *testing.T) {
	g := graph.Pairwise{}.Build(nil)
	assert.Empty(t, Greedy{}.Color(g))
	assert.Empty(t, DSatur{}.Color(g))
	assert.Equal(t, 0, ColorCount(nil))
}

func TestNewColorer(t *testing.T) {
	assert.IsType(t, DSatur{}, NewColorer("dsatur"))
	assert.IsType(t, Greedy{}, NewColorer("greedy"))
	assert.IsType(t, Greedy{}, NewColorer(""))
}
