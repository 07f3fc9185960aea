package graph

import (
	"runtime"
	"sync"

	"github.com/rhyrak/go-timetable/internal/timeparse"
	"github.com/rhyrak/go-timetable/pkg/model"
)

func emptySets(n int) []map[int]struct{} {
	sets := make([]map[int]struct{}, n)
	for i := range sets {
		sets[i] = make(map[int]struct{})
	}
	return sets
}

// Pairwise evaluates the predicate for every unordered pair.
type Pairwise struct{}

func (Pairwise) Build(courses []*model.Course) *ConflictGraph {
	cache := timeparse.NewCache()
	sets := emptySets(len(courses))
	for i := 0; i < len(courses); i++ {
		for j := i + 1; j < len(courses); j++ {
			if conflicts(courses[i], courses[j], cache.Overlaps) {
				sets[i][j] = struct{}{}
				sets[j][i] = struct{}{}
			}
		}
	}
	return newGraph(courses, sets)
}

// DayBucket only evaluates pairs that can possibly conflict: sections of
// the same code, and sections meeting on a common day.
type DayBucket struct{}

func (DayBucket) Build(courses []*model.Course) *ConflictGraph {
	cache := timeparse.NewCache()
	sets := emptySets(len(courses))
	link := func(i, j int) {
		sets[i][j] = struct{}{}
		sets[j][i] = struct{}{}
	}

	byCode := make(map[string][]int)
	var byDay [model.NumberOfDays][]int
	for i, c := range courses {
		byCode[c.Code] = append(byCode[c.Code], i)
		for _, d := range c.Days {
			byDay[d] = append(byDay[d], i)
		}
	}

	for _, members := range byCode {
		for x := 0; x < len(members); x++ {
			for y := x + 1; y < len(members); y++ {
				link(members[x], members[y])
			}
		}
	}

	for _, members := range byDay {
		for x := 0; x < len(members); x++ {
			for y := x + 1; y < len(members); y++ {
				i, j := members[x], members[y]
				if _, done := sets[i][j]; done {
					continue
				}
				if conflicts(courses[i], courses[j], cache.Overlaps) {
					link(i, j)
				}
			}
		}
	}
	return newGraph(courses, sets)
}

// Parallel splits the rows of the pair matrix across workers. Each worker
// only writes the neighbour sets of the rows it owns, so no locking is
// needed on the sets.
type Parallel struct {
	Workers int
}

func (p Parallel) Build(courses []*model.Course) *ConflictGraph {
	n := len(courses)
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	cache := timeparse.NewCache()
	sets := emptySets(n)
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				for j := 0; j < n; j++ {
					if i != j && conflicts(courses[i], courses[j], cache.Overlaps) {
						sets[i][j] = struct{}{}
					}
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		rows <- i
	}
	close(rows)
	wg.Wait()
	return newGraph(courses, sets)
}

// NewBuilder resolves a builder by its configuration name. Unknown names
// fall back to DayBucket.
func NewBuilder(name string, workers int) Builder {
	switch name {
	case "pairwise":
		return Pairwise{}
	case "parallel":
		return Parallel{Workers: workers}
	default:
		return DayBucket{}
	}
}
