package scheduler

import (
	"fmt"
	"strings"

	"github.com/rhyrak/go-timetable/internal/graph"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Validate re-checks the final placement: two entries sharing a (day, time,
// room group) triple must not be joined by an edge. It reports every such
// pair and never repairs anything.
func Validate(g *graph.ConflictGraph, entries []model.ScheduleEntry) model.ValidationReport {
	bySlot := make(map[model.ScheduledSlot][]int)
	var order []model.ScheduledSlot
	for i, e := range entries {
		if _, ok := bySlot[e.Slot]; !ok {
			order = append(order, e.Slot)
		}
		bySlot[e.Slot] = append(bySlot[e.Slot], i)
	}

	report := model.ValidationReport{Valid: true}
	for _, slot := range order {
		members := bySlot[slot]
		for x := 0; x < len(members); x++ {
			for y := x + 1; y < len(members); y++ {
				a := entries[members[x]].Course.Key()
				b := entries[members[y]].Course.Key()
				if g.AdjacentKeys(a, b) {
					report.Valid = false
					report.Collisions = append(report.Collisions, model.Collision{First: a, Second: b, Slot: slot})
				}
			}
		}
	}
	return report
}

// Summary renders the report in the checklist style used on the console.
func Summary(report model.ValidationReport) string {
	var sb strings.Builder
	if report.Valid {
		sb.WriteString("[  OK]: Slot collision check.\n")
		return sb.String()
	}
	sb.WriteString("[FAIL]: Slot collision check.\n")
	fmt.Fprintf(&sb, "- There are %d conflicting pairs sharing a slot:\n", len(report.Collisions))
	for _, c := range report.Collisions {
		fmt.Fprintf(&sb, "    %s <-> %s on %s %s group %d\n", c.First, c.Second, c.Slot.Day, c.Slot.TimeSlot, c.Slot.RoomGroup)
	}
	return sb.String()
}
