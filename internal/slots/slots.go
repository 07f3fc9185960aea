// Package slots maps abstract colors onto physical (day, time, room group)
// placements.
package slots

import (
	"github.com/rhyrak/go-timetable/internal/graph"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// TimeSlots are the canonical teaching periods of a day.
var TimeSlots = []string{
	"08:00-08:50",
	"09:00-09:50",
	"10:00-10:50",
	"11:00-11:50",
	"12:00-12:50",
	"13:00-13:50",
	"14:00-14:50",
	"15:00-15:50",
	"16:00-16:50",
}

// Days are the teaching days in mapping order.
var Days = []model.Weekday{model.Sunday, model.Monday, model.Tuesday, model.Wednesday, model.Thursday}

// PerRoomGroup is the number of distinct placements before a color spills
// into the next room group.
var PerRoomGroup = len(Days) * len(TimeSlots)

// Map places color c. Distinct colors always give distinct placements.
func Map(c int) model.ScheduledSlot {
	base := c % PerRoomGroup
	return model.ScheduledSlot{
		Day:       Days[base%len(Days)],
		TimeSlot:  TimeSlots[base/len(Days)],
		RoomGroup: c / PerRoomGroup,
	}
}

// MapAll produces one schedule entry per vertex, in vertex order.
func MapAll(g *graph.ConflictGraph, colors model.ColorAssignment) []model.ScheduleEntry {
	entries := make([]model.ScheduleEntry, 0, g.Len())
	for i := 0; i < g.Len(); i++ {
		if colors[i] < 0 {
			continue
		}
		entries = append(entries, model.ScheduleEntry{
			Course: g.Course(i),
			Color:  colors[i],
			Slot:   Map(colors[i]),
		})
	}
	return entries
}

// RoomGroups is the number of room groups needed for the given colors.
func RoomGroups(colorCount int) int {
	if colorCount <= 0 {
		return 0
	}
	return (colorCount-1)/PerRoomGroup + 1
}
