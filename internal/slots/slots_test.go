package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/internal/graph"
	"github.com/rhyrak/go-timetable/pkg/model"
)

func TestMapArithmetic(t *testing.T) {
	assert.Equal(t, 45, PerRoomGroup)

	assert.Equal(t, model.ScheduledSlot{Day: model.Sunday, TimeSlot: "08:00-08:50", RoomGroup: 0}, Map(0))
	assert.Equal(t, model.ScheduledSlot{Day: model.Monday, TimeSlot: "08:00-08:50", RoomGroup: 0}, Map(1))
	assert.Equal(t, model.ScheduledSlot{Day: model.Sunday, TimeSlot: "09:00-09:50", RoomGroup: 0}, Map(5))
	assert.Equal(t, model.ScheduledSlot{Day: model.Thursday, TimeSlot: "16:00-16:50", RoomGroup: 0}, Map(44))
	assert.Equal(t, model.ScheduledSlot{Day: model.Sunday, TimeSlot: "08:00-08:50", RoomGroup: 1}, Map(45))
	assert.Equal(t, model.ScheduledSlot{Day: model.Tuesday, TimeSlot: "10:00-10:50", RoomGroup: 2}, Map(90+12))
}

func TestMapIsInjective(t *testing.T) {
	seen := make(map[model.ScheduledSlot]int)
	for c := 0; c < 3*PerRoomGroup; c++ {
		s := Map(c)
		prev, dup := seen[s]
		require.False(t, dup, "colors %d and %d share %+v", prev, c, s)
		seen[s] = c
	}
}

func TestMapAll(t *testing.T) {
	g := graph.Pairwise{}.Build([]*model.Course{
		{Code: "A", CRN: "1"}, {Code: "A", CRN: "2"}, {Code: "B", CRN: "3"},
	})
	entries := MapAll(g, model.ColorAssignment{0, 1, 46})
	require.Len(t, entries, 3)
	assert.Equal(t, "2", entries[1].Course.CRN)
	assert.Equal(t, model.Monday, entries[1].Slot.Day)
	assert.Equal(t, 1, entries[2].Slot.RoomGroup)
	assert.Equal(t, 46, entries[2].Color)
}

func TestRoomGroups(t *testing.T) {
	assert.Equal(t, 0, RoomGroups(0))
	assert.Equal(t, 1, RoomGroups(1))
	assert.Equal(t, 1, RoomGroups(45))
	assert.Equal(t, 2, RoomGroups(46))
}
