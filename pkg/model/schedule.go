package model

// ColorAssignment maps a graph vertex index to its color.
type ColorAssignment []int

// ScheduledSlot is the physical placement derived from a color.
type ScheduledSlot struct {
	Day       Weekday
	TimeSlot  string
	RoomGroup int
}

// ScheduleEntry is one colored and placed course section.
type ScheduleEntry struct {
	Course *Course
	Color  int
	Slot   ScheduledSlot
}

// Collision is a pair of conflicting sections sharing one physical slot.
type Collision struct {
	First  CourseKey
	Second CourseKey
	Slot   ScheduledSlot
}

type ValidationReport struct {
	Valid      bool
	Collisions []Collision
}

type ScheduleCSVRow struct {
	CourseCode   string `csv:"Course Code"`
	CRN          string `csv:"CRN"`
	Section      string `csv:"Section"`
	CourseName   string `csv:"Course Name"`
	Instructor   string `csv:"Instructor Name"`
	ActivityType string `csv:"Activity Type"`
	Day          string `csv:"Assigned Day"`
	TimeSlot     string `csv:"Assigned Time Slot"`
	RoomGroup    int    `csv:"Virtual Room Group"`
	Status       string `csv:"Section Status"`
	Color        int    `csv:"Color Group Index"`
}
