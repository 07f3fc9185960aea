package model

// Weekday is an index into the Sunday..Thursday teaching week.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
)

// NumberOfDays is the length of the teaching week.
const NumberOfDays = 5

var weekdayNames = [NumberOfDays]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}

func (d Weekday) String() string {
	if d < 0 || int(d) >= NumberOfDays {
		return "Unknown"
	}
	return weekdayNames[d]
}

// CourseKey identifies a single section. Code alone is not unique,
// several CRNs usually share one code.
type CourseKey struct {
	Code string
	CRN  string
}

func (k CourseKey) String() string {
	return k.Code + "/" + k.CRN
}

// Course is one normalized course section.
type Course struct {
	Code         string
	CRN          string
	Section      string
	Status       string
	DisplayName  string
	CreditHours  int
	Days         []Weekday
	TimeTokens   []string
	ActivityType string
	Instructor   string
}

func (c *Course) Key() CourseKey {
	return CourseKey{Code: c.Code, CRN: c.CRN}
}

// MeetsOn reports whether the section has a meeting on the given day.
func (c *Course) MeetsOn(day Weekday) bool {
	for _, d := range c.Days {
		if d == day {
			return true
		}
	}
	return false
}

// SharesDay reports whether two sections meet on at least one common day.
func (c *Course) SharesDay(other *Course) bool {
	for _, d := range c.Days {
		if other.MeetsOn(d) {
			return true
		}
	}
	return false
}
