package normalize

import (
	"strings"

	"github.com/rhyrak/go-timetable/pkg/model"
)

var dayTokens = map[string]model.Weekday{
	"1": model.Sunday, "2": model.Monday, "3": model.Tuesday, "4": model.Wednesday, "5": model.Thursday,
	"u": model.Sunday, "m": model.Monday, "t": model.Tuesday, "w": model.Wednesday, "r": model.Thursday,
	"ح": model.Sunday, "ن": model.Monday, "ث": model.Tuesday, "ر": model.Wednesday, "خ": model.Thursday,

	"sun": model.Sunday, "sunday": model.Sunday,
	"mon": model.Monday, "monday": model.Monday,
	"tue": model.Tuesday, "tuesday": model.Tuesday,
	"wed": model.Wednesday, "wednesday": model.Wednesday,
	"thu": model.Thursday, "thursday": model.Thursday,

	"الأحد": model.Sunday, "الاحد": model.Sunday,
	"الاثنين": model.Monday, "الإثنين": model.Monday,
	"الثلاثاء": model.Tuesday,
	"الأربعاء": model.Wednesday, "الاربعاء": model.Wednesday,
	"الخميس": model.Thursday,
}

// parseDays splits a day field on whitespace and commas. Repeated days are
// collapsed, unknown tokens are returned separately for logging.
func parseDays(raw string) (days []model.Weekday, unknown []string) {
	seen := [model.NumberOfDays]bool{}
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '،' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	for _, tok := range tokens {
		d, ok := dayTokens[strings.ToLower(tok)]
		if !ok {
			unknown = append(unknown, tok)
			continue
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days, unknown
}
