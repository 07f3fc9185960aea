package normalize

import "strings"

type field int

const (
	fieldCode field = iota
	fieldCRN
	fieldSection
	fieldStatus
	fieldName
	fieldHours
	fieldDays
	fieldTime
	fieldActivity
	fieldInstructor
)

// Column headers as they appear in the registrar's Arabic export, followed
// by the English spellings seen in translated sheets.
var columnAliases = map[field][]string{
	fieldCode:       {"رمز المقرر", "course code", "code"},
	fieldCRN:        {"الرقم المرجعي", "crn"},
	fieldSection:    {"الشعبة", "section"},
	fieldStatus:     {"الحالة", "status", "section status"},
	fieldName:       {"اسم المقرر", "course name", "name"},
	fieldHours:      {"الساعات المعتمدة", "credit hours", "hours"},
	fieldDays:       {"الأيام", "days"},
	fieldTime:       {"الوقت", "time"},
	fieldActivity:   {"النشاط", "activity", "activity type"},
	fieldInstructor: {"المحاضر", "instructor", "instructor name"},
}

var aliasIndex = func() map[string]field {
	idx := make(map[string]field)
	for f, names := range columnAliases {
		for _, n := range names {
			idx[canonicalHeader(n)] = f
		}
	}
	return idx
}()

// canonicalHeader folds case, surrounding whitespace and a leading BOM so
// headers written by spreadsheet tools still match.
func canonicalHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

// resolve maps a raw row to recognized fields. Unknown columns are ignored.
// When a sheet carries several spellings of one column, the first non-empty
// alias in columnAliases order wins, so the Arabic header takes precedence.
func resolve(raw map[string]string) map[field]string {
	canon := make(map[string]string, len(raw))
	origin := make(map[string]string, len(raw))
	for header, value := range raw {
		key := canonicalHeader(header)
		if _, ok := aliasIndex[key]; !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if prev, seen := canon[key]; seen {
			// headers differing only in case or spacing: keep a stable pick
			if prev != "" && (value == "" || origin[key] < header) {
				continue
			}
		}
		canon[key] = value
		origin[key] = header
	}

	out := make(map[field]string, len(columnAliases))
	for f, names := range columnAliases {
		for _, n := range names {
			value, ok := canon[canonicalHeader(n)]
			if !ok {
				continue
			}
			if _, seen := out[f]; !seen || value != "" {
				out[f] = value
			}
			if value != "" {
				break
			}
		}
	}
	return out
}
