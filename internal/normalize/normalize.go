// Package normalize turns raw registrar rows into model.Course records.
package normalize

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/timeparse"
	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Stats counts what happened to the input rows.
type Stats struct {
	Rows       int
	Kept       int
	Skipped    int
	Duplicates int
	Filtered   int
}

type Result struct {
	Courses []*model.Course
	Stats   Stats
}

type Option func(*Normalizer)

// WithInclude keeps only the listed course codes. An empty list keeps all.
func WithInclude(codes []string) Option {
	return func(n *Normalizer) {
		n.include = codeSet(codes)
	}
}

// WithIgnore drops the listed course codes.
func WithIgnore(codes []string) Option {
	return func(n *Normalizer) {
		n.ignore = codeSet(codes)
	}
}

type Normalizer struct {
	logger  *zap.Logger
	include map[string]bool
	ignore  map[string]bool
}

func New(logger *zap.Logger, opts ...Option) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &Normalizer{logger: logger}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize converts every usable row of the table. Bad rows are skipped
// with a warning; only a table without code or CRN columns is an error.
func (n *Normalizer) Normalize(table model.Table) (Result, error) {
	res := Result{Stats: Stats{Rows: len(table)}}
	if len(table) == 0 {
		return res, nil
	}
	if !hasColumn(table, fieldCode) || !hasColumn(table, fieldCRN) {
		return res, appErrors.ErrMissingColumns
	}

	seen := make(map[model.CourseKey]int)
	for i, raw := range table {
		line := i + 2 // header is line 1
		fields := resolve(raw)

		code := fields[fieldCode]
		crn := fields[fieldCRN]
		if code == "" || crn == "" {
			n.logger.Warn("skipping row without course code or CRN",
				zap.Int("line", line), zap.String("code", code), zap.String("crn", crn))
			res.Stats.Skipped++
			continue
		}
		if !n.selected(code) {
			res.Stats.Filtered++
			continue
		}

		course := &model.Course{
			Code:         code,
			CRN:          crn,
			Section:      fields[fieldSection],
			Status:       fields[fieldStatus],
			DisplayName:  fields[fieldName],
			CreditHours:  n.creditHours(fields[fieldHours], line),
			TimeTokens:   timeparse.SplitTokens(fields[fieldTime]),
			ActivityType: fields[fieldActivity],
			Instructor:   fields[fieldInstructor],
		}
		days, unknown := parseDays(fields[fieldDays])
		if len(unknown) > 0 {
			n.logger.Debug("ignoring unknown day tokens",
				zap.Int("line", line), zap.Strings("tokens", unknown))
		}
		course.Days = days

		if first, dup := seen[course.Key()]; dup {
			n.logger.Warn("skipping duplicate section",
				zap.Int("line", line), zap.Int("first_line", first), zap.Stringer("key", course.Key()))
			res.Stats.Duplicates++
			continue
		}
		seen[course.Key()] = line
		res.Courses = append(res.Courses, course)
	}
	res.Stats.Kept = len(res.Courses)
	return res, nil
}

func (n *Normalizer) selected(code string) bool {
	key := strings.ToUpper(code)
	if n.ignore[key] {
		return false
	}
	return len(n.include) == 0 || n.include[key]
}

// creditHours accepts "3" and "3.0"; anything else becomes 0.
func (n *Normalizer) creditHours(raw string, line int) int {
	if raw == "" {
		return 0
	}
	if h, err := strconv.Atoi(raw); err == nil && h >= 0 {
		return h
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f < 1e6 {
		return int(f)
	}
	n.logger.Warn("credit hours not a non-negative number, using 0",
		zap.Int("line", line), zap.String("value", raw))
	return 0
}

func hasColumn(table model.Table, f field) bool {
	for _, row := range table {
		for header := range row {
			if got, ok := aliasIndex[canonicalHeader(header)]; ok && got == f {
				return true
			}
		}
	}
	return false
}

func codeSet(codes []string) map[string]bool {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			set[strings.ToUpper(c)] = true
		}
	}
	return set
}
