// Package timeparse reads the free-form meeting time strings found in
// course offering exports.
//
// Parsing is lenient: a token that cannot be read yields no range and is
// treated as never overlapping anything.
package timeparse

import (
	"strings"
	"sync"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// SplitTokens breaks a raw time field into "HH:MM-HH:MM" shaped tokens.
// A single dashed field ("8:00 - 9:15") is kept whole. A field holding two
// or more whitespace separated ranges ("08:00-09:00 10:00-11:00") yields one
// token per range rather than one unparseable token, so each of those ranges
// takes part in overlap checks.
func SplitTokens(raw string) []string {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "-") {
		return nil
	}

	var dashed []string
	for _, chunk := range strings.Fields(raw) {
		if strings.Contains(chunk, "-") && chunk != "-" {
			dashed = append(dashed, chunk)
		}
	}
	if len(dashed) >= 2 {
		return dashed
	}
	return []string{raw}
}

// ParseClock converts one half of a range into minutes past midnight.
// "9" is 9:00, "930" is 9:30, "0930" and "09:30" are 9:30.
func ParseClock(s string) (int, bool) {
	s = strings.NewReplacer(":", "", ".", "", " ", "").Replace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}

	var hour, minute int
	switch {
	case len(s) <= 2:
		hour = atoi(s)
	case len(s) == 3:
		hour = atoi(s[:1])
		minute = atoi(s[1:])
	default:
		hour = atoi(s[:2])
		minute = atoi(s[2:4])
	}
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// ParseRange reads a dashed token. The bool is false for malformed tokens
// and for ranges that do not move forward in time.
func ParseRange(token string) (model.TimeRange, bool) {
	from, to, found := strings.Cut(token, "-")
	if !found {
		return model.TimeRange{}, false
	}
	start, ok := ParseClock(from)
	if !ok {
		return model.TimeRange{}, false
	}
	end, ok := ParseClock(to)
	if !ok || start >= end {
		return model.TimeRange{}, false
	}
	return model.TimeRange{Start: start, End: end}, true
}

// Overlaps reports whether two raw tokens describe intersecting ranges.
// Unparseable input never overlaps.
func Overlaps(a, b string) bool {
	ra, ok := ParseRange(a)
	if !ok {
		return false
	}
	rb, ok := ParseRange(b)
	if !ok {
		return false
	}
	return ra.Overlaps(rb)
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

type cached struct {
	r  model.TimeRange
	ok bool
}

// Cache memoizes ParseRange. It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cached
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cached)}
}

func (c *Cache) Range(token string) (model.TimeRange, bool) {
	c.mu.RLock()
	e, hit := c.entries[token]
	c.mu.RUnlock()
	if hit {
		return e.r, e.ok
	}
	r, ok := ParseRange(token)
	c.mu.Lock()
	c.entries[token] = cached{r: r, ok: ok}
	c.mu.Unlock()
	return r, ok
}

// Overlaps is the memoized form of the package level Overlaps.
func (c *Cache) Overlaps(a, b string) bool {
	ra, ok := c.Range(a)
	if !ok {
		return false
	}
	rb, ok := c.Range(b)
	if !ok {
		return false
	}
	return ra.Overlaps(rb)
}
