package model

// Row maps a raw column header to its cell value.
type Row map[string]string

// Table is an ordered sequence of raw rows as read from the input file.
type Table []Row

// TimeRange is a meeting interval in minutes past midnight, Start < End.
type TimeRange struct {
	Start int
	End   int
}

// Overlaps treats ranges as half-open, touching endpoints do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return !(r.End <= other.Start || other.End <= r.Start)
}
