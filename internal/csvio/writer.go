package csvio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// ExportSchedule formats the schedule entries into ScheduleCSVRow structs
// and writes them to the CSV file at path, replacing any previous file.
func ExportSchedule(entries []model.ScheduleEntry, path string) error {
	nice := formatSchedule(entries)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportError(err, path)
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return exportError(err, path)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&nice, out); err != nil {
		return exportError(err, path)
	}
	return nil
}

// ExportScheduleString renders the same CSV as ExportSchedule in memory.
func ExportScheduleString(entries []model.ScheduleEntry) (string, error) {
	nice := formatSchedule(entries)
	str, err := gocsv.MarshalString(&nice)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrExportFailed.Code, appErrors.ErrExportFailed.Status, "failed to render schedule")
	}
	return str, nil
}

// PrintSchedule prints the weekly schedule grouped by day.
func PrintSchedule(w io.Writer, entries []model.ScheduleEntry) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b model.ScheduleEntry) int {
		if day := int(a.Slot.Day) - int(b.Slot.Day); day != 0 {
			return day
		}
		if slot := strings.Compare(a.Slot.TimeSlot, b.Slot.TimeSlot); slot != 0 {
			return slot
		}
		if group := a.Slot.RoomGroup - b.Slot.RoomGroup; group != 0 {
			return group
		}
		return strings.Compare(a.Course.Code, b.Course.Code)
	})

	day := model.Weekday(-1)
	for _, e := range sorted {
		if e.Slot.Day != day {
			day = e.Slot.Day
			name := day.String()
			fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", (32-len(name))/2), name, strings.Repeat("-", (33-len(name))/2))
		}
		fmt.Fprintf(w, "%-12s G%-3d %-10s %-8s %s\n", e.Slot.TimeSlot, e.Slot.RoomGroup, e.Course.Code, e.Course.CRN, e.Course.Instructor)
	}
	fmt.Fprintf(w, "Printed rows: %d\n", len(sorted))
}

func formatSchedule(entries []model.ScheduleEntry) []*model.ScheduleCSVRow {
	formatted := make([]*model.ScheduleCSVRow, 0, len(entries))
	for _, e := range entries {
		c := e.Course
		formatted = append(formatted, &model.ScheduleCSVRow{
			CourseCode:   c.Code,
			CRN:          c.CRN,
			Section:      c.Section,
			CourseName:   c.DisplayName,
			Instructor:   c.Instructor,
			ActivityType: c.ActivityType,
			Day:          e.Slot.Day.String(),
			TimeSlot:     e.Slot.TimeSlot,
			RoomGroup:    e.Slot.RoomGroup,
			Status:       c.Status,
			Color:        e.Color,
		})
	}
	return formatted
}

func exportError(err error, path string) error {
	return appErrors.Wrap(err, appErrors.ErrExportFailed.Code, appErrors.ErrExportFailed.Status, "failed to write "+path)
}
