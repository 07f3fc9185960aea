package csvio

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/rhyrak/go-timetable/pkg/model"
)

var pdfHeaders = []string{"Code", "CRN", "Sec", "Day", "Time", "Group", "Color", "Activity"}
var pdfWidths = []float64{30, 25, 15, 30, 35, 18, 17, 20}

// RenderPDF lays the schedule out as a landscape A4 table. The core PDF
// fonts only cover Latin-1, so names are left out and non Latin-1 cells
// are replaced by '?'.
func RenderPDF(entries []model.ScheduleEntry, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(tr(latin1(title))), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	pdf.SetFont("Arial", "B", 10)
	for i, header := range pdfHeaders {
		pdf.CellFormat(pdfWidths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, e := range entries {
		cells := []string{
			e.Course.Code,
			e.Course.CRN,
			e.Course.Section,
			e.Slot.Day.String(),
			e.Slot.TimeSlot,
			strconv.Itoa(e.Slot.RoomGroup),
			strconv.Itoa(e.Color),
			e.Course.ActivityType,
		}
		for i, v := range cells {
			pdf.CellFormat(pdfWidths[i], 7, tr(latin1(v)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportPDF writes RenderPDF output to path.
func ExportPDF(entries []model.ScheduleEntry, path, title string) error {
	data, err := RenderPDF(entries, title)
	if err != nil {
		return exportError(err, path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return exportError(err, path)
	}
	return nil
}

func latin1(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xff {
			return '?'
		}
		return r
	}, s)
}
