package main

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/model"
)

const (
	csvSuffix = "-schedule.csv"
	pdfSuffix = "-schedule.pdf"
)

// createAndExportSchedule runs one optimizer invocation for an upload and
// writes its CSV and PDF exports under the generated directory. Export
// problems are logged and returned as warnings; the result is kept.
func (s *server) createAndExportSchedule(id string, table model.Table, opts *scheduler.Configuration) (*scheduler.Result, []string, error) {
	optimizer := scheduler.NewFromConfiguration(opts, s.logger.With(zap.String("schedule_id", id)), scheduler.WithRecorder(s.metrics))
	res, err := optimizer.Run(table)
	if err != nil {
		return res, nil, err
	}

	var warnings []string
	csvPath := filepath.Join(s.generatedDir, id+csvSuffix)
	if err := csvio.ExportSchedule(res.Entries, csvPath); err != nil {
		s.logger.Error("schedule export failed", zap.String("schedule_id", id), zap.Error(err))
		warnings = append(warnings, err.Error())
	}
	pdfPath := filepath.Join(s.generatedDir, id+pdfSuffix)
	if err := csvio.ExportPDF(res.Entries, pdfPath, "Weekly timetable"); err != nil {
		s.logger.Error("pdf export failed", zap.String("schedule_id", id), zap.Error(err))
		warnings = append(warnings, err.Error())
	}
	return res, warnings, nil
}
