package scheduler

import (
	"github.com/rhyrak/go-timetable/pkg/config"
)

type Configuration struct {
	CoursesFile string
	ExportFile  string
	PDFFile     string
	Delimiter   rune
	Builder     string
	Colorer     string
	Workers     int
	Include     []string
	Ignore      []string
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		CoursesFile: "./res/courses.csv",
		ExportFile:  "schedule.csv",
		Delimiter:   ',',
		Builder:     "daybucket",
		Colorer:     "greedy",
	}
}

// FromConfig copies the optimizer related settings out of the loaded
// application configuration.
func FromConfig(cfg *config.Config) *Configuration {
	return &Configuration{
		CoursesFile: cfg.Input.CoursesFile,
		ExportFile:  cfg.Export.CSVFile,
		PDFFile:     cfg.Export.PDFFile,
		Delimiter:   cfg.Input.DelimiterRune(),
		Builder:     cfg.Optimizer.Builder,
		Colorer:     cfg.Optimizer.Colorer,
		Workers:     cfg.Optimizer.Workers,
		Include:     cfg.Optimizer.Include,
		Ignore:      cfg.Optimizer.Ignore,
	}
}
