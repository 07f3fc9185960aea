package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string `validate:"required,oneof=development production"`
	Port int    `validate:"min=1,max=65535"`

	Log       LogConfig
	Input     InputConfig
	Export    ExportConfig
	Optimizer OptimizerConfig
}

type LogConfig struct {
	Level  string
	Format string `validate:"omitempty,oneof=json console"`
}

// InputConfig locates the raw course offering table.
type InputConfig struct {
	CoursesFile string
	Delimiter   string `validate:"required,len=1"`
}

// ExportConfig controls where schedules are written. An empty PDFFile
// disables the PDF timetable.
type ExportConfig struct {
	CSVFile      string `validate:"required"`
	PDFFile      string
	GeneratedDir string `validate:"required"`
}

// OptimizerConfig selects the graph and coloring strategies.
type OptimizerConfig struct {
	Builder string   `validate:"required,oneof=pairwise daybucket parallel"`
	Colorer string   `validate:"required,oneof=greedy dsatur"`
	Workers int      `validate:"min=0"`
	Include []string `validate:"dive,required"`
	Ignore  []string `validate:"dive,required"`
}

// DelimiterRune returns the configured CSV separator.
func (c InputConfig) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}

// Flags registers the command line overrides understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("courses", "c", "", "course offerings CSV file")
	fs.StringP("delimiter", "d", "", "CSV field delimiter")
	fs.StringP("out", "o", "", "schedule CSV export path")
	fs.String("pdf", "", "optional schedule PDF export path")
	fs.String("builder", "", "conflict graph builder: pairwise, daybucket or parallel")
	fs.String("colorer", "", "coloring strategy: greedy or dsatur")
	fs.Int("workers", 0, "worker count for the parallel builder (0 = GOMAXPROCS)")
	fs.String("include", "", "comma separated course codes to keep")
	fs.String("ignore", "", "comma separated course codes to drop")
	fs.String("log-level", "", "log level")
	return fs
}

var flagKeys = map[string]string{
	"courses":   "COURSES_FILE",
	"delimiter": "CSV_DELIMITER",
	"out":       "EXPORT_FILE",
	"pdf":       "PDF_FILE",
	"builder":   "GRAPH_BUILDER",
	"colorer":   "COLORER",
	"workers":   "BUILDER_WORKERS",
	"include":   "INCLUDE_COURSES",
	"ignore":    "IGNORE_COURSES",
	"log-level": "LOG_LEVEL",
}

// Load reads configuration from .env, the environment and, when flags is not
// nil, from explicitly set command line flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, configError(err, "read .env")
		}
	}

	if flags != nil {
		for flag, key := range flagKeys {
			f := flags.Lookup(flag)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, configError(err, "bind flag "+flag)
			}
		}
	}

	cfg := &Config{
		Env:  v.GetString("ENV"),
		Port: v.GetInt("PORT"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Input = InputConfig{
		CoursesFile: v.GetString("COURSES_FILE"),
		Delimiter:   v.GetString("CSV_DELIMITER"),
	}

	cfg.Export = ExportConfig{
		CSVFile:      v.GetString("EXPORT_FILE"),
		PDFFile:      v.GetString("PDF_FILE"),
		GeneratedDir: v.GetString("GENERATED_DIR"),
	}

	cfg.Optimizer = OptimizerConfig{
		Builder: strings.ToLower(v.GetString("GRAPH_BUILDER")),
		Colorer: strings.ToLower(v.GetString("COLORER")),
		Workers: v.GetInt("BUILDER_WORKERS"),
		Include: splitAndTrim(v.GetString("INCLUDE_COURSES")),
		Ignore:  splitAndTrim(v.GetString("IGNORE_COURSES")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags of the whole configuration tree.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return configError(err, "validation failed")
	}
	return nil
}

func configError(err error, detail string) error {
	return appErrors.Wrap(err, appErrors.ErrInvalidConfig.Code, appErrors.ErrInvalidConfig.Status,
		appErrors.ErrInvalidConfig.Message+": "+detail)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3001)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("COURSES_FILE", "./res/courses.csv")
	v.SetDefault("CSV_DELIMITER", ",")

	v.SetDefault("EXPORT_FILE", "schedule.csv")
	v.SetDefault("PDF_FILE", "")
	v.SetDefault("GENERATED_DIR", "db/generated")

	v.SetDefault("GRAPH_BUILDER", "daybucket")
	v.SetDefault("COLORER", "greedy")
	v.SetDefault("BUILDER_WORKERS", 0)
	v.SetDefault("INCLUDE_COURSES", "")
	v.SetDefault("IGNORE_COURSES", "")
}

// viper reports a missing explicit config file as a plain fs error.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
