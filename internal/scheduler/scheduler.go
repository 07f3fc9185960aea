package scheduler

import (
	"time"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/coloring"
	"github.com/rhyrak/go-timetable/internal/graph"
	"github.com/rhyrak/go-timetable/internal/normalize"
	"github.com/rhyrak/go-timetable/internal/slots"
	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

// Stage names reported to a Recorder.
const (
	StageNormalize = "normalize"
	StageGraph     = "graph"
	StageColor     = "color"
	StageMap       = "map"
	StageValidate  = "validate"
)

// Recorder receives per-stage timings and the outcome of each run.
type Recorder interface {
	ObserveStage(stage string, d time.Duration)
	ObserveRun(stats Stats, valid bool, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveStage(string, time.Duration) {}
func (nopRecorder) ObserveRun(Stats, bool, error)      {}

type Stats struct {
	Rows       int
	Kept       int
	Skipped    int
	Duplicates int
	Filtered   int
	Vertices   int
	Edges      int
	Colors     int
	RoomGroups int
	Elapsed    time.Duration
}

// Result is everything one run produced. Callers must check Report.Valid
// before trusting the schedule.
type Result struct {
	Courses []*model.Course
	Graph   *graph.ConflictGraph
	Colors  model.ColorAssignment
	Entries []model.ScheduleEntry
	Report  model.ValidationReport
	Stats   Stats
}

// Optimizer runs the stages in order. It holds no per-run state and may be
// shared by concurrent callers.
type Optimizer struct {
	normalizer *normalize.Normalizer
	builder    graph.Builder
	colorer    coloring.Colorer
	recorder   Recorder
	logger     *zap.Logger
}

type Option func(*Optimizer)

func WithBuilder(b graph.Builder) Option {
	return func(o *Optimizer) { o.builder = b }
}

func WithColorer(c coloring.Colorer) Option {
	return func(o *Optimizer) { o.colorer = c }
}

func WithRecorder(r Recorder) Option {
	return func(o *Optimizer) { o.recorder = r }
}

func WithNormalizer(n *normalize.Normalizer) Option {
	return func(o *Optimizer) { o.normalizer = n }
}

func New(logger *zap.Logger, opts ...Option) *Optimizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Optimizer{
		builder:  graph.DayBucket{},
		colorer:  coloring.Greedy{},
		recorder: nopRecorder{},
		logger:   logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.normalizer == nil {
		o.normalizer = normalize.New(logger)
	}
	return o
}

// NewFromConfiguration wires strategies and course filters by name.
func NewFromConfiguration(cfg *Configuration, logger *zap.Logger, opts ...Option) *Optimizer {
	base := []Option{
		WithBuilder(graph.NewBuilder(cfg.Builder, cfg.Workers)),
		WithColorer(coloring.NewColorer(cfg.Colorer)),
		WithNormalizer(normalize.New(logger,
			normalize.WithInclude(cfg.Include),
			normalize.WithIgnore(cfg.Ignore),
		)),
	}
	return New(logger, append(base, opts...)...)
}

// Run executes normalize, graph, color, map and validate. A dataset with no
// usable rows fails before any graph is built. A schedule that fails
// validation is still returned without error.
func (o *Optimizer) Run(table model.Table) (res *Result, err error) {
	start := time.Now()
	res = &Result{}
	defer func() {
		res.Stats.Elapsed = time.Since(start)
		o.recorder.ObserveRun(res.Stats, err == nil && res.Report.Valid, err)
	}()

	o.logger.Info("rows loaded", zap.Int("rows", len(table)))

	t := time.Now()
	norm, err := o.normalizer.Normalize(table)
	o.recorder.ObserveStage(StageNormalize, time.Since(t))
	res.Stats.Rows = norm.Stats.Rows
	res.Stats.Kept = norm.Stats.Kept
	res.Stats.Skipped = norm.Stats.Skipped
	res.Stats.Duplicates = norm.Stats.Duplicates
	res.Stats.Filtered = norm.Stats.Filtered
	if err != nil {
		return res, err
	}
	if len(norm.Courses) == 0 {
		o.logger.Error("no valid course rows after normalization",
			zap.Int("rows", norm.Stats.Rows), zap.Int("skipped", norm.Stats.Skipped))
		return res, appErrors.ErrEmptyDataset
	}
	res.Courses = norm.Courses
	o.logger.Info("courses processed",
		zap.Int("kept", norm.Stats.Kept),
		zap.Int("skipped", norm.Stats.Skipped),
		zap.Int("duplicates", norm.Stats.Duplicates),
		zap.Int("filtered", norm.Stats.Filtered))

	t = time.Now()
	res.Graph = o.builder.Build(res.Courses)
	o.recorder.ObserveStage(StageGraph, time.Since(t))
	res.Stats.Vertices = res.Graph.Len()
	res.Stats.Edges = res.Graph.EdgeCount()
	o.logger.Info("conflict graph built",
		zap.Int("vertices", res.Stats.Vertices), zap.Int("edges", res.Stats.Edges))

	t = time.Now()
	res.Colors = o.colorer.Color(res.Graph)
	o.recorder.ObserveStage(StageColor, time.Since(t))
	res.Stats.Colors = coloring.ColorCount(res.Colors)
	res.Stats.RoomGroups = slots.RoomGroups(res.Stats.Colors)
	o.logger.Info("graph colored",
		zap.Int("colors", res.Stats.Colors), zap.Int("room_groups", res.Stats.RoomGroups))

	t = time.Now()
	res.Entries = slots.MapAll(res.Graph, res.Colors)
	o.recorder.ObserveStage(StageMap, time.Since(t))

	t = time.Now()
	res.Report = Validate(res.Graph, res.Entries)
	o.recorder.ObserveStage(StageValidate, time.Since(t))
	if res.Report.Valid {
		o.logger.Info("validation passed", zap.Int("entries", len(res.Entries)))
	} else {
		for _, c := range res.Report.Collisions {
			o.logger.Error("conflicting sections share a slot",
				zap.Stringer("first", c.First),
				zap.Stringer("second", c.Second),
				zap.Stringer("day", c.Slot.Day),
				zap.String("time", c.Slot.TimeSlot),
				zap.Int("room_group", c.Slot.RoomGroup))
		}
		o.logger.Error("validation failed", zap.Int("collisions", len(res.Report.Collisions)))
	}
	return res, nil
}
