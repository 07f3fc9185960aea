package main

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/metrics"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/config"
	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
)

type server struct {
	defaults     *scheduler.Configuration
	generatedDir string
	logger       *zap.Logger
	metrics      *metrics.Service
}

func newServer(cfg *config.Config, logger *zap.Logger, m *metrics.Service) *server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &server{
		defaults:     scheduler.FromConfig(cfg),
		generatedDir: cfg.Export.GeneratedDir,
		logger:       logger,
		metrics:      m,
	}
}

// scheduleForm holds the optional overrides sent next to the upload.
type scheduleForm struct {
	Delimiter string `form:"delimiter" binding:"omitempty,len=1"`
	Builder   string `form:"builder" binding:"omitempty,oneof=pairwise daybucket parallel"`
	Colorer   string `form:"colorer" binding:"omitempty,oneof=greedy dsatur"`
	Include   string `form:"include"`
	Ignore    string `form:"ignore"`
}

type collisionJSON struct {
	First     string `json:"first"`
	Second    string `json:"second"`
	Day       string `json:"day"`
	TimeSlot  string `json:"timeSlot"`
	RoomGroup int    `json:"roomGroup"`
}

func abortWithError(ctx *gin.Context, err error) {
	e := appErrors.FromError(err)
	ctx.JSON(e.Status, gin.H{"code": e.Code, "message": e.Error()})
}

func (s *server) handleGetSchedule(ctx *gin.Context) {
	files, err := os.ReadDir(s.generatedDir)
	if err != nil && !os.IsNotExist(err) {
		abortWithError(ctx, err)
		return
	}

	allIDs := []string{}
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		id, ok := strings.CutSuffix(file.Name(), csvSuffix)
		if ok {
			allIDs = append(allIDs, id)
		}
	}
	sort.Strings(allIDs)

	ctx.JSON(http.StatusOK, gin.H{
		"scheduleIds": allIDs,
	})
}

// generatedFile resolves an id to a file in the generated directory. Only
// uuids are accepted so the id cannot escape the directory.
func (s *server) generatedFile(ctx *gin.Context, suffix string) (string, bool) {
	id := ctx.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		abortWithError(ctx, appErrors.ErrNotFound)
		return "", false
	}
	path := filepath.Join(s.generatedDir, id+suffix)
	if _, err := os.Stat(path); err != nil {
		abortWithError(ctx, appErrors.ErrNotFound)
		return "", false
	}
	return path, true
}

func (s *server) handleGetScheduleWithId(ctx *gin.Context) {
	path, ok := s.generatedFile(ctx, csvSuffix)
	if !ok {
		return
	}
	content, err := os.ReadFile(path)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"data": string(content),
	})
}

func (s *server) handleGetSchedulePDF(ctx *gin.Context) {
	path, ok := s.generatedFile(ctx, pdfSuffix)
	if !ok {
		return
	}
	ctx.FileAttachment(path, filepath.Base(path))
}

func (s *server) handlePostSchedule(ctx *gin.Context) {
	var form scheduleForm
	if err := ctx.ShouldBind(&form); err != nil {
		abortWithError(ctx, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule options"))
		return
	}

	header, err := ctx.FormFile("courses")
	if err != nil {
		abortWithError(ctx, appErrors.Clone(appErrors.ErrValidation, "missing courses file"))
		return
	}
	file, err := header.Open()
	if err != nil {
		abortWithError(ctx, appErrors.Wrap(err, appErrors.ErrDatasetUnreadable.Code, appErrors.ErrDatasetUnreadable.Status, "failed to open upload"))
		return
	}
	defer file.Close()

	opts := s.options(form)
	table, err := csvio.ReadTable(file, opts.Delimiter)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	id := uuid.NewString()
	s.logger.Info("generating schedule",
		zap.String("schedule_id", id),
		zap.String("upload", header.Filename),
		zap.String("builder", opts.Builder),
		zap.String("colorer", opts.Colorer))

	res, warnings, err := s.createAndExportSchedule(id, table, opts)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	collisions := make([]collisionJSON, 0, len(res.Report.Collisions))
	for _, c := range res.Report.Collisions {
		collisions = append(collisions, collisionJSON{
			First:     c.First.String(),
			Second:    c.Second.String(),
			Day:       c.Slot.Day.String(),
			TimeSlot:  c.Slot.TimeSlot,
			RoomGroup: c.Slot.RoomGroup,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":         id,
		"valid":      res.Report.Valid,
		"collisions": collisions,
		"warnings":   warnings,
		"stats": gin.H{
			"rows":       res.Stats.Rows,
			"kept":       res.Stats.Kept,
			"skipped":    res.Stats.Skipped,
			"duplicates": res.Stats.Duplicates,
			"filtered":   res.Stats.Filtered,
			"vertices":   res.Stats.Vertices,
			"edges":      res.Stats.Edges,
			"colors":     res.Stats.Colors,
			"roomGroups": res.Stats.RoomGroups,
			"elapsedMs":  res.Stats.Elapsed.Milliseconds(),
		},
	})
}

// options layers the request overrides on top of the configured defaults.
// Each request gets its own copy.
func (s *server) options(form scheduleForm) *scheduler.Configuration {
	opts := *s.defaults
	if form.Delimiter != "" {
		opts.Delimiter = []rune(form.Delimiter)[0]
	}
	if form.Builder != "" {
		opts.Builder = form.Builder
	}
	if form.Colorer != "" {
		opts.Colorer = form.Colorer
	}
	if form.Include != "" {
		opts.Include = splitCodes(form.Include)
	}
	if form.Ignore != "" {
		opts.Ignore = splitCodes(form.Ignore)
	}
	return &opts
}

func splitCodes(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
