// Package importer drives an upload end to end: parse the workbook, detect
// the header, resolve the column mapping, normalize, aggregate, qualify, and
// rank. Progress streams over a channel; only the newest upload's result is
// kept when several run at once.
package importer

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/calculator"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/mapper"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/normalizer"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/period"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/workbook"
)

// thresholdMetrics maps persisted threshold names to the metric they floor.
var thresholdMetrics = map[string]string{
	"minCarCount": "cars",
	"minNps":      "nps",
}

// Settings is the persistence surface the coordinator reads. The SQLite
// store satisfies it; tests use a stub.
type Settings interface {
	GetGoals(cadence model.Cadence) (model.GoalMap, error)
	GetThresholds() (map[string]float64, error)
	ListDirectory() ([]model.DirectoryEntry, error)
}

// Request describes one upload run.
type Request struct {
	UploadID     string
	FileName     string
	Data         []byte
	Cadence      model.Cadence
	Scope        model.Scope
	Sheet        string              // empty imports the first sheet
	HeaderRow    *int                // nil auto-detects the header row
	Mapping      model.ColumnMapping // nil auto-guesses from headers
	SelectedKeys []string            // nil selects the whole catalog
	PercentScale normalizer.PercentScale
	RankMetric   string // empty skips the leaderboard
	SecondaryKey string
	RankLimit    int
	FullRoster   bool // include directory shops with no data
}

// ProgressEvent is one step of an import streamed to the client.
type ProgressEvent struct {
	Type      string      `json:"type"` // start/parsed/mapped/normalized/aggregated/ranked/done/superseded/error
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Result is the finished pipeline output for one upload.
type Result struct {
	UploadID        string                   `json:"uploadId"`
	FileName        string                   `json:"fileName"`
	ReportingPeriod string                   `json:"reportingPeriod,omitempty"`
	Headers         []string                 `json:"headers"`
	Mapping         model.ColumnMapping      `json:"mapping"`
	Rows            []model.NormalizedRow    `json:"rows"`
	Aggregates      []model.AggregateRow     `json:"aggregates"`
	Qualified       []model.AggregateRow     `json:"qualified"`
	Disqualified    []model.AggregateRow     `json:"disqualified"`
	Leaderboard     []model.LeaderboardEntry `json:"leaderboard,omitempty"`
	Goals           model.GoalMap            `json:"goals,omitempty"`
	Diagnostics     model.Diagnostics        `json:"diagnostics"`
	Elapsed         time.Duration            `json:"elapsed"`
}

// Coordinator runs imports and retains the latest finished result.
type Coordinator struct {
	matcher  *mapper.Matcher
	settings Settings

	generation uint64

	mu     sync.RWMutex
	latest *Result
}

// NewCoordinator wires the matcher and settings source. Settings may be nil;
// the pipeline then runs with defaults and no roster.
func NewCoordinator(matcher *mapper.Matcher, settings Settings) *Coordinator {
	return &Coordinator{matcher: matcher, settings: settings}
}

// Import starts the pipeline and returns its progress channel. The channel
// is buffered and closed when the run ends. A run that finishes after a
// newer upload started reports superseded instead of publishing its result.
func (c *Coordinator) Import(ctx context.Context, req Request) <-chan ProgressEvent {
	events := make(chan ProgressEvent, 100)
	gen := atomic.AddUint64(&c.generation, 1)

	go func() {
		defer close(events)
		c.run(ctx, gen, req, events)
	}()

	return events
}

// Latest returns the most recently published result, nil before the first
// completed import.
func (c *Coordinator) Latest() *Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

func (c *Coordinator) run(ctx context.Context, gen uint64, req Request, events chan<- ProgressEvent) {
	start := time.Now()
	if req.UploadID == "" {
		req.UploadID = uuid.NewString()
	}
	if req.Cadence == "" {
		req.Cadence = model.CadenceWeekly
	}
	if req.Scope == "" {
		req.Scope = model.ScopeShop
	}
	if req.SelectedKeys == nil {
		req.SelectedKeys = model.CatalogKeys()
	}

	send := func(eventType, message string, data interface{}) {
		events <- ProgressEvent{Type: eventType, Message: message, Data: data, Timestamp: time.Now()}
	}
	fail := func(stage string, err error) {
		send("error", fmt.Sprintf("%s: %v", stage, err), nil)
	}

	send("start", "import started", map[string]string{
		"uploadId": req.UploadID,
		"fileName": req.FileName,
	})

	wb, err := workbook.Open(req.Data, req.FileName)
	if err != nil {
		fail("parse workbook", err)
		return
	}
	sheet := &wb.Sheets[0]
	if req.Sheet != "" {
		if sheet = wb.Sheet(req.Sheet); sheet == nil {
			fail("select sheet", fmt.Errorf("no sheet named %q, workbook has %v", req.Sheet, wb.SheetNames()))
			return
		}
	}
	headerIdx := workbook.DetectHeaderRow(sheet.Rows)
	if req.HeaderRow != nil {
		// An out-of-range override surfaces as ErrInvalidHeaderRow below.
		headerIdx = *req.HeaderRow
	}
	objectRows, headers, err := workbook.ToObjectRows(sheet.Rows, headerIdx)
	if err != nil {
		fail("read rows", err)
		return
	}
	send("parsed", fmt.Sprintf("parsed sheet %q", sheet.Name), map[string]interface{}{
		"headerRow": headerIdx,
		"rows":      len(objectRows),
	})
	if ctx.Err() != nil {
		fail("canceled", ctx.Err())
		return
	}

	mapping := req.Mapping
	if mapping == nil {
		mapping = c.matcher.AutoGuess(headers, req.SelectedKeys)
	}
	send("mapped", "column mapping resolved", mapping)

	rows, diag := normalizer.Normalize(objectRows, mapping, req.SelectedKeys, req.Cadence, normalizer.Options{
		PercentScale: req.PercentScale,
	})
	send("normalized", fmt.Sprintf("%d rows normalized, %d skipped", diag.RowsOut, diag.RowsSkipped), diag)
	if ctx.Err() != nil {
		fail("canceled", ctx.Err())
		return
	}

	goals, rules, directory := c.loadSettings(req.Cadence)

	aggregates := calculator.Aggregate(rows, req.Scope, calculator.AggregateOptions{
		Directory:           directory,
		IncludePlaceholders: req.FullRoster && req.Scope == model.ScopeShop,
	})
	qualified, disqualified := calculator.Qualify(aggregates, rules)
	send("aggregated", fmt.Sprintf("%d groups, %d qualified", len(aggregates), len(qualified)), nil)

	result := &Result{
		UploadID:        req.UploadID,
		FileName:        req.FileName,
		ReportingPeriod: period.InferFromFileName(req.FileName),
		Headers:         headers,
		Mapping:         mapping,
		Rows:            rows,
		Aggregates:      aggregates,
		Qualified:       qualified,
		Disqualified:    disqualified,
		Goals:           goals,
		Diagnostics:     diag,
	}

	if req.RankMetric != "" {
		board, err := calculator.Rank(qualified, req.RankMetric, calculator.RankOptions{
			Goals:        goals,
			SecondaryKey: req.SecondaryKey,
			Limit:        req.RankLimit,
		})
		if err != nil {
			fail("rank", err)
			return
		}
		result.Leaderboard = board
		send("ranked", fmt.Sprintf("leaderboard built for %s", req.RankMetric), nil)
	}

	if ctx.Err() != nil {
		fail("canceled", ctx.Err())
		return
	}

	result.Elapsed = time.Since(start)
	if !c.publish(gen, result) {
		send("superseded", "a newer upload finished first", nil)
		return
	}
	send("done", "import complete", map[string]interface{}{
		"uploadId": result.UploadID,
		"elapsed":  result.Elapsed.String(),
	})
}

// publish installs the result unless a newer import has started since.
func (c *Coordinator) publish(gen uint64, result *Result) bool {
	if atomic.LoadUint64(&c.generation) != gen {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = result
	return true
}

// loadSettings pulls goals, qualification rules, and the directory. Any
// store failure degrades to defaults; an upload should never die on a
// settings read.
func (c *Coordinator) loadSettings(cadence model.Cadence) (model.GoalMap, []calculator.QualifyRule, []model.DirectoryEntry) {
	if c.settings == nil {
		return nil, nil, nil
	}

	goals, err := c.settings.GetGoals(cadence)
	if err != nil {
		goals = nil
	}

	var rules []calculator.QualifyRule
	if thresholds, err := c.settings.GetThresholds(); err == nil {
		for name, metricKey := range thresholdMetrics {
			if value, ok := thresholds[name]; ok {
				rules = append(rules, calculator.QualifyRule{MetricKey: metricKey, Min: model.Float(value)})
			}
		}
	}

	directory, err := c.settings.ListDirectory()
	if err != nil {
		directory = nil
	}
	return goals, rules, directory
}
