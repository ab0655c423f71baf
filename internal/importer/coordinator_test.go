package importer

import (
	"bytes"
	"context"
	"sync/atomic"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/alias"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/mapper"
	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

type stubSettings struct {
	goals      model.GoalMap
	thresholds map[string]float64
	directory  []model.DirectoryEntry
}

func (s *stubSettings) GetGoals(model.Cadence) (model.GoalMap, error) { return s.goals, nil }
func (s *stubSettings) GetThresholds() (map[string]float64, error)   { return s.thresholds, nil }
func (s *stubSettings) ListDirectory() ([]model.DirectoryEntry, error) {
	return s.directory, nil
}

func writeGrid(t *testing.T, f *excelize.File, sheet string, cells [][]interface{}) {
	t.Helper()

	for r, row := range cells {
		for col, value := range row {
			if value == nil {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(col+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, ref, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
}

func finishUpload(t *testing.T, f *excelize.File) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func buildUpload(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	writeGrid(t, f, "Sheet1", [][]interface{}{
		{"District KPI Export", nil, nil, nil},
		{"Shop", "District", "Car Count", "NPS"},
		{447, "North", 120, 85},
		{511, "North", 90, 95},
	})
	return finishUpload(t, f)
}

// buildMultiSheetUpload puts the data on a second sheet; the first one holds
// only commentary.
func buildMultiSheetUpload(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	writeGrid(t, f, "Sheet1", [][]interface{}{
		{"Commentary only, no data on this sheet"},
	})
	if _, err := f.NewSheet("Metrics"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	writeGrid(t, f, "Metrics", [][]interface{}{
		{"Shop", "District", "Car Count", "NPS"},
		{447, "North", 120, 85},
		{511, "North", 90, 95},
	})
	return finishUpload(t, f)
}

// buildDeepHeaderUpload buries the header past the detection window, and its
// shop column carries a name detection would not catch either.
func buildDeepHeaderUpload(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	cells := make([][]interface{}, 0, 12)
	for i := 0; i < 9; i++ {
		cells = append(cells, []interface{}{"quarterly commentary"})
	}
	cells = append(cells,
		[]interface{}{"Location", "District", "Car Count", "NPS"},
		[]interface{}{447, "North", 120, 85},
		[]interface{}{511, "North", 90, 95},
	)
	writeGrid(t, f, "Sheet1", cells)
	return finishUpload(t, f)
}

func drain(ch <-chan ProgressEvent) map[string]int {
	counts := make(map[string]int)
	for event := range ch {
		counts[event.Type]++
	}
	return counts
}

func TestImport_EndToEnd(t *testing.T) {
	t.Parallel()

	settings := &stubSettings{
		thresholds: map[string]float64{"minCarCount": 100, "minNps": 80},
	}
	c := NewCoordinator(mapper.New(alias.NewManager(nil)), settings)

	events := c.Import(context.Background(), Request{
		FileName:     "kpi_p05_fy26.xlsx",
		Data:         buildUpload(t),
		Cadence:      model.CadenceWeekly,
		SelectedKeys: []string{"cars", "nps"},
		RankMetric:   "cars",
	})

	counts := drain(events)
	if counts["error"] != 0 {
		t.Fatalf("unexpected error events: %v", counts)
	}
	if counts["done"] != 1 {
		t.Fatalf("expected one done event, got %v", counts)
	}

	result := c.Latest()
	if result == nil {
		t.Fatal("no result published")
	}

	if result.ReportingPeriod != "P05 2026" {
		t.Errorf("ReportingPeriod = %q", result.ReportingPeriod)
	}
	if result.Diagnostics.RowsOut != 2 {
		t.Errorf("diagnostics = %+v", result.Diagnostics)
	}

	// 511 misses the 100-car floor; only 447 survives qualification.
	if len(result.Qualified) != 1 || result.Qualified[0].ScopeKey != "447" {
		t.Fatalf("qualified = %+v", result.Qualified)
	}
	if len(result.Disqualified) != 1 || result.Disqualified[0].ScopeKey != "511" {
		t.Fatalf("disqualified = %+v", result.Disqualified)
	}

	if len(result.Leaderboard) != 1 || result.Leaderboard[0].EntityID != "447" || result.Leaderboard[0].Rank != 1 {
		t.Fatalf("leaderboard = %+v", result.Leaderboard)
	}
	if result.Leaderboard[0].MetricValue != 120 {
		t.Errorf("leaderboard value = %v", result.Leaderboard[0].MetricValue)
	}
}

func TestImport_AutoMapsHeadersBelowTitleRow(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(mapper.New(alias.NewManager(nil)), nil)

	events := c.Import(context.Background(), Request{
		FileName:     "upload.xlsx",
		Data:         buildUpload(t),
		SelectedKeys: []string{"cars", "nps"},
	})
	drain(events)

	result := c.Latest()
	if result == nil {
		t.Fatal("no result published")
	}
	if result.Mapping[model.KeyShopNumber] != "Shop" {
		t.Errorf("shop mapping = %q", result.Mapping[model.KeyShopNumber])
	}
	if result.Mapping["cars"] != "Car Count" {
		t.Errorf("cars mapping = %q", result.Mapping["cars"])
	}
	// No thresholds configured: everything qualifies.
	if len(result.Qualified) != 2 {
		t.Errorf("qualified = %+v", result.Qualified)
	}
}

func TestImport_SelectsNamedSheet(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(mapper.New(alias.NewManager(nil)), nil)

	counts := drain(c.Import(context.Background(), Request{
		FileName:     "upload.xlsx",
		Data:         buildMultiSheetUpload(t),
		Sheet:        "Metrics",
		SelectedKeys: []string{"cars", "nps"},
	}))
	if counts["error"] != 0 || counts["done"] != 1 {
		t.Fatalf("events = %v", counts)
	}

	result := c.Latest()
	if result == nil {
		t.Fatal("no result published")
	}
	if result.Mapping["cars"] != "Car Count" {
		t.Errorf("cars mapping = %q", result.Mapping["cars"])
	}
	if result.Diagnostics.RowsOut != 2 {
		t.Errorf("diagnostics = %+v", result.Diagnostics)
	}
}

func TestImport_MissingSheetFails(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(mapper.New(alias.NewManager(nil)), nil)

	counts := drain(c.Import(context.Background(), Request{
		FileName: "upload.xlsx",
		Data:     buildMultiSheetUpload(t),
		Sheet:    "Totals",
	}))
	if counts["error"] != 1 || counts["done"] != 0 {
		t.Fatalf("events = %v", counts)
	}
	if c.Latest() != nil {
		t.Fatal("failed import must not publish a result")
	}
}

func TestImport_HeaderRowOverride(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(mapper.New(alias.NewManager(nil)), nil)

	headerRow := 9
	counts := drain(c.Import(context.Background(), Request{
		FileName:     "upload.xlsx",
		Data:         buildDeepHeaderUpload(t),
		HeaderRow:    &headerRow,
		SelectedKeys: []string{"cars", "nps"},
	}))
	if counts["error"] != 0 || counts["done"] != 1 {
		t.Fatalf("events = %v", counts)
	}

	result := c.Latest()
	if result == nil {
		t.Fatal("no result published")
	}
	if result.Mapping[model.KeyShopNumber] != "Location" {
		t.Errorf("shop mapping = %q", result.Mapping[model.KeyShopNumber])
	}
	if result.Diagnostics.RowsOut != 2 {
		t.Errorf("diagnostics = %+v", result.Diagnostics)
	}
}

func TestImport_HeaderRowOverrideOutOfRange(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(mapper.New(alias.NewManager(nil)), nil)

	headerRow := 42
	counts := drain(c.Import(context.Background(), Request{
		FileName:  "upload.xlsx",
		Data:      buildUpload(t),
		HeaderRow: &headerRow,
	}))
	if counts["error"] != 1 || counts["done"] != 0 {
		t.Fatalf("events = %v", counts)
	}
}

func TestImport_CanceledContext(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(mapper.New(alias.NewManager(nil)), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	counts := drain(c.Import(ctx, Request{FileName: "upload.xlsx", Data: buildUpload(t)}))
	if counts["error"] == 0 {
		t.Fatalf("canceled import should emit an error event, got %v", counts)
	}
	if counts["done"] != 0 {
		t.Fatalf("canceled import must not complete, got %v", counts)
	}
	if c.Latest() != nil {
		t.Fatal("canceled import must not publish a result")
	}
}

func TestImport_UnreadableUpload(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(mapper.New(alias.NewManager(nil)), nil)

	counts := drain(c.Import(context.Background(), Request{
		FileName: "upload.xlsx",
		Data:     []byte("not a workbook"),
	}))
	if counts["error"] != 1 || counts["done"] != 0 {
		t.Fatalf("events = %v", counts)
	}
}

func TestPublish_StaleGenerationIsDropped(t *testing.T) {
	t.Parallel()

	c := NewCoordinator(mapper.New(alias.NewManager(nil)), nil)

	// Two imports have started since this run began.
	atomic.AddUint64(&c.generation, 2)

	if c.publish(1, &Result{UploadID: "stale"}) {
		t.Fatal("stale generation must not publish")
	}
	if c.Latest() != nil {
		t.Fatal("stale result leaked into Latest")
	}
	if !c.publish(2, &Result{UploadID: "current"}) {
		t.Fatal("current generation must publish")
	}
	if got := c.Latest(); got == nil || got.UploadID != "current" {
		t.Fatalf("Latest = %+v", got)
	}
}
