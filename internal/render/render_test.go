package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rickgao/trade-report/internal/analysis"
	"github.com/rickgao/trade-report/internal/config"
	"github.com/rickgao/trade-report/internal/model"
)

var base = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func sampleReport(t *testing.T) *analysis.Report {
	t.Helper()
	var records []model.TradeRecord
	for i := 0; i < 30; i++ {
		side := model.SideUp
		price := 0.30
		if i%2 == 1 {
			side = model.SideDown
			price = 0.68
		}
		records = append(records, model.TradeRecord{
			GroupID:    "btc-hourly",
			GroupTitle: "Bitcoin Up or Down",
			Timestamp:  base.Add(time.Duration(i) * time.Second),
			Side:       side,
			Quantity:   10,
			Price:      price,
			Cost:       10 * price,
		})
	}
	records = append(records, model.TradeRecord{
		GroupID:    "eth-hourly",
		GroupTitle: "Ethereum Up or Down",
		Timestamp:  base,
		Side:       model.SideUp,
		Quantity:   5,
		Price:      0.50,
		Cost:       2.50,
	})
	return analysis.Run(records, config.Default().Analysis, base)
}

func TestRenderTextLayout(t *testing.T) {
	out, err := Render(sampleReport(t), FormatText)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	wantLines := []string{
		"FULL EVENT CYCLE ANALYSIS",
		"Event: Bitcoin Up or Down",
		"Total trades: 30",
		"Duration: 29 seconds",
		"UP:   150.00 shares @ avg $0.3000 | total cost $45.00",
		"DOWN: 150.00 shares @ avg $0.6800 | total cost $102.00",
		"Combined cost: $0.9800 per pair",
		"Imbalance: 0.00 shares",
		"UP:   $0.30 - $0.30",
		"Trade sequence (first 10):",
		"... (10 trades omitted) ...",
		"Trade sequence (last 10):",
		"12:00:00 | Up   |  10.00 @ $0.300 | total $3.00",
		"Opening mean price: UP $0.300 | DOWN $0.680",
		"[x] Strategy trait: opens on the cheap side",
		"Hedge gap: 1.0 seconds",
		"[x] Strategy trait: fast hedge",
		"GLOBAL STRATEGY SUMMARY",
		"Total events: 2",
		"Total trades: 31",
		"UP median:   $0.300",
		"DOWN median: $0.680",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q", want)
		}
	}
}

func TestRenderTextEmptySide(t *testing.T) {
	records := []model.TradeRecord{{
		GroupID:    "one-sided",
		GroupTitle: "One Sided",
		Timestamp:  base,
		Side:       model.SideUp,
		Quantity:   10,
		Price:      0.40,
		Cost:       4.00,
	}}
	report := analysis.Run(records, config.Default().Analysis, base)

	out, err := Render(report, FormatText)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	wantLines := []string{
		"DOWN: no trades",
		"First DOWN trade: no trades",
		"Hedge gap: n/a (one side never traded)",
		"Ratio: undefined (no DOWN shares)",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("one-sided report missing %q", want)
		}
	}
	for _, banned := range []string{"NaN", "Inf"} {
		if strings.Contains(out, banned) {
			t.Errorf("report contains %q", banned)
		}
	}
}

func TestRenderTextNoTailForSmallGroups(t *testing.T) {
	records := []model.TradeRecord{}
	for i := 0; i < 15; i++ {
		records = append(records, model.TradeRecord{
			GroupID: "small", GroupTitle: "Small",
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Side:      model.SideUp, Quantity: 1, Price: 0.5, Cost: 0.5,
		})
	}
	report := analysis.Run(records, config.Default().Analysis, base)

	out, err := Render(report, FormatText)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out, "omitted") {
		t.Error("15-trade group should not have a gap marker")
	}
	if strings.Contains(out, "Trade sequence (last") {
		t.Error("15-trade group should not have a tail excerpt")
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := Render(sampleReport(t), FormatJSON)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var decoded analysis.Report
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("JSON output does not round-trip: %v", err)
	}
	if decoded.GroupCount != 2 {
		t.Errorf("GroupCount = %d, want 2", decoded.GroupCount)
	}
	if !strings.Contains(out, `"side": "Up"`) {
		t.Error("sides should marshal as Up/Down strings")
	}
}

func TestRenderCSV(t *testing.T) {
	out, err := Render(sampleReport(t), FormatCSV)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if !strings.HasPrefix(lines[0], "group_id,") {
		t.Errorf("first line should be the group header, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "btc-hourly,") {
		t.Errorf("second line should be the btc group, got %q", lines[1])
	}
	if !strings.Contains(out, "global,2,31,") {
		t.Error("csv should contain the global summary row")
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"text", "json", "csv"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", valid, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(\"xml\") should fail")
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	if err := Save(sampleReport(t), FormatText, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	if !strings.Contains(string(data), "GLOBAL STRATEGY SUMMARY") {
		t.Error("saved report missing global block")
	}
}
