package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/trade-report/internal/model"
)

// Options controls parsing of the input file.
type Options struct {
	TimestampLayout string         // Go reference layout for the time column
	Location        *time.Location // Location for naive timestamps; nil means UTC
	Logger          *slog.Logger   // nil means slog.Default()
}

// Column aliases, lower-cased. The first alias set also accepts the
// headers of the original portfolio export.
var columnAliases = map[string][]string{
	"group":    {"slug", "group", "group_id"},
	"title":    {"title", "group_title", "event_title", "事件标题"},
	"time":     {"time", "timestamp", "时间"},
	"side":     {"side", "outcome", "result", "结果"},
	"quantity": {"quantity", "qty", "shares", "数量"},
	"price":    {"price", "价格"},
	"cost":     {"cost", "amount", "total", "金额"},
}

var tradeIDAliases = []string{"trade_id", "id"}

// Load reads, parses, deduplicates, and sorts the trade table.
// The file is read fully and closed before any parsing result is returned.
func Load(path string, opts Options) ([]model.TradeRecord, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	layout := opts.TimestampLayout
	if layout == "" {
		layout = "2006-01-02 15:04:05"
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trade file: %w", err)
	}
	rows, err := csv.NewReader(f).ReadAll()
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("read trade file: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("trade file has no data rows")
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]model.TradeRecord, 0, len(rows)-1)
	seen := make(map[uuid.UUID]struct{})
	duplicates := 0

	for i, row := range rows[1:] {
		rec, err := parseRow(row, cols, layout, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if rec.TradeID != uuid.Nil {
			if _, dup := seen[rec.TradeID]; dup {
				duplicates++
				continue
			}
			seen[rec.TradeID] = struct{}{}
		}
		records = append(records, rec)
	}

	if duplicates > 0 {
		logger.Debug("dropped duplicate trades", "count", duplicates)
	}

	Sort(records)
	return records, nil
}

// Sort orders records by (GroupID, Timestamp) ascending. The sort is
// stable, so equal keys keep their input order; sorting twice is a no-op.
func Sort(records []model.TradeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].GroupID != records[j].GroupID {
			return records[i].GroupID < records[j].GroupID
		}
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}

// columns maps logical field names to header indexes. tradeID is -1
// when the input has no trade_id column.
type columns struct {
	indexes map[string]int
	tradeID int
}

func resolveColumns(header []string) (columns, error) {
	byName := make(map[string]int, len(header))
	for idx, name := range header {
		byName[strings.ToLower(strings.TrimSpace(name))] = idx
	}

	cols := columns{indexes: make(map[string]int, len(columnAliases)), tradeID: -1}
	for field, aliases := range columnAliases {
		found := false
		for _, alias := range aliases {
			if idx, ok := byName[alias]; ok {
				cols.indexes[field] = idx
				found = true
				break
			}
		}
		if !found {
			return columns{}, fmt.Errorf("missing column %q (accepted headers: %s)",
				field, strings.Join(aliases, ", "))
		}
	}

	for _, alias := range tradeIDAliases {
		if idx, ok := byName[alias]; ok {
			cols.tradeID = idx
			break
		}
	}

	return cols, nil
}

func parseRow(row []string, cols columns, layout string, loc *time.Location) (model.TradeRecord, error) {
	get := func(field string) (string, error) {
		idx := cols.indexes[field]
		if idx >= len(row) {
			return "", fmt.Errorf("short row, missing %s", field)
		}
		return strings.TrimSpace(row[idx]), nil
	}

	var rec model.TradeRecord
	var err error

	if rec.GroupID, err = get("group"); err != nil {
		return rec, err
	}
	if rec.GroupTitle, err = get("title"); err != nil {
		return rec, err
	}

	tsRaw, err := get("time")
	if err != nil {
		return rec, err
	}
	if rec.Timestamp, err = time.ParseInLocation(layout, tsRaw, loc); err != nil {
		return rec, fmt.Errorf("timestamp %q: %w", tsRaw, err)
	}

	sideRaw, err := get("side")
	if err != nil {
		return rec, err
	}
	if rec.Side, err = model.ParseSide(sideRaw); err != nil {
		return rec, err
	}

	if rec.Quantity, err = parseFloat(row, cols, "quantity"); err != nil {
		return rec, err
	}
	if rec.Quantity < 0 {
		return rec, fmt.Errorf("negative quantity %v", rec.Quantity)
	}
	if rec.Price, err = parseFloat(row, cols, "price"); err != nil {
		return rec, err
	}
	if rec.Cost, err = parseFloat(row, cols, "cost"); err != nil {
		return rec, err
	}

	if cols.tradeID >= 0 && cols.tradeID < len(row) {
		raw := strings.TrimSpace(row[cols.tradeID])
		if raw != "" {
			if rec.TradeID, err = uuid.Parse(raw); err != nil {
				return rec, fmt.Errorf("trade_id %q: %w", raw, err)
			}
		}
	}

	return rec, nil
}

func parseFloat(row []string, cols columns, field string) (float64, error) {
	idx := cols.indexes[field]
	if idx >= len(row) {
		return 0, fmt.Errorf("short row, missing %s", field)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, row[idx], err)
	}
	return v, nil
}
