package render

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rickgao/trade-report/internal/analysis"
)

// Format specifies the output format for reports.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat converts a config/flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Render produces the report in the requested format.
func Render(report *analysis.Report, format Format) (string, error) {
	switch format {
	case FormatText:
		return renderText(report), nil
	case FormatJSON:
		return renderJSON(report)
	case FormatCSV:
		return renderCSV(report), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// Save renders the report and writes it to path.
func Save(report *analysis.Report, format Format, path string) error {
	content, err := Render(report, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func renderJSON(report *analysis.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// renderCSV emits one summary row per group followed by a global row.
// Figures keep the text report's precision so the two formats agree.
func renderCSV(report *analysis.Report) string {
	var sb strings.Builder

	sb.WriteString("group_id,title,trades,duration_seconds,up_quantity,up_avg_price,down_quantity,down_avg_price,combined_avg_price,imbalance,cheap_entry,fast_hedge,sustained\n")
	for _, r := range report.GroupBlocks {
		sb.WriteString(fmt.Sprintf("%s,\"%s\",%d,%.0f,%.2f,%.4f,%.2f,%.4f,%.4f,%.2f,%t,%t,%t\n",
			r.GroupID,
			strings.ReplaceAll(r.Title, `"`, `""`),
			r.Count,
			r.DurationSeconds,
			r.Up.Quantity,
			r.Up.AvgPrice,
			r.Down.Quantity,
			r.Down.AvgPrice,
			r.CombinedAvgPrice,
			r.Imbalance,
			r.Pattern.CheapEntry,
			r.Pattern.FastHedge,
			r.Pattern.Sustained))
	}

	g := report.Global
	ratio := "undefined"
	if g.RatioDefined {
		ratio = fmt.Sprintf("%.2f", g.UpDownRatio)
	}
	sb.WriteString("\nscope,groups,trades,avg_trades_per_group,up_quantity,down_quantity,up_down_ratio\n")
	sb.WriteString(fmt.Sprintf("global,%d,%d,%.1f,%.2f,%.2f,%s\n",
		g.Groups, g.Trades, g.AvgTradesPerGroup, g.UpQuantity, g.DownQuantity, ratio))

	return sb.String()
}
