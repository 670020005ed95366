package render

import (
	"fmt"
	"strings"

	"github.com/rickgao/trade-report/internal/analysis"
	"github.com/rickgao/trade-report/internal/model"
)

const (
	rule      = "================================================================================"
	noTrades  = "no trades"
	clockOnly = "15:04:05"
	dateTime  = "2006-01-02 15:04:05"
)

func renderText(report *analysis.Report) string {
	var sb strings.Builder

	sb.WriteString(rule + "\n")
	sb.WriteString("FULL EVENT CYCLE ANALYSIS\n")
	sb.WriteString(rule + "\n")

	for i := range report.GroupBlocks {
		writeGroupBlock(&sb, &report.GroupBlocks[i])
	}

	writeGlobalBlock(&sb, &report.Global)

	return sb.String()
}

func writeGroupBlock(sb *strings.Builder, r *analysis.GroupReport) {
	sb.WriteString("\n" + rule + "\n")
	sb.WriteString(fmt.Sprintf("Event: %s\n", r.Title))
	sb.WriteString(fmt.Sprintf("Total trades: %d\n", r.Count))
	sb.WriteString(fmt.Sprintf("Time range: %s to %s\n", r.Start.Format(dateTime), r.End.Format(dateTime)))
	sb.WriteString(fmt.Sprintf("Duration: %.0f seconds\n", r.DurationSeconds))

	sb.WriteString("\nPosition:\n")
	writeSideLine(sb, "UP", r.Up)
	writeSideLine(sb, "DOWN", r.Down)
	sb.WriteString(fmt.Sprintf("  Combined cost: $%.4f per pair\n", r.CombinedAvgPrice))
	sb.WriteString(fmt.Sprintf("  Imbalance: %.2f shares\n", r.Imbalance))

	sb.WriteString("\nPrice range:\n")
	writeRangeLine(sb, "UP", r.Up)
	writeRangeLine(sb, "DOWN", r.Down)

	sb.WriteString(fmt.Sprintf("\nTrade sequence (first %d):\n", len(r.Head)))
	for _, rec := range r.Head {
		writeTradeLine(sb, rec)
	}
	if len(r.Tail) > 0 {
		sb.WriteString(fmt.Sprintf("\n  ... (%d trades omitted) ...\n", r.Omitted))
		sb.WriteString(fmt.Sprintf("\nTrade sequence (last %d):\n", len(r.Tail)))
		for _, rec := range r.Tail {
			writeTradeLine(sb, rec)
		}
	}

	writePatternSection(sb, &r.Pattern, r.Count)

	sb.WriteString("\n" + rule + "\n")
}

func writeSideLine(sb *strings.Builder, label string, s analysis.SideStats) {
	if !s.Present {
		sb.WriteString(fmt.Sprintf("  %-5s %s\n", label+":", noTrades))
		return
	}
	sb.WriteString(fmt.Sprintf("  %-5s %.2f shares @ avg $%.4f | total cost $%.2f\n",
		label+":", s.Quantity, s.AvgPrice, s.Cost))
}

func writeRangeLine(sb *strings.Builder, label string, s analysis.SideStats) {
	if !s.Present {
		sb.WriteString(fmt.Sprintf("  %-5s %s\n", label+":", noTrades))
		return
	}
	sb.WriteString(fmt.Sprintf("  %-5s $%.2f - $%.2f\n", label+":", s.PriceMin, s.PriceMax))
}

func writeTradeLine(sb *strings.Builder, rec model.TradeRecord) {
	sb.WriteString(fmt.Sprintf("  %s | %-4s | %6.2f @ $%.3f | total $%.2f\n",
		rec.Timestamp.Format(clockOnly), rec.Side, rec.Quantity, rec.Price, rec.Cost))
}

func writePatternSection(sb *strings.Builder, p *analysis.PatternFlags, count int) {
	sb.WriteString("\nPattern analysis:\n")

	upMean := "n/a"
	if p.UpMeanPresent {
		upMean = fmt.Sprintf("$%.3f", p.UpMeanPrice)
	}
	downMean := "n/a"
	if p.DownMeanPresent {
		downMean = fmt.Sprintf("$%.3f", p.DownMeanPrice)
	}
	sb.WriteString(fmt.Sprintf("  Opening mean price: UP %s | DOWN %s\n", upMean, downMean))
	if p.CheapEntry {
		sb.WriteString("  [x] Strategy trait: opens on the cheap side\n")
	}

	if p.FirstUpPresent {
		sb.WriteString(fmt.Sprintf("  First UP trade:   %s\n", p.FirstUp.Format(clockOnly)))
	} else {
		sb.WriteString("  First UP trade:   " + noTrades + "\n")
	}
	if p.FirstDownPresent {
		sb.WriteString(fmt.Sprintf("  First DOWN trade: %s\n", p.FirstDown.Format(clockOnly)))
	} else {
		sb.WriteString("  First DOWN trade: " + noTrades + "\n")
	}

	if p.HedgeGapPresent {
		sb.WriteString(fmt.Sprintf("  Hedge gap: %.1f seconds\n", p.HedgeGapSeconds))
		if p.FastHedge {
			sb.WriteString("  [x] Strategy trait: fast hedge\n")
		} else {
			sb.WriteString("  [!] Strategy trait: delayed hedge or directional position\n")
		}
	} else {
		sb.WriteString("  Hedge gap: n/a (one side never traded)\n")
	}

	if p.Sustained {
		sb.WriteString(fmt.Sprintf("  [x] Strategy trait: sustained trading (%d trades)\n", count))
	}
}

func writeGlobalBlock(sb *strings.Builder, g *analysis.GlobalReport) {
	sb.WriteString("\n\n" + rule + "\n")
	sb.WriteString("GLOBAL STRATEGY SUMMARY\n")
	sb.WriteString(rule + "\n")

	sb.WriteString(fmt.Sprintf("Total events: %d\n", g.Groups))
	sb.WriteString(fmt.Sprintf("Total trades: %d\n", g.Trades))
	sb.WriteString(fmt.Sprintf("Avg trades per event: %.1f\n", g.AvgTradesPerGroup))

	sb.WriteString("\nPrice distribution:\n")
	if g.MedianUpPresent {
		sb.WriteString(fmt.Sprintf("  UP median:   $%.3f\n", g.MedianUpPrice))
	} else {
		sb.WriteString("  UP median:   " + noTrades + "\n")
	}
	if g.MedianDownPresent {
		sb.WriteString(fmt.Sprintf("  DOWN median: $%.3f\n", g.MedianDownPrice))
	} else {
		sb.WriteString("  DOWN median: " + noTrades + "\n")
	}

	sb.WriteString("\nOverall position:\n")
	sb.WriteString(fmt.Sprintf("  UP total:   %.2f\n", g.UpQuantity))
	sb.WriteString(fmt.Sprintf("  DOWN total: %.2f\n", g.DownQuantity))
	if g.RatioDefined {
		sb.WriteString(fmt.Sprintf("  Ratio: %.2f : 1\n", g.UpDownRatio))
	} else {
		sb.WriteString("  Ratio: undefined (no DOWN shares)\n")
	}

	sb.WriteString("\nAnalysis complete.\n")
}
