package analysis

import (
	"sort"
	"time"

	"github.com/rickgao/trade-report/internal/config"
	"github.com/rickgao/trade-report/internal/model"
)

// Group is one market's trades, in (group, timestamp) sort order.
type Group struct {
	ID      string
	Title   string
	Records []model.TradeRecord
}

// SideStats aggregates one side of a group's position.
// Present is false when the side has no trades; the remaining fields
// are zero in that case and must not be rendered as real values.
type SideStats struct {
	Present  bool    `json:"present"`
	Quantity float64 `json:"quantity"`
	Cost     float64 `json:"cost"`
	AvgPrice float64 `json:"avg_price"` // Cost / Quantity, 0 when Quantity is 0
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`
}

// PatternFlags are the strategy heuristics for one group.
type PatternFlags struct {
	UpMeanPresent    bool      `json:"up_mean_present"`   // Up trades exist in the pattern window
	UpMeanPrice      float64   `json:"up_mean_price"`     // mean Up price across the window
	DownMeanPresent  bool      `json:"down_mean_present"` // Down trades exist in the pattern window
	DownMeanPrice    float64   `json:"down_mean_price"`
	CheapEntry       bool      `json:"cheap_entry"` // either window mean below the cheap-entry threshold
	FirstUpPresent   bool      `json:"first_up_present"`
	FirstUp          time.Time `json:"first_up"` // earliest Up trade in the whole group
	FirstDownPresent bool      `json:"first_down_present"`
	FirstDown        time.Time `json:"first_down"`
	HedgeGapPresent  bool      `json:"hedge_gap_present"` // both sides traded at least once
	HedgeGapSeconds  float64   `json:"hedge_gap_seconds"` // |FirstUp - FirstDown|
	FastHedge        bool      `json:"fast_hedge"`        // hedge gap inside the hedge window
	Sustained        bool      `json:"sustained"`         // trade count above the sustained threshold
}

// GroupReport is the full per-group summary.
type GroupReport struct {
	GroupID          string              `json:"group_id"`
	Title            string              `json:"title"`
	Count            int                 `json:"count"`
	Start            time.Time           `json:"start"`
	End              time.Time           `json:"end"`
	DurationSeconds  float64             `json:"duration_seconds"`
	Up               SideStats           `json:"up"`
	Down             SideStats           `json:"down"`
	CombinedAvgPrice float64             `json:"combined_avg_price"`
	Imbalance        float64             `json:"imbalance"`
	Head             []model.TradeRecord `json:"head"`
	Tail             []model.TradeRecord `json:"tail,omitempty"` // only when Count > 2*excerpt size
	Omitted          int                 `json:"omitted"`        // records between head and tail
	Pattern          PatternFlags        `json:"pattern"`
}

// GlobalReport summarizes the whole table across groups.
type GlobalReport struct {
	Groups            int     `json:"groups"`
	Trades            int     `json:"trades"`
	AvgTradesPerGroup float64 `json:"avg_trades_per_group"`
	MedianUpPresent   bool    `json:"median_up_present"`
	MedianUpPrice     float64 `json:"median_up_price"`
	MedianDownPresent bool    `json:"median_down_present"`
	MedianDownPrice   float64 `json:"median_down_price"`
	UpQuantity        float64 `json:"up_quantity"`
	DownQuantity      float64 `json:"down_quantity"`
	RatioDefined      bool    `json:"ratio_defined"` // false when DownQuantity is 0
	UpDownRatio       float64 `json:"up_down_ratio"`
}

// Report is the complete analyzer output.
type Report struct {
	GeneratedAt time.Time     `json:"generated_at"`
	GroupCount  int           `json:"group_count"`
	GroupBlocks []GroupReport `json:"groups"`
	Global      GlobalReport  `json:"global"`
}

// Run executes the whole pipeline over sorted records.
func Run(records []model.TradeRecord, cfg config.AnalysisConfig, now time.Time) *Report {
	groups := GroupRecords(records)

	report := &Report{
		GeneratedAt: now,
		GroupCount:  len(groups),
		GroupBlocks: make([]GroupReport, 0, len(groups)),
	}
	for _, g := range groups {
		report.GroupBlocks = append(report.GroupBlocks, SummarizeGroup(g, cfg))
	}
	report.Global = SummarizeGlobal(records)
	return report
}

// GroupRecords partitions sorted records into groups, keeping first
// appearance order (ascending GroupID for a sorted table).
func GroupRecords(records []model.TradeRecord) []Group {
	var groups []Group
	for _, rec := range records {
		if n := len(groups); n == 0 || groups[n-1].ID != rec.GroupID {
			groups = append(groups, Group{ID: rec.GroupID, Title: rec.GroupTitle})
		}
		g := &groups[len(groups)-1]
		g.Records = append(g.Records, rec)
	}
	return groups
}

// SummarizeGroup computes the per-group block for sorted group records.
func SummarizeGroup(g Group, cfg config.AnalysisConfig) GroupReport {
	r := GroupReport{
		GroupID: g.ID,
		Title:   g.Title,
		Count:   len(g.Records),
	}
	if r.Count == 0 {
		return r
	}

	r.Start = g.Records[0].Timestamp
	r.End = g.Records[r.Count-1].Timestamp
	r.DurationSeconds = r.End.Sub(r.Start).Seconds()

	r.Up = sideStats(g.Records, model.SideUp)
	r.Down = sideStats(g.Records, model.SideDown)

	// Combined cost per pair keeps the original computation: both
	// sides' cost over the Up quantity only, denominator 1 when no
	// Up shares were bought.
	denom := r.Up.Quantity
	if denom == 0 {
		denom = 1
	}
	r.CombinedAvgPrice = (r.Up.Cost + r.Down.Cost) / denom

	r.Imbalance = r.Up.Quantity - r.Down.Quantity
	if r.Imbalance < 0 {
		r.Imbalance = -r.Imbalance
	}

	r.Head, r.Tail, r.Omitted = excerpts(g.Records, cfg.ExcerptSize)
	r.Pattern = patternFlags(g.Records, cfg)

	return r
}

// excerpts returns the first and last n records. The tail is only
// included when it would not overlap the head.
func excerpts(records []model.TradeRecord, n int) (head, tail []model.TradeRecord, omitted int) {
	if len(records) <= n {
		return records, nil, 0
	}
	head = records[:n]
	if len(records) <= 2*n {
		return head, nil, 0
	}
	tail = records[len(records)-n:]
	return head, tail, len(records) - 2*n
}

func sideStats(records []model.TradeRecord, side model.Side) SideStats {
	var s SideStats
	for _, rec := range records {
		if rec.Side != side {
			continue
		}
		if !s.Present {
			s.Present = true
			s.PriceMin = rec.Price
			s.PriceMax = rec.Price
		} else {
			if rec.Price < s.PriceMin {
				s.PriceMin = rec.Price
			}
			if rec.Price > s.PriceMax {
				s.PriceMax = rec.Price
			}
		}
		s.Quantity += rec.Quantity
		s.Cost += rec.Cost
	}
	if s.Quantity > 0 {
		s.AvgPrice = s.Cost / s.Quantity
	}
	return s
}

func patternFlags(records []model.TradeRecord, cfg config.AnalysisConfig) PatternFlags {
	var p PatternFlags

	window := records
	if len(window) > cfg.PatternWindow {
		window = window[:cfg.PatternWindow]
	}

	var upSum, downSum float64
	var upN, downN int
	for _, rec := range window {
		if rec.Side == model.SideUp {
			upSum += rec.Price
			upN++
		} else {
			downSum += rec.Price
			downN++
		}
	}
	if upN > 0 {
		p.UpMeanPresent = true
		p.UpMeanPrice = upSum / float64(upN)
	}
	if downN > 0 {
		p.DownMeanPresent = true
		p.DownMeanPrice = downSum / float64(downN)
	}
	p.CheapEntry = (p.UpMeanPresent && p.UpMeanPrice < cfg.CheapEntryThreshold) ||
		(p.DownMeanPresent && p.DownMeanPrice < cfg.CheapEntryThreshold)

	// First trade per side over the whole group. Records are sorted,
	// so the first match is the earliest.
	for _, rec := range records {
		if rec.Side == model.SideUp && !p.FirstUpPresent {
			p.FirstUpPresent = true
			p.FirstUp = rec.Timestamp
		}
		if rec.Side == model.SideDown && !p.FirstDownPresent {
			p.FirstDownPresent = true
			p.FirstDown = rec.Timestamp
		}
		if p.FirstUpPresent && p.FirstDownPresent {
			break
		}
	}
	if p.FirstUpPresent && p.FirstDownPresent {
		p.HedgeGapPresent = true
		gap := p.FirstUp.Sub(p.FirstDown)
		if gap < 0 {
			gap = -gap
		}
		p.HedgeGapSeconds = gap.Seconds()
		p.FastHedge = gap < cfg.HedgeWindow
	}

	p.Sustained = len(records) > cfg.SustainedTrades

	return p
}

// SummarizeGlobal computes the cross-group summary.
func SummarizeGlobal(records []model.TradeRecord) GlobalReport {
	var g GlobalReport
	g.Trades = len(records)

	seen := make(map[string]struct{})
	var upPrices, downPrices []float64
	for _, rec := range records {
		seen[rec.GroupID] = struct{}{}
		if rec.Side == model.SideUp {
			upPrices = append(upPrices, rec.Price)
			g.UpQuantity += rec.Quantity
		} else {
			downPrices = append(downPrices, rec.Price)
			g.DownQuantity += rec.Quantity
		}
	}
	g.Groups = len(seen)
	if g.Groups > 0 {
		g.AvgTradesPerGroup = float64(g.Trades) / float64(g.Groups)
	}

	g.MedianUpPrice, g.MedianUpPresent = median(upPrices)
	g.MedianDownPrice, g.MedianDownPresent = median(downPrices)

	// Division-by-zero policy: the ratio is reported as undefined
	// rather than +Inf when there are no Down shares.
	if g.DownQuantity > 0 {
		g.RatioDefined = true
		g.UpDownRatio = g.UpQuantity / g.DownQuantity
	}

	return g
}

// median returns the median of values (mean of the middle two for an
// even count). ok is false for an empty slice. The input is not mutated.
func median(values []float64) (m float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}
