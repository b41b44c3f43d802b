package assistant

import (
	"context"

	"github.com/lukaszlap/paragonyOSA/internal/domain"
	"github.com/lukaszlap/paragonyOSA/internal/store"
)

type expensesByDateResult struct {
	Receipts []domain.Receipt `json:"receipts"`
	Count    int              `json:"count"`
	Total    float64          `json:"total_amount"`
	Period   string           `json:"period"`
}

func (e *Executor) expensesByDate(ctx context.Context, userID int64, a args) (any, error) {
	start, end := a.str("start_date"), a.str("end_date")
	receipts, err := e.db.ReceiptsBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return expensesByDateResult{
		Receipts: receipts,
		Count:    len(receipts),
		Total:    round2(sumReceipts(receipts)),
		Period:   periodLabel(start, end),
	}, nil
}

type expensesByCategoryResult struct {
	Products []store.ProductPurchase `json:"products"`
	Count    int                     `json:"count"`
	Total    float64                 `json:"total_amount"`
	Category string                  `json:"category"`
	Period   string                  `json:"period"`
}

func (e *Executor) expensesByCategory(ctx context.Context, userID int64, a args) (any, error) {
	category := a.str("category")
	start, end := a.str("start_date"), a.str("end_date")
	products, err := e.db.ProductsByCategory(ctx, userID, category, start, end)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, p := range products {
		total += p.Price
	}
	return expensesByCategoryResult{
		Products: products,
		Count:    len(products),
		Total:    round2(total),
		Category: category,
		Period:   periodLabel(start, end),
	}, nil
}

type expensesByStoreResult struct {
	Receipts []domain.Receipt `json:"receipts"`
	Count    int              `json:"count"`
	Total    float64          `json:"total_amount"`
	Store    string           `json:"store"`
	Period   string           `json:"period"`
}

func (e *Executor) expensesByStore(ctx context.Context, userID int64, a args) (any, error) {
	storeName := a.str("store_name")
	start, end := a.str("start_date"), a.str("end_date")
	receipts, err := e.db.ReceiptsByStore(ctx, userID, storeName, start, end)
	if err != nil {
		return nil, err
	}
	return expensesByStoreResult{
		Receipts: receipts,
		Count:    len(receipts),
		Total:    round2(sumReceipts(receipts)),
		Store:    storeName,
		Period:   periodLabel(start, end),
	}, nil
}

type spendingSummaryResult struct {
	Summary any    `json:"summary"`
	GroupBy string `json:"group_by"`
	Period  string `json:"period"`
}

func (e *Executor) spendingSummary(ctx context.Context, userID int64, a args) (any, error) {
	start, end := a.str("start_date"), a.str("end_date")
	groupBy := a.str("group_by")

	var summary any
	if groupBy == "" {
		stats, err := e.db.PeriodStats(ctx, userID, start, end)
		if err != nil {
			return nil, err
		}
		summary = stats
	} else {
		totals, err := e.db.SpendingTotals(ctx, userID, start, end, groupBy)
		if err != nil {
			return map[string]any{
				"error":    "Nieobsługiwany sposób grupowania: " + groupBy,
				"group_by": groupBy,
			}, nil
		}
		summary = totals
	}
	return spendingSummaryResult{
		Summary: summary,
		GroupBy: orDefault(groupBy, "overall"),
		Period:  periodLabel(start, end),
	}, nil
}

type priceStats struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type productHistoryResult struct {
	ProductName string                  `json:"product_name"`
	History     []store.ProductPurchase `json:"history"`
	Count       int                     `json:"count"`
	PriceStats  priceStats              `json:"price_stats"`
}

func (e *Executor) productHistory(ctx context.Context, userID int64, a args) (any, error) {
	name := a.str("product_name")
	limit := a.intOr("limit", 10)
	history, err := e.db.ProductPurchases(ctx, userID, name, limit)
	if err != nil {
		return nil, err
	}

	var stats priceStats
	if len(history) > 0 {
		stats.Min = history[0].Price
		for _, h := range history {
			stats.Average += h.Price
			if h.Price < stats.Min {
				stats.Min = h.Price
			}
			if h.Price > stats.Max {
				stats.Max = h.Price
			}
		}
		stats.Average = round2(stats.Average / float64(len(history)))
		stats.Min = round2(stats.Min)
		stats.Max = round2(stats.Max)
	}

	return productHistoryResult{
		ProductName: name,
		History:     history,
		Count:       len(history),
		PriceStats:  stats,
	}, nil
}

type mostExpensiveResult struct {
	MostExpensive []store.ProductPurchase `json:"most_expensive"`
	Count         int                     `json:"count"`
	Period        string                  `json:"period"`
}

func (e *Executor) mostExpensivePurchases(ctx context.Context, userID int64, a args) (any, error) {
	start, end := a.str("start_date"), a.str("end_date")
	limit := a.intOr("limit", 5)
	items, err := e.db.MostExpensive(ctx, userID, start, end, limit)
	if err != nil {
		return nil, err
	}
	return mostExpensiveResult{
		MostExpensive: items,
		Count:         len(items),
		Period:        periodLabel(start, end),
	}, nil
}

type storeListResult struct {
	Stores []store.StoreVisit `json:"stores"`
	Count  int                `json:"count"`
	Period string             `json:"period"`
}

func (e *Executor) shoppingFrequency(ctx context.Context, userID int64, a args) (any, error) {
	start, end := a.str("start_date"), a.str("end_date")
	stores, err := e.db.StoreVisits(ctx, userID, start, end, "visits", 0)
	if err != nil {
		return nil, err
	}
	return storeListResult{Stores: stores, Count: len(stores), Period: periodLabel(start, end)}, nil
}

func (e *Executor) topStores(ctx context.Context, userID int64, a args) (any, error) {
	start, end := a.str("start_date"), a.str("end_date")
	limit := a.intOr("limit", 10)
	stores, err := e.db.StoreVisits(ctx, userID, start, end, "total", limit)
	if err != nil {
		return nil, err
	}
	return storeListResult{Stores: stores, Count: len(stores), Period: periodLabel(start, end)}, nil
}

type periodSlice struct {
	Range   string            `json:"range"`
	Summary store.PeriodStats `json:"summary"`
}

type periodComparison struct {
	Difference    float64 `json:"difference"`
	PercentChange float64 `json:"percent_change"`
	Trend         string  `json:"trend"`
}

type comparePeriodsResult struct {
	Period1    periodSlice      `json:"period1"`
	Period2    periodSlice      `json:"period2"`
	Comparison periodComparison `json:"comparison"`
}

func (e *Executor) comparePeriods(ctx context.Context, userID int64, a args) (any, error) {
	p1s, p1e := a.str("period1_start"), a.str("period1_end")
	p2s, p2e := a.str("period2_start"), a.str("period2_end")

	stats1, err := e.db.PeriodStats(ctx, userID, p1s, p1e)
	if err != nil {
		return nil, err
	}
	stats2, err := e.db.PeriodStats(ctx, userID, p2s, p2e)
	if err != nil {
		return nil, err
	}

	diff := stats2.Total - stats1.Total
	var pct float64
	if stats1.Total > 0 {
		pct = diff / stats1.Total * 100
	}
	trend := "bez zmian"
	if diff > 0 {
		trend = "wzrost"
	} else if diff < 0 {
		trend = "spadek"
	}

	return comparePeriodsResult{
		Period1: periodSlice{Range: periodLabel(p1s, p1e), Summary: stats1},
		Period2: periodSlice{Range: periodLabel(p2s, p2e), Summary: stats2},
		Comparison: periodComparison{
			Difference:    round2(diff),
			PercentChange: round2(pct),
			Trend:         trend,
		},
	}, nil
}

type categoryShare struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
	Percent  float64 `json:"percent"`
}

type categoryBreakdownResult struct {
	Categories []categoryShare `json:"categories"`
	Count      int             `json:"count"`
	Total      float64         `json:"total"`
	Period     string          `json:"period"`
}

func (e *Executor) categoryBreakdown(ctx context.Context, userID int64, a args) (any, error) {
	start, end := a.str("start_date"), a.str("end_date")
	totals, err := e.db.CategoryTotals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	var grand float64
	for _, t := range totals {
		grand += t.Total
	}
	shares := make([]categoryShare, 0, len(totals))
	for _, t := range totals {
		var pct float64
		if grand > 0 {
			pct = round2(t.Total / grand * 100)
		}
		shares = append(shares, categoryShare{
			Category: t.Key,
			Count:    t.Count,
			Total:    round2(t.Total),
			Percent:  pct,
		})
	}
	return categoryBreakdownResult{
		Categories: shares,
		Count:      len(shares),
		Total:      round2(grand),
		Period:     periodLabel(start, end),
	}, nil
}

type monthlyTrendsResult struct {
	MonthlyData  []store.MonthTotal `json:"monthly_data"`
	MonthsCount  int                `json:"months_count"`
	Trend        string             `json:"trend"`
	TrendChange  float64            `json:"trend_change"`
	TrendPercent float64            `json:"trend_percent"`
}

func (e *Executor) monthlyTrends(ctx context.Context, userID int64, a args) (any, error) {
	months := a.intOr("months", 6)
	data, err := e.db.MonthlyTotals(ctx, userID, months)
	if err != nil {
		return nil, err
	}

	result := monthlyTrendsResult{
		MonthlyData: data,
		MonthsCount: len(data),
		Trend:       "brak danych",
	}
	if len(data) >= 2 {
		first, last := data[0].Total, data[len(data)-1].Total
		change := last - first
		result.TrendChange = round2(change)
		if first > 0 {
			result.TrendPercent = round2(change / first * 100)
		}
		switch {
		case change > 0:
			result.Trend = "wzrostowy"
		case change < 0:
			result.Trend = "spadkowy"
		default:
			result.Trend = "stabilny"
		}
	}
	return result, nil
}

type weekdayPattern struct {
	Weekday string  `json:"weekday"`
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
}

type daytimePattern struct {
	TimeOfDay string  `json:"time_of_day"`
	Count     int     `json:"count"`
	Total     float64 `json:"total"`
}

type spendingPatternsResult struct {
	ByWeekday      []weekdayPattern `json:"by_weekday"`
	ByDaytime      []daytimePattern `json:"by_daytime"`
	MostActiveDay  string           `json:"most_active_day,omitempty"`
	MostActiveTime string           `json:"most_active_time,omitempty"`
	Period         string           `json:"period"`
}

// weekdayNames follows strftime('%w') numbering, Sunday first.
var weekdayNames = [7]string{
	"niedziela", "poniedziałek", "wtorek", "środa", "czwartek", "piątek", "sobota",
}

const (
	bucketMorning   = "rano (6-11)"
	bucketAfternoon = "popołudnie (12-17)"
	bucketEvening   = "wieczór (18-22)"
	bucketNight     = "noc (23-5)"
)

func daytimeBucket(hour int) string {
	switch {
	case hour >= 6 && hour <= 11:
		return bucketMorning
	case hour >= 12 && hour <= 17:
		return bucketAfternoon
	case hour >= 18 && hour <= 22:
		return bucketEvening
	default:
		return bucketNight
	}
}

func (e *Executor) spendingPatterns(ctx context.Context, userID int64, a args) (any, error) {
	start, end := a.str("start_date"), a.str("end_date")

	weekdays, err := e.db.WeekdayTotals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	hours, err := e.db.HourTotals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	byWeekday := make([]weekdayPattern, 0, len(weekdays))
	var topDay weekdayPattern
	for _, w := range weekdays {
		p := weekdayPattern{Weekday: weekdayNames[w.Weekday%7], Count: w.Count, Total: round2(w.Total)}
		byWeekday = append(byWeekday, p)
		if p.Count > topDay.Count {
			topDay = p
		}
	}

	buckets := map[string]*daytimePattern{}
	for _, h := range hours {
		name := daytimeBucket(h.Hour)
		b, ok := buckets[name]
		if !ok {
			b = &daytimePattern{TimeOfDay: name}
			buckets[name] = b
		}
		b.Count += h.Count
		b.Total = round2(b.Total + h.Total)
	}
	byDaytime := make([]daytimePattern, 0, 4)
	var topTime daytimePattern
	for _, name := range []string{bucketMorning, bucketAfternoon, bucketEvening, bucketNight} {
		if b, ok := buckets[name]; ok {
			byDaytime = append(byDaytime, *b)
			if b.Count > topTime.Count {
				topTime = *b
			}
		}
	}

	return spendingPatternsResult{
		ByWeekday:      byWeekday,
		ByDaytime:      byDaytime,
		MostActiveDay:  topDay.Weekday,
		MostActiveTime: topTime.TimeOfDay,
		Period:         periodLabel(start, end),
	}, nil
}

func sumReceipts(receipts []domain.Receipt) float64 {
	var total float64
	for _, r := range receipts {
		total += r.Total
	}
	return total
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
