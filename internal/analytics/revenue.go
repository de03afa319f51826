package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/kirana/internal/models"
)

// Granularity of a revenue time series.
const (
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
	GranularityYear  = "year"
)

// IsGranularity reports whether g is a known granularity.
func IsGranularity(g string) bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return true
	}
	return false
}

// RevenueBucket is one point in a chart series.
type RevenueBucket struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

// RevenueSeries is a chart series plus its summary numbers.
type RevenueSeries struct {
	Buckets        []RevenueBucket `json:"buckets"`
	TotalRevenue   float64         `json:"totalRevenue"`
	AverageRevenue float64         `json:"averageRevenue"`
	HighestRevenue float64         `json:"highestRevenue"`
}

// RevenueOverTime groups non-cancelled orders inside the granularity's
// lookback window into calendar buckets, summing totalAmount. Buckets come
// back in chronological order, not label order.
func RevenueOverTime(orderSet []models.Order, granularity string, now time.Time) RevenueSeries {
	start := lookbackStart(granularity, now)
	totals := make(map[time.Time]float64)

	for _, o := range orderSet {
		if o.Status == models.StatusCancelled {
			continue
		}
		created := o.CreatedAt.In(now.Location())
		if created.Before(start) {
			continue
		}
		totals[bucketStart(created, granularity)] += o.TotalAmount
	}

	keys := make([]time.Time, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	series := RevenueSeries{Buckets: make([]RevenueBucket, 0, len(keys))}
	for _, k := range keys {
		series.Buckets = append(series.Buckets, RevenueBucket{
			Label:   bucketLabel(k, granularity),
			Revenue: totals[k],
		})
	}
	return summarize(series)
}

// RevenueByProduct explodes every item of every non-cancelled order across
// the entire history, accumulates unitPrice x quantity per product name,
// and keeps the top 10 by revenue. Unit prices are decimal strings; the
// math stays exact until the final conversion.
func RevenueByProduct(orderSet []models.Order) RevenueSeries {
	totals := make(map[string]decimal.Decimal)

	for _, o := range orderSet {
		if o.Status == models.StatusCancelled {
			continue
		}
		for _, item := range o.Items {
			price, err := decimal.NewFromString(item.UnitPrice)
			if err != nil {
				continue
			}
			line := price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			totals[item.ProductName] = totals[item.ProductName].Add(line)
		}
	}

	type entry struct {
		name    string
		revenue decimal.Decimal
	}
	entries := make([]entry, 0, len(totals))
	for name, revenue := range totals {
		entries = append(entries, entry{name: name, revenue: revenue})
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].revenue.Equal(entries[j].revenue) {
			return entries[i].revenue.GreaterThan(entries[j].revenue)
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > 10 {
		entries = entries[:10]
	}

	series := RevenueSeries{Buckets: make([]RevenueBucket, 0, len(entries))}
	for _, e := range entries {
		series.Buckets = append(series.Buckets, RevenueBucket{
			Label:   e.name,
			Revenue: e.revenue.InexactFloat64(),
		})
	}
	return summarize(series)
}

func summarize(series RevenueSeries) RevenueSeries {
	for _, b := range series.Buckets {
		series.TotalRevenue += b.Revenue
		if b.Revenue > series.HighestRevenue {
			series.HighestRevenue = b.Revenue
		}
	}
	if n := len(series.Buckets); n > 0 {
		series.AverageRevenue = series.TotalRevenue / float64(n)
	}
	return series
}

func lookbackStart(granularity string, now time.Time) time.Time {
	switch granularity {
	case GranularityWeek:
		return now.AddDate(0, 0, -84)
	case GranularityMonth:
		return now.AddDate(-1, 0, 0)
	case GranularityYear:
		return now.AddDate(-5, 0, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// bucketStart truncates t to the start of its calendar bucket. Weeks
// start on Sunday.
func bucketStart(t time.Time, granularity string) time.Time {
	y, m, d := t.Date()
	switch granularity {
	case GranularityWeek:
		day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
		return day.AddDate(0, 0, -int(day.Weekday()))
	case GranularityMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case GranularityYear:
		return time.Date(y, 1, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

func bucketLabel(start time.Time, granularity string) string {
	switch granularity {
	case GranularityWeek:
		return "Week of " + start.Format("Jan 2")
	case GranularityMonth:
		return start.Format("Jan 2006")
	case GranularityYear:
		return start.Format("2006")
	default:
		return start.Format("Jan 2")
	}
}
