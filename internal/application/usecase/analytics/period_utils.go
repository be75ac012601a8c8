// Package analytics contains the read-only aggregation use cases behind the dashboard charts.
package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

// ComparisonPeriods is the number of periods returned by the expense comparison.
const ComparisonPeriods = 6

var monthAbbreviations = [...]string{
	"", "Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// PeriodBounds returns the half-open range [start, end) of the period containing date.
// Weeks start on Sunday.
func PeriodBounds(date time.Time, granularity entity.Granularity) (start, end time.Time) {
	day := truncateDay(date)

	switch granularity {
	case entity.GranularityDaily:
		start = day
		end = start.AddDate(0, 0, 1)
	case entity.GranularityWeekly:
		start = day.AddDate(0, 0, -int(day.Weekday()))
		end = start.AddDate(0, 0, 7)
	case entity.GranularityYearly:
		start = time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
		end = start.AddDate(1, 0, 0)
	default:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		end = start.AddDate(0, 1, 0)
	}
	return start, end
}

// PeriodLabel generates a human-readable label for the period starting at start.
// Formats:
// - Daily: "Mar 05"
// - Weekly: "Week of Mar 02"
// - Monthly: "Mar 2025"
// - Yearly: "2025"
func PeriodLabel(start time.Time, granularity entity.Granularity) string {
	switch granularity {
	case entity.GranularityDaily:
		return fmt.Sprintf("%s %02d", monthAbbreviations[start.Month()], start.Day())
	case entity.GranularityWeekly:
		return fmt.Sprintf("Week of %s %02d", monthAbbreviations[start.Month()], start.Day())
	case entity.GranularityYearly:
		return fmt.Sprintf("%d", start.Year())
	default:
		return fmt.Sprintf("%s %d", monthAbbreviations[start.Month()], start.Year())
	}
}

// RecentPeriods returns the n periods ending with the one containing now, oldest first,
// with zero totals. Every period except yearly ones carries one zero entry per day.
func RecentPeriods(now time.Time, granularity entity.Granularity, n int) []entity.PeriodTotal {
	periods := make([]entity.PeriodTotal, n)

	start, end := PeriodBounds(now, granularity)
	for i := n - 1; i >= 0; i-- {
		periods[i] = entity.PeriodTotal{
			Label: PeriodLabel(start, granularity),
			Start: start,
			End:   end,
			Total: decimal.Zero,
		}
		if granularity != entity.GranularityYearly {
			for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
				periods[i].Days = append(periods[i].Days, entity.DayTotal{Date: d, Total: decimal.Zero})
			}
		}
		// The day before start always falls in the previous period.
		start, end = PeriodBounds(start.AddDate(0, 0, -1), granularity)
	}

	return periods
}

// addToPeriods adds an expense amount to the period and day it falls in.
// Amounts outside every period are ignored.
func addToPeriods(periods []entity.PeriodTotal, date time.Time, amount decimal.Decimal) {
	for i := range periods {
		p := &periods[i]
		if date.Before(p.Start) || !date.Before(p.End) {
			continue
		}
		p.Total = p.Total.Add(amount)
		if p.Days != nil {
			idx := int(truncateDay(date).Sub(p.Start).Hours() / 24)
			if idx >= 0 && idx < len(p.Days) {
				p.Days[idx].Total = p.Days[idx].Total.Add(amount)
			}
		}
		return
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
