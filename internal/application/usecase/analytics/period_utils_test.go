package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/dashboard/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodBounds(t *testing.T) {
	// Wednesday
	now := time.Date(2025, time.March, 5, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		granularity entity.Granularity
		wantStart   time.Time
		wantEnd     time.Time
	}{
		{granularity: entity.GranularityDaily, wantStart: date(2025, time.March, 5), wantEnd: date(2025, time.March, 6)},
		{granularity: entity.GranularityWeekly, wantStart: date(2025, time.March, 2), wantEnd: date(2025, time.March, 9)},
		{granularity: entity.GranularityMonthly, wantStart: date(2025, time.March, 1), wantEnd: date(2025, time.April, 1)},
		{granularity: entity.GranularityYearly, wantStart: date(2025, time.January, 1), wantEnd: date(2026, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			start, end := PeriodBounds(now, tt.granularity)
			if !start.Equal(tt.wantStart) || !end.Equal(tt.wantEnd) {
				t.Errorf("PeriodBounds() = [%s, %s), want [%s, %s)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestPeriodLabel(t *testing.T) {
	start := date(2025, time.March, 2)

	tests := []struct {
		granularity entity.Granularity
		want        string
	}{
		{granularity: entity.GranularityDaily, want: "Mar 02"},
		{granularity: entity.GranularityWeekly, want: "Week of Mar 02"},
		{granularity: entity.GranularityMonthly, want: "Mar 2025"},
		{granularity: entity.GranularityYearly, want: "2025"},
	}

	for _, tt := range tests {
		t.Run(string(tt.granularity), func(t *testing.T) {
			if got := PeriodLabel(start, tt.granularity); got != tt.want {
				t.Errorf("PeriodLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecentPeriods(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

	periods := RecentPeriods(now, entity.GranularityMonthly, ComparisonPeriods)
	if len(periods) != ComparisonPeriods {
		t.Fatalf("len(periods) = %d, want %d", len(periods), ComparisonPeriods)
	}

	first, last := periods[0], periods[len(periods)-1]
	if !first.Start.Equal(date(2024, time.October, 1)) {
		t.Errorf("first start = %s, want 2024-10-01", first.Start)
	}
	if !last.End.Equal(date(2025, time.April, 1)) {
		t.Errorf("last end = %s, want 2025-04-01", last.End)
	}
	if len(last.Days) != 31 {
		t.Errorf("March days = %d, want 31", len(last.Days))
	}
	for i := 1; i < len(periods); i++ {
		if !periods[i].Start.Equal(periods[i-1].End) {
			t.Errorf("period %d starts at %s, previous ends at %s", i, periods[i].Start, periods[i-1].End)
		}
	}

	yearly := RecentPeriods(now, entity.GranularityYearly, 2)
	if yearly[0].Label != "2024" || yearly[1].Label != "2025" || yearly[1].Days != nil {
		t.Errorf("yearly periods = %+v", yearly)
	}
}

func TestAddToPeriods(t *testing.T) {
	now := time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	periods := RecentPeriods(now, entity.GranularityWeekly, 2)

	addToPeriods(periods, time.Date(2025, time.March, 11, 20, 0, 0, 0, time.UTC), decimal.NewFromInt(12))
	addToPeriods(periods, time.Date(2025, time.March, 11, 8, 0, 0, 0, time.UTC), decimal.NewFromInt(3))
	addToPeriods(periods, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(100))

	// Week of Mar 09: Tuesday is index 2.
	current := periods[1]
	if !current.Total.Equal(decimal.NewFromInt(15)) {
		t.Errorf("week total = %s, want 15", current.Total)
	}
	if !current.Days[2].Total.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Tuesday total = %s, want 15", current.Days[2].Total)
	}
	if !periods[0].Total.IsZero() {
		t.Errorf("previous week total = %s, want 0", periods[0].Total)
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		filter  string
		want    entity.Granularity
		wantErr bool
	}{
		{filter: "", want: entity.GranularityMonthly},
		{filter: "Weekly", want: entity.GranularityWeekly},
		{filter: " yearly ", want: entity.GranularityYearly},
		{filter: "hourly", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got, err := ParseFilter(tt.filter)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFilter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFilter() = %q, want %q", got, tt.want)
			}
		})
	}
}
