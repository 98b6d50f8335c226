package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/analytics"
	"softday/wellness-api/internal/domain/checkin"
)

type mockCheckInRepo struct {
	ListByUserBetweenFunc func(ctx context.Context, userID uint, from, to time.Time) ([]checkin.CheckIn, error)
}

func (m *mockCheckInRepo) Create(ctx context.Context, c *checkin.CheckIn) error { return nil }

func (m *mockCheckInRepo) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*checkin.CheckIn, error) {
	return nil, nil
}

func (m *mockCheckInRepo) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]checkin.CheckIn, error) {
	return m.ListByUserBetweenFunc(ctx, userID, from, to)
}

type mockStatRepo struct {
	ListByUserBetweenFunc func(ctx context.Context, userID uint, from, to time.Time) ([]checkin.DailyStatistic, error)
}

func (m *mockStatRepo) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*checkin.DailyStatistic, error) {
	return nil, nil
}

func (m *mockStatRepo) Save(ctx context.Context, stat *checkin.DailyStatistic) error { return nil }

func (m *mockStatRepo) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]checkin.DailyStatistic, error) {
	return m.ListByUserBetweenFunc(ctx, userID, from, to)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDashboardAggregates(t *testing.T) {
	monday := date(2025, time.June, 2)
	wednesday := date(2025, time.June, 4)

	stats := &mockStatRepo{
		ListByUserBetweenFunc: func(ctx context.Context, userID uint, from, to time.Time) ([]checkin.DailyStatistic, error) {
			return []checkin.DailyStatistic{
				{StatDate: monday, AvgStressLevel: 5, CheckinCount: 1},
				{StatDate: wednesday, AvgStressLevel: 1, CheckinCount: 1},
			}, nil
		},
	}
	checkIns := &mockCheckInRepo{
		ListByUserBetweenFunc: func(ctx context.Context, userID uint, from, to time.Time) ([]checkin.CheckIn, error) {
			return []checkin.CheckIn{
				{CheckinDate: monday, StressLevel: 5, Causes: []string{"workload", "deadline"}},
				{CheckinDate: wednesday, StressLevel: 1, Causes: []string{"workload"}},
			}, nil
		},
	}

	service := analytics.NewService(checkIns, stats, zerolog.Nop())
	dashboard, err := service.Dashboard(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if dashboard.AverageStress != 3 {
		t.Errorf("AverageStress = %v, want 3 (mean of per-day averages)", dashboard.AverageStress)
	}
	if dashboard.CheckInCount != 2 {
		t.Errorf("CheckInCount = %d, want 2", dashboard.CheckInCount)
	}
	if dashboard.TotalDays != 7 {
		t.Errorf("TotalDays = %d, want 7", dashboard.TotalDays)
	}
	if dashboard.ComparisonPercentage != 0 {
		t.Errorf("ComparisonPercentage = %d, want 0", dashboard.ComparisonPercentage)
	}

	if len(dashboard.DailyTrend) != 2 {
		t.Fatalf("len(DailyTrend) = %d, want 2", len(dashboard.DailyTrend))
	}
	if dashboard.DailyTrend[0].Date != "Jun 2" || dashboard.DailyTrend[0].Stress != 5 {
		t.Errorf("DailyTrend[0] = %+v", dashboard.DailyTrend[0])
	}

	if len(dashboard.WeekdayAverages) != 7 {
		t.Fatalf("len(WeekdayAverages) = %d, want all seven weekdays", len(dashboard.WeekdayAverages))
	}
	wantWeekdays := map[string]float64{
		"Mon": 5, "Tue": 0, "Wed": 1, "Thu": 0, "Fri": 0, "Sat": 0, "Sun": 0,
	}
	if dashboard.WeekdayAverages[0].Day != "Mon" {
		t.Errorf("weekday order should start with Mon, got %q", dashboard.WeekdayAverages[0].Day)
	}
	for _, wd := range dashboard.WeekdayAverages {
		if want, ok := wantWeekdays[wd.Day]; !ok || wd.Stress != want {
			t.Errorf("weekday %q stress = %v, want %v", wd.Day, wd.Stress, want)
		}
	}

	if len(dashboard.CauseBreakdown) != 2 {
		t.Fatalf("len(CauseBreakdown) = %d, want 2", len(dashboard.CauseBreakdown))
	}
	// workload: 2 of 3 causes = 67%, deadline: 1 of 3 = 33%, sorted descending.
	if dashboard.CauseBreakdown[0].Name != "workload" || dashboard.CauseBreakdown[0].Value != 67 {
		t.Errorf("CauseBreakdown[0] = %+v, want workload at 67", dashboard.CauseBreakdown[0])
	}
	if dashboard.CauseBreakdown[1].Name != "deadline" || dashboard.CauseBreakdown[1].Value != 33 {
		t.Errorf("CauseBreakdown[1] = %+v, want deadline at 33", dashboard.CauseBreakdown[1])
	}
	if dashboard.CauseBreakdown[0].Color != "#F59E0B" {
		t.Errorf("workload color = %q", dashboard.CauseBreakdown[0].Color)
	}
}

func TestDashboardEmptyPeriod(t *testing.T) {
	stats := &mockStatRepo{
		ListByUserBetweenFunc: func(ctx context.Context, userID uint, from, to time.Time) ([]checkin.DailyStatistic, error) {
			return nil, nil
		},
	}
	checkIns := &mockCheckInRepo{
		ListByUserBetweenFunc: func(ctx context.Context, userID uint, from, to time.Time) ([]checkin.CheckIn, error) {
			return nil, nil
		},
	}

	service := analytics.NewService(checkIns, stats, zerolog.Nop())
	dashboard, err := service.Dashboard(context.Background(), 1, 30)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}

	if dashboard.AverageStress != 0 || dashboard.CheckInCount != 0 {
		t.Errorf("empty period should aggregate to zero, got %+v", dashboard)
	}
	if dashboard.TotalDays != 30 {
		t.Errorf("TotalDays = %d, want 30", dashboard.TotalDays)
	}
	if len(dashboard.WeekdayAverages) != 7 {
		t.Errorf("weekday chart should always have seven bars, got %d", len(dashboard.WeekdayAverages))
	}
	if len(dashboard.DailyTrend) != 0 || len(dashboard.CauseBreakdown) != 0 {
		t.Error("trend and breakdown should be empty slices")
	}
}

func TestDashboardDefaultsPeriod(t *testing.T) {
	var gotFrom, gotTo time.Time
	stats := &mockStatRepo{
		ListByUserBetweenFunc: func(ctx context.Context, userID uint, from, to time.Time) ([]checkin.DailyStatistic, error) {
			gotFrom, gotTo = from, to
			return nil, nil
		},
	}
	checkIns := &mockCheckInRepo{
		ListByUserBetweenFunc: func(ctx context.Context, userID uint, from, to time.Time) ([]checkin.CheckIn, error) {
			return nil, nil
		},
	}

	service := analytics.NewService(checkIns, stats, zerolog.Nop())
	dashboard, err := service.Dashboard(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if dashboard.TotalDays != 7 {
		t.Errorf("TotalDays = %d, want default of 7", dashboard.TotalDays)
	}
	if days := int(gotTo.Sub(gotFrom).Hours()/24) + 1; days != 7 {
		t.Errorf("query window spans %d days, want 7", days)
	}
}
