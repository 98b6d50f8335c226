// Package analytics aggregates check-in history into the dashboard payload.
package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/checkin"
)

// causeColors maps known stress-cause tags to their chart colors.
var causeColors = map[string]string{
	"workload":      "#F59E0B",
	"meetings":      "#EF4444",
	"deadline":      "#8B5CF6",
	"communication": "#3B82F6",
	"other":         "#10B981",
}

const defaultCauseColor = "#6B7280"

// weekdaysMondayFirst fixes the dashboard weekday order.
var weekdaysMondayFirst = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// DailyStress is one point of the daily trend chart.
type DailyStress struct {
	Date   string  `json:"date"`
	Stress float64 `json:"stress"`
}

// WeekdayStress is one bar of the weekday chart.
type WeekdayStress struct {
	Day    string  `json:"day"`
	Stress float64 `json:"stress"`
}

// CauseShare is one slice of the cause-breakdown chart.
type CauseShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Dashboard is the aggregated analytics payload for one user and period.
type Dashboard struct {
	AverageStress        float64         `json:"averageStress"`
	CheckInCount         int             `json:"checkInCount"`
	TotalDays            int             `json:"totalDays"`
	ComparisonPercentage int             `json:"comparisonPercentage"`
	DailyTrend           []DailyStress   `json:"dailyTrend"`
	WeekdayAverages      []WeekdayStress `json:"weekdayAverages"`
	CauseBreakdown       []CauseShare    `json:"causeBreakdown"`
}

// Service computes dashboard aggregates from persisted statistics and raw
// check-in rows.
type Service struct {
	checkIns   checkin.Repository
	statistics checkin.StatisticRepository
	now        func() time.Time
	log        zerolog.Logger
}

// NewService wires the analytics service.
func NewService(checkIns checkin.Repository, statistics checkin.StatisticRepository, log zerolog.Logger) *Service {
	return &Service{
		checkIns:   checkIns,
		statistics: statistics,
		now:        time.Now,
		log:        log.With().Str("component", "analytics-service").Logger(),
	}
}

// Dashboard aggregates the trailing periodDays window ending today. Daily
// summary numbers come from the statistic rows; weekday and cause charts come
// from the raw check-ins.
func (s *Service) Dashboard(ctx context.Context, userID uint, periodDays int) (*Dashboard, error) {
	if periodDays < 1 {
		periodDays = 7
	}

	end := checkin.Midnight(s.now())
	start := end.AddDate(0, 0, -(periodDays - 1))

	stats, err := s.statistics.ListByUserBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	checkIns, err := s.checkIns.ListByUserBetween(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		TotalDays:            periodDays,
		ComparisonPercentage: 0,
	}
	s.foldStatistics(dashboard, stats)
	s.foldCheckIns(dashboard, checkIns)
	return dashboard, nil
}

// foldStatistics fills the summary card and the daily trend, oldest first.
// The period average is the mean of per-day averages with at least one
// check-in, rounded half-up to two decimals.
func (s *Service) foldStatistics(dashboard *Dashboard, stats []checkin.DailyStatistic) {
	var stressSum float64
	var stressDays int

	dashboard.DailyTrend = make([]DailyStress, 0, len(stats))
	for _, stat := range stats {
		dashboard.CheckInCount += stat.CheckinCount
		if stat.AvgStressLevel > 0 {
			stressSum += stat.AvgStressLevel
			stressDays++
		}
		dashboard.DailyTrend = append(dashboard.DailyTrend, DailyStress{
			Date:   stat.StatDate.Format("Jan 2"),
			Stress: stat.AvgStressLevel,
		})
	}

	if stressDays > 0 {
		dashboard.AverageStress = roundHalfUp2(stressSum / float64(stressDays))
	}
}

// foldCheckIns fills the weekday averages (Monday first, 0.0 gaps) and the
// cause percentages (descending).
func (s *Service) foldCheckIns(dashboard *Dashboard, checkIns []checkin.CheckIn) {
	type bucket struct {
		sum   float64
		count int
	}
	weekdayBuckets := make(map[time.Weekday]*bucket)
	causeCounts := make(map[string]int)
	totalCauses := 0

	for _, c := range checkIns {
		day := c.CheckinDate.Weekday()
		b := weekdayBuckets[day]
		if b == nil {
			b = &bucket{}
			weekdayBuckets[day] = b
		}
		b.sum += float64(c.StressLevel)
		b.count++

		for _, cause := range c.Causes {
			causeCounts[cause]++
			totalCauses++
		}
	}

	dashboard.WeekdayAverages = make([]WeekdayStress, 0, len(weekdaysMondayFirst))
	for _, day := range weekdaysMondayFirst {
		avg := 0.0
		if b := weekdayBuckets[day]; b != nil && b.count > 0 {
			avg = b.sum / float64(b.count)
		}
		dashboard.WeekdayAverages = append(dashboard.WeekdayAverages, WeekdayStress{
			Day:    day.String()[:3],
			Stress: avg,
		})
	}

	dashboard.CauseBreakdown = make([]CauseShare, 0, len(causeCounts))
	for name, count := range causeCounts {
		percentage := 0
		if totalCauses > 0 {
			percentage = int(math.Round(float64(count) / float64(totalCauses) * 100))
		}
		color, ok := causeColors[name]
		if !ok {
			color = defaultCauseColor
		}
		dashboard.CauseBreakdown = append(dashboard.CauseBreakdown, CauseShare{
			Name:  name,
			Value: percentage,
			Color: color,
		})
	}
	sort.Slice(dashboard.CauseBreakdown, func(i, j int) bool {
		a, b := dashboard.CauseBreakdown[i], dashboard.CauseBreakdown[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Name < b.Name
	})
}

func roundHalfUp2(v float64) float64 {
	return math.Round(v*100) / 100
}
