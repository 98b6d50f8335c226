package checkin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"softday/wellness-api/internal/domain/checkin"
	"softday/wellness-api/internal/utils/platformerrors"
)

type mockRepo struct {
	CreateFunc            func(ctx context.Context, c *checkin.CheckIn) error
	FindByUserAndDateFunc func(ctx context.Context, userID uint, date time.Time) (*checkin.CheckIn, error)
}

func (m *mockRepo) Create(ctx context.Context, c *checkin.CheckIn) error {
	return m.CreateFunc(ctx, c)
}

func (m *mockRepo) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*checkin.CheckIn, error) {
	return m.FindByUserAndDateFunc(ctx, userID, date)
}

func (m *mockRepo) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]checkin.CheckIn, error) {
	return nil, nil
}

type mockStatRepo struct {
	FindByUserAndDateFunc func(ctx context.Context, userID uint, date time.Time) (*checkin.DailyStatistic, error)
	SaveFunc              func(ctx context.Context, stat *checkin.DailyStatistic) error
}

func (m *mockStatRepo) FindByUserAndDate(ctx context.Context, userID uint, date time.Time) (*checkin.DailyStatistic, error) {
	return m.FindByUserAndDateFunc(ctx, userID, date)
}

func (m *mockStatRepo) Save(ctx context.Context, stat *checkin.DailyStatistic) error {
	return m.SaveFunc(ctx, stat)
}

func (m *mockStatRepo) ListByUserBetween(ctx context.Context, userID uint, from, to time.Time) ([]checkin.DailyStatistic, error) {
	return nil, nil
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "not found", nil)
}

func emptyRepos() (*mockRepo, *mockStatRepo) {
	repo := &mockRepo{
		CreateFunc: func(ctx context.Context, c *checkin.CheckIn) error { return nil },
		FindByUserAndDateFunc: func(ctx context.Context, userID uint, date time.Time) (*checkin.CheckIn, error) {
			return nil, notFound(ctx)
		},
	}
	stats := &mockStatRepo{
		FindByUserAndDateFunc: func(ctx context.Context, userID uint, date time.Time) (*checkin.DailyStatistic, error) {
			return nil, notFound(ctx)
		},
		SaveFunc: func(ctx context.Context, stat *checkin.DailyStatistic) error { return nil },
	}
	return repo, stats
}

func TestCreateValidatesStressLevel(t *testing.T) {
	repo, stats := emptyRepos()
	service := checkin.NewService(repo, stats, zerolog.Nop())

	for _, level := range []int{0, 6, -1} {
		_, err := service.Create(context.Background(), 1, level, nil, "")
		if !platformerrors.IsType(err, platformerrors.ErrorTypeValidation) {
			t.Errorf("Create(level=%d) error = %v, want VALIDATION", level, err)
		}
	}
}

func TestCreateRejectsSameDayDuplicate(t *testing.T) {
	repo, stats := emptyRepos()
	repo.FindByUserAndDateFunc = func(ctx context.Context, userID uint, date time.Time) (*checkin.CheckIn, error) {
		return &checkin.CheckIn{UserID: userID, CheckinDate: date}, nil
	}
	service := checkin.NewService(repo, stats, zerolog.Nop())

	_, err := service.Create(context.Background(), 1, 3, nil, "")
	if !platformerrors.IsType(err, platformerrors.ErrorTypeConflict) {
		t.Fatalf("Create() error = %v, want CONFLICT", err)
	}
}

func TestCreateStampsDerivedFields(t *testing.T) {
	repo, stats := emptyRepos()
	var created *checkin.CheckIn
	repo.CreateFunc = func(ctx context.Context, c *checkin.CheckIn) error {
		created = c
		return nil
	}
	service := checkin.NewService(repo, stats, zerolog.Nop())

	result, err := service.Create(context.Background(), 1, 5, []string{"workload"}, "long day")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created != result {
		t.Error("returned check-in should be the persisted one")
	}
	if created.Emoji != "😫" {
		t.Errorf("Emoji = %q, want 😫 for level 5", created.Emoji)
	}
	if created.PublicID == "" {
		t.Error("PublicID should be assigned")
	}
	if h, m, s := created.CheckinDate.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("CheckinDate = %v, want midnight", created.CheckinDate)
	}
}

func TestCreateUpdatesDailyStatistics(t *testing.T) {
	repo, stats := emptyRepos()
	stats.FindByUserAndDateFunc = func(ctx context.Context, userID uint, date time.Time) (*checkin.DailyStatistic, error) {
		return &checkin.DailyStatistic{UserID: userID, StatDate: date, AvgStressLevel: 2, CheckinCount: 1}, nil
	}
	var saved *checkin.DailyStatistic
	stats.SaveFunc = func(ctx context.Context, stat *checkin.DailyStatistic) error {
		saved = stat
		return nil
	}
	service := checkin.NewService(repo, stats, zerolog.Nop())

	if _, err := service.Create(context.Background(), 1, 4, nil, ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if saved == nil {
		t.Fatal("statistics should have been saved")
	}
	if saved.CheckinCount != 2 {
		t.Errorf("CheckinCount = %d, want 2", saved.CheckinCount)
	}
	if saved.AvgStressLevel != 3 {
		t.Errorf("AvgStressLevel = %v, want 3 ((2+4)/2)", saved.AvgStressLevel)
	}
}

func TestCreateSurvivesStatisticsFailure(t *testing.T) {
	repo, stats := emptyRepos()
	stats.SaveFunc = func(ctx context.Context, stat *checkin.DailyStatistic) error {
		return errors.New("statistics table unavailable")
	}
	service := checkin.NewService(repo, stats, zerolog.Nop())

	checkIn, err := service.Create(context.Background(), 1, 2, nil, "")
	if err != nil {
		t.Fatalf("Create() error = %v, statistics failures must not fail the check-in", err)
	}
	if checkIn == nil {
		t.Fatal("check-in should still be returned")
	}
}

func TestEmojiForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "😊"}, {2, "🙂"}, {3, "😐"}, {4, "😟"}, {5, "😫"}, {0, "😐"}, {9, "😐"},
	}
	for _, tt := range tests {
		if got := checkin.EmojiForLevel(tt.level); got != tt.want {
			t.Errorf("EmojiForLevel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
