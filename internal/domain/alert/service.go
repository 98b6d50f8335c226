// Package alert evaluates stress-alert rules and delivers push notifications.
package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"softday/wellness-api/internal/domain/analytics"
	"softday/wellness-api/internal/domain/user"
	"softday/wellness-api/internal/infrastructure/metrics"
)

// ErrSubscriptionGone reports that the push endpoint rejected the
// subscription as expired. The stored subscription should be discarded.
var ErrSubscriptionGone = errors.New("push subscription gone")

// Sender delivers one push payload to one subscription.
type Sender interface {
	Send(ctx context.Context, sub user.PushSubscription, payload []byte) error
}

// DashboardProvider supplies the aggregated stress data the rules run on.
type DashboardProvider interface {
	Dashboard(ctx context.Context, userID uint, periodDays int) (*analytics.Dashboard, error)
}

const (
	alertTitle = "🧘 SoftDay stress alert"
	testTitle  = "🧘 SoftDay test alert"
	alertURL   = "/statistics"

	weeklyAvgThreshold  = 4.0
	weekdayAvgThreshold = 4.0
	evaluationWindow    = 7
)

// Decision is the outcome of evaluating one user's alert rules.
type Decision struct {
	Triggered bool
	Title     string
	Body      string
}

// pushPayload is the JSON document delivered to the push endpoint.
type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url"`
}

// Service runs the daily stress evaluation over all users.
type Service struct {
	users          user.Repository
	dashboards     DashboardProvider
	sender         Sender
	userConcurrent int
	userTimeout    time.Duration
	now            func() time.Time
	log            zerolog.Logger
}

// NewService wires the alert service. userConcurrent bounds how many users
// are evaluated in parallel during a batch run.
func NewService(
	users user.Repository,
	dashboards DashboardProvider,
	sender Sender,
	userConcurrent int,
	userTimeout time.Duration,
	log zerolog.Logger,
) *Service {
	if userConcurrent < 1 {
		userConcurrent = 1
	}
	return &Service{
		users:          users,
		dashboards:     dashboards,
		sender:         sender,
		userConcurrent: userConcurrent,
		userTimeout:    userTimeout,
		now:            time.Now,
		log:            log.With().Str("component", "alert-service").Logger(),
	}
}

// EvaluateAll evaluates every user with bounded parallelism. A failure for
// one user is logged and never cancels the rest of the batch.
func (s *Service) EvaluateAll(ctx context.Context) error {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return err
	}
	s.log.Info().Int("users", len(users)).Msg("stress alert evaluation started")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.userConcurrent)
	for _, u := range users {
		userID := u.ID
		g.Go(func() error {
			userCtx, cancel := context.WithTimeout(gctx, s.userTimeout)
			defer cancel()
			if _, err := s.EvaluateUser(userCtx, userID, false); err != nil {
				s.log.Error().Err(err).Uint("user_id", userID).Msg("alert evaluation failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	s.log.Info().Msg("stress alert evaluation finished")
	return nil
}

// EvaluateUser runs the alert rules for one user and sends a notification
// when they match. testMode forces a generic test notification regardless of
// the rules.
func (s *Service) EvaluateUser(ctx context.Context, userID uint, testMode bool) (*Decision, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err := s.dashboards.Dashboard(ctx, userID, evaluationWindow)
	if err != nil {
		return nil, err
	}

	decision := s.decide(data, testMode)
	if !decision.Triggered {
		metrics.RecordAlertEvaluation("not_triggered")
		return decision, nil
	}
	metrics.RecordAlertEvaluation("triggered")

	if err := s.deliver(ctx, u, decision); err != nil {
		return nil, err
	}
	return decision, nil
}

// decide applies the two alert rules in order: the 7-day average first, the
// today-weekday pattern second.
func (s *Service) decide(data *analytics.Dashboard, testMode bool) *Decision {
	today := s.now().Weekday().String()[:3]

	if data.AverageStress >= weeklyAvgThreshold {
		return &Decision{
			Triggered: true,
			Title:     alertTitle,
			Body: fmt.Sprintf("Your average stress over the last 7 days is %.1f. Take a moment for yourself today.",
				data.AverageStress),
		}
	}

	for _, weekday := range data.WeekdayAverages {
		if weekday.Day == today && weekday.Stress >= weekdayAvgThreshold {
			return &Decision{
				Triggered: true,
				Title:     alertTitle,
				Body: fmt.Sprintf("Your stress has been high on %ss lately (average %.1f). How about taking it a little slower today?",
					weekday.Day, weekday.Stress),
			}
		}
	}

	if testMode {
		return &Decision{
			Triggered: true,
			Title:     testTitle,
			Body: fmt.Sprintf("This is a test notification. (current 7-day average stress: %.1f, today: %s)",
				data.AverageStress, today),
		}
	}

	return &Decision{}
}

// deliver sends the notification payload. An expired subscription is cleared
// from storage instead of being treated as a failure.
func (s *Service) deliver(ctx context.Context, u *user.User, decision *Decision) error {
	if !u.HasPush() {
		s.log.Warn().Uint("user_id", u.ID).Msg("alert triggered but user has no push subscription")
		return nil
	}

	payload, err := json.Marshal(pushPayload{
		Title: decision.Title,
		Body:  decision.Body,
		URL:   alertURL,
	})
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, *u.Push, payload); err != nil {
		if errors.Is(err, ErrSubscriptionGone) {
			s.log.Info().Uint("user_id", u.ID).Msg("push subscription expired, clearing")
			return s.users.ClearPushSubscription(ctx, u.ID)
		}
		return err
	}

	s.log.Info().Uint("user_id", u.ID).Str("title", decision.Title).Msg("push notification sent")
	return nil
}
