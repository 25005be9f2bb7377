// Package stats computes the challenge leaderboard snapshot shown on the
// stats dashboard: best and worst climbers for the running week and month,
// the top-two comparison chart and a few headline numbers.
package stats

import (
	"context"
	"errors"
	"math"
	"time"

	"licznik-schodow/internal/models"

	"golang.org/x/sync/errgroup"
)

// ErrNoChallengers is returned when the average cannot be computed because
// nobody has registered yet.
var ErrNoChallengers = errors.New("no challengers registered")

// Store is the read-side the aggregator needs. *database.PostgresStore
// satisfies it; tests inject a fake.
type Store interface {
	UserTotalsSince(ctx context.Context, since time.Time) ([]models.UserTotal, error)
	CountUsers(ctx context.Context) (int64, error)
	GetNewestUser(ctx context.Context) (*models.User, error)
}

type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Snapshot is the full set of dashboard statistics for one instant. Note
// that totalStairsThisMonth and averageStairsPerUser are derived from the
// top two climbers only, not the whole field; clients depend on that.
type Snapshot struct {
	TopUserWeek          *models.UserTotal  `json:"topUserWeek"`
	TopUserMonth         *models.UserTotal  `json:"topUserMonth"`
	BottomUserWeek       *models.UserTotal  `json:"bottomUserWeek"`
	BottomUserMonth      *models.UserTotal  `json:"bottomUserMonth"`
	NewestChallenger     string             `json:"newestChallenger"`
	NumberOfChallengers  int64              `json:"numberOfChallengers"`
	TopTwoUsers          []models.UserTotal `json:"topTwoUsers"`
	TotalStairsThisMonth int64              `json:"totalStairsThisMonth"`
	AverageStairsPerUser int64              `json:"averageStairsPerUser"`
}

// StartOfWeek is the most recent Sunday at 00:00 on or before t, in t's
// location.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth is the first calendar day of t's month at 00:00.
func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// ComputeStats builds the dashboard snapshot for the given instant. The four
// store reads fan out concurrently and all must finish before the snapshot
// is returned; there is no transactional isolation between them, a write
// landing mid-computation may be visible to some reads and not others.
func (a *Aggregator) ComputeStats(ctx context.Context, now time.Time) (*Snapshot, error) {
	var (
		weekTotals  []models.UserTotal
		monthTotals []models.UserTotal
		userCount   int64
		newestUser  *models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		weekTotals, err = a.store.UserTotalsSince(gctx, StartOfWeek(now))
		return err
	})
	g.Go(func() error {
		var err error
		monthTotals, err = a.store.UserTotalsSince(gctx, StartOfMonth(now))
		return err
	})
	g.Go(func() error {
		var err error
		userCount, err = a.store.CountUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		newestUser, err = a.store.GetNewestUser(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		TopUserWeek:         topUser(weekTotals),
		TopUserMonth:        topUser(monthTotals),
		BottomUserWeek:      bottomUser(weekTotals),
		BottomUserMonth:     bottomUser(monthTotals),
		NumberOfChallengers: userCount,
		TopTwoUsers:         topTwo(monthTotals),
	}
	if newestUser != nil {
		snapshot.NewestChallenger = newestUser.Username
	}

	for _, t := range snapshot.TopTwoUsers {
		snapshot.TotalStairsThisMonth += t.TotalStairs
	}

	if userCount == 0 {
		return nil, ErrNoChallengers
	}
	snapshot.AverageStairsPerUser = int64(math.Round(float64(snapshot.TotalStairsThisMonth) / float64(userCount)))

	return snapshot, nil
}

// topUser picks the highest total. Totals arrive ordered by total descending
// and username ascending, so ties resolve to the lexicographically smallest
// username.
func topUser(totals []models.UserTotal) *models.UserTotal {
	if len(totals) == 0 {
		return nil
	}
	t := totals[0]
	return &t
}

// bottomUser picks the lowest total. The minimal rows sit at the tail of
// the ordered slice already sorted by username, so the first row carrying
// the minimal total is the lexicographically smallest tied username.
func bottomUser(totals []models.UserTotal) *models.UserTotal {
	if len(totals) == 0 {
		return nil
	}
	min := totals[len(totals)-1].TotalStairs
	for _, t := range totals {
		if t.TotalStairs == min {
			return &t
		}
	}
	return nil
}

func topTwo(totals []models.UserTotal) []models.UserTotal {
	if len(totals) > 2 {
		totals = totals[:2]
	}
	out := make([]models.UserTotal, len(totals))
	copy(out, totals)
	return out
}
