package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"licznik-schodow/internal/models"

	"github.com/stretchr/testify/require"
)

// fakeStore serves canned leaderboard rows keyed by the window start it is
// asked for, mimicking the ordering contract of the real store (total
// descending, username ascending).
type fakeStore struct {
	totalsByStart map[time.Time][]models.UserTotal
	userCount     int64
	newestUser    *models.User
	totalsErr     error
}

func (f *fakeStore) UserTotalsSince(ctx context.Context, since time.Time) ([]models.UserTotal, error) {
	if f.totalsErr != nil {
		return nil, f.totalsErr
	}
	return f.totalsByStart[since], nil
}

func (f *fakeStore) CountUsers(ctx context.Context) (int64, error) {
	return f.userCount, nil
}

func (f *fakeStore) GetNewestUser(ctx context.Context) (*models.User, error) {
	return f.newestUser, nil
}

// Wednesday 2024-06-12; week starts Sunday 2024-06-09, month 2024-06-01.
var testNow = time.Date(2024, 6, 12, 15, 30, 0, 0, time.UTC)

func TestStartOfWeek(t *testing.T) {
	start := StartOfWeek(testNow)
	require.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Sunday, start.Weekday())

	// A Sunday is its own week start.
	sunday := time.Date(2024, 6, 9, 23, 59, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC), StartOfWeek(sunday))

	// Week start may fall in the previous month.
	monday := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), StartOfWeek(monday))
}

func TestStartOfMonth(t *testing.T) {
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(testNow))
}

func TestComputeStats_TwoChallengers(t *testing.T) {
	// anna logged 5 up + 3 down, bartek 2 up + 1 down, all this week.
	weekTotals := []models.UserTotal{
		{Username: "anna", TotalStairs: 8},
		{Username: "bartek", TotalStairs: 3},
	}
	store := &fakeStore{
		totalsByStart: map[time.Time][]models.UserTotal{
			StartOfWeek(testNow):  weekTotals,
			StartOfMonth(testNow): weekTotals,
		},
		userCount:  2,
		newestUser: &models.User{ID: 2, Username: "bartek"},
	}

	snapshot, err := NewAggregator(store).ComputeStats(context.Background(), testNow)
	require.NoError(t, err)

	require.Equal(t, "anna", snapshot.TopUserWeek.Username)
	require.EqualValues(t, 8, snapshot.TopUserWeek.TotalStairs)
	require.Equal(t, "bartek", snapshot.BottomUserWeek.Username)
	require.EqualValues(t, 3, snapshot.BottomUserWeek.TotalStairs)

	require.Equal(t, "bartek", snapshot.NewestChallenger)
	require.EqualValues(t, 2, snapshot.NumberOfChallengers)

	require.Len(t, snapshot.TopTwoUsers, 2)
	require.Equal(t, "anna", snapshot.TopTwoUsers[0].Username)
	require.EqualValues(t, 11, snapshot.TotalStairsThisMonth)
	// round(11 / 2) = 6
	require.EqualValues(t, 6, snapshot.AverageStairsPerUser)
}

func TestComputeStats_TopTwoOnlySum(t *testing.T) {
	// The monthly total deliberately counts only the top two climbers.
	monthTotals := []models.UserTotal{
		{Username: "celina", TotalStairs: 100},
		{Username: "darek", TotalStairs: 50},
		{Username: "ewa", TotalStairs: 25},
	}
	store := &fakeStore{
		totalsByStart: map[time.Time][]models.UserTotal{
			StartOfMonth(testNow): monthTotals,
		},
		userCount:  3,
		newestUser: &models.User{ID: 3, Username: "ewa"},
	}

	snapshot, err := NewAggregator(store).ComputeStats(context.Background(), testNow)
	require.NoError(t, err)

	require.Len(t, snapshot.TopTwoUsers, 2)
	require.EqualValues(t, 150, snapshot.TotalStairsThisMonth, "only the top two totals count")
	require.EqualValues(t, 50, snapshot.AverageStairsPerUser)

	// All totals in the window are bounded by top and bottom.
	for _, total := range monthTotals {
		require.LessOrEqual(t, total.TotalStairs, snapshot.TopUserMonth.TotalStairs)
		require.GreaterOrEqual(t, total.TotalStairs, snapshot.BottomUserMonth.TotalStairs)
	}
}

func TestComputeStats_SingleChallenger(t *testing.T) {
	monthTotals := []models.UserTotal{{Username: "anna", TotalStairs: 42}}
	store := &fakeStore{
		totalsByStart: map[time.Time][]models.UserTotal{
			StartOfMonth(testNow): monthTotals,
		},
		userCount:  1,
		newestUser: &models.User{ID: 1, Username: "anna"},
	}

	snapshot, err := NewAggregator(store).ComputeStats(context.Background(), testNow)
	require.NoError(t, err)

	require.Len(t, snapshot.TopTwoUsers, 1)
	require.EqualValues(t, 42, snapshot.TotalStairsThisMonth)
	require.EqualValues(t, 42, snapshot.AverageStairsPerUser)
	require.Nil(t, snapshot.TopUserWeek, "no logs this week")
	require.Nil(t, snapshot.BottomUserWeek)
}

func TestComputeStats_EmptyWindows(t *testing.T) {
	store := &fakeStore{
		totalsByStart: map[time.Time][]models.UserTotal{},
		userCount:     3,
		newestUser:    &models.User{ID: 3, Username: "ewa"},
	}

	snapshot, err := NewAggregator(store).ComputeStats(context.Background(), testNow)
	require.NoError(t, err)

	require.Nil(t, snapshot.TopUserWeek)
	require.Nil(t, snapshot.TopUserMonth)
	require.Nil(t, snapshot.BottomUserWeek)
	require.Nil(t, snapshot.BottomUserMonth)
	require.Empty(t, snapshot.TopTwoUsers)
	require.EqualValues(t, 0, snapshot.TotalStairsThisMonth)
	require.EqualValues(t, 0, snapshot.AverageStairsPerUser)
}

func TestComputeStats_NoChallengers(t *testing.T) {
	store := &fakeStore{
		totalsByStart: map[time.Time][]models.UserTotal{},
		userCount:     0,
	}

	snapshot, err := NewAggregator(store).ComputeStats(context.Background(), testNow)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNoChallengers)
	require.Nil(t, snapshot)
}

func TestComputeStats_TieBreak(t *testing.T) {
	// Equal totals resolve to the lexicographically smallest username, top
	// and bottom alike.
	weekTotals := []models.UserTotal{
		{Username: "anna", TotalStairs: 10},
		{Username: "bartek", TotalStairs: 10},
		{Username: "celina", TotalStairs: 4},
		{Username: "darek", TotalStairs: 4},
	}
	store := &fakeStore{
		totalsByStart: map[time.Time][]models.UserTotal{
			StartOfWeek(testNow):  weekTotals,
			StartOfMonth(testNow): weekTotals,
		},
		userCount:  4,
		newestUser: &models.User{ID: 4, Username: "darek"},
	}

	snapshot, err := NewAggregator(store).ComputeStats(context.Background(), testNow)
	require.NoError(t, err)

	require.Equal(t, "anna", snapshot.TopUserWeek.Username)
	require.Equal(t, "celina", snapshot.BottomUserWeek.Username)
}

func TestComputeStats_Rounding(t *testing.T) {
	monthTotals := []models.UserTotal{
		{Username: "anna", TotalStairs: 4},
		{Username: "bartek", TotalStairs: 3},
	}
	store := &fakeStore{
		totalsByStart: map[time.Time][]models.UserTotal{
			StartOfMonth(testNow): monthTotals,
		},
		userCount:  2,
		newestUser: &models.User{ID: 2, Username: "bartek"},
	}

	snapshot, err := NewAggregator(store).ComputeStats(context.Background(), testNow)
	require.NoError(t, err)

	// round(7 / 2) = 4, half rounds away from zero.
	require.EqualValues(t, 4, snapshot.AverageStairsPerUser)
}

func TestComputeStats_StoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &fakeStore{
		totalsErr:  storeErr,
		userCount:  2,
		newestUser: &models.User{ID: 2, Username: "bartek"},
	}

	_, err := NewAggregator(store).ComputeStats(context.Background(), testNow)
	require.Error(t, err)
	require.ErrorIs(t, err, storeErr)
}
