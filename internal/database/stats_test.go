package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserTotalsSince(t *testing.T) {
	userA := createTestUser(t, "totals_anna")
	userB := createTestUser(t, "totals_bartek")

	// Inside the window: anna 8, bartek 3. Outside: anna 100.
	since := logDate(2030, 1, 5)
	createTestLog(t, CreateDailyLogParams{UserID: userA.ID, Date: logDate(2030, 1, 5), Upstairs: 5, Downstairs: 3})
	createTestLog(t, CreateDailyLogParams{UserID: userB.ID, Date: logDate(2030, 1, 6), Upstairs: 2, Downstairs: 1})
	createTestLog(t, CreateDailyLogParams{UserID: userA.ID, Date: logDate(2030, 1, 4), Upstairs: 100})

	totals, err := testStore.UserTotalsSince(context.Background(), since)
	require.NoError(t, err)

	byUsername := map[string]int64{}
	for _, total := range totals {
		byUsername[total.Username] = total.TotalStairs
	}
	require.EqualValues(t, 8, byUsername["totals_anna"], "log before the window must not count")
	require.EqualValues(t, 3, byUsername["totals_bartek"])
}

func TestUserTotalsSince_Ordering(t *testing.T) {
	userC := createTestUser(t, "totals_celina")
	userD := createTestUser(t, "totals_darek")
	userE := createTestUser(t, "totals_ewa")

	// celina and darek tie on 10, ewa trails with 4, in a far-future window
	// that no other test writes into.
	createTestLog(t, CreateDailyLogParams{UserID: userD.ID, Date: logDate(2031, 3, 2), Upstairs: 10})
	createTestLog(t, CreateDailyLogParams{UserID: userC.ID, Date: logDate(2031, 3, 3), Upstairs: 6, Downstairs: 4})
	createTestLog(t, CreateDailyLogParams{UserID: userE.ID, Date: logDate(2031, 3, 4), Upstairs: 4})

	totals, err := testStore.UserTotalsSince(context.Background(), logDate(2031, 3, 1))
	require.NoError(t, err)
	require.Len(t, totals, 3)

	require.Equal(t, "totals_celina", totals[0].Username, "ties order by username ascending")
	require.Equal(t, "totals_darek", totals[1].Username)
	require.Equal(t, "totals_ewa", totals[2].Username)
	require.EqualValues(t, 10, totals[0].TotalStairs)
	require.EqualValues(t, 10, totals[1].TotalStairs)
	require.EqualValues(t, 4, totals[2].TotalStairs)
}

func TestUserTotalsSince_EmptyWindow(t *testing.T) {
	totals, err := testStore.UserTotalsSince(context.Background(), logDate(2099, 1, 1))
	require.NoError(t, err)
	require.NotNil(t, totals)
	require.Empty(t, totals)
}

func TestUserTotalsSince_MultipleLogsSameDaySummed(t *testing.T) {
	user := createTestUser(t, "totals_filip")

	day := logDate(2032, 5, 10)
	createTestLog(t, CreateDailyLogParams{UserID: user.ID, Date: day, Upstairs: 3, Downstairs: 1})
	createTestLog(t, CreateDailyLogParams{UserID: user.ID, Date: day, Upstairs: 2, Downstairs: 2})

	totals, err := testStore.UserTotalsSince(context.Background(), logDate(2032, 5, 1))
	require.NoError(t, err)
	require.Len(t, totals, 1)
	require.EqualValues(t, 8, totals[0].TotalStairs)
}

// Verified against the aggregator's contract: totals must bound every user
// total in the window from above and below.
func TestUserTotalsSince_Bounds(t *testing.T) {
	userG := createTestUser(t, "totals_grazyna")
	userH := createTestUser(t, "totals_henryk")

	createTestLog(t, CreateDailyLogParams{UserID: userG.ID, Date: logDate(2033, 7, 2), Upstairs: 20})
	createTestLog(t, CreateDailyLogParams{UserID: userH.ID, Date: logDate(2033, 7, 3), Upstairs: 5})

	totals, err := testStore.UserTotalsSince(context.Background(), time.Date(2033, 7, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, totals)

	top := totals[0]
	bottom := totals[len(totals)-1]
	for _, total := range totals {
		require.LessOrEqual(t, total.TotalStairs, top.TotalStairs)
		require.GreaterOrEqual(t, total.TotalStairs, bottom.TotalStairs)
	}
}
