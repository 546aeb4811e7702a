package connectors

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastMock(failureRate float64) *MockStatsConnector {
	c := NewMockStatsConnector(failureRate)
	c.MinLatency, c.MaxLatency = 0, time.Millisecond
	return c
}

func TestMockStatsConnector_Consistent(t *testing.T) {
	c := fastMock(0)
	ctx := context.Background()

	for range 20 {
		emp, err := c.EmployeeStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, emp.Active+emp.Terminated, emp.Total)
		assert.Equal(t, emp.Active, emp.FullTime+emp.PartTime)

		leave, err := c.LeaveStats(ctx, 0)
		require.NoError(t, err)
		assert.Equal(t, time.Now().Year(), leave.Year)
		assert.Equal(t, leave.Approved+leave.Pending+leave.Rejected, leave.Total)

		rec, err := c.RecruitmentReport(ctx)
		require.NoError(t, err)
		require.NotNil(t, rec.OpenPositions)
		require.NotNil(t, rec.Shortlisted)

		att, err := c.AttendanceStats(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, att.Present, 0)
		assert.LessOrEqual(t, att.AttendanceRate, 100.0)
	}

	leave, err := c.LeaveStats(ctx, 2023)
	require.NoError(t, err)
	assert.Equal(t, 2023, leave.Year)

	activities, err := c.RecentActivities(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, activities, 4)
}

func TestMockStatsConnector_AlwaysFails(t *testing.T) {
	c := fastMock(1)
	_, err := c.ExpenseStats(context.Background())
	assert.ErrorIs(t, err, ErrMockUnavailable)

	_, err = c.RecentActivities(context.Background(), 3)
	assert.ErrorIs(t, err, ErrMockUnavailable)
}

func TestMockStatsConnector_RespectsContext(t *testing.T) {
	c := NewMockStatsConnector(0)
	c.MinLatency, c.MaxLatency = time.Second, time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.TrainingStats(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
