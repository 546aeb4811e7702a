package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
)

var errSourceDown = errors.New("source down")

func intPtr(v int) *int { return &v }

// Образцы заведомо отличаются от fallback-таблицы.
var (
	sampleEmployee     = domain.EmployeeStats{Total: 200, Active: 180, Terminated: 20, FullTime: 150, PartTime: 30}
	sampleLeave        = domain.LeaveStats{Year: 2031, Total: 40, Approved: 30, Pending: 6, Rejected: 4}
	sampleRecruitment  = domain.RecruitmentStats{OpenPositions: 9, TotalApplications: 60, InterviewsScheduled: 7, Shortlisted: 21}
	sampleAttendance   = domain.AttendanceStats{TotalEmployees: 180, Present: 170, Absent: 4, Late: 6, OnLeave: 6, AttendanceRate: 94.4}
	sampleCompliance   = domain.ComplianceStats{TotalPolicies: 70, Compliant: 65, NonCompliant: 5, PendingReviews: 2, CriticalIssues: 1}
	sampleExpense      = domain.ExpenseStats{TotalClaims: 22, PendingClaims: 5, ApprovedClaims: 17, TotalAmount: 8100.5, PendingAmount: 950}
	sampleTraining     = domain.TrainingStats{ActivePrograms: 11, EnrolledEmployees: 40, CompletedSessions: 210, UpcomingSessions: 5, CompletionRate: 91}
	sampleNotification = domain.NotificationStats{Total: 30, Unread: 9, Urgent: 2, ActionRequired: 4}
)

// sampleFor - ожидаемое значение поля снимка для успешного источника.
func sampleFor(src domain.StatsSource) any {
	switch src {
	case domain.SourceEmployee:
		return sampleEmployee
	case domain.SourceLeave:
		return sampleLeave
	case domain.SourceRecruitment:
		return sampleRecruitment
	case domain.SourceAttendance:
		return sampleAttendance
	case domain.SourceCompliance:
		return sampleCompliance
	case domain.SourceExpense:
		return sampleExpense
	case domain.SourceTraining:
		return sampleTraining
	case domain.SourceNotification:
		return sampleNotification
	}
	return nil
}

type fakeFetcher struct {
	fail    [domain.SourceCount]bool
	panics  [domain.SourceCount]bool
	latency [domain.SourceCount]time.Duration
	// blockOn - источник ждет закрытия канала, игнорируя контекст
	blockOn map[domain.StatsSource]chan struct{}
	calls   [domain.SourceCount]atomic.Int32

	recruitment *domain.RecruitmentReport
	leaveYears  chan int

	activities     []domain.Activity
	activityErr    error
	activityPanics bool
	activityLimit  atomic.Int32
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{blockOn: map[domain.StatsSource]chan struct{}{}}
}

func (f *fakeFetcher) failing(sources ...domain.StatsSource) *fakeFetcher {
	for _, s := range sources {
		f.fail[s] = true
	}
	return f
}

func (f *fakeFetcher) call(ctx context.Context, src domain.StatsSource) error {
	f.calls[src].Add(1)

	if ch, ok := f.blockOn[src]; ok {
		<-ch
	}
	if d := f.latency[src]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if f.panics[src] {
		panic("fetcher bug in " + src.String())
	}
	if f.fail[src] {
		return errSourceDown
	}
	return nil
}

func (f *fakeFetcher) EmployeeStats(ctx context.Context) (domain.EmployeeStats, error) {
	if err := f.call(ctx, domain.SourceEmployee); err != nil {
		return domain.EmployeeStats{}, err
	}
	return sampleEmployee, nil
}

func (f *fakeFetcher) LeaveStats(ctx context.Context, year int) (domain.LeaveStats, error) {
	if f.leaveYears != nil {
		f.leaveYears <- year
	}
	if err := f.call(ctx, domain.SourceLeave); err != nil {
		return domain.LeaveStats{}, err
	}
	return sampleLeave, nil
}

func (f *fakeFetcher) RecruitmentReport(ctx context.Context) (domain.RecruitmentReport, error) {
	if err := f.call(ctx, domain.SourceRecruitment); err != nil {
		return domain.RecruitmentReport{}, err
	}
	if f.recruitment != nil {
		return *f.recruitment, nil
	}
	return domain.RecruitmentReport{
		OpenPositions:       intPtr(sampleRecruitment.OpenPositions),
		TotalApplications:   intPtr(sampleRecruitment.TotalApplications),
		InterviewsScheduled: intPtr(sampleRecruitment.InterviewsScheduled),
		Shortlisted:         intPtr(sampleRecruitment.Shortlisted),
	}, nil
}

func (f *fakeFetcher) AttendanceStats(ctx context.Context) (domain.AttendanceStats, error) {
	if err := f.call(ctx, domain.SourceAttendance); err != nil {
		return domain.AttendanceStats{}, err
	}
	return sampleAttendance, nil
}

func (f *fakeFetcher) ComplianceStats(ctx context.Context) (domain.ComplianceStats, error) {
	if err := f.call(ctx, domain.SourceCompliance); err != nil {
		return domain.ComplianceStats{}, err
	}
	return sampleCompliance, nil
}

func (f *fakeFetcher) ExpenseStats(ctx context.Context) (domain.ExpenseStats, error) {
	if err := f.call(ctx, domain.SourceExpense); err != nil {
		return domain.ExpenseStats{}, err
	}
	return sampleExpense, nil
}

func (f *fakeFetcher) TrainingStats(ctx context.Context) (domain.TrainingStats, error) {
	if err := f.call(ctx, domain.SourceTraining); err != nil {
		return domain.TrainingStats{}, err
	}
	return sampleTraining, nil
}

func (f *fakeFetcher) NotificationStats(ctx context.Context) (domain.NotificationStats, error) {
	if err := f.call(ctx, domain.SourceNotification); err != nil {
		return domain.NotificationStats{}, err
	}
	return sampleNotification, nil
}

func (f *fakeFetcher) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	f.activityLimit.Store(int32(limit))
	if f.activityPanics {
		panic("activity feed bug")
	}
	return f.activities, f.activityErr
}

var _ StatsFetcher = (*fakeFetcher)(nil)
