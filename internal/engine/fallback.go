package engine

import (
	"time"

	"github.com/xela07ax/hr-dashboard-aggregator/internal/domain"
)

// FallbackProvider отдает статическое, структурно валидное значение для источника.
// Не делает I/O и не может завершиться ошибкой.
type FallbackProvider interface {
	EmployeeStats() domain.EmployeeStats
	LeaveStats() domain.LeaveStats
	RecruitmentStats() domain.RecruitmentStats
	AttendanceStats() domain.AttendanceStats
	ComplianceStats() domain.ComplianceStats
	ExpenseStats() domain.ExpenseStats
	TrainingStats() domain.TrainingStats
	NotificationStats() domain.NotificationStats
}

// StaticFallbacks - таблица значений, которые фронтенд уже умеет показывать.
// От времени зависит только год в статистике отпусков, он фиксируется при создании.
type StaticFallbacks struct {
	year int
}

func NewStaticFallbacks(now time.Time) *StaticFallbacks {
	return &StaticFallbacks{year: now.Year()}
}

func (f *StaticFallbacks) EmployeeStats() domain.EmployeeStats {
	return domain.EmployeeStats{Total: 142, Active: 128, Terminated: 14, FullTime: 110, PartTime: 18}
}

func (f *StaticFallbacks) LeaveStats() domain.LeaveStats {
	return domain.LeaveStats{Year: f.year, Total: 24, Approved: 18, Pending: 4, Rejected: 2}
}

func (f *StaticFallbacks) RecruitmentStats() domain.RecruitmentStats {
	return domain.RecruitmentStats{OpenPositions: 5, TotalApplications: 87, InterviewsScheduled: 12, Shortlisted: 45}
}

func (f *StaticFallbacks) AttendanceStats() domain.AttendanceStats {
	return domain.AttendanceStats{TotalEmployees: 128, Present: 115, Absent: 5, Late: 8, OnLeave: 3, AttendanceRate: 96}
}

func (f *StaticFallbacks) ComplianceStats() domain.ComplianceStats {
	return domain.ComplianceStats{TotalPolicies: 50, Compliant: 48, NonCompliant: 2, PendingReviews: 1, CriticalIssues: 0}
}

func (f *StaticFallbacks) ExpenseStats() domain.ExpenseStats {
	return domain.ExpenseStats{TotalClaims: 15, PendingClaims: 3, ApprovedClaims: 12, TotalAmount: 4500, PendingAmount: 1200}
}

func (f *StaticFallbacks) TrainingStats() domain.TrainingStats {
	return domain.TrainingStats{ActivePrograms: 8, EnrolledEmployees: 24, CompletedSessions: 150, UpcomingSessions: 2, CompletionRate: 85}
}

func (f *StaticFallbacks) NotificationStats() domain.NotificationStats {
	return domain.NotificationStats{Total: 12, Unread: 5, Urgent: 0, ActionRequired: 1}
}

var _ FallbackProvider = (*StaticFallbacks)(nil)
