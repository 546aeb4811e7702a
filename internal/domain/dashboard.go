package domain

import "time"

// Snapshot - сводка для дашборда. Все поля заполнены всегда,
// даже если часть источников недоступна (тогда в поле лежит fallback).
type Snapshot struct {
	Employee     EmployeeStats     `json:"employee"`
	Leave        LeaveStats        `json:"leave"`
	Recruitment  RecruitmentStats  `json:"recruitment"`
	Attendance   AttendanceStats   `json:"attendance"`
	Compliance   ComplianceStats   `json:"compliance"`
	Expense      ExpenseStats      `json:"expense"`
	Training     TrainingStats     `json:"training"`
	Notification NotificationStats `json:"notification"`

	// Лента активности в сводку не входит: всегда пустой список, а не null.
	RecentActivities []Activity `json:"recent_activities"`

	// Degraded - источники, значения которых подменены fallback-ом.
	Degraded    []StatsSource `json:"degraded"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// IsDegraded сообщает, был ли источник подменен fallback-ом.
func (s *Snapshot) IsDegraded(src StatsSource) bool {
	for _, d := range s.Degraded {
		if d == src {
			return true
		}
	}
	return false
}

type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // leave_request, new_hire, expense_claim ...
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Actor       string    `json:"actor"`
	OccurredAt  time.Time `json:"occurred_at"`
}
