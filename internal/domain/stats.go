package domain

import "fmt"

// StatsSource - идентификатор подсистемы HR-бэкенда, из которой собирается статистика.
// Порядок констант значим: он задает и порядок запуска, и позицию поля в снимке.
type StatsSource int

const (
	SourceEmployee StatsSource = iota
	SourceLeave
	SourceRecruitment
	SourceAttendance
	SourceCompliance
	SourceExpense
	SourceTraining
	SourceNotification

	// SourceCount - количество основных источников (не источник).
	SourceCount
)

var sourceKeys = [SourceCount]string{
	SourceEmployee:     "employee",
	SourceLeave:        "leave",
	SourceRecruitment:  "recruitment",
	SourceAttendance:   "attendance",
	SourceCompliance:   "compliance",
	SourceExpense:      "expense",
	SourceTraining:     "training",
	SourceNotification: "notification",
}

// Sources - фиксированный список основных источников в каноническом порядке.
var Sources = [SourceCount]StatsSource{
	SourceEmployee,
	SourceLeave,
	SourceRecruitment,
	SourceAttendance,
	SourceCompliance,
	SourceExpense,
	SourceTraining,
	SourceNotification,
}

func (s StatsSource) String() string {
	if s < 0 || s >= SourceCount {
		return fmt.Sprintf("source(%d)", int(s))
	}
	return sourceKeys[s]
}

// MarshalText позволяет отдавать источник в JSON символьным ключом.
func (s StatsSource) MarshalText() ([]byte, error) {
	if s < 0 || s >= SourceCount {
		return nil, fmt.Errorf("unknown stats source %d", int(s))
	}
	return []byte(sourceKeys[s]), nil
}

// UnmarshalText разбирает символьный ключ, чтобы снимок читался обратно из JSON.
func (s *StatsSource) UnmarshalText(text []byte) error {
	src, err := parseStatsSource(string(text))
	if err != nil {
		return err
	}
	*s = src
	return nil
}

func parseStatsSource(key string) (StatsSource, error) {
	for i, k := range sourceKeys {
		if k == key {
			return StatsSource(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stats source %q", key)
}

type EmployeeStats struct {
	Total      int `json:"total_employees"`
	Active     int `json:"active_employees"`
	Terminated int `json:"terminated_employees"`
	FullTime   int `json:"full_time_employees"`
	PartTime   int `json:"part_time_employees"`
}

type LeaveStats struct {
	Year     int `json:"year"`
	Total    int `json:"total_requests"`
	Approved int `json:"approved_requests"`
	Pending  int `json:"pending_requests"`
	Rejected int `json:"rejected_requests"`
}

type RecruitmentStats struct {
	OpenPositions       int `json:"open_positions"`
	TotalApplications   int `json:"total_applications"`
	InterviewsScheduled int `json:"interviews_scheduled"`
	Shortlisted         int `json:"shortlisted_candidates"`
}

// RecruitmentReport - сырой ответ сервиса найма. Любой счетчик может отсутствовать.
type RecruitmentReport struct {
	OpenPositions       *int `json:"open_positions"`
	TotalApplications   *int `json:"total_applications"`
	InterviewsScheduled *int `json:"interviews_scheduled"`
	Shortlisted         *int `json:"shortlisted_candidates"`
}

// Normalize извлекает четыре счетчика, подставляя 0 вместо отсутствующих.
func (r RecruitmentReport) Normalize() RecruitmentStats {
	return RecruitmentStats{
		OpenPositions:       valueOrZero(r.OpenPositions),
		TotalApplications:   valueOrZero(r.TotalApplications),
		InterviewsScheduled: valueOrZero(r.InterviewsScheduled),
		Shortlisted:         valueOrZero(r.Shortlisted),
	}
}

func valueOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

type AttendanceStats struct {
	TotalEmployees int     `json:"total_employees"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	OnLeave        int     `json:"on_leave"`
	AttendanceRate float64 `json:"attendance_rate"` // в процентах
}

type ComplianceStats struct {
	TotalPolicies  int `json:"total_policies"`
	Compliant      int `json:"compliant"`
	NonCompliant   int `json:"non_compliant"`
	PendingReviews int `json:"pending_reviews"`
	CriticalIssues int `json:"critical_issues"`
}

type ExpenseStats struct {
	TotalClaims    int     `json:"total_claims"`
	PendingClaims  int     `json:"pending_claims"`
	ApprovedClaims int     `json:"approved_claims"`
	TotalAmount    float64 `json:"total_amount"`
	PendingAmount  float64 `json:"pending_amount"`
}

type TrainingStats struct {
	ActivePrograms    int     `json:"active_programs"`
	EnrolledEmployees int     `json:"enrolled_employees"`
	CompletedSessions int     `json:"completed_sessions"`
	UpcomingSessions  int     `json:"upcoming_sessions"`
	CompletionRate    float64 `json:"completion_rate"` // в процентах
}

type NotificationStats struct {
	Total          int `json:"total"`
	Unread         int `json:"unread"`
	Urgent         int `json:"urgent"`
	ActionRequired int `json:"action_required"`
}
