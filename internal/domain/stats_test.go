package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestRecruitmentReport_Normalize(t *testing.T) {
	t.Run("all counters present", func(t *testing.T) {
		r := RecruitmentReport{
			OpenPositions:       intPtr(3),
			TotalApplications:   intPtr(40),
			InterviewsScheduled: intPtr(7),
			Shortlisted:         intPtr(11),
		}
		assert.Equal(t, RecruitmentStats{3, 40, 7, 11}, r.Normalize())
	})

	t.Run("missing counters become zero", func(t *testing.T) {
		r := RecruitmentReport{TotalApplications: intPtr(40)}
		assert.Equal(t, RecruitmentStats{TotalApplications: 40}, r.Normalize())
	})

	t.Run("decoded from partial json", func(t *testing.T) {
		var r RecruitmentReport
		require.NoError(t, json.Unmarshal([]byte(`{"open_positions": 2, "shortlisted_candidates": 0}`), &r))
		assert.Equal(t, RecruitmentStats{OpenPositions: 2}, r.Normalize())
	})
}

func TestStatsSource_Keys(t *testing.T) {
	want := []string{"employee", "leave", "recruitment", "attendance", "compliance", "expense", "training", "notification"}
	require.Len(t, Sources, len(want))

	for i, src := range Sources {
		assert.Equal(t, StatsSource(i), src, "sources must stay in declaration order")
		assert.Equal(t, want[i], src.String())

		var parsed StatsSource
		require.NoError(t, parsed.UnmarshalText([]byte(want[i])))
		assert.Equal(t, src, parsed)
	}

	var unknown StatsSource
	assert.Error(t, unknown.UnmarshalText([]byte("payroll")))
	assert.Equal(t, "source(42)", StatsSource(42).String())
}

func TestSnapshot_JSONShape(t *testing.T) {
	s := Snapshot{
		RecentActivities: []Activity{},
		Degraded:         []StatsSource{SourceAttendance},
	}
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))

	for _, key := range []string{"employee", "leave", "recruitment", "attendance", "compliance", "expense", "training", "notification"} {
		assert.Contains(t, m, key)
	}
	assert.JSONEq(t, `[]`, string(m["recent_activities"]))
	assert.JSONEq(t, `["attendance"]`, string(m["degraded"]))
	assert.True(t, s.IsDegraded(SourceAttendance))
	assert.False(t, s.IsDegraded(SourceLeave))
}

func TestSnapshot_DegradedRoundTrip(t *testing.T) {
	raw := []byte(`{"degraded": ["leave", "notification"], "recent_activities": []}`)

	var s Snapshot
	require.NoError(t, json.Unmarshal(raw, &s))
	assert.Equal(t, []StatsSource{SourceLeave, SourceNotification}, s.Degraded)
	assert.True(t, s.IsDegraded(SourceNotification))

	assert.Error(t, json.Unmarshal([]byte(`{"degraded": ["payroll"]}`), &s))
}
