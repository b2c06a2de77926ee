package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() RecruiterPerformanceRecord {
	return RecruiterPerformanceRecord{
		Recruiter:         "alice",
		JobsAssigned:      5,
		ProfilesSubmitted: 40,
		InternalReject:    10,
		SentToClient:      20,
		ClientReject:      4,
		Interviews: InterviewCounters{
			Technical:         10,
			TechnicalSelected: 8,
			TechnicalReject:   2,
			L1:                6,
			L1Selected:        5,
			L1Reject:          1,
			L2:                4,
			L2Reject:          1,
			EndClient:         3,
			EndClientReject:   1,
		},
		Offers:  OfferCounters{Made: 2, Accepted: 2, Rejected: 0},
		Joining: JoiningCounters{Joined: 1, NoShow: 1},
	}
}

func metricByName(t *testing.T, metrics []DerivedMetric, name string) DerivedMetric {
	t.Helper()
	for _, m := range metrics {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("metric %q not found", name)
	return DerivedMetric{}
}

func TestDeriveMetricsCount(t *testing.T) {
	metrics := DeriveMetrics(sampleRecord())
	assert.Len(t, metrics, 11)
}

func TestDeriveMetricsValues(t *testing.T) {
	r := sampleRecord()
	metrics := DeriveMetrics(r)

	// interview_sum = 10+8+6+5+4+3 = 36
	require.Equal(t, 36, r.Interviews.Sum())

	tests := []struct {
		name string
		want float64
	}{
		{"Submission to Client Rate", 20.0 / 40.0},
		{"Client Acceptance Rate", 39.0 / 20.0},
		{"Interview Conversion Rate", 36.0 / 20.0},
		{"Technical to L1 Rate", 6.0 / 8.0},
		{"L1 to L2 Rate", 4.0 / 5.0},
		{"L2 to End Client Rate", 3.0 / 4.0},
		{"End Client to Offer Rate", 2.0 / 3.0},
		{"Offer Acceptance Rate", 1.0},
		{"Join Rate", 0.5},
		{"Funnel Efficiency", 1.0 / 40.0},
		{"Client Reject Rate", 4.0 / 20.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, metricByName(t, metrics, tt.name).Value, 1e-9)
		})
	}
}

func TestDeriveMetricsZeroRecordIsAllZero(t *testing.T) {
	metrics := DeriveMetrics(RecruiterPerformanceRecord{Recruiter: "bob"})

	require.Len(t, metrics, 11)
	for _, m := range metrics {
		assert.Zero(t, m.Value, "%s must be 0 on an empty record", m.Name)
	}
}

func TestDeriveMetricsNeverProducesNaNOrInf(t *testing.T) {
	// Numerators without denominators: every ratio's denominator is zero.
	r := RecruiterPerformanceRecord{
		Recruiter: "carol",
		Interviews: InterviewCounters{
			L1: 3,
			L2: 2,
		},
		Joining: JoiningCounters{Joined: 1},
	}

	for _, m := range DeriveMetrics(r) {
		assert.False(t, math.IsNaN(m.Value), "%s is NaN", m.Name)
		assert.False(t, math.IsInf(m.Value, 0), "%s is Inf", m.Name)
	}
}

func TestDeriveMetricsRatiosAreNotClamped(t *testing.T) {
	// 36 interview rounds out of 20 client submissions: above 1 and valid.
	metrics := DeriveMetrics(sampleRecord())
	assert.Greater(t, metricByName(t, metrics, "Interview Conversion Rate").Value, 1.0)
}

func TestInterviewCountersSum(t *testing.T) {
	ic := InterviewCounters{
		Technical:         1,
		TechnicalSelected: 2,
		TechnicalReject:   100, // reject rounds never count
		L1:                3,
		L1Selected:        4,
		L1Reject:          100,
		L2:                5,
		L2Reject:          100,
		EndClient:         6,
		EndClientReject:   100,
	}
	assert.Equal(t, 21, ic.Sum())
}
