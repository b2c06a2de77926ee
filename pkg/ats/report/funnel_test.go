package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumRecords(t *testing.T) {
	a := sampleRecord()
	b := sampleRecord()
	b.Recruiter = "dave"

	totals := SumRecords([]RecruiterPerformanceRecord{a, b})

	assert.Equal(t, "all", totals.Recruiter)
	assert.Equal(t, 80, totals.ProfilesSubmitted)
	assert.Equal(t, 40, totals.SentToClient)
	assert.Equal(t, 20, totals.Interviews.Technical)
	assert.Equal(t, 4, totals.Offers.Made)
	assert.Equal(t, 2, totals.Joining.Joined)
	assert.Equal(t, 2, totals.Joining.NoShow)
}

func TestSumRecordsEmpty(t *testing.T) {
	totals := SumRecords(nil)

	assert.Equal(t, "all", totals.Recruiter)
	assert.Zero(t, totals.ProfilesSubmitted)
	assert.Zero(t, totals.Interviews.Sum())
}

func TestBuildFunnelStageOrder(t *testing.T) {
	stages := BuildFunnel(SumRecords([]RecruiterPerformanceRecord{sampleRecord()}))

	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name)
	}

	assert.Equal(t, []string{
		"Profiles Submitted",
		"Sent to Client",
		"Technical Interview",
		"L1 Interview",
		"L2 Interview",
		"End Client Interview",
		"Offers Made",
		"Offers Accepted",
		"Joined",
	}, names)
}

func TestBuildFunnelDoesNotValidateMonotonicity(t *testing.T) {
	// Double-counted interview rounds can exceed the upstream count; the
	// funnel reports the numbers as they are.
	r := RecruiterPerformanceRecord{
		ProfilesSubmitted: 2,
		SentToClient:      1,
		Interviews:        InterviewCounters{Technical: 5},
	}

	stages := BuildFunnel(r)
	require.Equal(t, "Technical Interview", stages[2].Name)
	assert.Equal(t, 5, stages[2].Count)
	assert.Greater(t, stages[2].Count, stages[1].Count)
}

