package candidate

import (
	"testing"

	"github.com/nexhire/nexhire/pkg/ats/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyRef(legacy string) StatusRef {
	return StatusRef{Kind: StatusRefLegacy, Legacy: legacy}
}

func resolvedRef(mainName, legacy string) StatusRef {
	return StatusRef{
		Kind:   StatusRefResolved,
		Legacy: legacy,
		Pair: &status.ResolvedPair{
			Main: status.MainStatus{Name: mainName},
			Sub:  status.SubStatus{Name: mainName + " - step"},
		},
	}
}

func TestNormalizeLegacy(t *testing.T) {
	tests := []struct {
		name   string
		legacy string
		want   string
	}{
		{"empty defaults to New", "", StageNew},
		{"Screening remaps to New", "Screening", StageNew},
		{"Interviewing remaps to InReview", "Interviewing", StageInReview},
		{"Selected remaps to Hired", "Selected", StageHired},
		{"canonical value kept", "Offered", "Offered"},
		{"unknown value kept verbatim", "On Hold", "On Hold"},
		{"Rejected kept", "Rejected", StageRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLegacy(tt.legacy))
		})
	}
}

func TestProjectLegacyInterviewing(t *testing.T) {
	p := Project(legacyRef("Interviewing"))

	assert.Equal(t, StageInReview, p.Stage.Name)
	assert.Equal(t, 1, p.Stage.Ordinal)
	assert.False(t, p.Stage.Terminal)
	assert.Equal(t, StageInReview, p.Label)
	assert.Equal(t, ProgressVector{Screening: true, Interview: true}, p.Progress)
	assert.Equal(t, []string{StageNew}, p.CompletedStages)
}

func TestProjectRejected(t *testing.T) {
	p := Project(legacyRef("Rejected"))

	assert.Equal(t, StageRejected, p.Stage.Name)
	assert.True(t, p.Stage.Terminal)
	assert.Equal(t, ProgressVector{Screening: true}, p.Progress)
	assert.Empty(t, p.CompletedStages)
	assert.NotNil(t, p.CompletedStages)
}

func TestProjectUnknownLegacyDegradesToFirstStage(t *testing.T) {
	p := Project(legacyRef("Imported-2019"))

	// Unknown values keep their name but sit at the first position.
	assert.Equal(t, "Imported-2019", p.Stage.Name)
	assert.Equal(t, 0, p.Stage.Ordinal)
	assert.Equal(t, ProgressVector{Screening: true}, p.Progress)
	assert.Empty(t, p.CompletedStages)
}

func TestProjectHiredReachesEveryMilestone(t *testing.T) {
	p := Project(legacyRef("Selected"))

	assert.Equal(t, StageHired, p.Stage.Name)
	assert.Equal(t, 5, p.Stage.Ordinal)
	assert.Equal(t, ProgressVector{Screening: true, Interview: true, Offer: true, Hired: true, Joined: true}, p.Progress)
	assert.Equal(t, []string{StageNew, StageInReview, StageEngaged, StageAvailable, StageOffered}, p.CompletedStages)
}

func TestProjectResolvedMainWinsOverStaleLegacy(t *testing.T) {
	p := Project(resolvedRef(StageOffered, "Screening"))

	assert.Equal(t, StageOffered, p.Stage.Name)
	assert.Equal(t, 4, p.Stage.Ordinal)
	assert.Equal(t, StageOffered, p.Label)
	assert.True(t, p.Progress.Offer)
}

func TestProjectResolvedMainOutsideOrderOnlyRelabels(t *testing.T) {
	p := Project(resolvedRef("Onboarding", "Interviewing"))

	// The resolved name labels the card, but progress still comes from the
	// legacy-derived position because "Onboarding" is not in the fixed order.
	assert.Equal(t, "Onboarding", p.Label)
	assert.Equal(t, StageInReview, p.Stage.Name)
	assert.Equal(t, ProgressVector{Screening: true, Interview: true}, p.Progress)
}

func TestProjectResolvedRejectedIsTerminal(t *testing.T) {
	p := Project(resolvedRef(StageRejected, "Interviewing"))

	assert.True(t, p.Stage.Terminal)
	assert.Equal(t, StageRejected, p.Label)
	assert.Equal(t, ProgressVector{Screening: true}, p.Progress)
	assert.Empty(t, p.CompletedStages)
}

func TestProgressVectorIsMonotonic(t *testing.T) {
	count := func(v ProgressVector) int {
		n := 0
		for _, b := range []bool{v.Screening, v.Interview, v.Offer, v.Hired, v.Joined} {
			if b {
				n++
			}
		}
		return n
	}

	prev := -1
	for _, name := range StageOrder {
		p := Project(legacyRef(name))
		got := count(p.Progress)
		assert.GreaterOrEqual(t, got, prev, "stage %s regressed the progress vector", name)
		prev = got
	}
}

func TestCompletedStagesIsStrictPrefix(t *testing.T) {
	for i, name := range StageOrder {
		p := Project(legacyRef(name))

		require.Len(t, p.CompletedStages, i, "stage %s", name)
		for j, done := range p.CompletedStages {
			assert.Equal(t, StageOrder[j], done)
		}
		assert.NotContains(t, p.CompletedStages, name, "the current stage is never completed")
	}
}
