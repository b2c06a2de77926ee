package candidate

import (
	"testing"

	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/ptrx"
	"github.com/stretchr/testify/assert"
)

func candidateWith(legacy string, mainID *kernel.MainStatusID, subID *kernel.SubStatusID) *Candidate {
	return &Candidate{
		ID:           kernel.NewCandidateID("cand-1"),
		LegacyStatus: legacy,
		MainStatusID: mainID,
		SubStatusID:  subID,
	}
}

func TestFilterIsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.False(t, Filter{LegacyStatus: ptrx.String("New")}.IsEmpty())
	assert.False(t, Filter{StatusIDs: &StatusIDSet{}}.IsEmpty())
}

func TestFilterLegacyStatusExactMatch(t *testing.T) {
	f := Filter{LegacyStatus: ptrx.String("Interviewing")}

	assert.True(t, f.Matches(candidateWith("Interviewing", nil, nil), legacyRef("Interviewing")))
	assert.False(t, f.Matches(candidateWith("InReview", nil, nil), legacyRef("InReview")))
	// Matching is against the raw string, not the normalized stage.
	assert.False(t, f.Matches(candidateWith("interviewing", nil, nil), legacyRef("interviewing")))
}

func TestFilterMainStatusNameRequiresResolvedRef(t *testing.T) {
	f := Filter{MainStatusName: ptrx.String("Offered")}

	assert.True(t, f.Matches(candidateWith("Screening", nil, nil), resolvedRef("Offered", "Screening")))
	assert.False(t, f.Matches(candidateWith("Offered", nil, nil), legacyRef("Offered")))
	assert.False(t, f.Matches(candidateWith("Screening", nil, nil), resolvedRef("Hired", "Screening")))
}

func TestFilterStatusIDSetIsUnionWithinSet(t *testing.T) {
	mainA := kernel.NewMainStatusID("main-a")
	mainB := kernel.NewMainStatusID("main-b")
	subX := kernel.NewSubStatusID("sub-x")

	f := Filter{StatusIDs: &StatusIDSet{
		MainStatusIDs: []kernel.MainStatusID{mainA},
		SubStatusIDs:  []kernel.SubStatusID{subX},
	}}

	// Main id in the set.
	assert.True(t, f.Matches(candidateWith("", &mainA, nil), legacyRef("")))
	// Sub id in the set, main id not.
	assert.True(t, f.Matches(candidateWith("", &mainB, &subX), legacyRef("")))
	// Neither id in the set.
	subY := kernel.NewSubStatusID("sub-y")
	assert.False(t, f.Matches(candidateWith("", &mainB, &subY), legacyRef("")))
	// No ids at all.
	assert.False(t, f.Matches(candidateWith("New", nil, nil), legacyRef("New")))
}

func TestFilterTypesCombineWithAnd(t *testing.T) {
	mainA := kernel.NewMainStatusID("main-a")
	f := Filter{
		LegacyStatus: ptrx.String("Screening"),
		StatusIDs:    &StatusIDSet{MainStatusIDs: []kernel.MainStatusID{mainA}},
	}

	// Both predicates pass.
	assert.True(t, f.Matches(candidateWith("Screening", &mainA, nil), legacyRef("Screening")))
	// Id matches but legacy does not.
	assert.False(t, f.Matches(candidateWith("New", &mainA, nil), legacyRef("New")))
	// Legacy matches but id does not.
	assert.False(t, f.Matches(candidateWith("Screening", nil, nil), legacyRef("Screening")))
}

func TestFilterApply(t *testing.T) {
	views := []CandidateView{
		{Candidate: *candidateWith("New", nil, nil), Status: legacyRef("New")},
		{Candidate: *candidateWith("Rejected", nil, nil), Status: legacyRef("Rejected")},
		{Candidate: *candidateWith("New", nil, nil), Status: legacyRef("New")},
	}

	filtered := Filter{LegacyStatus: ptrx.String("New")}.Apply(views)
	assert.Len(t, filtered, 2)

	// An empty filter passes everything through untouched.
	assert.Equal(t, views, Filter{}.Apply(views))
}
