package stream

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateGenerationsAreMonotonic(t *testing.T) {
	g := NewGate()

	first := g.Begin(TopicCandidates)
	second := g.Begin(TopicCandidates)

	assert.Equal(t, uint64(1), first)
	assert.Equal(t, uint64(2), second)
	assert.Equal(t, uint64(2), g.Latest(TopicCandidates))
}

func TestGateCommitLatestGeneration(t *testing.T) {
	g := NewGate()

	gen := g.Begin(TopicStatuses)
	assert.True(t, g.Commit(TopicStatuses, gen))
}

func TestGateDiscardsSupersededFetch(t *testing.T) {
	g := NewGate()

	stale := g.Begin(TopicStatuses)
	fresh := g.Begin(TopicStatuses)

	// The response for the first fetch arrives after a newer fetch began.
	assert.False(t, g.Commit(TopicStatuses, stale))
	assert.True(t, g.Commit(TopicStatuses, fresh))
}

func TestGateTopicsAreIndependent(t *testing.T) {
	g := NewGate()

	candGen := g.Begin(TopicCandidates)
	g.Begin(TopicTeams)

	// A newer generation on another topic never invalidates this one.
	assert.True(t, g.Commit(TopicCandidates, candGen))
}

func TestGateConcurrentBegins(t *testing.T) {
	g := NewGate()
	const n = 100

	var wg sync.WaitGroup
	seen := make(chan uint64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seen <- g.Begin(TopicTeams)
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[uint64]bool, n)
	for gen := range seen {
		require.False(t, unique[gen], "generation %d issued twice", gen)
		unique[gen] = true
	}
	assert.Len(t, unique, n)
	assert.Equal(t, uint64(n), g.Latest(TopicTeams))
}
