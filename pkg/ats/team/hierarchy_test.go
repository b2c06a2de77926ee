package team

import (
	"testing"

	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTeam(id string, teamType TeamType, parentID *string, level int) Team {
	t := Team{
		ID:       kernel.NewTeamID(id),
		Name:     id,
		TeamType: teamType,
		Level:    level,
		IsActive: true,
	}
	if parentID != nil {
		pid := kernel.NewTeamID(*parentID)
		t.ParentTeamID = &pid
	}
	return t
}

func sp(s string) *string { return &s }

func forestFixture() []Team {
	// engineering (department)
	// ├── backend (team)
	// │   └── platform (sub_team)
	// └── frontend (team)
	// sales (department)
	return []Team{
		mkTeam("engineering", TeamTypeDepartment, nil, 0),
		mkTeam("backend", TeamTypeTeam, sp("engineering"), 1),
		mkTeam("platform", TeamTypeSubTeam, sp("backend"), 2),
		mkTeam("frontend", TeamTypeTeam, sp("engineering"), 1),
		mkTeam("sales", TeamTypeDepartment, nil, 0),
	}
}

func TestBuildHierarchyForest(t *testing.T) {
	roots, orphans := BuildHierarchy(forestFixture())

	require.Len(t, roots, 2)
	assert.Empty(t, orphans)

	engineering := roots[0]
	assert.Equal(t, "engineering", engineering.Name)
	require.Len(t, engineering.Children, 2)
	assert.Equal(t, "backend", engineering.Children[0].Name)
	assert.Equal(t, "frontend", engineering.Children[1].Name)

	backend := engineering.Children[0]
	require.Len(t, backend.Children, 1)
	assert.Equal(t, "platform", backend.Children[0].Name)

	sales := roots[1]
	assert.Empty(t, sales.Children)
}

func TestBuildHierarchyReportsOrphans(t *testing.T) {
	flat := []Team{
		mkTeam("engineering", TeamTypeDepartment, nil, 0),
		mkTeam("lost", TeamTypeTeam, sp("deleted-dept"), 1),
	}

	roots, orphans := BuildHierarchy(flat)

	require.Len(t, roots, 1)
	require.Len(t, orphans, 1)
	assert.Equal(t, "lost", orphans[0].Name)
	// Orphans never appear in the forest.
	assert.Empty(t, roots[0].Children)
}

func TestBuildHierarchyIsIdempotent(t *testing.T) {
	flat := forestFixture()

	first, _ := BuildHierarchy(flat)
	second, _ := BuildHierarchy(flat)

	assert.Equal(t, first, second)
}

func TestBuildHierarchyEmptyInput(t *testing.T) {
	roots, orphans := BuildHierarchy(nil)

	assert.Empty(t, roots)
	assert.NotNil(t, roots)
	assert.Empty(t, orphans)
}

func TestAvailableParents(t *testing.T) {
	all := forestFixture()

	t.Run("departments never have parents", func(t *testing.T) {
		assert.Empty(t, AvailableParents(TeamTypeDepartment, all))
	})

	t.Run("teams attach to departments", func(t *testing.T) {
		parents := AvailableParents(TeamTypeTeam, all)
		require.Len(t, parents, 2)
		for _, p := range parents {
			assert.Equal(t, TeamTypeDepartment, p.TeamType)
		}
	})

	t.Run("sub teams attach to teams and sub teams", func(t *testing.T) {
		parents := AvailableParents(TeamTypeSubTeam, all)
		require.Len(t, parents, 3)
		for _, p := range parents {
			assert.NotEqual(t, TeamTypeDepartment, p.TeamType)
		}
	})
}

func TestValidateParent(t *testing.T) {
	dept := mkTeam("engineering", TeamTypeDepartment, nil, 0)
	teamRow := mkTeam("backend", TeamTypeTeam, nil, 0)
	subTeam := mkTeam("platform", TeamTypeSubTeam, nil, 0)

	t.Run("department rejects any parent", func(t *testing.T) {
		d := mkTeam("new-dept", TeamTypeDepartment, nil, 0)
		assert.NoError(t, d.ValidateParent(nil))
		assert.Error(t, d.ValidateParent(&dept))
	})

	t.Run("team requires department parent", func(t *testing.T) {
		tm := mkTeam("new-team", TeamTypeTeam, nil, 0)
		assert.NoError(t, tm.ValidateParent(&dept))
		assert.Error(t, tm.ValidateParent(&teamRow))
		assert.Error(t, tm.ValidateParent(nil))
	})

	t.Run("sub team requires team or sub team parent", func(t *testing.T) {
		st := mkTeam("new-sub", TeamTypeSubTeam, nil, 0)
		assert.NoError(t, st.ValidateParent(&teamRow))
		assert.NoError(t, st.ValidateParent(&subTeam))
		assert.Error(t, st.ValidateParent(&dept))
		assert.Error(t, st.ValidateParent(nil))
	})
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 0, LevelFor(nil))

	parent := mkTeam("backend", TeamTypeTeam, nil, 1)
	assert.Equal(t, 2, LevelFor(&parent))
}

func TestRecomputeLevelsCascades(t *testing.T) {
	// Move backend (with its subtree) under a deeper parent: its own level
	// was already updated to 3 by the caller; descendants must follow.
	flat := []Team{
		mkTeam("backend", TeamTypeTeam, sp("somewhere"), 3),
		mkTeam("platform", TeamTypeSubTeam, sp("backend"), 2),
		mkTeam("tooling", TeamTypeSubTeam, sp("platform"), 3),
		mkTeam("unrelated", TeamTypeTeam, nil, 0),
	}
	root := flat[0]

	changed := RecomputeLevels(flat, root)

	require.Len(t, changed, 2)
	byName := map[string]int{}
	for _, c := range changed {
		byName[c.Name] = c.Level
	}
	assert.Equal(t, 4, byName["platform"])
	assert.Equal(t, 5, byName["tooling"])
}

func TestRecomputeLevelsNoChanges(t *testing.T) {
	flat := forestFixture()
	root := flat[0] // engineering, level 0, children already consistent

	assert.Empty(t, RecomputeLevels(flat, root))
}

func TestIsDescendant(t *testing.T) {
	flat := forestFixture()

	assert.True(t, IsDescendant(flat, kernel.NewTeamID("engineering"), kernel.NewTeamID("platform")))
	assert.True(t, IsDescendant(flat, kernel.NewTeamID("backend"), kernel.NewTeamID("platform")))
	assert.False(t, IsDescendant(flat, kernel.NewTeamID("platform"), kernel.NewTeamID("backend")))
	assert.False(t, IsDescendant(flat, kernel.NewTeamID("sales"), kernel.NewTeamID("backend")))
	// A team is not its own descendant.
	assert.False(t, IsDescendant(flat, kernel.NewTeamID("backend"), kernel.NewTeamID("backend")))
}
