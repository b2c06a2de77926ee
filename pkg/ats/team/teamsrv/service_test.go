package teamsrv

import (
	"context"
	"testing"

	"github.com/nexhire/nexhire/pkg/ats/team"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTeamRepo is an in-memory TeamRepository keyed by team id.
type fakeTeamRepo struct {
	teams map[kernel.TeamID]team.Team
	order []kernel.TeamID
}

func newFakeTeamRepo(seed ...team.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[kernel.TeamID]team.Team)}
	for _, t := range seed {
		r.teams[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

func (r *fakeTeamRepo) FindByID(_ context.Context, id kernel.TeamID, _ kernel.TenantID) (*team.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, team.ErrTeamNotFound()
	}
	return &t, nil
}

func (r *fakeTeamRepo) FindByTenant(_ context.Context, _ kernel.TenantID, includeInactive bool) ([]team.Team, error) {
	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		t := r.teams[id]
		if !includeInactive && !t.IsActive {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTeamRepo) Save(_ context.Context, t team.Team) error {
	if _, ok := r.teams[t.ID]; !ok {
		r.order = append(r.order, t.ID)
	}
	r.teams[t.ID] = t
	return nil
}

func (r *fakeTeamRepo) SaveAll(_ context.Context, _ kernel.TenantID, teams []team.Team) error {
	for _, t := range teams {
		if _, ok := r.teams[t.ID]; !ok {
			r.order = append(r.order, t.ID)
		}
		r.teams[t.ID] = t
	}
	return nil
}

func tid(s string) kernel.TeamID { return kernel.NewTeamID(s) }

func tidp(s string) *kernel.TeamID {
	id := tid(s)
	return &id
}

func seedTeam(id string, teamType team.TeamType, parent *kernel.TeamID, level int, dept *kernel.TeamID) team.Team {
	return team.Team{
		ID:           tid(id),
		TenantID:     kernel.NewTenantID("tenant-1"),
		Name:         id,
		TeamType:     teamType,
		ParentTeamID: parent,
		Level:        level,
		DepartmentID: dept,
		IsActive:     true,
	}
}

func seededService() (*TeamService, *fakeTeamRepo) {
	repo := newFakeTeamRepo(
		seedTeam("eng", team.TeamTypeDepartment, nil, 0, tidp("eng")),
		seedTeam("backend", team.TeamTypeTeam, tidp("eng"), 1, tidp("eng")),
		seedTeam("platform", team.TeamTypeSubTeam, tidp("backend"), 2, tidp("eng")),
		seedTeam("tooling", team.TeamTypeSubTeam, tidp("platform"), 3, tidp("eng")),
		seedTeam("frontend", team.TeamTypeTeam, tidp("eng"), 1, tidp("eng")),
	)
	return NewTeamService(repo, nil), repo
}

var tenant = kernel.NewTenantID("tenant-1")

func TestCreateTeamAssignsLevelAndDepartment(t *testing.T) {
	svc, repo := seededService()

	created, err := svc.CreateTeam(context.Background(), tenant, team.CreateTeamRequest{
		Name:         "api",
		TeamType:     team.TeamTypeSubTeam,
		ParentTeamID: tidp("backend"),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, created.Level)
	require.NotNil(t, created.DepartmentID)
	assert.Equal(t, tid("eng"), *created.DepartmentID)
	assert.True(t, created.IsActive)

	saved, ok := repo.teams[created.ID]
	require.True(t, ok)
	assert.Equal(t, created.Level, saved.Level)
}

func TestCreateTeamRejectsInvalidParentType(t *testing.T) {
	svc, _ := seededService()

	_, err := svc.CreateTeam(context.Background(), tenant, team.CreateTeamRequest{
		Name:         "nested-dept",
		TeamType:     team.TeamTypeTeam,
		ParentTeamID: tidp("backend"), // a team cannot hang off another team
	})

	require.Error(t, err)
}

func TestGetHierarchyReportsOrphans(t *testing.T) {
	svc, repo := seededService()

	// Deactivate backend: platform and tooling lose their visible parent.
	backend := repo.teams[tid("backend")]
	backend.IsActive = false
	repo.teams[tid("backend")] = backend

	h, err := svc.GetHierarchy(context.Background(), tenant)

	require.NoError(t, err)
	require.Len(t, h.Orphans, 1)
	assert.Equal(t, "platform", h.Orphans[0].Name)
}

func TestReparentTeamCascadesLevels(t *testing.T) {
	svc, repo := seededService()

	// ui: a sub team under frontend at level 2.
	require.NoError(t, repo.Save(context.Background(),
		seedTeam("ui", team.TeamTypeSubTeam, tidp("frontend"), 2, tidp("eng"))))

	// Move platform (level 2, with descendant tooling at level 3) under ui.
	moved, err := svc.ReparentTeam(context.Background(), tenant, tid("platform"), team.ReparentTeamRequest{
		NewParentID: tidp("ui"),
	})

	require.NoError(t, err)
	assert.Equal(t, tid("ui"), *moved.ParentTeamID)
	assert.Equal(t, 3, moved.Level)

	// The descendant follows the move even though its own row never changed
	// parents.
	tooling := repo.teams[tid("tooling")]
	assert.Equal(t, 4, tooling.Level)
	assert.Equal(t, tid("platform"), *tooling.ParentTeamID)
}

func TestReparentTeamDeepensSubtree(t *testing.T) {
	svc, repo := seededService()

	// frontend-qa: a sub team directly under frontend.
	require.NoError(t, repo.Save(context.Background(),
		seedTeam("qa", team.TeamTypeSubTeam, tidp("frontend"), 2, tidp("eng"))))

	// Move qa under tooling (level 3): qa becomes level 4.
	moved, err := svc.ReparentTeam(context.Background(), tenant, tid("qa"), team.ReparentTeamRequest{
		NewParentID: tidp("tooling"),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, moved.Level)
}

func TestReparentTeamRejectsSelf(t *testing.T) {
	svc, _ := seededService()

	_, err := svc.ReparentTeam(context.Background(), tenant, tid("backend"), team.ReparentTeamRequest{
		NewParentID: tidp("backend"),
	})

	require.Error(t, err)
}

func TestReparentTeamRejectsCycle(t *testing.T) {
	svc, _ := seededService()

	// tooling is a descendant of platform; moving platform under it would
	// create a cycle.
	_, err := svc.ReparentTeam(context.Background(), tenant, tid("platform"), team.ReparentTeamRequest{
		NewParentID: tidp("tooling"),
	})

	require.Error(t, err)
}

func TestUpdateTeamStatusSoftDeletes(t *testing.T) {
	svc, repo := seededService()

	updated, err := svc.UpdateTeamStatus(context.Background(), tenant, tid("frontend"), team.UpdateTeamStatusRequest{IsActive: false})

	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	// The row survives; deactivation is never a DELETE.
	_, ok := repo.teams[tid("frontend")]
	assert.True(t, ok)
}

func TestGetAvailableParentsRejectsUnknownType(t *testing.T) {
	svc, _ := seededService()

	_, err := svc.GetAvailableParents(context.Background(), tenant, team.TeamType("squad"))

	require.Error(t, err)
}
