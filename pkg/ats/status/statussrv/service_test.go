package statussrv

import (
	"context"
	"errors"
	"testing"

	"github.com/nexhire/nexhire/pkg/ats/status"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatusRepo struct {
	taxonomy status.Taxonomy
	findAlls int
}

func (r *fakeStatusRepo) FindAll(_ context.Context, _ kernel.TenantID) (status.Taxonomy, error) {
	r.findAlls++
	return r.taxonomy, nil
}

func (r *fakeStatusRepo) SaveMain(_ context.Context, m status.MainStatus) error {
	for i := range r.taxonomy {
		if r.taxonomy[i].ID == m.ID {
			r.taxonomy[i] = m
			return nil
		}
	}
	r.taxonomy = append(r.taxonomy, m)
	return nil
}

func (r *fakeStatusRepo) SaveSub(_ context.Context, _ kernel.TenantID, s status.SubStatus) error {
	for i := range r.taxonomy {
		if r.taxonomy[i].ID == s.MainStatusID {
			r.taxonomy[i].SubStatuses = append(r.taxonomy[i].SubStatuses, s)
			return nil
		}
	}
	return status.ErrMainStatusNotFound()
}

func (r *fakeStatusRepo) DeleteMain(_ context.Context, id kernel.MainStatusID, _ kernel.TenantID) error {
	for i := range r.taxonomy {
		if r.taxonomy[i].ID == id {
			r.taxonomy = append(r.taxonomy[:i], r.taxonomy[i+1:]...)
			return nil
		}
	}
	return status.ErrMainStatusNotFound()
}

func (r *fakeStatusRepo) DeleteSub(_ context.Context, id kernel.SubStatusID, _ kernel.TenantID) error {
	for i := range r.taxonomy {
		subs := r.taxonomy[i].SubStatuses
		for j := range subs {
			if subs[j].ID == id {
				r.taxonomy[i].SubStatuses = append(subs[:j], subs[j+1:]...)
				return nil
			}
		}
	}
	return status.ErrSubStatusNotFound()
}

type fakeCache struct {
	entries     map[kernel.TenantID]status.Taxonomy
	getErr      error
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[kernel.TenantID]status.Taxonomy)}
}

func (c *fakeCache) Get(_ context.Context, tenantID kernel.TenantID) (status.Taxonomy, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	t, ok := c.entries[tenantID]
	return t, ok, nil
}

func (c *fakeCache) Set(_ context.Context, tenantID kernel.TenantID, t status.Taxonomy) error {
	c.entries[tenantID] = t
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, tenantID kernel.TenantID) error {
	c.invalidated++
	delete(c.entries, tenantID)
	return nil
}

var tenant = kernel.NewTenantID("tenant-1")

func seededRepo() *fakeStatusRepo {
	mainID := kernel.NewMainStatusID("main-screening")
	return &fakeStatusRepo{taxonomy: status.Taxonomy{
		{
			ID: mainID, TenantID: tenant, Name: "Screening", SortOrder: 1,
			SubStatuses: []status.SubStatus{
				{ID: kernel.NewSubStatusID("sub-cv"), MainStatusID: mainID, Name: "CV Review", SortOrder: 1},
			},
		},
	}}
}

func TestGetTaxonomyPopulatesCache(t *testing.T) {
	repo := seededRepo()
	cache := newFakeCache()
	svc := NewStatusService(repo, cache, nil)

	first, err := svc.GetTaxonomy(context.Background(), tenant)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.findAlls)

	// Second read is served from cache.
	_, err = svc.GetTaxonomy(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findAlls)
}

func TestGetTaxonomyDegradesOnCacheFailure(t *testing.T) {
	repo := seededRepo()
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	svc := NewStatusService(repo, cache, nil)

	taxonomy, err := svc.GetTaxonomy(context.Background(), tenant)

	require.NoError(t, err)
	assert.Len(t, taxonomy, 1)
	assert.Equal(t, 1, repo.findAlls)
}

func TestResolveSubStatus(t *testing.T) {
	svc := NewStatusService(seededRepo(), newFakeCache(), nil)

	pair, err := svc.ResolveSubStatus(context.Background(), tenant, kernel.NewSubStatusID("sub-cv"))

	require.NoError(t, err)
	assert.Equal(t, "Screening", pair.Main.Name)
	assert.Equal(t, "CV Review", pair.Sub.Name)
}

func TestCreateMainStatusRejectsDuplicateName(t *testing.T) {
	svc := NewStatusService(seededRepo(), newFakeCache(), nil)

	_, err := svc.CreateMainStatus(context.Background(), tenant, status.CreateMainStatusRequest{
		Name:  "Screening",
		Color: "#ff0000",
	})

	require.Error(t, err)
}

func TestCreateMainStatusInvalidatesCache(t *testing.T) {
	cache := newFakeCache()
	svc := NewStatusService(seededRepo(), cache, nil)

	created, err := svc.CreateMainStatus(context.Background(), tenant, status.CreateMainStatusRequest{
		Name:      "Interview",
		Color:     "#00ff00",
		SortOrder: 2,
	})

	require.NoError(t, err)
	assert.False(t, created.ID.IsEmpty())
	assert.Equal(t, 1, cache.invalidated)
}

func TestCreateSubStatusRequiresExistingMain(t *testing.T) {
	svc := NewStatusService(seededRepo(), newFakeCache(), nil)

	_, err := svc.CreateSubStatus(context.Background(), tenant, status.CreateSubStatusRequest{
		MainStatusID: kernel.NewMainStatusID("missing"),
		Name:         "L1",
		Color:        "#0000ff",
	})

	require.Error(t, err)
}

func TestDeleteMainStatusRejectsMainWithSubStatuses(t *testing.T) {
	repo := seededRepo()
	svc := NewStatusService(repo, newFakeCache(), nil)

	err := svc.DeleteMainStatus(context.Background(), tenant, kernel.NewMainStatusID("main-screening"))

	var coded *errx.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, status.CodeMainStatusInUse, coded.Code)
	require.Len(t, repo.taxonomy, 1)
}

func TestDeleteMainStatusRemovesEmptyMain(t *testing.T) {
	repo := seededRepo()
	cache := newFakeCache()
	svc := NewStatusService(repo, cache, nil)

	mainID := kernel.NewMainStatusID("main-empty")
	repo.taxonomy = append(repo.taxonomy, status.MainStatus{
		ID: mainID, TenantID: tenant, Name: "Archived", SortOrder: 2,
	})

	err := svc.DeleteMainStatus(context.Background(), tenant, mainID)

	require.NoError(t, err)
	require.Len(t, repo.taxonomy, 1)
	assert.Equal(t, "Screening", repo.taxonomy[0].Name)
	assert.Equal(t, 1, cache.invalidated)
}

func TestDeleteMainStatusUnknownID(t *testing.T) {
	svc := NewStatusService(seededRepo(), newFakeCache(), nil)

	err := svc.DeleteMainStatus(context.Background(), tenant, kernel.NewMainStatusID("missing"))

	var coded *errx.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, status.CodeMainStatusNotFound, coded.Code)
}

func TestReorderMainStatus(t *testing.T) {
	repo := seededRepo()
	svc := NewStatusService(repo, newFakeCache(), nil)

	updated, err := svc.ReorderMainStatus(context.Background(), tenant,
		kernel.NewMainStatusID("main-screening"), status.ReorderStatusRequest{SortOrder: 9})

	require.NoError(t, err)
	assert.Equal(t, 9, updated.SortOrder)
	assert.Equal(t, 9, repo.taxonomy[0].SortOrder)
}
