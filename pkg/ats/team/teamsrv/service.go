package teamsrv

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexhire/nexhire/pkg/ats/team"
	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
	"github.com/nexhire/nexhire/pkg/logx"
	"github.com/nexhire/nexhire/pkg/stream"
)

// TeamService proporciona operaciones de negocio para la jerarquía de equipos
type TeamService struct {
	teamRepo team.TeamRepository
	notifier stream.Notifier
}

// NewTeamService crea una nueva instancia del servicio de equipos
func NewTeamService(teamRepo team.TeamRepository, notifier stream.Notifier) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		notifier: notifier,
	}
}

// GetTeams obtiene la lista plana de equipos del tenant
func (s *TeamService) GetTeams(ctx context.Context, tenantID kernel.TenantID, includeInactive bool) (*team.TeamListResponse, error) {
	teams, err := s.teamRepo.FindByTenant(ctx, tenantID, includeInactive)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load teams", errx.TypeInternal)
	}
	return &team.TeamListResponse{Teams: teams, Total: len(teams)}, nil
}

// GetHierarchy reconstruye el forest de equipos activos del tenant.
// Los huérfanos (padre desactivado o ausente) se devuelven aparte.
func (s *TeamService) GetHierarchy(ctx context.Context, tenantID kernel.TenantID) (*team.HierarchyResponse, error) {
	teams, err := s.teamRepo.FindByTenant(ctx, tenantID, false)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load teams", errx.TypeInternal)
	}

	roots, orphans := team.BuildHierarchy(teams)
	if len(orphans) > 0 {
		logx.WithFields(logx.Fields{
			"tenant_id": tenantID.String(),
			"orphans":   len(orphans),
		}).Warn("teams with missing parents excluded from hierarchy")
	}

	return &team.HierarchyResponse{Roots: roots, Orphans: orphans}, nil
}

// GetAvailableParents devuelve los padres válidos para un tipo de equipo.
func (s *TeamService) GetAvailableParents(ctx context.Context, tenantID kernel.TenantID, teamType team.TeamType) (*team.TeamListResponse, error) {
	switch teamType {
	case team.TeamTypeDepartment, team.TeamTypeTeam, team.TeamTypeSubTeam:
	default:
		return nil, team.ErrInvalidTeamType().WithDetail("team_type", string(teamType))
	}

	teams, err := s.teamRepo.FindByTenant(ctx, tenantID, false)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load teams", errx.TypeInternal)
	}

	eligible := team.AvailableParents(teamType, teams)
	return &team.TeamListResponse{Teams: eligible, Total: len(eligible)}, nil
}

// CreateTeam crea un equipo validando las reglas de paternidad y asignando
// level = parent.Level + 1 (0 para raíces).
func (s *TeamService) CreateTeam(ctx context.Context, tenantID kernel.TenantID, req team.CreateTeamRequest) (*team.Team, error) {
	var parent *team.Team
	if req.ParentTeamID != nil {
		found, err := s.teamRepo.FindByID(ctx, *req.ParentTeamID, tenantID)
		if err != nil {
			return nil, team.ErrTeamNotFound().WithDetail("parent_team_id", req.ParentTeamID.String())
		}
		parent = found
	}

	now := time.Now()
	newTeam := &team.Team{
		ID:           kernel.NewTeamID(uuid.NewString()),
		TenantID:     tenantID,
		Name:         req.Name,
		TeamType:     req.TeamType,
		ParentTeamID: req.ParentTeamID,
		Level:        team.LevelFor(parent),
		LeadUserID:   req.LeadUserID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := newTeam.ValidateParent(parent); err != nil {
		return nil, err
	}
	newTeam.DepartmentID = departmentFor(newTeam, parent)

	if err := s.teamRepo.Save(ctx, *newTeam); err != nil {
		return nil, errx.Wrap(err, "failed to save team", errx.TypeInternal)
	}

	s.publishChange(ctx, tenantID, newTeam.ID)
	return newTeam, nil
}

// UpdateTeamStatus activa o desactiva un equipo (soft delete, nunca DELETE).
func (s *TeamService) UpdateTeamStatus(ctx context.Context, tenantID kernel.TenantID, id kernel.TeamID, req team.UpdateTeamStatusRequest) (*team.Team, error) {
	t, err := s.teamRepo.FindByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	if req.IsActive {
		t.Activate()
	} else {
		t.Deactivate()
	}

	if err := s.teamRepo.Save(ctx, *t); err != nil {
		return nil, errx.Wrap(err, "failed to update team status", errx.TypeInternal).
			WithDetail("team_id", id.String())
	}

	s.publishChange(ctx, tenantID, t.ID)
	return t, nil
}

// ReparentTeam mueve un equipo bajo otro padre, revalida las reglas de tipo y
// recalcula los levels de todo el subtree afectado.
func (s *TeamService) ReparentTeam(ctx context.Context, tenantID kernel.TenantID, id kernel.TeamID, req team.ReparentTeamRequest) (*team.Team, error) {
	t, err := s.teamRepo.FindByID(ctx, id, tenantID)
	if err != nil {
		return nil, err
	}

	var parent *team.Team
	if req.NewParentID != nil {
		if *req.NewParentID == id {
			return nil, team.ErrReparentCycle().WithDetail("team_id", id.String())
		}
		found, err := s.teamRepo.FindByID(ctx, *req.NewParentID, tenantID)
		if err != nil {
			return nil, team.ErrTeamNotFound().WithDetail("new_parent_id", req.NewParentID.String())
		}
		parent = found
	}

	if err := t.ValidateParent(parent); err != nil {
		return nil, err
	}

	all, err := s.teamRepo.FindByTenant(ctx, tenantID, true)
	if err != nil {
		return nil, errx.Wrap(err, "failed to load teams", errx.TypeInternal)
	}
	if parent != nil && team.IsDescendant(all, id, parent.ID) {
		return nil, team.ErrReparentCycle().
			WithDetail("team_id", id.String()).
			WithDetail("new_parent_id", parent.ID.String())
	}

	t.ParentTeamID = req.NewParentID
	t.Level = team.LevelFor(parent)
	t.DepartmentID = departmentFor(t, parent)
	t.UpdatedAt = time.Now()

	// Refresh our own row in the flat list before cascading.
	for i := range all {
		if all[i].ID == t.ID {
			all[i] = *t
			break
		}
	}
	changed := team.RecomputeLevels(all, *t)
	now := time.Now()
	for i := range changed {
		changed[i].UpdatedAt = now
	}

	batch := append([]team.Team{*t}, changed...)
	if err := s.teamRepo.SaveAll(ctx, tenantID, batch); err != nil {
		return nil, errx.Wrap(err, "failed to persist re-parented subtree", errx.TypeInternal).
			WithDetail("team_id", id.String())
	}

	s.publishChange(ctx, tenantID, t.ID)
	return t, nil
}

// departmentFor propaga el department raíz del subtree al que se cuelga el
// equipo.
func departmentFor(t *team.Team, parent *team.Team) *kernel.TeamID {
	if t.TeamType == team.TeamTypeDepartment {
		id := t.ID
		return &id
	}
	if parent == nil {
		return nil
	}
	if parent.TeamType == team.TeamTypeDepartment {
		id := parent.ID
		return &id
	}
	return parent.DepartmentID
}

func (s *TeamService) publishChange(ctx context.Context, tenantID kernel.TenantID, id kernel.TeamID) {
	if s.notifier == nil {
		return
	}
	event := stream.ChangeEvent{
		Topic:    stream.TopicTeams,
		TenantID: tenantID,
		EntityID: id.String(),
	}
	if err := s.notifier.Publish(ctx, event); err != nil {
		logx.WithFields(logx.Fields{"team_id": id.String()}).
			Warnf("failed to publish team change: %v", err)
	}
}
