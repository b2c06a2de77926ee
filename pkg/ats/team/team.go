package team

import (
	"net/http"
	"time"

	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
)

// ============================================================================
// Team Entity
// ============================================================================
//
// Teams form a self-referential tree: departments at the roots, teams under
// departments, sub-teams under teams or other sub-teams. Rows are
// soft-deleted via is_active; the hierarchy is rebuilt from the flat rows on
// read.

// TeamType clasifica un nodo de la jerarquía
type TeamType string

const (
	TeamTypeDepartment TeamType = "department"
	TeamTypeTeam       TeamType = "team"
	TeamTypeSubTeam    TeamType = "sub_team"
)

// Team es un nodo de la jerarquía organizacional
type Team struct {
	ID           kernel.TeamID   `db:"id" json:"id"`
	TenantID     kernel.TenantID `db:"tenant_id" json:"tenant_id"`
	Name         string          `db:"name" json:"name"`
	TeamType     TeamType        `db:"team_type" json:"team_type"`
	ParentTeamID *kernel.TeamID  `db:"parent_team_id" json:"parent_team_id,omitempty"`
	// Depth in the tree: 0 for roots, parent.Level+1 otherwise. Stored at
	// creation and recomputed transitively on re-parent.
	Level        int             `db:"level" json:"level"`
	DepartmentID *kernel.TeamID  `db:"department_id" json:"department_id,omitempty"`
	LeadUserID   *kernel.UserID  `db:"lead_user_id" json:"lead_user_id,omitempty"`
	IsActive     bool            `db:"is_active" json:"is_active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// IsRoot reporta si el equipo no tiene padre.
func (t *Team) IsRoot() bool {
	return t.ParentTeamID == nil
}

// Deactivate hace soft-delete del equipo.
func (t *Team) Deactivate() {
	t.IsActive = false
	t.UpdatedAt = time.Now()
}

// Activate reactiva un equipo desactivado.
func (t *Team) Activate() {
	t.IsActive = true
	t.UpdatedAt = time.Now()
}

// ValidateParent aplica las reglas de paternidad por tipo:
// department sin padre; team bajo department; sub_team bajo team o sub_team.
func (t *Team) ValidateParent(parent *Team) error {
	switch t.TeamType {
	case TeamTypeDepartment:
		if parent != nil {
			return ErrInvalidParent().
				WithDetail("team_type", string(t.TeamType)).
				WithDetail("reason", "departments cannot have a parent")
		}
	case TeamTypeTeam:
		if parent == nil || parent.TeamType != TeamTypeDepartment {
			return ErrInvalidParent().
				WithDetail("team_type", string(t.TeamType)).
				WithDetail("reason", "a team's parent must be a department")
		}
	case TeamTypeSubTeam:
		if parent == nil || (parent.TeamType != TeamTypeTeam && parent.TeamType != TeamTypeSubTeam) {
			return ErrInvalidParent().
				WithDetail("team_type", string(t.TeamType)).
				WithDetail("reason", "a sub_team's parent must be a team or a sub_team")
		}
	default:
		return ErrInvalidTeamType().WithDetail("team_type", string(t.TeamType))
	}
	return nil
}

// ============================================================================
// Service DTOs
// ============================================================================

// CreateTeamRequest representa la petición de creación de un equipo
type CreateTeamRequest struct {
	Name         string         `json:"name" validate:"required,min=2"`
	TeamType     TeamType       `json:"team_type" validate:"required,oneof=department team sub_team"`
	ParentTeamID *kernel.TeamID `json:"parent_team_id,omitempty"`
	LeadUserID   *kernel.UserID `json:"lead_user_id,omitempty"`
}

// UpdateTeamStatusRequest activa/desactiva un equipo (soft delete)
type UpdateTeamStatusRequest struct {
	IsActive bool `json:"is_active"`
}

// ReparentTeamRequest mueve un equipo bajo otro padre
type ReparentTeamRequest struct {
	NewParentID *kernel.TeamID `json:"new_parent_id,omitempty"`
}

// TeamListResponse para listas planas de equipos
type TeamListResponse struct {
	Teams []Team `json:"teams"`
	Total int    `json:"total"`
}

// HierarchyResponse es el forest reconstruido más los nodos huérfanos
type HierarchyResponse struct {
	Roots   []*Node `json:"roots"`
	Orphans []Team  `json:"orphans,omitempty"`
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("TEAM")

var (
	CodeTeamNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Team not found")
	CodeTeamNameTaken   = ErrRegistry.Register("NAME_TAKEN", errx.TypeConflict, http.StatusConflict, "A team with that name already exists")
	CodeInvalidParent   = ErrRegistry.Register("INVALID_PARENT", errx.TypeBusiness, http.StatusUnprocessableEntity, "Invalid parent for this team type")
	CodeInvalidTeamType = ErrRegistry.Register("INVALID_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid team type")
	CodeReparentCycle   = ErrRegistry.Register("REPARENT_CYCLE", errx.TypeBusiness, http.StatusUnprocessableEntity, "Re-parenting would create a cycle")
)

func ErrTeamNotFound() *errx.Error {
	return ErrRegistry.New(CodeTeamNotFound)
}

func ErrTeamNameTaken() *errx.Error {
	return ErrRegistry.New(CodeTeamNameTaken)
}

func ErrInvalidParent() *errx.Error {
	return ErrRegistry.New(CodeInvalidParent)
}

func ErrInvalidTeamType() *errx.Error {
	return ErrRegistry.New(CodeInvalidTeamType)
}

func ErrReparentCycle() *errx.Error {
	return ErrRegistry.New(CodeReparentCycle)
}
