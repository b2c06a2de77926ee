package status

import (
	"net/http"
	"sort"
	"time"

	"github.com/nexhire/nexhire/pkg/errx"
	"github.com/nexhire/nexhire/pkg/kernel"
)

// ============================================================================
// Status Taxonomy Entities
// ============================================================================
//
// The pipeline status model is two-level: a MainStatus ("Screening",
// "Interview", "Offer"...) owns an ordered list of SubStatuses ("L1 scheduled",
// "L1 passed"...). Candidates reference a (main, sub) pair; ordering within a
// main status drives the "current stage" display.

// MainStatus es un estado principal del pipeline con sus sub-estados anidados
type MainStatus struct {
	ID        kernel.MainStatusID `db:"id" json:"id"`
	TenantID  kernel.TenantID     `db:"tenant_id" json:"tenant_id"`
	Name      string              `db:"name" json:"name"`
	Color     string              `db:"color" json:"color"`
	SortOrder int                 `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt time.Time           `db:"updated_at" json:"updated_at"`

	// Populated by the repository, ordered by SortOrder.
	SubStatuses []SubStatus `db:"-" json:"sub_statuses"`
}

// SubStatus pertenece exactamente a un MainStatus
type SubStatus struct {
	ID           kernel.SubStatusID  `db:"id" json:"id"`
	MainStatusID kernel.MainStatusID `db:"main_status_id" json:"main_status_id"`
	Name         string              `db:"name" json:"name"`
	Color        string              `db:"color" json:"color"`
	SortOrder    int                 `db:"sort_order" json:"sort_order"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Taxonomy
// ============================================================================

// Taxonomy es el conjunto ordenado de estados de un tenant.
type Taxonomy []MainStatus

// ResolvedPair es el par (main, sub) resuelto para un sub-estado.
type ResolvedPair struct {
	Main MainStatus `json:"main"`
	Sub  SubStatus  `json:"sub"`
}

// Resolve busca el par (main, sub) para un sub-estado dado. Scan lineal sobre
// todos los sub-estados: la taxonomía es pequeña y cambia poco.
func (t Taxonomy) Resolve(subID kernel.SubStatusID) (*ResolvedPair, error) {
	for _, main := range t {
		for _, sub := range main.SubStatuses {
			if sub.ID == subID {
				return &ResolvedPair{Main: main, Sub: sub}, nil
			}
		}
	}
	return nil, ErrSubStatusNotFound().WithDetail("sub_status_id", subID.String())
}

// FindMainByID busca un estado principal por id.
func (t Taxonomy) FindMainByID(id kernel.MainStatusID) (*MainStatus, error) {
	for i := range t {
		if t[i].ID == id {
			return &t[i], nil
		}
	}
	return nil, ErrMainStatusNotFound().WithDetail("main_status_id", id.String())
}

// FindMainByName busca un estado principal por nombre exacto.
func (t Taxonomy) FindMainByName(name string) (*MainStatus, bool) {
	for i := range t {
		if t[i].Name == name {
			return &t[i], true
		}
	}
	return nil, false
}

// Sort normaliza el orden por SortOrder (main y sub). In place.
func (t Taxonomy) Sort() {
	sort.SliceStable(t, func(i, j int) bool {
		return t[i].SortOrder < t[j].SortOrder
	})
	for i := range t {
		subs := t[i].SubStatuses
		sort.SliceStable(subs, func(a, b int) bool {
			return subs[a].SortOrder < subs[b].SortOrder
		})
	}
}

// ============================================================================
// Service DTOs
// ============================================================================

// CreateMainStatusRequest representa la petición para crear un estado principal
type CreateMainStatusRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Color     string `json:"color" validate:"required,hexcolor"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

// CreateSubStatusRequest representa la petición para crear un sub-estado
type CreateSubStatusRequest struct {
	MainStatusID kernel.MainStatusID `json:"main_status_id" validate:"required"`
	Name         string              `json:"name" validate:"required,min=2"`
	Color        string              `json:"color" validate:"required,hexcolor"`
	SortOrder    int                 `json:"sort_order" validate:"gte=0"`
}

// ReorderStatusRequest actualiza el orden de un estado (main o sub).
// Last-write-wins: no hay bloqueo optimista sobre la taxonomía.
type ReorderStatusRequest struct {
	SortOrder int `json:"sort_order" validate:"gte=0"`
}

// TaxonomyResponse es la respuesta con la taxonomía completa del tenant
type TaxonomyResponse struct {
	Statuses Taxonomy `json:"statuses"`
	Total    int      `json:"total"`
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("STATUS")

var (
	CodeMainStatusNotFound = ErrRegistry.Register("MAIN_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Main status not found")
	CodeSubStatusNotFound  = ErrRegistry.Register("SUB_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Sub status not found")
	CodeStatusNameTaken    = ErrRegistry.Register("NAME_TAKEN", errx.TypeConflict, http.StatusConflict, "A status with that name already exists")
	CodeOrphanSubStatus    = ErrRegistry.Register("ORPHAN_SUB", errx.TypeBusiness, http.StatusUnprocessableEntity, "Sub status references a missing main status")
	CodeMainStatusInUse    = ErrRegistry.Register("MAIN_IN_USE", errx.TypeConflict, http.StatusConflict, "Main status still has sub statuses")
)

func ErrMainStatusNotFound() *errx.Error {
	return ErrRegistry.New(CodeMainStatusNotFound)
}

func ErrSubStatusNotFound() *errx.Error {
	return ErrRegistry.New(CodeSubStatusNotFound)
}

func ErrStatusNameTaken() *errx.Error {
	return ErrRegistry.New(CodeStatusNameTaken)
}

func ErrOrphanSubStatus() *errx.Error {
	return ErrRegistry.New(CodeOrphanSubStatus)
}

func ErrMainStatusInUse() *errx.Error {
	return ErrRegistry.New(CodeMainStatusInUse)
}
