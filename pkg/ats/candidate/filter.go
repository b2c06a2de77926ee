package candidate

import (
	"github.com/nexhire/nexhire/pkg/kernel"
)

// ============================================================================
// Filtering
// ============================================================================
//
// Three independent, additive predicates. When several filter types are
// supplied all of them must pass (AND across types); the id-set check is an
// OR within the set.

// Filter son los predicados de filtrado de candidatos.
type Filter struct {
	// Exact match against the raw legacy status string.
	LegacyStatus *string `json:"legacy_status,omitempty"`
	// Equality against the resolved MainStatus name.
	MainStatusName *string `json:"main_status_name,omitempty"`
	// Membership of the candidate's main or sub status id in the set.
	StatusIDs *StatusIDSet `json:"status_ids,omitempty"`
}

// StatusIDSet es el conjunto de ids aceptados por el filtro de pertenencia.
type StatusIDSet struct {
	MainStatusIDs []kernel.MainStatusID `json:"main_status_ids,omitempty"`
	SubStatusIDs  []kernel.SubStatusID  `json:"sub_status_ids,omitempty"`
}

// IsEmpty reporta si no hay ningún predicado activo.
func (f Filter) IsEmpty() bool {
	return f.LegacyStatus == nil && f.MainStatusName == nil && f.StatusIDs == nil
}

// Matches evalúa todos los predicados suministrados contra un candidato y su
// StatusRef ya resuelto.
func (f Filter) Matches(c *Candidate, ref StatusRef) bool {
	if f.LegacyStatus != nil && c.LegacyStatus != *f.LegacyStatus {
		return false
	}

	if f.MainStatusName != nil {
		if ref.Kind != StatusRefResolved || ref.Pair == nil {
			return false
		}
		if ref.Pair.Main.Name != *f.MainStatusName {
			return false
		}
	}

	if f.StatusIDs != nil && !f.StatusIDs.contains(c) {
		return false
	}

	return true
}

// Apply filtra una lista de candidatos (cada uno con su ref resuelto).
func (f Filter) Apply(views []CandidateView) []CandidateView {
	if f.IsEmpty() {
		return views
	}
	filtered := make([]CandidateView, 0, len(views))
	for _, v := range views {
		if f.Matches(&v.Candidate, v.Status) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func (s *StatusIDSet) contains(c *Candidate) bool {
	if c.MainStatusID != nil {
		for _, id := range s.MainStatusIDs {
			if id == *c.MainStatusID {
				return true
			}
		}
	}
	if c.SubStatusID != nil {
		for _, id := range s.SubStatusIDs {
			if id == *c.SubStatusID {
				return true
			}
		}
	}
	return false
}
