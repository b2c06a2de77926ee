package scopes

import "slices"

// ============================================================================
// ATS SCOPES
// ============================================================================

const (
	// Super scope - full access to everything
	ScopeAll = "*"

	// Admin scopes
	ScopeAdminAll = "admin:*"

	// Candidate scopes
	ScopeCandidatesAll    = "candidates:*"
	ScopeCandidatesRead   = "candidates:read"
	ScopeCandidatesWrite  = "candidates:write"
	ScopeCandidatesStatus = "candidates:status" // Move candidates through the pipeline

	// Status taxonomy scopes (settings)
	ScopeStatusesAll   = "statuses:*"
	ScopeStatusesRead  = "statuses:read"
	ScopeStatusesWrite = "statuses:write"

	// Team hierarchy scopes
	ScopeTeamsAll      = "teams:*"
	ScopeTeamsRead     = "teams:read"
	ScopeTeamsWrite    = "teams:write"
	ScopeTeamsReparent = "teams:reparent"

	// Reporting scopes
	ScopeReportsAll    = "reports:*"
	ScopeReportsView   = "reports:view"
	ScopeReportsExport = "reports:export"
)

// ScopeCategories agrupa los scopes por módulo
var ScopeCategories = map[string][]string{
	"admin":      {ScopeAdminAll},
	"candidates": {ScopeCandidatesRead, ScopeCandidatesWrite, ScopeCandidatesStatus},
	"statuses":   {ScopeStatusesRead, ScopeStatusesWrite},
	"teams":      {ScopeTeamsRead, ScopeTeamsWrite, ScopeTeamsReparent},
	"reports":    {ScopeReportsView, ScopeReportsExport},
}

// ScopeDescriptions describe cada scope para la UI de administración
var ScopeDescriptions = map[string]string{
	ScopeAll:              "Full access to everything",
	ScopeAdminAll:         "Full administrative access",
	ScopeCandidatesRead:   "View candidates and their pipeline state",
	ScopeCandidatesWrite:  "Create and edit candidates",
	ScopeCandidatesStatus: "Move candidates through pipeline statuses",
	ScopeStatusesRead:     "View the status taxonomy",
	ScopeStatusesWrite:    "Edit the status taxonomy",
	ScopeTeamsRead:        "View the team hierarchy",
	ScopeTeamsWrite:       "Create and deactivate teams",
	ScopeTeamsReparent:    "Move teams in the hierarchy",
	ScopeReportsView:      "View recruiter performance reports",
	ScopeReportsExport:    "Export recruiter performance reports",
}

// ScopeTemplates son los conjuntos de scopes asignables por rol.
var ScopeTemplates = map[string][]string{
	"admin": {ScopeAll},
	"recruiter": {
		ScopeCandidatesRead,
		ScopeCandidatesWrite,
		ScopeCandidatesStatus,
		ScopeStatusesRead,
		ScopeTeamsRead,
		ScopeReportsView,
	},
	"hiring_manager": {
		ScopeCandidatesRead,
		ScopeStatusesRead,
		ScopeTeamsRead,
		ScopeReportsView,
		ScopeReportsExport,
	},
	"team_admin": {
		ScopeTeamsRead,
		ScopeTeamsWrite,
		ScopeTeamsReparent,
	},
}

// GetTemplate devuelve los scopes de una plantilla, o false si no existe.
func GetTemplate(name string) ([]string, bool) {
	tpl, ok := ScopeTemplates[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(tpl), true
}

// GetAllScopes devuelve todos los scopes definidos.
func GetAllScopes() []string {
	allScopes := []string{}
	for _, s := range ScopeCategories {
		allScopes = append(allScopes, s...)
	}
	return allScopes
}

// IsValidScope reporta si el scope está registrado (o es un wildcard conocido).
func IsValidScope(scope string) bool {
	if scope == ScopeAll || scope == ScopeAdminAll {
		return true
	}
	for _, group := range ScopeCategories {
		if slices.Contains(group, scope) {
			return true
		}
	}
	switch scope {
	case ScopeCandidatesAll, ScopeStatusesAll, ScopeTeamsAll, ScopeReportsAll:
		return true
	}
	return false
}

// GetScopeDescription devuelve la descripción de un scope.
func GetScopeDescription(scope string) string {
	if desc, exists := ScopeDescriptions[scope]; exists {
		return desc
	}
	return "No description available"
}
