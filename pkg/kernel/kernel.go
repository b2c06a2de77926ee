package kernel

// ============================================================================
// Typed IDs
// ============================================================================
//
// Every aggregate gets its own ID type so a candidate id can never be passed
// where a team id is expected. All of them serialize as plain strings.

// TenantID identifica a una empresa (tenant) en el sistema
type TenantID string

func NewTenantID(s string) TenantID { return TenantID(s) }
func (id TenantID) String() string { return string(id) }
func (id TenantID) IsEmpty() bool { return id == "" }

// UserID identifica a un usuario (recruiter, hiring manager, admin)
type UserID string

func NewUserID(s string) UserID { return UserID(s) }
func (id UserID) String() string { return string(id) }
func (id UserID) IsEmpty() bool { return id == "" }

// JobID identifica una requisición de empleo
type JobID string

func NewJobID(s string) JobID { return JobID(s) }
func (id JobID) String() string { return string(id) }
func (id JobID) IsEmpty() bool { return id == "" }

// CandidateID identifica a un candidato
type CandidateID string

func NewCandidateID(s string) CandidateID { return CandidateID(s) }
func (id CandidateID) String() string { return string(id) }
func (id CandidateID) IsEmpty() bool { return id == "" }

// TeamID identifica un equipo dentro de la jerarquía organizacional
type TeamID string

func NewTeamID(s string) TeamID { return TeamID(s) }
func (id TeamID) String() string { return string(id) }
func (id TeamID) IsEmpty() bool { return id == "" }

// MainStatusID identifica un estado principal del pipeline
type MainStatusID string

func NewMainStatusID(s string) MainStatusID { return MainStatusID(s) }
func (id MainStatusID) String() string { return string(id) }
func (id MainStatusID) IsEmpty() bool { return id == "" }

// SubStatusID identifica un sub-estado del pipeline
type SubStatusID string

func NewSubStatusID(s string) SubStatusID { return SubStatusID(s) }
func (id SubStatusID) String() string { return string(id) }
func (id SubStatusID) IsEmpty() bool { return id == "" }

// ============================================================================
// AuthContext
// ============================================================================

// AuthContext es el contexto de autenticación resuelto para una petición.
// El tenant nunca es ambiente: cada operación de dominio lo recibe explícito
// desde aquí.
type AuthContext struct {
	TenantID TenantID
	UserID   *UserID
	Scopes   []string
}

// HasScope verifica si el contexto tiene un scope, con soporte de wildcards
// ("*" y "prefix:*").
func (a *AuthContext) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope || s == "*" {
			return true
		}
		if len(s) > 2 && s[len(s)-2:] == ":*" {
			prefix := s[:len(s)-2]
			if len(scope) > len(prefix) && scope[:len(prefix)] == prefix && scope[len(prefix)] == ':' {
				return true
			}
		}
	}
	return false
}
