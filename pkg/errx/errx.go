package errx

import (
	"fmt"
	"net/http"
)

// Type clasifica los errores por su naturaleza
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Error es el error estándar del sistema: código estable, tipo, status HTTP
// y detalles estructurados para la respuesta de la API.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"status"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail agrega un detalle estructurado al error. Devuelve el mismo
// error para encadenar llamadas.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithMessage reemplaza el mensaje manteniendo código y tipo.
func (e *Error) WithMessage(msg string) *Error {
	e.Message = msg
	return e
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}

// ============================================================================
// Registry - códigos de error por módulo
// ============================================================================

type registered struct {
	typ        Type
	httpStatus int
	message    string
}

// Registry agrupa los códigos de error de un módulo bajo un prefijo común
// (p.ej. "CANDIDATE" produce códigos "CANDIDATE_NOT_FOUND").
type Registry struct {
	prefix string
	codes  map[string]registered
}

// NewRegistry crea un registro de errores para un módulo.
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]registered),
	}
}

// Register registra un código de error y devuelve el código completo.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) string {
	full := r.prefix + "_" + code
	r.codes[full] = registered{typ: t, httpStatus: httpStatus, message: message}
	return full
}

// New crea una nueva instancia del error registrado.
func (r *Registry) New(code string) *Error {
	reg, ok := r.codes[code]
	if !ok {
		return &Error{
			Code:       r.prefix + "_UNKNOWN",
			Type:       TypeInternal,
			HTTPStatus: http.StatusInternalServerError,
			Message:    "Unknown error code: " + code,
		}
	}
	return &Error{
		Code:       code,
		Type:       reg.typ,
		HTTPStatus: reg.httpStatus,
		Message:    reg.message,
	}
}

// ============================================================================
// Helpers
// ============================================================================

// New crea un error ad-hoc sin registro.
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		HTTPStatus: statusForType(t),
		Message:    message,
	}
}

// Wrap envuelve un error externo con contexto propio.
func Wrap(err error, message string, t Type) *Error {
	if e, ok := err.(*Error); ok && t == TypeInternal {
		// Preserve the original coded error; just prepend context.
		return &Error{
			Code:       e.Code,
			Type:       e.Type,
			HTTPStatus: e.HTTPStatus,
			Message:    message + ": " + e.Message,
			Details:    e.Details,
			Err:        e.Err,
		}
	}
	return &Error{
		Code:       string(t),
		Type:       t,
		HTTPStatus: statusForType(t),
		Message:    message,
		Err:        err,
	}
}

func statusForType(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
