package candidate

// ============================================================================
// Pipeline Projector
// ============================================================================
//
// Normalizes heterogeneous historical status values into one canonical stage
// plus a monotonic progress vector. Every function here is total: unknown
// values degrade to the first stage, they never error. That is a deliberate
// display fallback, not a data-integrity check.

// Canonical stage names, in pipeline order.
const (
	StageNew       = "New"
	StageInReview  = "InReview"
	StageEngaged   = "Engaged"
	StageAvailable = "Available"
	StageOffered   = "Offered"
	StageHired     = "Hired"

	// Terminal, outside the linear ordering.
	StageRejected = "Rejected"
)

// StageOrder es la lista fija y ordenada de etapas del pipeline.
// "Rejected" queda fuera: es terminal y no es comparable con las demás.
var StageOrder = []string{
	StageNew,
	StageInReview,
	StageEngaged,
	StageAvailable,
	StageOffered,
	StageHired,
}

// legacyRemap traduce los valores históricos del sistema anterior.
var legacyRemap = map[string]string{
	"Screening":    StageNew,
	"Interviewing": StageInReview,
	"Selected":     StageHired,
}

// Stage es una etapa del pipeline: o una posición en el orden lineal, o un
// estado terminal fuera de él.
type Stage struct {
	Name     string `json:"name"`
	Ordinal  int    `json:"ordinal"`
	Terminal bool   `json:"terminal"`
}

// ProgressVector son los hitos alcanzados, monotónicos sobre el orden fijo.
type ProgressVector struct {
	Screening bool `json:"screening"`
	Interview bool `json:"interview"`
	Offer     bool `json:"offer"`
	Hired     bool `json:"hired"`
	Joined    bool `json:"joined"`
}

// Projection es el resultado del proyector para un candidato.
type Projection struct {
	Stage Stage `json:"stage"`
	// Label preferred for display: the resolved MainStatus name when present,
	// otherwise the legacy-derived stage name.
	Label           string         `json:"label"`
	Progress        ProgressVector `json:"progress"`
	CompletedStages []string       `json:"completed_stages"`
}

// NormalizeLegacy aplica la tabla de remapeo al status legacy. Vacío → "New";
// valores no mapeados se conservan tal cual.
func NormalizeLegacy(legacy string) string {
	if legacy == "" {
		return StageNew
	}
	if mapped, ok := legacyRemap[legacy]; ok {
		return mapped
	}
	return legacy
}

// stageIndex devuelve la posición de un nombre en el orden fijo, con fallback
// al índice 0 para valores desconocidos.
func stageIndex(name string) (int, bool) {
	for i, s := range StageOrder {
		if s == name {
			return i, true
		}
	}
	return 0, false
}

// resolveStage construye la etapa para un nombre normalizado.
func resolveStage(name string) Stage {
	if name == StageRejected {
		return Stage{Name: StageRejected, Terminal: true}
	}
	idx, _ := stageIndex(name)
	return Stage{Name: name, Ordinal: idx}
}

// Project proyecta el StatusRef canónico de un candidato.
//
// La posición en el pipeline sale de la primera fuente disponible, con el
// main status resuelto por delante del legacy:
//   - main status cuyo nombre está en el orden fijo → esa posición
//   - si no, el índice derivado del legacy
//
// El label de display siempre prefiere el nombre del main status resuelto.
func Project(ref StatusRef) Projection {
	legacyStage := resolveStage(NormalizeLegacy(ref.Legacy))

	stage := legacyStage
	label := legacyStage.Name

	if ref.Kind == StatusRefResolved && ref.Pair != nil {
		mainName := ref.Pair.Main.Name
		label = mainName
		if mainName == StageRejected {
			stage = Stage{Name: StageRejected, Terminal: true}
		} else if idx, known := stageIndex(mainName); known {
			stage = Stage{Name: mainName, Ordinal: idx}
		}
		// Main status outside the fixed order: keep the legacy-derived stage
		// for progress, the resolved name only labels the card.
	}

	return Projection{
		Stage:           stage,
		Label:           label,
		Progress:        progressFor(stage),
		CompletedStages: completedStages(stage),
	}
}

// progressFor marca cada hito alcanzado hasta la etapa actual inclusive.
// Rejected por convención conserva sólo screening.
func progressFor(s Stage) ProgressVector {
	if s.Terminal {
		return ProgressVector{Screening: true}
	}
	return ProgressVector{
		Screening: s.Ordinal >= 0,
		Interview: s.Ordinal >= 1,
		Offer:     s.Ordinal >= 2,
		Hired:     s.Ordinal >= 3,
		Joined:    s.Ordinal >= 4,
	}
}

// completedStages devuelve las etapas estrictamente anteriores a la actual,
// en orden, para pintar los pasos ya superados.
func completedStages(s Stage) []string {
	if s.Terminal {
		return []string{}
	}
	done := make([]string, 0, s.Ordinal)
	for i := 0; i < s.Ordinal; i++ {
		done = append(done, StageOrder[i])
	}
	return done
}
