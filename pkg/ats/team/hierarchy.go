package team

import "github.com/nexhire/nexhire/pkg/kernel"

// ============================================================================
// Hierarchy Builder
// ============================================================================

// Node es un equipo con sus hijos poblados.
type Node struct {
	Team
	Children []*Node `json:"children"`
}

// BuildHierarchy reconstruye el forest a partir de la lista plana.
//
// Los hijos se agregan en el orden de entrada (el caller pre-ordena,
// típicamente por level y nombre); el builder no ordena. Un equipo cuyo padre
// declarado no está en la lista queda fuera del forest y se devuelve como
// huérfano para que el caller decida si lo degrada o lo reporta. Determinista
// e idempotente: dos llamadas con la misma entrada producen forests
// estructuralmente iguales.
func BuildHierarchy(flat []Team) (roots []*Node, orphans []Team) {
	nodes := make(map[kernel.TeamID]*Node, len(flat))
	for _, t := range flat {
		t := t
		nodes[t.ID] = &Node{Team: t, Children: []*Node{}}
	}

	roots = []*Node{}
	for _, t := range flat {
		node := nodes[t.ID]
		if t.ParentTeamID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*t.ParentTeamID]
		if !ok {
			orphans = append(orphans, t)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots, orphans
}

// AvailableParents devuelve los padres válidos para un tipo de equipo:
// department → ninguno; team → departments; sub_team → teams y sub_teams.
func AvailableParents(teamType TeamType, all []Team) []Team {
	eligible := []Team{}
	switch teamType {
	case TeamTypeDepartment:
		return eligible
	case TeamTypeTeam:
		for _, t := range all {
			if t.TeamType == TeamTypeDepartment {
				eligible = append(eligible, t)
			}
		}
	case TeamTypeSubTeam:
		for _, t := range all {
			if t.TeamType == TeamTypeTeam || t.TeamType == TeamTypeSubTeam {
				eligible = append(eligible, t)
			}
		}
	}
	return eligible
}

// LevelFor calcula el level de un equipo nuevo: 0 sin padre, parent.Level+1
// con padre.
func LevelFor(parent *Team) int {
	if parent == nil {
		return 0
	}
	return parent.Level + 1
}

// RecomputeLevels recalcula los levels de un subtree tras un re-parent y
// devuelve los equipos cuyo level cambió. El slice de entrada es la lista
// plana completa del tenant; root es el equipo movido con su nuevo level ya
// asignado.
func RecomputeLevels(flat []Team, root Team) []Team {
	childrenOf := make(map[kernel.TeamID][]int)
	for i, t := range flat {
		if t.ParentTeamID != nil {
			childrenOf[*t.ParentTeamID] = append(childrenOf[*t.ParentTeamID], i)
		}
	}

	changed := []Team{}
	type frame struct {
		id    kernel.TeamID
		level int
	}
	stack := []frame{{id: root.ID, level: root.Level}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, idx := range childrenOf[top.id] {
			child := flat[idx]
			want := top.level + 1
			if child.Level != want {
				child.Level = want
				changed = append(changed, child)
			}
			stack = append(stack, frame{id: child.ID, level: want})
		}
	}

	return changed
}

// IsDescendant reporta si candidate está en el subtree de root (se usa para
// rechazar re-parents que crearían un ciclo).
func IsDescendant(flat []Team, rootID, candidateID kernel.TeamID) bool {
	childrenOf := make(map[kernel.TeamID][]kernel.TeamID)
	for _, t := range flat {
		if t.ParentTeamID != nil {
			childrenOf[*t.ParentTeamID] = append(childrenOf[*t.ParentTeamID], t.ID)
		}
	}

	stack := []kernel.TeamID{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, childID := range childrenOf[id] {
			if childID == candidateID {
				return true
			}
			stack = append(stack, childID)
		}
	}
	return false
}
