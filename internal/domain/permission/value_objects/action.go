package value_objects

import "strings"

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionManage implies every other action on the same resource.
	ActionManage Action = "manage"
)

// ParseAction maps a stored action string, case-insensitively, onto the
// closed action set. Unknown strings report false.
func ParseAction(s string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "create":
		return ActionCreate, true
	case "read":
		return ActionRead, true
	case "update":
		return ActionUpdate, true
	case "delete":
		return ActionDelete, true
	case "manage":
		return ActionManage, true
	default:
		return "", false
	}
}

func AllActions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionManage}
}

func (a Action) String() string {
	return string(a)
}
