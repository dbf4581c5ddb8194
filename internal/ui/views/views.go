// Package views contains the Bubble Tea view models: auth, task list,
// kanban, calendar, tags, and chat.
package views

// Target identifies one of the main screens.
type Target int

const (
	TargetList Target = iota
	TargetKanban
	TargetCalendar
	TargetTags
	TargetChat
)

// String returns the persisted name of the target.
func (t Target) String() string {
	switch t {
	case TargetKanban:
		return "kanban"
	case TargetCalendar:
		return "calendar"
	case TargetTags:
		return "tags"
	case TargetChat:
		return "chat"
	default:
		return "list"
	}
}

// TargetFromString maps a persisted name back to a target, defaulting to
// the task list.
func TargetFromString(s string) Target {
	switch s {
	case "kanban":
		return TargetKanban
	case "calendar":
		return TargetCalendar
	case "tags":
		return TargetTags
	case "chat":
		return TargetChat
	default:
		return TargetList
	}
}

// SwitchView asks the root model to show a different screen.
type SwitchView struct {
	Target Target
}

// SignedIn signals a completed login or signup.
type SignedIn struct{}

// SignedOut signals a requested logout.
type SignedOut struct{}

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}
