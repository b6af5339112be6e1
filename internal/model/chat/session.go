package chat

import "fmt"

// Mode selects the conversational stance of the assistant. Each mode maps
// to a distinct instruction block layered over the shared persona prompt.
type Mode string

const (
	ModeDeveloper Mode = "developer"
	ModeDesigner  Mode = "designer"
	ModeMentor    Mode = "mentor"
)

// Modes lists every supported persona mode.
func Modes() []Mode {
	return []Mode{ModeDeveloper, ModeDesigner, ModeMentor}
}

// ParseMode validates a wire-level mode string.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeDeveloper, ModeDesigner, ModeMentor:
		return Mode(raw), nil
	}
	return "", fmt.Errorf("unknown persona mode %q", raw)
}
