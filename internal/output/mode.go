package output

import (
	"fmt"
	"strings"
)

// Mode selects what happens to each synthesized chunk.
type Mode int

const (
	ModePlay Mode = iota
	ModeSave
	ModeBoth
)

// ParseMode validates an output mode selector, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "play":
		return ModePlay, nil
	case "save":
		return ModeSave, nil
	case "both":
		return ModeBoth, nil
	default:
		return 0, fmt.Errorf("invalid mode %q: must be play, save, or both", s)
	}
}

func (m Mode) String() string {
	switch m {
	case ModePlay:
		return "play"
	case ModeSave:
		return "save"
	case ModeBoth:
		return "both"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Plays reports whether the mode includes playback.
func (m Mode) Plays() bool { return m == ModePlay || m == ModeBoth }

// Saves reports whether the mode includes file persistence.
func (m Mode) Saves() bool { return m == ModeSave || m == ModeBoth }
