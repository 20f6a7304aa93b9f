package viewer

import (
	"fmt"
	"strings"
)

// RenderMode determines how device pixels map to terminal cells
type RenderMode uint8

const (
	// ModeHalfBlock stacks two device pixels per cell using '▀' (fg upper, bg lower)
	ModeHalfBlock RenderMode = iota
	// ModeBackground paints one device pixel per cell background
	ModeBackground
)

// String returns human-readable mode name
func (m RenderMode) String() string {
	switch m {
	case ModeHalfBlock:
		return "HalfBlock"
	case ModeBackground:
		return "Background"
	default:
		return "Unknown"
	}
}

// rowsPerCell is the number of device pixel rows in one terminal row
func (m RenderMode) rowsPerCell() int {
	if m == ModeHalfBlock {
		return 2
	}
	return 1
}

// ParseMode accepts the CLI and config spellings
func ParseMode(s string) (RenderMode, error) {
	switch strings.ToLower(s) {
	case "halfblock", "half", "hb", "":
		return ModeHalfBlock, nil
	case "background", "bg":
		return ModeBackground, nil
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}
