// Package types contains shared types used across the application.
package types

// Mode is what the keyboard currently drives
type Mode int

const (
	// ModeNormal navigates the board.
	ModeNormal Mode = iota
	// ModeMove carries a card or column picked up with the keyboard.
	ModeMove
	// ModeTable shows the task table instead of the board.
	ModeTable
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeTable:
		return "TABLE"
	default:
		return "UNKNOWN"
	}
}
