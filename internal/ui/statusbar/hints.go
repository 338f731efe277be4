package statusbar

import "github.com/riordanpawley/laneboard/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "h/l/j/k: move  Space: pick up  </>: column  t: table  ?: help  q: quit"
	case types.ModeMove:
		return "h/l: carry  Enter: drop  Esc: cancel"
	case types.ModeTable:
		return "j/k: rows  /: search  t: board  q: quit"
	default:
		return ""
	}
}
