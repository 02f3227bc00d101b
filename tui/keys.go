package tui

import "github.com/brensch/snekterm/game"

// Screen is the frontend page currently shown.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenPlay
)

// Command is a key press translated into something the game understands.
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdIncreaseDifficulty
	CmdDecreaseDifficulty
	CmdStartRound
	CmdReturnToMenu
	CmdQuit
)

var homeKeys = map[string]Command{
	"q":     CmdQuit,
	"esc":   CmdQuit,
	"a":     CmdDecreaseDifficulty,
	"left":  CmdDecreaseDifficulty,
	"d":     CmdIncreaseDifficulty,
	"right": CmdIncreaseDifficulty,
	"enter": CmdStartRound,
}

var playKeys = map[string]Command{
	"esc":   CmdReturnToMenu,
	"w":     CmdUp,
	"up":    CmdUp,
	"s":     CmdDown,
	"down":  CmdDown,
	"a":     CmdLeft,
	"left":  CmdLeft,
	"d":     CmdRight,
	"right": CmdRight,
}

// commandFor maps a bubbletea key string to a command for the given screen.
func commandFor(screen Screen, key string) Command {
	if key == "ctrl+c" {
		return CmdQuit
	}
	keys := homeKeys
	if screen == ScreenPlay {
		keys = playKeys
	}
	return keys[key]
}

// turnFor returns the heading for a steering command.
func turnFor(c Command) (game.Direction, bool) {
	switch c {
	case CmdUp:
		return game.Up, true
	case CmdDown:
		return game.Down, true
	case CmdLeft:
		return game.Left, true
	case CmdRight:
		return game.Right, true
	}
	return game.Up, false
}
