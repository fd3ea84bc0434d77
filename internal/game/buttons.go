package game

import (
	"github.com/vovakirdan/tui-hamster/internal/core"
	"github.com/vovakirdan/tui-hamster/internal/hamster"
	"github.com/vovakirdan/tui-hamster/internal/stats"
)

// ButtonID identifies a clickable UI button.
type ButtonID int

const (
	ButtonSettings ButtonID = iota
	ButtonMusic
	ButtonSFX
	ButtonPlayAgain
	ButtonNextBoard
	ButtonBoardScope
)

// Button is a labelled hit rectangle in world coordinates.
type Button struct {
	ID    ButtonID
	Rect  core.Rect
	Label string
}

// Fixed button rectangles in world coordinates.
var (
	settingsRect   = core.NewRect(1088, 15, 176, 30)
	musicRect      = core.NewRect(480, 300, 320, 30)
	sfxRect        = core.NewRect(480, 360, 320, 30)
	playAgainRect  = core.NewRect(320, 600, 192, 30)
	nextBoardRect  = core.NewRect(544, 600, 192, 30)
	boardScopeRect = core.NewRect(768, 600, 192, 30)
)

// Buttons returns the buttons that currently accept clicks.
func (c *Controller) Buttons() []Button {
	buttons := []Button{{ID: ButtonSettings, Rect: settingsRect, Label: "Settings"}}

	if c.settings {
		return append(buttons,
			Button{ID: ButtonMusic, Rect: musicRect, Label: "Music: " + onOff(!c.record.MusicMuted)},
			Button{ID: ButtonSFX, Rect: sfxRect, Label: "Sound: " + onOff(!c.record.SFXMuted)},
		)
	}

	if c.state == hamster.StateEnded {
		scope := "Global"
		if c.boardScope == stats.ScopeAroundUser {
			scope = "Around me"
		}
		buttons = append(buttons,
			Button{ID: ButtonPlayAgain, Rect: playAgainRect, Label: "Play again"},
			Button{ID: ButtonNextBoard, Rect: nextBoardRect, Label: "Next board"},
			Button{ID: ButtonBoardScope, Rect: boardScopeRect, Label: scope},
		)
	}
	return buttons
}

// buttonAt returns the active button containing the world point.
func (c *Controller) buttonAt(x, y int) (Button, bool) {
	for _, b := range c.Buttons() {
		if b.Rect.Contains(x, y) {
			return b, true
		}
	}
	return Button{}, false
}

func (c *Controller) press(id ButtonID) {
	switch id {
	case ButtonSettings:
		c.ToggleSettings()
	case ButtonMusic:
		c.toggleMusic()
	case ButtonSFX:
		c.toggleSFX()
	case ButtonPlayAgain:
		c.playAgain()
	case ButtonNextBoard:
		c.nextBoard()
	case ButtonBoardScope:
		c.toggleScope()
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
