package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/spacehole-rogue/nebula_nexus/internal/input"
)

// keyBindings maps each action to the keys that hold it.
var keyBindings = []struct {
	action input.Action
	keys   []ebiten.Key
}{
	{input.Up, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
	{input.Down, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
	{input.Left, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
	{input.Right, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
	{input.Fire, []ebiten.Key{ebiten.KeySpace}},
	{input.Confirm, []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter}},
	{input.Back, []ebiten.Key{ebiten.KeyBackspace, ebiten.KeyX, ebiten.KeyEscape}},
	{input.Option1, []ebiten.Key{ebiten.Key1, ebiten.KeyNumpad1}},
	{input.Option2, []ebiten.Key{ebiten.Key2, ebiten.KeyNumpad2}},
	{input.Option3, []ebiten.Key{ebiten.Key3, ebiten.KeyNumpad3}},
	{input.Option4, []ebiten.Key{ebiten.Key4, ebiten.KeyNumpad4}},
}

// controls polls every device once per frame.
type controls struct {
	tracker   input.Tracker
	touches   []ebiten.TouchID
	points    []input.Point
	touchSeen bool
}

func newControls() *controls {
	return &controls{tracker: input.Tracker{Layout: input.DefaultLayout(screenWidth, screenHeight)}}
}

func heldKeys() input.Action {
	var a input.Action
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if ebiten.IsKeyPressed(k) {
				a |= b.action
				break
			}
		}
	}
	return a
}

// poll returns this frame's input. A held left mouse button counts as a
// touch so the on-screen controls work on desktop too.
func (c *controls) poll() input.State {
	c.touches = ebiten.AppendTouchIDs(c.touches[:0])
	c.points = c.points[:0]
	for _, id := range c.touches {
		x, y := ebiten.TouchPosition(id)
		c.points = append(c.points, input.Point{X: float64(x), Y: float64(y)})
	}
	if len(c.touches) > 0 {
		c.touchSeen = true
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		c.points = append(c.points, input.Point{X: float64(x), Y: float64(y)})
	}
	return c.tracker.Next(heldKeys(), c.points)
}
