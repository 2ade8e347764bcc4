package main

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hexaflex/dnes/core"
	"github.com/hexaflex/dnes/input"
)

// Default controller keys in core.Button order:
// A, B, Select, Start, Up, Down, Left, Right.
var (
	player1Keys = [core.ButtonCount]int{
		int(glfw.KeyX), int(glfw.KeyZ), int(glfw.KeyRightShift), int(glfw.KeyEnter),
		int(glfw.KeyUp), int(glfw.KeyDown), int(glfw.KeyLeft), int(glfw.KeyRight),
	}

	player2Keys = [core.ButtonCount]int{
		int(glfw.KeyK), int(glfw.KeyJ), int(glfw.KeyG), int(glfw.KeyH),
		int(glfw.KeyW), int(glfw.KeyS), int(glfw.KeyA), int(glfw.KeyD),
	}
)

// defaultBindings returns the controller key map.
func defaultBindings(player2 bool) input.Bindings {
	b := input.Bindings{}
	b.Bind(core.Player1, player1Keys)
	if player2 {
		b.Bind(core.Player2, player2Keys)
	}
	return b
}

var keyNames = map[glfw.Key]string{
	glfw.KeyUp:         "Up",
	glfw.KeyDown:       "Down",
	glfw.KeyLeft:       "Left",
	glfw.KeyRight:      "Right",
	glfw.KeyEnter:      "Enter",
	glfw.KeyRightShift: "RShift",
}

// keyName returns a readable name for a glfw key code.
func keyName(key int) string {
	if name, ok := keyNames[glfw.Key(key)]; ok {
		return name
	}

	k := glfw.Key(key)
	if k >= glfw.KeyA && k <= glfw.KeyZ {
		return string(rune('A' + (k - glfw.KeyA)))
	}

	return fmt.Sprintf("key %d", key)
}
