package platform

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/hellotriangle/engine/core"
)

var keyMap = map[glfw.Key]core.KeyCode{
	glfw.KeyEnter:  core.KEY_ENTER,
	glfw.KeyEscape: core.KEY_ESCAPE,
	glfw.KeySpace:  core.KEY_SPACE,
	glfw.KeyQ:      core.KEY_Q,
}

// translateKey maps a GLFW key to the engine key code. Keys the application
// does not react to are reported as not ok.
func translateKey(key glfw.Key) (core.KeyCode, bool) {
	code, ok := keyMap[key]
	if !ok {
		return core.KEY_UNKNOWN, false
	}
	return code, true
}
