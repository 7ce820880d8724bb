package core

// Key code definitions, mirroring the virtual key codes the platform layer
// translates into.
type KeyCode uint16

const (
	KEY_UNKNOWN KeyCode = 0x00
	KEY_ENTER   KeyCode = 0x0D
	KEY_ESCAPE  KeyCode = 0x1B
	KEY_SPACE   KeyCode = 0x20
	KEY_Q       KeyCode = 0x51
)
