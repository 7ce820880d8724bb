package core

import (
	"errors"
)

var (
	ErrSwapchainBooting = errors.New("swapchain resized or recreated, booting")
	ErrNoDevice         = errors.New("no device meets the requirements")
	ErrShaderCompile    = errors.New("shader compilation failed")
	ErrNotInitialized   = errors.New("not initialized")
)
