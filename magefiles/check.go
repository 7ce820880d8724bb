//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
)

type Check mg.Namespace

// Shaders compiles the embedded shader and every override under
// assets/shaders to SPIR-V and checks the entry points.
func (Check) Shaders() error {
	files := []string{filepath.Join("engine", "renderer", "shaders", "basic.wgsl")}
	overrides, err := filepath.Glob(filepath.Join("assets", "shaders", "*.wgsl"))
	if err != nil {
		return err
	}
	files = append(files, overrides...)

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		module, err := shaders.Compile(path, string(src))
		if err != nil {
			return err
		}
		fmt.Printf("%s: ok (%d bytes of SPIR-V)\n", path, module.Size())
	}
	return nil
}
