//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const binaryName = "hellotriangle"

// App validates the shaders and builds the binary into bin/.
func (Build) App() error {
	mg.Deps(Check.Shaders)
	if err := os.MkdirAll("bin", 0o755); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", binaryName), "."), withStream())
	return err
}
