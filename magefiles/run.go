//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// App builds and starts the application with config.toml.
func (Run) App() error {
	mg.Deps(Build.App)
	fmt.Println("Run hello triangle...")
	_, err := executeCmd(filepath.Join("bin", binaryName), withArgs("-config", "config.toml"), withStream())
	return err
}
