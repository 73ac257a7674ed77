//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and starts the viewer. CORRIDOR_CONFIG overrides viewer.toml.
func (Run) Viewer() error {
	mg.Deps(Build.Viewer)

	config := os.Getenv("CORRIDOR_CONFIG")
	if config == "" {
		config = "viewer.toml"
	}
	fmt.Println("Run viewer...")
	if _, err := executeCmd(viewerBinary, withArgs("-config", config), withStream()); err != nil {
		return err
	}
	return nil
}
