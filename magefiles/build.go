//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

var viewerBinary = filepath.Join("bin", "corridor")

// Downloads the modules and builds the viewer into bin/.
func (Build) Viewer() error {
	if _, err := executeCmd("go", withArgs("mod", "download")); err != nil {
		return err
	}
	_, err := executeCmd("go", withArgs("build", "-o", viewerBinary, "."), withStream())
	return err
}
