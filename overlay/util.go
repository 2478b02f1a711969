package overlay

import (
	"fmt"
	"os"
)

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func errManifestNotFound(dir string) error {
	return fmt.Errorf("no overlay manifest found in %q", dir)
}

func errUnknownPatchTarget(patchFile, target string) error {
	return fmt.Errorf("patch %q targets unknown base %q", patchFile, target)
}
