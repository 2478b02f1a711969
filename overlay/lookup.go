package overlay

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/compozy/workflow-actor/workflow"
)

// Lookup implements spec.md §4.3 "Workflow lookup on load": given a
// requested file name, e.g. "wf.yaml", with base name "wf" (the name
// sans extension), resolve it against this Composed result by priority:
//
//  1. exact file-name match;
//  2. shortest rename ending with "-wf"/"_wf" (prefix case) or starting
//     with "wf-"/"wf_" (suffix case) — shortest wins, so with both
//     "eu-setup" and "eu-main-setup" present, "setup" resolves to "eu-setup";
//  3. exact base-name match as a last resort.
func (c *Composed) Lookup(requested string) (*workflow.Workflow, string, error) {
	if wf, ok := c.Workflows[requested]; ok {
		return wf, requested, nil
	}

	ext := filepath.Ext(requested)
	baseName := strings.TrimSuffix(filepath.Base(requested), ext)

	var bestName string
	for name := range c.Workflows {
		nameExt := filepath.Ext(name)
		stem := strings.TrimSuffix(filepath.Base(name), nameExt)
		if !(strings.HasSuffix(stem, "-"+baseName) || strings.HasSuffix(stem, "_"+baseName) ||
			strings.HasPrefix(stem, baseName+"-") || strings.HasPrefix(stem, baseName+"_")) {
			continue
		}
		if bestName == "" || len(name) < len(bestName) {
			bestName = name
		}
	}
	if bestName != "" {
		return c.Workflows[bestName], bestName, nil
	}

	for name, wf := range c.Workflows {
		nameExt := filepath.Ext(name)
		stem := strings.TrimSuffix(filepath.Base(name), nameExt)
		if stem == baseName {
			return wf, name, nil
		}
	}

	return nil, "", fmt.Errorf("overlay: no workflow found for %q", requested)
}
