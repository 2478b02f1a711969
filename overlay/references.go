package overlay

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/compozy/workflow-actor/workflow"
)

// ReferencedFiles scans wf's transitions for action arguments that look
// like cross-workflow file names (spec.md §4.3 step 3: "scans only the
// arguments field for strings ending in .yaml/.json"). It marshals each
// action's arguments to JSON once and walks it with gjson rather than a
// typed re-decode, since arguments may be a string, a list, or an
// arbitrarily nested map (spec.md §4.2) and gjson's path walking handles
// all three shapes uniformly without three separate type switches.
func ReferencedFiles(wf *workflow.Workflow) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range wf.Transitions {
		for _, a := range t.Actions {
			if a.Arguments == nil {
				continue
			}
			b, err := json.Marshal(a.Arguments)
			if err != nil {
				continue
			}
			walkForReferences(gjson.ParseBytes(b), seen, &out)
		}
	}
	return out
}

func walkForReferences(result gjson.Result, seen map[string]struct{}, out *[]string) {
	switch {
	case result.IsArray() || result.IsObject():
		result.ForEach(func(_, value gjson.Result) bool {
			walkForReferences(value, seen, out)
			return true
		})
	case result.Type == gjson.String:
		s := result.String()
		if looksLikeWorkflowRef(s) {
			if _, dup := seen[s]; !dup {
				seen[s] = struct{}{}
				*out = append(*out, s)
			}
		}
	}
}

func looksLikeWorkflowRef(s string) bool {
	for _, ext := range workflowRefSuffixes {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}
