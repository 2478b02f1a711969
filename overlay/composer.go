package overlay

import (
	"path/filepath"
	"strings"

	"github.com/compozy/workflow-actor/workflow"
)

// workflowRefSuffixes are the cross-workflow reference suffixes spec.md
// §4.3/§9 says reference rewriting scans for: "strings ending in
// .yaml/.json", conservatively, only inside an action's arguments.
var workflowRefSuffixes = []string{".yaml", ".yml", ".json"}

// Composed is the output of Compose: a mapping from (possibly renamed)
// workflow file name to its merged Workflow Model (spec.md §4.3 step 4).
type Composed struct {
	Workflows map[string]*workflow.Workflow
	// References maps each final workflow file name to the cross-workflow
	// file references discovered in its actions' arguments (§4.3 step 3),
	// useful for diagnostics and for verifying the rewrite actually ran.
	References map[string][]string
	// renames maps each base's original file name to its final
	// (possibly prefixed/suffixed) file name, feeding Lookup's priority
	// rules (spec.md §4.3 "Workflow lookup on load").
	renames map[string]string
}

// Compose reads the manifest at dir/manifest.yaml (or manifest.yml/json),
// loads every declared base workflow, applies every patch in declared
// order, and applies the manifest's name_prefix/name_suffix (spec.md §4.3).
func Compose(dir string) (*Composed, error) {
	manifestPath, err := findManifest(dir)
	if err != nil {
		return nil, err
	}
	manifest, err := ParseManifestFile(manifestPath)
	if err != nil {
		return nil, err
	}
	return ComposeManifest(dir, manifest)
}

func findManifest(dir string) (string, error) {
	for _, name := range []string{"manifest.yaml", "manifest.yml", "manifest.json"} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p, nil
		}
	}
	return "", ErrIOError(errManifestNotFound(dir))
}

// ComposeManifest runs the merge algorithm against an already-parsed
// manifest, resolving every base/patch file relative to dir.
func ComposeManifest(dir string, manifest *Manifest) (*Composed, error) {
	if err := checkInterpreterVersion(manifest.RequiresInterpreter); err != nil {
		return nil, err
	}
	bases := make(map[string]*workflow.Workflow, len(manifest.Bases))
	for _, baseFile := range manifest.Bases {
		wf, err := loadBase(filepath.Join(dir, baseFile))
		if err != nil {
			return nil, err
		}
		bases[baseFile] = wf
	}

	for _, entry := range manifest.Patches {
		target := entry.Target
		if target == "" {
			target = sameNameBase(entry.Patch, manifest.Bases)
		}
		base, ok := bases[target]
		if !ok {
			return nil, ErrIOError(errUnknownPatchTarget(entry.Patch, target))
		}
		patchPath := filepath.Join(dir, entry.Patch)
		doc, err := parsePatchFile(patchPath)
		if err != nil {
			return nil, err
		}
		merged, err := applyPatch(base, doc, entry.Patch)
		if err != nil {
			return nil, err
		}
		bases[target] = merged
	}

	composed := &Composed{
		Workflows:  make(map[string]*workflow.Workflow, len(bases)),
		References: make(map[string][]string, len(bases)),
		renames:    make(map[string]string, len(bases)),
	}
	for baseFile, wf := range bases {
		finalName := renameFile(baseFile, manifest.NamePrefix, manifest.NameSuffix)
		rewriteReferences(wf, manifest.NamePrefix, manifest.NameSuffix)
		if manifest.NamePrefix != "" || manifest.NameSuffix != "" {
			wf.Name = manifest.NamePrefix + wf.Name + manifest.NameSuffix
		}
		composed.Workflows[finalName] = wf
		composed.References[finalName] = ReferencedFiles(wf)
		composed.renames[baseFile] = finalName
	}
	return composed, nil
}

func loadBase(path string) (*workflow.Workflow, error) {
	wf, err := workflow.ParseYAMLFile(path)
	if err != nil {
		return nil, ErrIOError(err)
	}
	return wf, nil
}

// sameNameBase implements the patch entry's simple form: the patch applies
// to the base file with the same file name or, failing that, the same name
// without extension, ignoring a ".patch" marker before the extension (so
// "main.patch.yaml" applies to "main.yaml").
func sameNameBase(patchFile string, bases []string) string {
	for _, b := range bases {
		if b == patchFile {
			return b
		}
	}
	// fall back to matching by base name without extension, letting a
	// patch file named e.g. "main.yaml" under a patches/ subdirectory, or
	// "main.patch.yaml", still target a base literally named "main.yaml".
	patchBase := strings.TrimSuffix(filepath.Base(patchFile), filepath.Ext(patchFile))
	patchBase = strings.TrimSuffix(patchBase, ".patch")
	for _, b := range bases {
		if strings.TrimSuffix(filepath.Base(b), filepath.Ext(b)) == patchBase {
			return b
		}
	}
	return patchFile
}

// applyPatch implements spec.md §4.3 step 2: each patch transition either
// overwrites a same-label base transition, inserts after an anchor, or is
// an orphan (fatal). Step copies the base first so unrelated patches never
// observe each other's mutations out of order.
func applyPatch(base *workflow.Workflow, doc *patchDoc, patchFile string) (*workflow.Workflow, error) {
	merged := base.Clone()
	seenLabels := make(map[string]struct{})
	for _, p := range doc.Transitions {
		if p.Label != "" {
			if _, dup := seenLabels[p.Label]; dup {
				return nil, ErrDuplicateLabel(p.Label, patchFile)
			}
			seenLabels[p.Label] = struct{}{}
		}

		if p.Label != "" {
			if idx := findByLabel(merged.Transitions, p.Label); idx >= 0 {
				merged.Transitions[idx] = overwrite(merged.Transitions[idx], p)
				continue
			}
		}
		if p.InsertAfter != "" {
			if idx := findByLabel(merged.Transitions, p.InsertAfter); idx >= 0 {
				t := toTransition(p)
				merged.Transitions = insertAfter(merged.Transitions, idx, t)
				continue
			}
		}
		return nil, ErrOrphanTransition(p.Label, patchFile)
	}
	return merged, nil
}

func findByLabel(transitions []workflow.Transition, label string) int {
	for i, t := range transitions {
		if t.Label == label {
			return i
		}
	}
	return -1
}

// overwrite replaces base's states and actions with p's when p's source
// document contains those keys, keeping base's value otherwise (spec.md
// §4.3 step 2). Note is replaced only when p's note is non-empty.
func overwrite(base workflow.Transition, p patchTransition) workflow.Transition {
	out := base
	if p.Note != "" {
		out.Note = p.Note
	}
	if p.hasStates {
		out.States = p.States
	}
	if p.hasActions {
		out.Actions = p.Actions
	}
	return out
}

func toTransition(p patchTransition) workflow.Transition {
	return workflow.Transition{
		Label:   p.Label,
		Note:    p.Note,
		States:  p.States,
		Actions: p.Actions,
	}
}

func insertAfter(transitions []workflow.Transition, idx int, t workflow.Transition) []workflow.Transition {
	out := make([]workflow.Transition, 0, len(transitions)+1)
	out = append(out, transitions[:idx+1]...)
	out = append(out, t)
	out = append(out, transitions[idx+1:]...)
	return out
}

// renameFile prepends/appends the manifest's name transformation to a
// base file's name, the "-wf"/"wf-" shape the §4.3 lookup rule searches
// for later.
func renameFile(baseFile, prefix, suffix string) string {
	if prefix == "" && suffix == "" {
		return baseFile
	}
	ext := filepath.Ext(baseFile)
	stem := strings.TrimSuffix(baseFile, ext)
	return prefix + stem + suffix + ext
}

// rewriteReferences scans every action's Arguments for strings recognized
// as cross-workflow file names and applies the same prefix/suffix to them
// (spec.md §4.3 step 3, §9 "keep this rule explicit and conservative").
func rewriteReferences(wf *workflow.Workflow, prefix, suffix string) {
	if prefix == "" && suffix == "" {
		return
	}
	for ti := range wf.Transitions {
		for ai := range wf.Transitions[ti].Actions {
			wf.Transitions[ti].Actions[ai].Arguments = rewriteValue(
				wf.Transitions[ti].Actions[ai].Arguments, prefix, suffix,
			)
		}
	}
}

func rewriteValue(v any, prefix, suffix string) any {
	switch t := v.(type) {
	case string:
		return rewriteIfWorkflowRef(t, prefix, suffix)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = rewriteValue(e, prefix, suffix)
		}
		return out
	case []string:
		out := make([]string, len(t))
		for i, e := range t {
			out[i] = rewriteIfWorkflowRef(e, prefix, suffix)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = rewriteValue(e, prefix, suffix)
		}
		return out
	default:
		return v
	}
}

func rewriteIfWorkflowRef(s, prefix, suffix string) string {
	for _, ext := range workflowRefSuffixes {
		if strings.HasSuffix(s, ext) {
			return renameFile(s, prefix, suffix)
		}
	}
	return s
}
