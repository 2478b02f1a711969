package workflow

import "encoding/json"

// SerializeArguments normalizes an Action's parsed Arguments value into the
// wire string passed to dispatch (spec.md §4.2 table):
//
//	omitted / absent       -> "[]"
//	empty list             -> "[]"
//	string s               -> ["s"]
//	list of primitives     -> JSON array of those primitives
//	map                    -> JSON object (not wrapped)
func SerializeArguments(args any) (string, error) {
	switch v := args.(type) {
	case nil:
		return "[]", nil
	case string:
		b, err := json.Marshal([]string{v})
		if err != nil {
			return "", err
		}
		return string(b), nil
	case []any:
		if len(v) == 0 {
			return "[]", nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case []string:
		if len(v) == 0 {
			return "[]", nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}
