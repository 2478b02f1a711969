// Package actorsys implements the named, hierarchical actor registry
// described in spec.md §3/§4.1: Actor Node, Actor System, path resolution,
// and the scheduling pool shared by every Interpreter.
package actorsys

// Result is the universal return type of every action invocation, shared
// by the actor dispatch contract, the interpreter, and the overlay/call/
// apply protocols.
type Result struct {
	Success bool   `json:"success"`
	Payload string `json:"payload"`
}

// Ok builds a successful Result.
func Ok(payload string) Result {
	return Result{Success: true, Payload: payload}
}

// Fail builds a failed Result.
func Fail(payload string) Result {
	return Result{Success: false, Payload: payload}
}

// AsMap mirrors the teacher's Error.AsMap pattern: a JSON-ready view usable
// by the (out-of-scope) side API without this package importing net/http.
func (r Result) AsMap() map[string]any {
	return map[string]any{
		"success": r.Success,
		"payload": r.Payload,
	}
}
