package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/compozy/workflow-actor/workflow"
)

func TestReferencedFiles(t *testing.T) {
	t.Run("Should collect workflow-looking strings from nested argument shapes", func(t *testing.T) {
		wf := &workflow.Workflow{
			Transitions: []workflow.Transition{
				{Actions: []workflow.Action{
					{Actor: "orchestrator", Method: "call", Arguments: "shipping.yaml"},
					{Actor: "orchestrator", Method: "call", Arguments: []any{"billing.json", "not-a-ref"}},
					{Actor: "orchestrator", Method: "call", Arguments: map[string]any{
						"workflow": "refund.yml",
						"note":     "ignore me",
					}},
				}},
			},
		}

		refs := ReferencedFiles(wf)

		assert.Contains(t, refs, "shipping.yaml")
		assert.Contains(t, refs, "billing.json")
		assert.Contains(t, refs, "refund.yml")
		assert.NotContains(t, refs, "not-a-ref")
		assert.NotContains(t, refs, "ignore me")
	})

	t.Run("Should dedupe repeated references", func(t *testing.T) {
		wf := &workflow.Workflow{
			Transitions: []workflow.Transition{
				{Actions: []workflow.Action{
					{Actor: "a", Method: "m", Arguments: []any{"shipping.yaml", "shipping.yaml"}},
				}},
			},
		}

		refs := ReferencedFiles(wf)

		assert.Equal(t, []string{"shipping.yaml"}, refs)
	})

	t.Run("Should return nothing for actions without arguments", func(t *testing.T) {
		wf := &workflow.Workflow{
			Transitions: []workflow.Transition{
				{Actions: []workflow.Action{{Actor: "a", Method: "m"}}},
			},
		}

		assert.Empty(t, ReferencedFiles(wf))
	})
}
