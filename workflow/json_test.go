package workflow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	t.Run("Should decode a document keyed by steps", func(t *testing.T) {
		doc := `{"name":"checkout","steps":[{"states":["0","end"],"actions":[{"actor":"cart","method":"validate"}]}]}`
		wf, err := ParseJSON(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, "checkout", wf.Name)
		require.Len(t, wf.Transitions, 1)
		assert.Equal(t, [2]string{"0", "end"}, wf.Transitions[0].States)
	})

	t.Run("Should decode a document keyed by transitions when steps is absent", func(t *testing.T) {
		doc := `{"name":"checkout","transitions":[{"states":["0","end"]}]}`
		wf, err := ParseJSON(strings.NewReader(doc))
		require.NoError(t, err)
		require.Len(t, wf.Transitions, 1)
	})

	t.Run("Should fail on malformed JSON", func(t *testing.T) {
		_, err := ParseJSON(strings.NewReader("{not json"))
		assert.Error(t, err)
	})
}
