package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const greetScenario = `
name: greet
steps:
  - command: button
  - click: Greet
  - expect:
      content: Hello there!
      ephemeral: true
---
steps:
  - command: buttons
    args: [3]
  - click: 2
  - command: repeat
    options:
      to_repeat: hi
      times: 2
`

func TestParse(t *testing.T) {
	scenarios, err := Parse([]byte(greetScenario), "testdata/greet.yaml")
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	first := scenarios[0]
	assert.Equal(t, "greet", first.Name)
	assert.Equal(t, "testdata/greet.yaml", first.Source)
	require.Len(t, first.Steps, 3)
	assert.Equal(t, "command", first.Steps[0].Kind())
	assert.Equal(t, "click", first.Steps[1].Kind())
	assert.Equal(t, "Greet", first.Steps[1].Click.Label)
	assert.True(t, first.Steps[1].Click.Index.IsAbsent())
	require.NotNil(t, first.Steps[2].Expect)
	assert.Equal(t, "Hello there!", *first.Steps[2].Expect.Content)

	second := scenarios[1]
	assert.Equal(t, "greet #2", second.Name)
	assert.Equal(t, []any{3}, second.Steps[0].Args)
	index, ok := second.Steps[1].Click.Index.Get()
	require.True(t, ok)
	assert.Equal(t, 2, index)
	assert.Equal(t, map[string]any{"to_repeat": "hi", "times": 2}, second.Steps[2].Options)
}

func TestParse_QuotedNumberIsLabel(t *testing.T) {
	scenarios, err := Parse([]byte("steps:\n  - click: \"2\"\n"), "quoted.yaml")
	require.NoError(t, err)

	sel := scenarios[0].Steps[0].Click
	assert.Equal(t, "2", sel.Label)
	assert.True(t, sel.Index.IsAbsent())
}

func TestParse_InvalidSteps(t *testing.T) {
	tests := map[string]string{
		"two actions":        "steps:\n  - command: ping\n    submit_modal: true\n",
		"no action":          "steps:\n  - response: 1\n",
		"args without cmd":   "steps:\n  - submit_modal: true\n    args: [1]\n",
		"unknown key":        "steps:\n  - command: ping\n    colour: red\n",
		"click with mapping": "steps:\n  - click: {label: x}\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc), "bad.yaml")
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	require.NoError(t, os.WriteFile(a, []byte("name: first\nsteps:\n  - command: ping\n"), 0o600))
	require.NoError(t, os.WriteFile(b, []byte("name: second\nsteps:\n  - command: ping\n"), 0o600))

	scenarios, err := Load(a, b)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
