package scenario

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sglre6355/accord/internal/accord"
	"github.com/sglre6355/accord/internal/accord/bottransport"
	"github.com/sglre6355/accord/internal/bot"
	testmodule "github.com/sglre6355/accord/internal/modules/test"
)

func fixtureEngine(ctx context.Context) (*accord.Engine, error) {
	transport, err := bottransport.New(bot.WithModules(testmodule.New()))
	if err != nil {
		return nil, err
	}
	return accord.New(ctx, transport)
}

func parse(t *testing.T, doc string) []*Scenario {
	t.Helper()
	scenarios, err := Parse([]byte(doc), "inline.yaml")
	require.NoError(t, err)
	return scenarios
}

func TestRunner_Passing(t *testing.T) {
	scenarios := parse(t, `
name: ping
steps:
  - command: ping
  - expect: {content: pong, ephemeral: false, count: 1}
---
name: button
steps:
  - command: button
  - click: Greet
  - expect: {content: Hello there!, ephemeral: true, count: 2}
  - expect: {index: 0, content: "Test button:"}
---
name: numbered buttons
steps:
  - command: buttons
    args: [3]
  - click: 2
  - expect: {content: Button 3 clicked}
---
name: modal
steps:
  - command: modal
  - modal_input: {response: typed}
  - submit_modal: true
  - expect: {content: typed}
---
name: embed
steps:
  - command: embed
  - expect:
      content: "Here's your embed:"
      embed: {title: Test, description: An embed}
---
name: errors
steps:
  - command: nope
    expect_error: Could not find command 'nope'
  - command: repeat
    args: [a, 1, true]
    expect_error: Command 'repeat' takes 2 options but 3 positional arguments were given
  - expect: {count: 0}
`)

	results := NewRunner(fixtureEngine, WithWorkers(3)).Run(context.Background(), scenarios)

	require.Len(t, results, len(scenarios))
	for i, r := range results {
		assert.Same(t, scenarios[i], r.Scenario)
		assert.True(t, r.Passed(), "%s failed at step %d: %v", r.Scenario.Name, r.Step, r.Err)
	}
}

func TestRunner_Failures(t *testing.T) {
	scenarios := parse(t, `
name: wrong content
steps:
  - command: ping
  - expect: {content: ping}
---
name: missing button
steps:
  - command: button
  - click: Missing
---
name: no modal
steps:
  - command: ping
  - submit_modal: true
---
name: no response
steps:
  - command: silent
  - expect: {content: anything}
---
name: embed mismatch
steps:
  - command: embed
  - expect:
      embed: {title: Other}
---
name: unexpected success
steps:
  - command: ping
    expect_error: boom
`)

	results := NewRunner(fixtureEngine, WithWorkers(2)).Run(context.Background(), scenarios)
	require.Len(t, results, 6)

	assert.ErrorIs(t, results[0].Err, ErrExpectationFailed)
	assert.Equal(t, 2, results[0].Step)
	assert.ErrorIs(t, results[1].Err, ErrNoButton)
	assert.ErrorIs(t, results[2].Err, ErrNoModal)
	assert.ErrorIs(t, results[3].Err, accord.ErrNoResponse)
	assert.ErrorIs(t, results[4].Err, ErrExpectationFailed)
	assert.ErrorIs(t, results[5].Err, ErrExpectationFailed)
}

func TestRunner_FactoryError(t *testing.T) {
	failing := func(context.Context) (*accord.Engine, error) {
		return nil, assert.AnError
	}

	results := NewRunner(failing).Run(context.Background(), parse(t, "steps:\n  - command: ping\n"))
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, assert.AnError)
	assert.Equal(t, 0, results[0].Step)
}

func TestReport(t *testing.T) {
	scenarios := parse(t, `
name: good
steps:
  - command: ping
---
name: bad
steps:
  - command: ping
  - expect: {content: nope}
`)
	results := NewRunner(fixtureEngine).Run(context.Background(), scenarios)

	var buf bytes.Buffer
	summary, err := Report(&buf, results)
	require.NoError(t, err)

	assert.Equal(t, Summary{Passed: 1, Failed: 1}, summary)
	out := buf.String()
	assert.Contains(t, out, "PASS")
	assert.Contains(t, out, "good")
	assert.Contains(t, out, "FAIL")
	assert.Contains(t, out, "step 2")
	assert.Contains(t, out, `expected content "nope", got "pong"`)
	assert.Contains(t, out, "1 passed, 1 failed")
}
