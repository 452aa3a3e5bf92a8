// Package scenario runs YAML-described command scenarios against simulated bot sessions.
//
// A scenario file holds one or more YAML documents, each a scenario:
//
//	name: greet button
//	steps:
//	  - command: button
//	  - click: Greet
//	  - expect: {content: "Hello there!", ephemeral: true}
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/mo"
	"gopkg.in/yaml.v3"
)

// Scenario is a named sequence of steps run against one engine.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`

	// Source is the file the scenario was loaded from.
	Source string `yaml:"-"`
}

// Step is one action or assertion. Exactly one of Command, Click, ModalInput, SubmitModal and
// Expect is set.
type Step struct {
	Command     string         `yaml:"command"`
	Args        []any          `yaml:"args"`
	Options     map[string]any `yaml:"options"`
	ExpectError string         `yaml:"expect_error"`

	Click *Selector `yaml:"click"`

	ModalInput  map[string]string `yaml:"modal_input"`
	SubmitModal bool              `yaml:"submit_modal"`

	// Response selects the response a click or modal step acts on. Negative values count from the
	// end; the default is the latest response.
	Response *int `yaml:"response"`

	Expect *Expectation `yaml:"expect"`
}

// Kind names the step's action.
func (s Step) Kind() string {
	switch {
	case s.Command != "":
		return "command"
	case s.Click != nil:
		return "click"
	case s.ModalInput != nil:
		return "modal_input"
	case s.SubmitModal:
		return "submit_modal"
	case s.Expect != nil:
		return "expect"
	}
	return ""
}

func (s Step) validate() error {
	set := 0
	for _, ok := range []bool{s.Command != "", s.Click != nil, s.ModalInput != nil, s.SubmitModal, s.Expect != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%w: expected exactly one action, found %d", ErrInvalidStep, set)
	}
	if s.Command == "" && (len(s.Args) > 0 || len(s.Options) > 0 || s.ExpectError != "") {
		return fmt.Errorf("%w: args, options and expect_error need a command", ErrInvalidStep)
	}
	return nil
}

// Selector picks a button by label or by index.
type Selector struct {
	Label string
	Index mo.Option[int]
}

// UnmarshalYAML reads an integer as a button index and anything else as a label.
func (s *Selector) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: click must be a label or an index", ErrInvalidStep)
	}
	if node.Tag == "!!int" {
		var index int
		if err := node.Decode(&index); err != nil {
			return err
		}
		s.Index = mo.Some(index)
		return nil
	}
	return node.Decode(&s.Label)
}

func (s Selector) String() string {
	if index, ok := s.Index.Get(); ok {
		return fmt.Sprintf("index %d", index)
	}
	return fmt.Sprintf("label %q", s.Label)
}

// Expectation asserts on the response log.
type Expectation struct {
	// Index selects the response checked; the default is the latest one.
	Index     *int              `yaml:"index"`
	Count     *int              `yaml:"count"`
	Content   *string           `yaml:"content"`
	Ephemeral *bool             `yaml:"ephemeral"`
	Embed     *EmbedExpectation `yaml:"embed"`
}

// EmbedExpectation matches the response embed. Title and Description are patterns anchored at
// the start of the value.
type EmbedExpectation struct {
	Title       *string `yaml:"title"`
	Description *string `yaml:"description"`
	Fully       bool    `yaml:"fully"`
}

// Parse decodes every scenario document in data. Unnamed scenarios are named after source and
// their position.
func Parse(data []byte, source string) ([]*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var scenarios []*Scenario
	for n := 1; ; n++ {
		var sc Scenario
		err := dec.Decode(&sc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse scenario %d in %s: %w", n, source, err)
		}

		sc.Source = source
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("%s #%d", strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)), n)
		}
		for i, step := range sc.Steps {
			if err := step.validate(); err != nil {
				return nil, fmt.Errorf("scenario %q step %d: %w", sc.Name, i+1, err)
			}
		}
		scenarios = append(scenarios, &sc)
	}
	return scenarios, nil
}

// Load reads and parses the scenario files at paths, keeping their order.
func Load(paths ...string) ([]*Scenario, error) {
	var scenarios []*Scenario
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario file: %w", err)
		}
		parsed, err := Parse(data, path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, parsed...)
	}
	return scenarios, nil
}
