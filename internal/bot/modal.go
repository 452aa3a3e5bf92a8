package bot

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// ModalHandler handles the submission of a modal. Field values are up to date when it runs.
type ModalHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder, m *Modal) error

// TextInput is a declared modal field.
type TextInput struct {
	Name        string
	Label       string
	Placeholder string
	CustomID    string
	Style       discordgo.TextInputStyle
	Required    bool
	Default     string

	mu    sync.RWMutex
	value string
}

// Value returns the submitted value.
func (t *TextInput) Value() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.value
}

// SetValue replaces the field's value.
func (t *TextInput) SetValue(v string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.value = v
}

func (t *TextInput) String() string {
	return t.Value()
}

// Modal is a form presented in response to an interaction.
//
// Each declared field has a matching child component. The children are what gets sent over the
// wire and what a submission is read from, so both must stay in sync.
type Modal struct {
	Title    string
	CustomID string
	OnSubmit ModalHandler

	mu       sync.Mutex
	fields   []*TextInput
	children []*discordgo.TextInput
	finished bool
}

// NewModal creates a Modal with the given fields. Missing custom ids are generated.
func NewModal(title string, fields ...*TextInput) *Modal {
	m := &Modal{Title: title, CustomID: newCustomID()}
	for _, f := range fields {
		m.AddField(f)
	}
	return m
}

// AddField declares a field and creates its child component.
func (m *Modal) AddField(f *TextInput) *Modal {
	if f.CustomID == "" {
		f.CustomID = newCustomID()
	}
	if f.Name == "" {
		f.Name = f.CustomID
	}
	style := f.Style
	if style == 0 {
		style = discordgo.TextInputShort
	}
	if f.Default != "" && f.Value() == "" {
		f.SetValue(f.Default)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.fields = append(m.fields, f)
	m.children = append(m.children, &discordgo.TextInput{
		CustomID:    f.CustomID,
		Label:       f.Label,
		Style:       style,
		Placeholder: f.Placeholder,
		Value:       f.Value(),
		Required:    f.Required,
	})
	return m
}

// Field returns the declared field with the given name.
func (m *Modal) Field(name string) (*TextInput, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Fields returns the declared fields in order.
func (m *Modal) Fields() []*TextInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	fields := make([]*TextInput, len(m.fields))
	copy(fields, m.fields)
	return fields
}

// Child returns the live child component with the given custom id.
func (m *Modal) Child(customID string) (*discordgo.TextInput, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.children {
		if c.CustomID == customID {
			return c, true
		}
	}
	return nil, false
}

// Children returns the live child components in order.
func (m *Modal) Children() []*discordgo.TextInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	children := make([]*discordgo.TextInput, len(m.children))
	copy(children, m.children)
	return children
}

// Components projects the children into action rows, one text input per row.
func (m *Modal) Components() []discordgo.MessageComponent {
	children := m.Children()
	rows := make([]discordgo.MessageComponent, 0, len(children))
	for _, c := range children {
		rows = append(rows, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{*c},
		})
	}
	return rows
}

// InteractionResponse projects the modal into the response that opens it.
func (m *Modal) InteractionResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   m.CustomID,
			Title:      m.Title,
			Components: m.Components(),
		},
	}
}

// Stop marks the modal finished.
func (m *Modal) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finished = true
}

// IsFinished reports whether the modal was submitted or stopped.
func (m *Modal) IsFinished() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finished
}

// refresh copies submitted values into both the children and the declared fields.
func (m *Modal) refresh(components []discordgo.MessageComponent) {
	for _, input := range textInputs(components) {
		if c, ok := m.Child(input.CustomID); ok {
			c.Value = input.Value
		}
		for _, f := range m.Fields() {
			if f.CustomID == input.CustomID {
				f.SetValue(input.Value)
			}
		}
	}
}

// ModalFromResponse rebuilds a modal from a raw modal response. The result has no submit handler.
func ModalFromResponse(data *discordgo.InteractionResponseData) *Modal {
	m := &Modal{Title: data.Title, CustomID: data.CustomID}
	for _, input := range textInputs(data.Components) {
		m.AddField(&TextInput{
			Label:       input.Label,
			Placeholder: input.Placeholder,
			CustomID:    input.CustomID,
			Style:       input.Style,
			Required:    input.Required,
			Default:     input.Value,
		})
	}
	return m
}

// textInputs flattens a component tree into its text inputs. Decoded payloads hold pointers
// while locally built ones hold values, so both forms are accepted.
func textInputs(components []discordgo.MessageComponent) []discordgo.TextInput {
	var inputs []discordgo.TextInput
	for _, c := range components {
		switch v := c.(type) {
		case discordgo.ActionsRow:
			inputs = append(inputs, textInputs(v.Components)...)
		case *discordgo.ActionsRow:
			inputs = append(inputs, textInputs(v.Components)...)
		case discordgo.TextInput:
			inputs = append(inputs, v)
		case *discordgo.TextInput:
			inputs = append(inputs, *v)
		}
	}
	return inputs
}
