package bot

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/oklog/ulid/v2"
)

// DefaultViewTimeout is the inactivity window after which a view stops accepting interactions.
const DefaultViewTimeout = 180 * time.Second

// DefaultEphemeralViewTimeout applies to views sent in ephemeral replies that set no timeout.
const DefaultEphemeralViewTimeout = 15 * time.Minute

const maxButtonsPerRow = 5

// Item is an interactive component attached to a View.
type Item interface {
	// ComponentType returns the wire component type.
	ComponentType() discordgo.ComponentType

	// ComponentID returns the custom id that routes activations back to the item.
	ComponentID() string

	// Component projects the item into its wire representation.
	Component() discordgo.MessageComponent

	// Handle runs the item's callback for an activation.
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error

	ensureComponentID()
}

func newCustomID() string {
	return ulid.Make().String()
}

// Button is a clickable button.
type Button struct {
	Label    string
	Style    discordgo.ButtonStyle
	CustomID string
	Disabled bool
	OnClick  InteractionHandler
}

// ComponentType implements Item.
func (b *Button) ComponentType() discordgo.ComponentType {
	return discordgo.ButtonComponent
}

// ComponentID implements Item.
func (b *Button) ComponentID() string {
	return b.CustomID
}

// Component implements Item.
func (b *Button) Component() discordgo.MessageComponent {
	style := b.Style
	if style == 0 {
		style = discordgo.SecondaryButton
	}
	return discordgo.Button{
		Label:    b.Label,
		Style:    style,
		CustomID: b.CustomID,
		Disabled: b.Disabled,
	}
}

// Handle implements Item.
func (b *Button) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error {
	if b.OnClick == nil {
		return nil
	}
	return b.OnClick(s, i, r)
}

func (b *Button) ensureComponentID() {
	if b.CustomID == "" {
		b.CustomID = newCustomID()
	}
}

// SelectMenu is a string select menu.
type SelectMenu struct {
	Placeholder string
	CustomID    string
	Options     []discordgo.SelectMenuOption
	OnSelect    InteractionHandler
}

// ComponentType implements Item.
func (m *SelectMenu) ComponentType() discordgo.ComponentType {
	return discordgo.SelectMenuComponent
}

// ComponentID implements Item.
func (m *SelectMenu) ComponentID() string {
	return m.CustomID
}

// Component implements Item.
func (m *SelectMenu) Component() discordgo.MessageComponent {
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    m.CustomID,
		Placeholder: m.Placeholder,
		Options:     m.Options,
	}
}

// Handle implements Item.
func (m *SelectMenu) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error {
	if m.OnSelect == nil {
		return nil
	}
	return m.OnSelect(s, i, r)
}

func (m *SelectMenu) ensureComponentID() {
	if m.CustomID == "" {
		m.CustomID = newCustomID()
	}
}

// View is an ordered collection of items sent along with a reply.
type View struct {
	mu       sync.Mutex
	items    []Item
	timeout  time.Duration
	deadline time.Time
	finished bool
}

// NewView creates a View holding items with the default timeout.
func NewView(items ...Item) *View {
	v := &View{timeout: DefaultViewTimeout}
	for _, item := range items {
		v.Add(item)
	}
	return v
}

// Add appends an item, assigning it a custom id if it has none.
func (v *View) Add(item Item) *View {
	item.ensureComponentID()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.items = append(v.items, item)
	return v
}

// Items returns the view's items in insertion order.
func (v *View) Items() []Item {
	v.mu.Lock()
	defer v.mu.Unlock()
	items := make([]Item, len(v.items))
	copy(items, v.items)
	return items
}

// Item returns the item with the given custom id.
func (v *View) Item(customID string) (Item, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, item := range v.items {
		if item.ComponentID() == customID {
			return item, true
		}
	}
	return nil, false
}

// Timeout returns the inactivity timeout, zero meaning none.
func (v *View) Timeout() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.timeout
}

// HasTimeout reports whether the view expires.
func (v *View) HasTimeout() bool {
	return v.Timeout() > 0
}

// SetTimeout changes the inactivity timeout. Zero disables expiry.
func (v *View) SetTimeout(d time.Duration) *View {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.timeout = d
	return v
}

// WithoutTimeout disables expiry.
func (v *View) WithoutTimeout() *View {
	return v.SetTimeout(0)
}

// start arms the timeout relative to now.
func (v *View) start(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.timeout > 0 {
		v.deadline = now.Add(v.timeout)
	}
}

// touch extends the deadline after an activation.
func (v *View) touch(now time.Time) {
	v.start(now)
}

// Stop marks the view finished. Stored items stop receiving activations.
func (v *View) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.finished = true
}

// IsFinished reports whether the view was stopped.
func (v *View) IsFinished() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.finished
}

func (v *View) expired(now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.finished || (!v.deadline.IsZero() && now.After(v.deadline))
}

// Components lays the items out in action rows. Buttons share rows of up to five; a select menu
// takes a row of its own.
func (v *View) Components() []discordgo.MessageComponent {
	var (
		rows []discordgo.MessageComponent
		row  []discordgo.MessageComponent
	)
	flush := func() {
		if len(row) > 0 {
			rows = append(rows, discordgo.ActionsRow{Components: row})
			row = nil
		}
	}

	for _, item := range v.Items() {
		if item.ComponentType() != discordgo.ButtonComponent {
			flush()
			rows = append(rows, discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{item.Component()},
			})
			continue
		}
		if len(row) == maxButtonsPerRow {
			flush()
		}
		row = append(row, item.Component())
	}
	flush()

	return rows
}
