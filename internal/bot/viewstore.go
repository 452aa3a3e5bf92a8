package bot

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
)

type viewKey struct {
	entityID      string
	componentType discordgo.ComponentType
	customID      string
}

type modalKey struct {
	userID   string
	customID string
}

type storedItem struct {
	view *View
	item Item
}

// ViewStore tracks live views and modals so component and modal interactions can be routed back to
// the callbacks that declared them.
//
// Views are keyed by the id of the interaction whose reply carried them. Views stored without an
// entity id match any message.
type ViewStore struct {
	mu     sync.Mutex
	items  map[viewKey]storedItem
	modals map[modalKey]*Modal
	now    func() time.Time
}

// NewViewStore creates an empty ViewStore.
func NewViewStore() *ViewStore {
	return &ViewStore{
		items:  make(map[viewKey]storedItem),
		modals: make(map[modalKey]*Modal),
		now:    time.Now,
	}
}

// AddView stores every item of v under entityID and arms the view's timeout.
func (s *ViewStore) AddView(v *View, entityID string) {
	v.start(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range v.Items() {
		key := viewKey{entityID: entityID, componentType: item.ComponentType(), customID: item.ComponentID()}
		s.items[key] = storedItem{view: v, item: item}
	}
}

// AddModal stores m for submissions by userID.
func (s *ViewStore) AddModal(m *Modal, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modals[modalKey{userID: userID, customID: m.CustomID}] = m
}

// ViewCount returns the number of stored items.
func (s *ViewStore) ViewCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ModalCount returns the number of stored modals.
func (s *ViewStore) ModalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.modals)
}

// DispatchView runs the callback of the item identified by componentType and customID.
func (s *ViewStore) DispatchView(
	session *discordgo.Session,
	componentType discordgo.ComponentType,
	customID string,
	i *discordgo.InteractionCreate,
	r Responder,
) error {
	stored, ok := s.lookupItem(messageInteractionID(i), componentType, customID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, customID)
	}

	now := s.now()
	if stored.view.expired(now) {
		s.removeView(stored.view)
		return fmt.Errorf("%w: %s", ErrViewExpired, customID)
	}
	stored.view.touch(now)

	slog.Debug("dispatching component", "custom_id", customID, "type", componentType)
	return safeCall(func() error {
		return stored.item.Handle(session, i, r)
	})
}

// DispatchModal refreshes the modal identified by customID from the submitted components and runs
// its submit handler. A modal is removed once its handler succeeds.
func (s *ViewStore) DispatchModal(
	session *discordgo.Session,
	customID string,
	i *discordgo.InteractionCreate,
	r Responder,
	components []discordgo.MessageComponent,
) error {
	key := modalKey{userID: interactionUserID(i), customID: customID}

	s.mu.Lock()
	m, ok := s.modals[key]
	s.mu.Unlock()
	if !ok || m.IsFinished() {
		return fmt.Errorf("%w: %s", ErrModalNotFound, customID)
	}

	m.refresh(components)

	slog.Debug("dispatching modal", "custom_id", customID)
	if m.OnSubmit != nil {
		if err := safeCall(func() error { return m.OnSubmit(session, i, r, m) }); err != nil {
			return err
		}
	}

	m.Stop()
	s.mu.Lock()
	delete(s.modals, key)
	s.mu.Unlock()

	return nil
}

func (s *ViewStore) lookupItem(entityID string, componentType discordgo.ComponentType, customID string) (storedItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stored, ok := s.items[viewKey{entityID: entityID, componentType: componentType, customID: customID}]; ok {
		return stored, true
	}
	stored, ok := s.items[viewKey{componentType: componentType, customID: customID}]
	return stored, ok
}

func (s *ViewStore) removeView(v *View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, stored := range s.items {
		if stored.view == v {
			delete(s.items, key)
		}
	}
}

// messageInteractionID returns the id of the interaction that produced the message a component
// belongs to.
func messageInteractionID(i *discordgo.InteractionCreate) string {
	if i.Message != nil && i.Message.Interaction != nil {
		return i.Message.Interaction.ID
	}
	return ""
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
