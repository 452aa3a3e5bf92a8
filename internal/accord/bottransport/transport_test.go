package bottransport

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sglre6355/accord/internal/bot"
)

type stubModule struct {
	handlers map[string]bot.InteractionHandler
	events   []bot.EventHandler
}

func (m *stubModule) Name() string { return "stub" }

func (m *stubModule) Commands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(m.handlers))
	for name := range m.handlers {
		cmds = append(cmds, &discordgo.ApplicationCommand{Name: name})
	}
	return cmds
}

func (m *stubModule) CommandHandlers() map[string]bot.InteractionHandler { return m.handlers }
func (m *stubModule) EventHandlers() []bot.EventHandler                  { return m.events }
func (m *stubModule) Init(bot.ModuleDependencies) error                  { return nil }
func (m *stubModule) Shutdown() error                                    { return nil }

func newTransport(t *testing.T, mod *stubModule) *Transport {
	t.Helper()

	tr, err := New(bot.WithModules(mod))
	require.NoError(t, err)
	require.NoError(t, tr.Setup(context.Background()))
	require.NoError(t, tr.RunSetupHook(context.Background()))
	return tr
}

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		ID:   "100",
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{Name: name},
	}}
}

func TestTransport_CommandsAndSync(t *testing.T) {
	mod := &stubModule{handlers: map[string]bot.InteractionHandler{
		"ping": func(*discordgo.Session, *discordgo.InteractionCreate, bot.Responder) error { return nil },
	}}
	tr := newTransport(t, mod)

	cmd, ok := tr.Command("ping")
	require.True(t, ok)
	assert.Equal(t, "ping", cmd.Name)

	_, ok = tr.Command("missing")
	assert.False(t, ok)

	_, synced := tr.Synced()
	require.Len(t, synced, 1)
	assert.Equal(t, "ping", synced[0].Name)

	assert.Equal(t, discordgo.IntentsAllWithoutPrivileged, tr.Intents())
	assert.Same(t, tr.Session(), tr.Bot().Session())
}

func TestTransport_ConnectLoadsState(t *testing.T) {
	tr := newTransport(t, &stubModule{})

	ready := &discordgo.Ready{
		SessionID: "1",
		User:      &discordgo.User{ID: "1", Username: "client"},
		Guilds: []*discordgo.Guild{{
			ID:       "10",
			Name:     "Home",
			Channels: []*discordgo.Channel{{ID: "11", GuildID: "10", Name: "general"}},
		}},
	}
	require.NoError(t, tr.Connect(ready))

	state := tr.Session().State
	assert.Equal(t, "client", state.User.Username)

	g, err := state.Guild("10")
	require.NoError(t, err)
	assert.Equal(t, "Home", g.Name)

	c, err := state.Channel("11")
	require.NoError(t, err)
	assert.Equal(t, "general", c.Name)

	require.NoError(t, tr.AddGuild(&discordgo.Guild{ID: "20", Name: "Second"}))
	g, err = state.Guild("20")
	require.NoError(t, err)
	assert.Equal(t, "Second", g.Name)
}

func TestTransport_DispatchReady(t *testing.T) {
	var got string
	mod := &stubModule{events: []bot.EventHandler{
		func(_ *discordgo.Session, r *discordgo.Ready) { got = r.User.ID },
	}}
	tr := newTransport(t, mod)

	err := tr.DispatchReady(context.Background(), &discordgo.Ready{User: &discordgo.User{ID: "7"}})
	require.NoError(t, err)
	assert.Equal(t, "7", got)
}

func TestTransport_SubmitInteraction(t *testing.T) {
	mod := &stubModule{handlers: map[string]bot.InteractionHandler{
		"ping": func(_ *discordgo.Session, _ *discordgo.InteractionCreate, r bot.Responder) error {
			return r.SendReply(bot.Reply{Content: "pong"})
		},
	}}
	tr := newTransport(t, mod)

	r := &bot.MockResponder{}
	require.NoError(t, tr.SubmitInteraction(context.Background(), commandInteraction("ping"), r))
	require.NotNil(t, r.LastReply())
	assert.Equal(t, "pong", r.LastReply().Content)
}

func TestTransport_SubmitInteraction_Panic(t *testing.T) {
	mod := &stubModule{handlers: map[string]bot.InteractionHandler{
		"boom": func(*discordgo.Session, *discordgo.InteractionCreate, bot.Responder) error {
			panic("boom")
		},
	}}
	tr := newTransport(t, mod)

	err := tr.SubmitInteraction(context.Background(), commandInteraction("boom"), &bot.MockResponder{})
	assert.ErrorIs(t, err, bot.ErrHandlerPanic)
}

func TestTransport_SubmitInteraction_ContextDone(t *testing.T) {
	release := make(chan struct{})
	mod := &stubModule{handlers: map[string]bot.InteractionHandler{
		"slow": func(*discordgo.Session, *discordgo.InteractionCreate, bot.Responder) error {
			<-release
			return nil
		},
	}}
	tr := newTransport(t, mod)
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := tr.SubmitInteraction(ctx, commandInteraction("slow"), &bot.MockResponder{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTransport_StoredViewRoundTrip(t *testing.T) {
	tr := newTransport(t, &stubModule{})

	clicked := false
	button := &bot.Button{
		Label: "go",
		OnClick: func(*discordgo.Session, *discordgo.InteractionCreate, bot.Responder) error {
			clicked = true
			return nil
		},
	}
	tr.StoreView(bot.NewView(button), "100")

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionMessageComponent,
		Message: &discordgo.Message{Interaction: &discordgo.MessageInteraction{ID: "100"}},
	}}
	err := tr.DispatchView(context.Background(), discordgo.ButtonComponent, button.CustomID, i, &bot.MockResponder{})
	require.NoError(t, err)
	assert.True(t, clicked)
}

func TestTransport_StoredModalRoundTrip(t *testing.T) {
	tr := newTransport(t, &stubModule{})

	var submitted string
	modal := bot.NewModal("Form", &bot.TextInput{Name: "answer", CustomID: "answer"})
	modal.OnSubmit = func(_ *discordgo.Session, _ *discordgo.InteractionCreate, _ bot.Responder, m *bot.Modal) error {
		field, _ := m.Field("answer")
		submitted = field.Value()
		return nil
	}
	tr.StoreModal(modal, "5")

	i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:   discordgo.InteractionModalSubmit,
		Member: &discordgo.Member{User: &discordgo.User{ID: "5"}},
	}}
	components := []discordgo.MessageComponent{
		&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			&discordgo.TextInput{CustomID: "answer", Value: "42"},
		}},
	}
	err := tr.DispatchModal(context.Background(), modal.CustomID, i, &bot.MockResponder{}, components)
	require.NoError(t, err)
	assert.Equal(t, "42", submitted)
}

func TestTransport_Closed(t *testing.T) {
	tr := newTransport(t, &stubModule{})
	require.NoError(t, tr.Close())

	err := tr.DispatchReady(context.Background(), &discordgo.Ready{})
	assert.ErrorIs(t, err, ErrClosed)
}
