package accord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfer(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		kind     ArgumentKind
		optType  discordgo.ApplicationCommandOptionType
		wire     any
		accepted bool
	}{
		{"string", "hi", StringArgument, discordgo.ApplicationCommandOptionString, "hi", true},
		{"int", 3, IntegerArgument, discordgo.ApplicationCommandOptionInteger, float64(3), true},
		{"int64", int64(-7), IntegerArgument, discordgo.ApplicationCommandOptionInteger, float64(-7), true},
		{"uint8", uint8(9), IntegerArgument, discordgo.ApplicationCommandOptionInteger, float64(9), true},
		{"bool", true, BooleanArgument, discordgo.ApplicationCommandOptionBoolean, true, true},
		{"explicit", Integer(12), IntegerArgument, discordgo.ApplicationCommandOptionInteger, float64(12), true},
		{"float", 1.5, 0, 0, nil, false},
		{"nil", nil, 0, 0, nil, false},
		{"zero argument", Argument{}, 0, 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg, ok := Infer(tt.value)
			require.Equal(t, tt.accepted, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.kind, arg.Kind())
			assert.Equal(t, tt.optType, arg.OptionType())
			assert.Equal(t, tt.wire, arg.WireValue())
		})
	}
}

func TestInfer_BoolIsNotInteger(t *testing.T) {
	arg, ok := Infer(false)
	require.True(t, ok)
	assert.Equal(t, BooleanArgument, arg.Kind())
	assert.Equal(t, false, arg.WireValue())
}

func TestArgumentKind_String(t *testing.T) {
	assert.Equal(t, "string", StringArgument.String())
	assert.Equal(t, "integer", IntegerArgument.String())
	assert.Equal(t, "boolean", BooleanArgument.String())
	assert.Equal(t, "ArgumentKind(9)", ArgumentKind(9).String())
}
