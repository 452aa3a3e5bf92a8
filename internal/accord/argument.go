package accord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ArgumentKind tags the value an Argument holds.
type ArgumentKind int

const (
	StringArgument ArgumentKind = iota + 1
	IntegerArgument
	BooleanArgument
)

func (k ArgumentKind) String() string {
	switch k {
	case StringArgument:
		return "string"
	case IntegerArgument:
		return "integer"
	case BooleanArgument:
		return "boolean"
	}
	return fmt.Sprintf("ArgumentKind(%d)", int(k))
}

// Argument is a slash command option value.
type Argument struct {
	kind ArgumentKind
	str  string
	num  int64
	flag bool
}

// String creates a string argument.
func String(v string) Argument {
	return Argument{kind: StringArgument, str: v}
}

// Integer creates an integer argument.
func Integer(v int64) Argument {
	return Argument{kind: IntegerArgument, num: v}
}

// Boolean creates a boolean argument.
func Boolean(v bool) Argument {
	return Argument{kind: BooleanArgument, flag: v}
}

// Kind returns the argument's tag.
func (a Argument) Kind() ArgumentKind {
	return a.kind
}

// OptionType returns the wire option type code for the argument.
func (a Argument) OptionType() discordgo.ApplicationCommandOptionType {
	switch a.kind {
	case IntegerArgument:
		return discordgo.ApplicationCommandOptionInteger
	case BooleanArgument:
		return discordgo.ApplicationCommandOptionBoolean
	default:
		return discordgo.ApplicationCommandOptionString
	}
}

// WireValue returns the value as a decoded gateway payload carries it. Integers arrive as JSON
// numbers, which decode to float64.
func (a Argument) WireValue() any {
	switch a.kind {
	case IntegerArgument:
		return float64(a.num)
	case BooleanArgument:
		return a.flag
	default:
		return a.str
	}
}

// Infer converts a native value into an Argument. bool is matched on its own so it is never
// mistaken for an integer.
func Infer(v any) (Argument, bool) {
	switch x := v.(type) {
	case Argument:
		return x, x.kind != 0
	case string:
		return String(x), true
	case bool:
		return Boolean(x), true
	case int:
		return Integer(int64(x)), true
	case int8:
		return Integer(int64(x)), true
	case int16:
		return Integer(int64(x)), true
	case int32:
		return Integer(int64(x)), true
	case int64:
		return Integer(x), true
	case uint:
		return Integer(int64(x)), true
	case uint8:
		return Integer(int64(x)), true
	case uint16:
		return Integer(int64(x)), true
	case uint32:
		return Integer(int64(x)), true
	}
	return Argument{}, false
}
