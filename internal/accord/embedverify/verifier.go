// Package embedverify matches embeds against declarative expectations.
//
// Every string pattern is a regular expression anchored at the start of the value only. An
// attribute can be left unconfigured, required to match a pattern, or required to be absent.
// MatchesConfigured ignores unconfigured attributes while MatchesFully requires them to be
// absent.
package embedverify

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"
)

type presence int

const (
	presenceUnset presence = iota
	presenceRequired
	presenceForbidden
)

// AuthorPattern describes an expected embed author. Empty patterns are not checked.
type AuthorPattern struct {
	Name    string
	URL     string
	IconURL string
}

// FooterPattern describes an expected embed footer. Empty patterns are not checked.
type FooterPattern struct {
	Text    string
	IconURL string
}

// FieldPattern describes an expected embed field. Empty patterns match any value and an absent
// Inline matches either layout.
type FieldPattern struct {
	Name   string
	Value  string
	Inline mo.Option[bool]
}

func (p FieldPattern) String() string {
	s := fmt.Sprintf("{name: '%s', value: '%s'", orAll(p.Name), orAll(p.Value))
	if inline, ok := p.Inline.Get(); ok {
		s += ", inline: " + strconv.FormatBool(inline)
	}
	return s + "}"
}

func orAll(p string) string {
	if p == "" {
		return matchAll
	}
	return p
}

type settings struct {
	title       *mo.Option[string]
	description *mo.Option[string]
	url         *mo.Option[string]
	color       mo.Option[int]

	author        *AuthorPattern
	authorPresent bool
	noAuthor      bool

	footer        *FooterPattern
	footerPresent bool
	noFooter      bool

	fields        []FieldPattern
	fieldsInOrder bool
	fieldCount    mo.Option[int]
}

// Option configures a Verifier.
type Option func(*settings)

func some(p string) *mo.Option[string] {
	o := mo.Some(p)
	return &o
}

func none() *mo.Option[string] {
	o := mo.None[string]()
	return &o
}

// Title requires the title to match pattern.
func Title(pattern string) Option {
	return func(s *settings) { s.title = some(pattern) }
}

// NoTitle requires the embed to have no title.
func NoTitle() Option {
	return func(s *settings) { s.title = none() }
}

// Description requires the description to match pattern.
func Description(pattern string) Option {
	return func(s *settings) { s.description = some(pattern) }
}

// NoDescription requires the embed to have no description.
func NoDescription() Option {
	return func(s *settings) { s.description = none() }
}

// URL requires the embed url to match pattern.
func URL(pattern string) Option {
	return func(s *settings) { s.url = some(pattern) }
}

// Color requires the embed color to equal color.
func Color(color int) Option {
	return func(s *settings) { s.color = mo.Some(color) }
}

// Author requires an author whose configured parts match p.
func Author(p AuthorPattern) Option {
	return func(s *settings) { s.author = &p }
}

// AuthorPresent requires an author with any content.
func AuthorPresent() Option {
	return func(s *settings) { s.authorPresent = true }
}

// NoAuthor requires the embed to have no author.
func NoAuthor() Option {
	return func(s *settings) { s.noAuthor = true }
}

// Footer requires a footer whose configured parts match p.
func Footer(p FooterPattern) Option {
	return func(s *settings) { s.footer = &p }
}

// FooterPresent requires a footer with any content.
func FooterPresent() Option {
	return func(s *settings) { s.footerPresent = true }
}

// NoFooter requires the embed to have no footer.
func NoFooter() Option {
	return func(s *settings) { s.noFooter = true }
}

// Field adds an expected field. It may be given several times.
func Field(p FieldPattern) Option {
	return func(s *settings) { s.fields = append(s.fields, p) }
}

// FieldsInOrder matches expected fields against actual fields position by position.
func FieldsInOrder() Option {
	return func(s *settings) { s.fieldsInOrder = true }
}

// FieldCount requires exactly n fields.
func FieldCount(n int) Option {
	return func(s *settings) { s.fieldCount = mo.Some(n) }
}

type part struct {
	presence presence
	patterns map[string]*text
}

type fieldMatcher struct {
	pattern FieldPattern
	name    *text
	value   *text
}

func (m fieldMatcher) match(f *discordgo.MessageEmbedField) bool {
	if !m.name.match(optional(f.Name)) || !m.value.match(optional(f.Value)) {
		return false
	}
	if inline, ok := m.pattern.Inline.Get(); ok && inline != f.Inline {
		return false
	}
	return true
}

// Verifier holds compiled expectations. It is immutable once built and safe for concurrent use.
type Verifier struct {
	title       *text
	description *text
	url         *text
	color       mo.Option[int]

	author part
	footer part

	fields        []fieldMatcher
	fieldsInOrder bool
	fieldCount    mo.Option[int]
}

// New compiles the given expectations.
func New(opts ...Option) (*Verifier, error) {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	if s.noAuthor && (s.author != nil || s.authorPresent) {
		return nil, fmt.Errorf("%w: NoAuthor with Author or AuthorPresent", ErrConflictingOptions)
	}
	if s.noFooter && (s.footer != nil || s.footerPresent) {
		return nil, fmt.Errorf("%w: NoFooter with Footer or FooterPresent", ErrConflictingOptions)
	}

	v := &Verifier{
		color:         s.color,
		fieldsInOrder: s.fieldsInOrder,
		fieldCount:    s.fieldCount,
	}

	var err error
	if v.title, err = compileOptional(s.title); err != nil {
		return nil, err
	}
	if v.description, err = compileOptional(s.description); err != nil {
		return nil, err
	}
	if v.url, err = compileOptional(s.url); err != nil {
		return nil, err
	}

	v.author, err = compilePart(s.noAuthor, s.authorPresent, s.author != nil, func() map[string]string {
		return map[string]string{"name": s.author.Name, "url": s.author.URL, "icon_url": s.author.IconURL}
	})
	if err != nil {
		return nil, err
	}
	v.footer, err = compilePart(s.noFooter, s.footerPresent, s.footer != nil, func() map[string]string {
		return map[string]string{"text": s.footer.Text, "icon_url": s.footer.IconURL}
	})
	if err != nil {
		return nil, err
	}

	for _, p := range s.fields {
		name, err := compileText(mo.Some(orAll(p.Name)))
		if err != nil {
			return nil, err
		}
		value, err := compileText(mo.Some(orAll(p.Value)))
		if err != nil {
			return nil, err
		}
		v.fields = append(v.fields, fieldMatcher{pattern: p, name: name, value: value})
	}

	return v, nil
}

func compileOptional(p *mo.Option[string]) (*text, error) {
	if p == nil {
		return nil, nil
	}
	return compileText(*p)
}

func compilePart(forbidden, present, patterned bool, patterns func() map[string]string) (part, error) {
	switch {
	case forbidden:
		return part{presence: presenceForbidden}, nil
	case !present && !patterned:
		return part{presence: presenceUnset}, nil
	}

	p := part{presence: presenceRequired}
	if !patterned {
		return p, nil
	}

	p.patterns = make(map[string]*text)
	for key, pattern := range patterns() {
		if pattern == "" {
			continue
		}
		t, err := compileText(mo.Some(pattern))
		if err != nil {
			return part{}, err
		}
		p.patterns[key] = t
	}
	return p, nil
}

// MatchesConfigured checks the configured expectations and ignores everything else.
func (v *Verifier) MatchesConfigured(embed *discordgo.MessageEmbed) error {
	return v.matches(embed, false)
}

// MatchesFully checks the configured expectations and requires every unconfigured attribute to
// be absent.
func (v *Verifier) MatchesFully(embed *discordgo.MessageEmbed) error {
	return v.matches(embed, true)
}

func (v *Verifier) matches(embed *discordgo.MessageEmbed, fully bool) error {
	if embed == nil {
		return ErrNoEmbed
	}

	scalars := []struct {
		name   string
		t      *text
		actual string
	}{
		{"title", v.title, embed.Title},
		{"description", v.description, embed.Description},
		{"url", v.url, embed.URL},
	}
	for _, s := range scalars {
		if err := check(s.name, s.t.orDefault(fully), optional(s.actual)); err != nil {
			return err
		}
	}

	if err := v.matchColor(embed.Color, fully); err != nil {
		return err
	}

	var author map[string]string
	if a := embed.Author; a != nil {
		author = map[string]string{"name": a.Name, "url": a.URL, "icon_url": a.IconURL}
	}
	if err := v.author.match("author", author, fully); err != nil {
		return err
	}

	var footer map[string]string
	if f := embed.Footer; f != nil {
		footer = map[string]string{"text": f.Text, "icon_url": f.IconURL}
	}
	if err := v.footer.match("footer", footer, fully); err != nil {
		return err
	}

	return v.matchFields(embed.Fields, fully)
}

func (v *Verifier) matchColor(actual int, fully bool) error {
	expected, ok := v.color.Get()
	if !ok {
		if !fully || actual == 0 {
			return nil
		}
		return &MismatchError{Field: "color", Pattern: absentDisplay, Actual: strconv.Itoa(actual)}
	}
	if actual != expected {
		return &MismatchError{Field: "color", Pattern: strconv.Itoa(expected), Actual: strconv.Itoa(actual)}
	}
	return nil
}

// match checks an author or footer given as its attribute map, nil when the embed has none.
func (p part) match(name string, actual map[string]string, fully bool) error {
	exists := false
	for _, v := range actual {
		if v != "" {
			exists = true
			break
		}
	}

	switch p.presence {
	case presenceForbidden:
		if exists {
			return &MismatchError{Field: name, Pattern: absentDisplay, Actual: describe(actual)}
		}
		return nil
	case presenceUnset:
		if fully && exists {
			return &MismatchError{Field: name, Pattern: absentDisplay, Actual: describe(actual)}
		}
		return nil
	}

	if !exists {
		return &MismatchError{Field: name, Pattern: presentDisplay, Actual: absentDisplay}
	}

	for _, key := range sortedKeys(actual) {
		t, ok := p.patterns[key]
		switch {
		case ok:
		case fully && p.patterns != nil:
			t = absentText
		default:
			continue
		}
		if err := check(name+"."+key, t, optional(actual[key])); err != nil {
			return err
		}
	}
	return nil
}

func (v *Verifier) matchFields(actual []*discordgo.MessageEmbedField, fully bool) error {
	if n, ok := v.fieldCount.Get(); ok && len(actual) != n {
		return &MismatchError{
			Field:   "fields",
			Pattern: plural(n, "field", "fields"),
			Actual:  plural(len(actual), "field", "fields"),
		}
	}

	if v.fieldsInOrder {
		for i, m := range v.fields {
			if i >= len(actual) {
				return &FieldMismatchError{Pattern: m.pattern.String(), Candidates: len(actual)}
			}
			if !m.match(actual[i]) {
				return &MismatchError{
					Field:   fmt.Sprintf("fields[%d]", i),
					Pattern: m.pattern.String(),
					Actual:  describeField(actual[i]),
				}
			}
		}
	} else {
		consumed := make([]bool, len(actual))
		for _, m := range v.fields {
			var skipped []string
			found := false
			for j, f := range actual {
				if !m.match(f) {
					continue
				}
				if consumed[j] {
					skipped = append(skipped, f.Name)
					continue
				}
				consumed[j] = true
				found = true
				break
			}
			if !found {
				return &FieldMismatchError{Pattern: m.pattern.String(), Candidates: len(actual), Skipped: skipped}
			}
		}
	}

	if fully && v.fieldCount.IsAbsent() && len(actual) != len(v.fields) {
		return &MismatchError{
			Field:   "fields",
			Pattern: plural(len(v.fields), "field", "fields"),
			Actual:  plural(len(actual), "field", "fields"),
		}
	}
	return nil
}

func describe(attrs map[string]string) string {
	parts := make([]string, 0, len(attrs))
	for _, key := range sortedKeys(attrs) {
		if attrs[key] != "" {
			parts = append(parts, fmt.Sprintf("%s: '%s'", key, attrs[key]))
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func describeField(f *discordgo.MessageEmbedField) string {
	return fmt.Sprintf("{name: '%s', value: '%s', inline: %t}", f.Name, f.Value, f.Inline)
}
