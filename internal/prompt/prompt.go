// Package prompt assembles the text prompts sent to the image generator.
package prompt

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/samber/lo"
)

// SubjectType is the catalogue a prompt subject is drawn from.
type SubjectType string

const (
	Creature SubjectType = "creature"
	Item     SubjectType = "item"
	Scene    SubjectType = "scene"
)

var subjectTypes = []SubjectType{Creature, Item, Scene}

// Next is the rotation creature -> item -> scene -> creature.
func (t SubjectType) Next() SubjectType {
	switch t {
	case Creature:
		return Item
	case Item:
		return Scene
	default:
		return Creature
	}
}

func (t SubjectType) catalogue() []string {
	switch t {
	case Item:
		return Items
	case Scene:
		return Scenery
	default:
		return Creatures
	}
}

// MaxSeed bounds the generator seed: seeds are drawn from [0, MaxSeed).
const MaxSeed = 1_000_000

// subjectRerolls bounds how often Next redraws a subject already used on
// the current board.
const subjectRerolls = 8

const suffix = "pure white background, single illustration, clean edges, no text, centered composition, isolated artwork"

// Request is one fully assembled image request.
type Request struct {
	Prompt  string      `json:"prompt"`
	Style   string      `json:"style"`
	Subject string      `json:"subject"`
	Type    SubjectType `json:"type"`
	Seed    int         `json:"seed"`
}

// Text formats the prompt for a subject and style.
func Text(subject, style string) string {
	return fmt.Sprintf("%s, %s, %s", subject, style, suffix)
}

// PickStyle chooses uniformly among the styles not recently used. When
// every style is excluded the whole list is eligible again.
func PickStyle(recent []string, intn func(int) int) string {
	available := lo.Reject(Styles, func(s string, _ int) bool {
		return slices.Contains(recent, s)
	})
	if len(available) == 0 {
		available = Styles
	}
	return available[intn(len(available))]
}

// Builder tracks subject-type rotation for one player. It is not safe for
// concurrent use; the owning controller serialises access.
type Builder struct {
	last SubjectType
	intn func(int) int
	seen *bloom.BloomFilter
}

// NewBuilder returns a builder backed by the global random source.
func NewBuilder() *Builder {
	return NewBuilderWithRand(rand.IntN)
}

// NewBuilderWithRand lets tests inject a deterministic source.
func NewBuilderWithRand(intn func(int) int) *Builder {
	return &Builder{intn: intn, seen: newSeenFilter()}
}

func newSeenFilter() *bloom.BloomFilter {
	return bloom.NewWithEstimates(1000, 0.001)
}

// Intn exposes the builder's random source.
func (b *Builder) Intn(n int) int {
	return b.intn(n)
}

// LastType is the subject type of the most recent request, empty after Reset.
func (b *Builder) LastType() SubjectType {
	return b.last
}

// Reset forgets the rotation and the subjects already used, so the next
// subject type is random again.
func (b *Builder) Reset() {
	b.last = ""
	b.seen = newSeenFilter()
}

// Used reports whether subject was probably drawn since the last Reset.
func (b *Builder) Used(subject string) bool {
	return b.seen.TestString(subject)
}

// Next assembles the next request in the given style and advances the
// subject-type rotation.
func (b *Builder) Next(style string) Request {
	t := b.last.Next()
	if b.last == "" {
		t = subjectTypes[b.intn(len(subjectTypes))]
	}
	b.last = t

	cat := t.catalogue()
	subject := cat[b.intn(len(cat))]
	for i := 0; i < subjectRerolls && b.seen.TestString(subject); i++ {
		subject = cat[b.intn(len(cat))]
	}
	b.seen.AddString(subject)
	return Request{
		Prompt:  Text(subject, style),
		Style:   style,
		Subject: subject,
		Type:    t,
		Seed:    b.intn(MaxSeed),
	}
}
