// Package editor models the admin-side editing session for a project's
// content: an ordered working set of blocks plus the hero metadata lists.
// The session is mutated in place and distilled into a Submission when the
// author saves; persistence is the caller's concern.
package editor

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/projects"
)

var (
	ErrBlockNotFound = errors.New("editor: block not found")
	ErrUnknownType   = errors.New("editor: unknown block type")
)

// TempIDPrefix marks client-side identifiers for blocks that have never
// been persisted. They are stripped before the rows are written.
const TempIDPrefix = "temp-"

// Editor is one editing session. It is not safe for concurrent use.
type Editor struct {
	blocks     []blocks.Block
	heroMetaPT []projects.HeroMetaItem
	heroMetaEN []projects.HeroMetaItem

	id func() string
}

// Option configures the editor at construction time.
type Option func(*Editor)

// WithTempIDGenerator overrides temporary id generation, mainly for tests.
func WithTempIDGenerator(generator func() string) Option {
	return func(e *Editor) {
		if generator != nil {
			e.id = generator
		}
	}
}

// New starts an empty session.
func New(opts ...Option) *Editor {
	e := &Editor{
		id: func() string { return TempIDPrefix + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load starts a session from a persisted project aggregate.
func Load(project *projects.Project, opts ...Option) *Editor {
	e := New(opts...)
	if project == nil {
		return e
	}
	e.blocks = append(e.blocks, project.Blocks...)
	e.heroMetaPT = append(e.heroMetaPT, project.HeroMetaPT...)
	e.heroMetaEN = append(e.heroMetaEN, project.HeroMetaEN...)
	return e
}

// Blocks returns the working set in order.
func (e *Editor) Blocks() []blocks.Block {
	return append([]blocks.Block(nil), e.blocks...)
}

// AddBlock appends a new block of the given variant seeded with its editor
// defaults and a temporary id, and returns it.
func (e *Editor) AddBlock(t blocks.Type) (blocks.Block, error) {
	if !t.Known() {
		return blocks.Block{}, ErrUnknownType
	}
	b := blocks.New(t)
	b.ID = e.id()
	e.blocks = append(e.blocks, b)
	return b, nil
}

// UpdateBlock replaces the block with the matching id, keeping its position.
// The incoming block's id and type are pinned to the stored ones.
func (e *Editor) UpdateBlock(id string, updated blocks.Block) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return ErrBlockNotFound
	}
	updated.ID = e.blocks[idx].ID
	updated.Type = e.blocks[idx].Type
	e.blocks[idx] = updated
	return nil
}

// DeleteBlock removes the block with the matching id.
func (e *Editor) DeleteBlock(id string) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return ErrBlockNotFound
	}
	e.blocks = append(e.blocks[:idx], e.blocks[idx+1:]...)
	return nil
}

// MoveBlock moves the block with the matching id to the target position,
// shifting everything between. Targets past either end clamp.
func (e *Editor) MoveBlock(id string, to int) error {
	idx := e.indexOf(id)
	if idx < 0 {
		return ErrBlockNotFound
	}
	e.blocks = MoveItem(e.blocks, idx, to)
	return nil
}

func (e *Editor) indexOf(id string) int {
	for i, b := range e.blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// HeroMeta returns the hero metadata list for the locale tag, "pt" or "en".
func (e *Editor) HeroMeta(locale string) []projects.HeroMetaItem {
	return append([]projects.HeroMetaItem(nil), *e.heroMeta(locale)...)
}

// SetHeroMeta replaces the hero metadata list for the locale tag.
func (e *Editor) SetHeroMeta(locale string, items []projects.HeroMetaItem) {
	*e.heroMeta(locale) = append([]projects.HeroMetaItem(nil), items...)
}

// AddHeroMeta appends an empty pair the author fills in.
func (e *Editor) AddHeroMeta(locale string) {
	list := e.heroMeta(locale)
	*list = append(*list, projects.HeroMetaItem{})
}

func (e *Editor) heroMeta(locale string) *[]projects.HeroMetaItem {
	if strings.EqualFold(strings.TrimSpace(locale), "en") {
		return &e.heroMetaEN
	}
	return &e.heroMetaPT
}

// MoveItem returns the slice with the element at from moved to to, all other
// elements keeping their relative order. Out-of-range targets clamp; no-op
// moves return the slice unchanged.
func MoveItem[T any](list []T, from, to int) []T {
	if from < 0 || from >= len(list) {
		return list
	}
	if to < 0 {
		to = 0
	}
	if to >= len(list) {
		to = len(list) - 1
	}
	if from == to {
		return list
	}

	item := list[from]
	list = append(list[:from], list[from+1:]...)

	out := make([]T, 0, len(list)+1)
	out = append(out, list[:to]...)
	out = append(out, item)
	out = append(out, list[to:]...)
	return out
}
