package editor

import (
	"strings"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/projects"
)

// Submission is the distilled result of a save: the blocks that survived
// validation, the cleaned hero metadata, and feedback counters for what was
// silently dropped.
type Submission struct {
	Blocks     []blocks.Block
	HeroMetaPT []projects.HeroMetaItem
	HeroMetaEN []projects.HeroMetaItem
	// RemovedButtons counts button blocks dropped because they carried a
	// label but a malformed URL. Surfaced to the author as a warning.
	RemovedButtons int
}

// Prepare validates the working set for saving. Incomplete blocks are
// partitioned out rather than failing the save: the author keeps a working
// draft even when half-filled blocks linger in the session. Button hrefs
// missing a scheme are autocompleted before validation.
func (e *Editor) Prepare() Submission {
	sub := Submission{
		HeroMetaPT: projects.FilterHeroMeta(e.heroMetaPT),
		HeroMetaEN: projects.FilterHeroMeta(e.heroMetaEN),
	}

	for _, b := range e.blocks {
		if b.Type == blocks.TypeButton {
			b.Href = blocks.AutoCompleteHref(b.Href)
		}
		if !b.Type.Known() || !b.Complete() {
			if droppedButtonWithLabel(b) {
				sub.RemovedButtons++
			}
			continue
		}
		if strings.HasPrefix(b.ID, TempIDPrefix) {
			b.ID = ""
		}
		sub.Blocks = append(sub.Blocks, b)
	}

	return sub
}

// Commit resynchronizes the session to what was actually persisted, so a
// follow-up save does not resubmit blocks the previous one dropped.
func (e *Editor) Commit(sub Submission) {
	e.blocks = append([]blocks.Block(nil), sub.Blocks...)
	e.heroMetaPT = append([]projects.HeroMetaItem(nil), sub.HeroMetaPT...)
	e.heroMetaEN = append([]projects.HeroMetaItem(nil), sub.HeroMetaEN...)
}

func droppedButtonWithLabel(b blocks.Block) bool {
	if b.Type != blocks.TypeButton {
		return false
	}
	hasLabel := strings.TrimSpace(b.TextPT) != "" ||
		strings.TrimSpace(b.TextEN) != "" ||
		strings.TrimSpace(b.Text) != ""
	return hasLabel && blocks.ValidateHref(b.Href) == blocks.HrefInvalid
}
