package editor_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/editor"
	"github.com/goliatone/go-portfolio/projects"
)

func newEditor(t *testing.T) *editor.Editor {
	t.Helper()
	counter := 0
	return editor.New(editor.WithTempIDGenerator(func() string {
		counter++
		return fmt.Sprintf("%s%d", editor.TempIDPrefix, counter)
	}))
}

func addBlock(t *testing.T, e *editor.Editor, typ blocks.Type) blocks.Block {
	t.Helper()
	b, err := e.AddBlock(typ)
	if err != nil {
		t.Fatalf("add %s: %v", typ, err)
	}
	return b
}

func TestAddBlockSeedsDefaults(t *testing.T) {
	e := newEditor(t)

	heading := addBlock(t, e, blocks.TypeHeading)
	if heading.Level != blocks.LevelH3 {
		t.Fatalf("expected default heading level h3, got %q", heading.Level)
	}
	if !strings.HasPrefix(heading.ID, editor.TempIDPrefix) {
		t.Fatalf("expected temporary id, got %q", heading.ID)
	}

	img := addBlock(t, e, blocks.TypeImage)
	if img.Size != blocks.SizeLarge || img.ObjectFit != blocks.FitCover {
		t.Fatalf("expected large/cover image defaults, got %q/%q", img.Size, img.ObjectFit)
	}
	if img.ZoomLevel != blocks.DefaultZoomLevel || img.LensSize != blocks.DefaultLensSize || img.LensBorder != blocks.DefaultLensBorder {
		t.Fatalf("expected zoom defaults, got %v/%v/%v", img.ZoomLevel, img.LensSize, img.LensBorder)
	}

	list := addBlock(t, e, blocks.TypeList)
	if list.ItemsPT == nil || list.ItemsEN == nil {
		t.Fatal("expected empty item slices, not nil")
	}

	if _, err := e.AddBlock(blocks.Type("VIDEO")); !errors.Is(err, editor.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestUpdateBlockPinsIdentityAndType(t *testing.T) {
	e := newEditor(t)
	heading := addBlock(t, e, blocks.TypeHeading)

	update := blocks.Block{ID: "spoofed", Type: blocks.TypeDivider, TextPT: "Novo", Level: "h2"}
	if err := e.UpdateBlock(heading.ID, update); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := e.Blocks()[0]
	if got.ID != heading.ID || got.Type != blocks.TypeHeading {
		t.Fatalf("expected id and type pinned, got %q %q", got.ID, got.Type)
	}
	if got.TextPT != "Novo" || got.Level != "h2" {
		t.Fatalf("expected payload applied, got %+v", got)
	}

	if err := e.UpdateBlock("missing", update); !errors.Is(err, editor.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestDeleteBlock(t *testing.T) {
	e := newEditor(t)
	a := addBlock(t, e, blocks.TypeHeading)
	addBlock(t, e, blocks.TypeDivider)

	if err := e.DeleteBlock(a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	remaining := e.Blocks()
	if len(remaining) != 1 || remaining[0].Type != blocks.TypeDivider {
		t.Fatalf("expected only the divider left, got %+v", remaining)
	}
	if err := e.DeleteBlock(a.ID); !errors.Is(err, editor.ErrBlockNotFound) {
		t.Fatalf("expected ErrBlockNotFound, got %v", err)
	}
}

func TestMoveBlockShiftsNeighbors(t *testing.T) {
	e := newEditor(t)
	ids := make([]string, 0, 4)
	for _, text := range []string{"A", "B", "C", "D"} {
		b := addBlock(t, e, blocks.TypeHeading)
		if err := e.UpdateBlock(b.ID, blocks.Block{TextPT: text}); err != nil {
			t.Fatalf("seed %s: %v", text, err)
		}
		ids = append(ids, b.ID)
	}

	if err := e.MoveBlock(ids[0], 2); err != nil {
		t.Fatalf("move: %v", err)
	}

	var order []string
	for _, b := range e.Blocks() {
		order = append(order, b.TextPT)
	}
	want := []string{"B", "C", "A", "D"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, order)
		}
	}

	// Past-the-end targets clamp to the last slot.
	if err := e.MoveBlock(ids[1], 99); err != nil {
		t.Fatalf("clamped move: %v", err)
	}
	got := e.Blocks()
	if got[len(got)-1].TextPT != "B" {
		t.Fatalf("expected B clamped to the end, got %q", got[len(got)-1].TextPT)
	}
}

func TestMoveItemPure(t *testing.T) {
	in := []string{"a", "b", "c"}
	out := editor.MoveItem(append([]string(nil), in...), 2, 0)
	if out[0] != "c" || out[1] != "a" || out[2] != "b" {
		t.Fatalf("expected [c a b], got %v", out)
	}
	same := editor.MoveItem([]string{"x"}, 0, 0)
	if len(same) != 1 || same[0] != "x" {
		t.Fatalf("expected no-op, got %v", same)
	}
	unchanged := editor.MoveItem([]string{"x"}, 5, 0)
	if len(unchanged) != 1 {
		t.Fatalf("expected out-of-range from ignored, got %v", unchanged)
	}
}

func TestPrepareFiltersAndCounts(t *testing.T) {
	e := newEditor(t)

	complete := addBlock(t, e, blocks.TypeHeading)
	if err := e.UpdateBlock(complete.ID, blocks.Block{TextPT: "Contexto"}); err != nil {
		t.Fatalf("seed heading: %v", err)
	}
	// Empty paragraph stays in the session but is dropped from the save.
	addBlock(t, e, blocks.TypeParagraph)
	// Labeled button with a malformed URL counts toward the warning.
	badButton := addBlock(t, e, blocks.TypeButton)
	if err := e.UpdateBlock(badButton.ID, blocks.Block{TextPT: "Ver site", Href: "not a url"}); err != nil {
		t.Fatalf("seed button: %v", err)
	}
	// Schemeless URLs are autocompleted and survive.
	goodButton := addBlock(t, e, blocks.TypeButton)
	if err := e.UpdateBlock(goodButton.ID, blocks.Block{TextEN: "Visit", Href: "example.com/work"}); err != nil {
		t.Fatalf("seed good button: %v", err)
	}

	e.SetHeroMeta("pt", []projects.HeroMetaItem{
		{Label: "Cliente", Value: "Ecori"},
		{Label: "Ano", Value: " "},
	})

	sub := e.Prepare()

	if len(sub.Blocks) != 2 {
		t.Fatalf("expected heading and autocompleted button, got %d blocks", len(sub.Blocks))
	}
	if sub.Blocks[1].Href != "https://example.com/work" {
		t.Fatalf("expected autocompleted href, got %q", sub.Blocks[1].Href)
	}
	if sub.RemovedButtons != 1 {
		t.Fatalf("expected one removed button, got %d", sub.RemovedButtons)
	}
	if len(sub.HeroMetaPT) != 1 || sub.HeroMetaPT[0].Label != "Cliente" {
		t.Fatalf("expected hero meta filtered, got %+v", sub.HeroMetaPT)
	}
	for _, b := range sub.Blocks {
		if strings.HasPrefix(b.ID, editor.TempIDPrefix) {
			t.Fatalf("expected temp ids stripped, got %q", b.ID)
		}
	}
}

func TestCommitResyncsSession(t *testing.T) {
	e := newEditor(t)
	heading := addBlock(t, e, blocks.TypeHeading)
	if err := e.UpdateBlock(heading.ID, blocks.Block{TextPT: "Ok"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	addBlock(t, e, blocks.TypeParagraph) // incomplete, dropped on save

	sub := e.Prepare()
	e.Commit(sub)

	if len(e.Blocks()) != 1 {
		t.Fatalf("expected session resynced to the saved set, got %d blocks", len(e.Blocks()))
	}
	next := e.Prepare()
	if len(next.Blocks) != 1 || next.RemovedButtons != 0 {
		t.Fatalf("expected clean follow-up save, got %+v", next)
	}
}

func TestLoadFromProject(t *testing.T) {
	project := &projects.Project{
		Blocks: []blocks.Block{
			{ID: "11111111-1111-1111-1111-111111111111", Type: blocks.TypeHeading, TextPT: "Oi"},
		},
		HeroMetaPT: []projects.HeroMetaItem{{Label: "Cliente", Value: "Ecori"}},
	}

	e := editor.Load(project)
	if len(e.Blocks()) != 1 || e.Blocks()[0].TextPT != "Oi" {
		t.Fatalf("expected loaded blocks, got %+v", e.Blocks())
	}
	if len(e.HeroMeta("pt")) != 1 {
		t.Fatalf("expected loaded hero meta, got %+v", e.HeroMeta("pt"))
	}
}
