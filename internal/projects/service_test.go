package projects_test

import (
	"context"
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/domain"
	internal "github.com/goliatone/go-portfolio/internal/projects"
	"github.com/goliatone/go-portfolio/projects"
)

func newService(t *testing.T, opts ...internal.ServiceOption) (projects.Service, *internal.MemoryRepository) {
	t.Helper()
	repo := internal.NewMemoryRepository()
	return internal.NewService(repo, opts...), repo
}

func strPtr(s string) *string { return &s }

func TestServiceCreateDefaults(t *testing.T) {
	svc, _ := newService(t, internal.WithClock(func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}))

	created, err := svc.Create(context.Background(), projects.CreateProjectRequest{
		TitlePT: "Redesign do Aplicativo Ecori",
		TitleEN: "Ecori App Redesign",
		HeroMetaPT: []projects.HeroMetaItem{
			{Label: "Cliente", Value: "Ecori"},
			{Label: "Ano", Value: ""},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.Slug != "redesign-do-aplicativo-ecori" {
		t.Fatalf("expected derived slug, got %q", created.Slug)
	}
	if created.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %q", created.Status)
	}
	if len(created.HeroMetaPT) != 1 || created.HeroMetaPT[0].Label != "Cliente" {
		t.Fatalf("expected hero meta filtered to filled pairs, got %+v", created.HeroMetaPT)
	}
	if created.HeroBackLabelPT == nil || *created.HeroBackLabelPT != projects.DefaultHeroBackLabelPT {
		t.Fatalf("expected default PT back label, got %v", created.HeroBackLabelPT)
	}
	if created.HeroBackLabelEN == nil || *created.HeroBackLabelEN != projects.DefaultHeroBackLabelEN {
		t.Fatalf("expected default EN back label, got %v", created.HeroBackLabelEN)
	}
	if len(created.Blocks) != 0 {
		t.Fatalf("expected no blocks on create, got %d", len(created.Blocks))
	}
}

func TestServiceCreateSlugDiacritics(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), projects.CreateProjectRequest{
		TitlePT: "Identidade Visual: Café São João!",
		TitleEN: "Visual Identity",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "identidade-visual-cafe-sao-joao" {
		t.Fatalf("expected normalized slug, got %q", created.Slug)
	}
}

func TestServiceCreateSlugCollision(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Projeto", TitleEN: "Project"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Projeto", TitleEN: "Project"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	third, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Projeto", TitleEN: "Project"})
	if err != nil {
		t.Fatalf("create third: %v", err)
	}

	if first.Slug != "projeto" {
		t.Fatalf("expected first slug to win the base, got %q", first.Slug)
	}
	if second.Slug != "projeto-1" {
		t.Fatalf("expected -1 suffix, got %q", second.Slug)
	}
	if third.Slug != "projeto-2" {
		t.Fatalf("expected -2 suffix, got %q", third.Slug)
	}
}

func TestServiceCreateRequiresBothTitles(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), projects.CreateProjectRequest{TitlePT: "Só PT"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %T", err)
	}
	if _, ok := errs["titleEn"]; !ok {
		t.Fatalf("expected titleEn failure, got %v", errs)
	}
}

func TestServiceReplaceBlocks(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Projeto", TitleEN: "Project"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list := []blocks.Block{
		{Type: blocks.TypeHeading, Level: "h2", TextPT: "Contexto", TextEN: "Context"},
		{Type: blocks.TypeParagraph, HTMLPT: "<p>Oi</p>"},
		{Type: blocks.TypeDivider},
	}
	updated, err := svc.Replace(ctx, projects.ReplaceProjectRequest{
		ID:     created.ID,
		Blocks: &list,
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	if len(updated.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(updated.Blocks))
	}
	for i, b := range updated.Blocks {
		if b.ID == "" {
			t.Fatalf("expected persisted id for block %d", i)
		}
	}
	if updated.Blocks[0].Type != blocks.TypeHeading || updated.Blocks[2].Type != blocks.TypeDivider {
		t.Fatalf("expected block order preserved, got %v then %v", updated.Blocks[0].Type, updated.Blocks[2].Type)
	}

	// Replacing again discards the previous rows entirely.
	shorter := []blocks.Block{{Type: blocks.TypeDivider}}
	updated, err = svc.Replace(ctx, projects.ReplaceProjectRequest{ID: created.ID, Blocks: &shorter})
	if err != nil {
		t.Fatalf("second replace: %v", err)
	}
	if len(updated.Blocks) != 1 || updated.Blocks[0].Type != blocks.TypeDivider {
		t.Fatalf("expected single divider after replace, got %+v", updated.Blocks)
	}
}

func TestServiceReplaceScalarOnlyKeepsBlocks(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Projeto", TitleEN: "Project"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	list := []blocks.Block{{Type: blocks.TypeDivider}}
	if _, err := svc.Replace(ctx, projects.ReplaceProjectRequest{ID: created.ID, Blocks: &list}); err != nil {
		t.Fatalf("seed blocks: %v", err)
	}

	updated, err := svc.Replace(ctx, projects.ReplaceProjectRequest{
		ID:         created.ID,
		SubtitlePT: strPtr("Novo subtítulo"),
	})
	if err != nil {
		t.Fatalf("scalar replace: %v", err)
	}
	if updated.SubtitlePT == nil || *updated.SubtitlePT != "Novo subtítulo" {
		t.Fatalf("expected subtitle applied, got %v", updated.SubtitlePT)
	}
	if len(updated.Blocks) != 1 {
		t.Fatalf("expected blocks untouched, got %d", len(updated.Blocks))
	}
}

func TestServiceReplaceRejectsIncompleteBlock(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Projeto", TitleEN: "Project"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list := []blocks.Block{
		{Type: blocks.TypeHeading, TextPT: "Ok"},
		{Type: blocks.TypeButton, TextPT: "Label", Href: "not a url"},
	}
	_, err = svc.Replace(ctx, projects.ReplaceProjectRequest{ID: created.ID, Blocks: &list})
	if err == nil {
		t.Fatal("expected validation error")
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("expected validation.Errors, got %T", err)
	}
	if _, ok := errs["blocks.1"]; !ok {
		t.Fatalf("expected blocks.1 failure, got %v", errs)
	}
	var blockErr *projects.BlockValidationError
	if !errors.As(errs["blocks"], &blockErr) {
		t.Fatalf("expected aggregated block error, got %v", errs["blocks"])
	}
	if len(blockErr.Positions) != 1 || blockErr.Positions[0] != 1 {
		t.Fatalf("expected offending position 1, got %v", blockErr.Positions)
	}
	if !errors.Is(blockErr, projects.ErrBlockIncomplete) {
		t.Fatalf("expected block error to unwrap to ErrBlockIncomplete")
	}
}

func TestServiceReplaceRejectsBlankTitle(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Projeto", TitleEN: "Project"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Replace(ctx, projects.ReplaceProjectRequest{ID: created.ID, TitlePT: strPtr("   ")})
	if err == nil {
		t.Fatal("expected validation error for blanked title")
	}
}

func TestServicePublishGate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Projeto", TitleEN: "Project"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetByPublicSlug(ctx, created.Slug); !errors.Is(err, projects.ErrNotFound) {
		t.Fatalf("expected draft hidden behind not found, got %v", err)
	}

	published := domain.StatusPublished
	if _, err := svc.Replace(ctx, projects.ReplaceProjectRequest{ID: created.ID, Status: &published}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	got, err := svc.GetByPublicSlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("public lookup after publish: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("expected project %s, got %s", created.ID, got.ID)
	}

	draft := domain.StatusDraft
	if _, err := svc.Replace(ctx, projects.ReplaceProjectRequest{ID: created.ID, Status: &draft}); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	if _, err := svc.GetByPublicSlug(ctx, created.Slug); !errors.Is(err, projects.ErrNotFound) {
		t.Fatalf("expected unpublished project hidden, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Projeto", TitleEN: "Project"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, projects.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := svc.Delete(ctx, uuid.New()); !errors.Is(err, projects.ErrNotFound) {
		t.Fatalf("expected not found deleting unknown id, got %v", err)
	}
}

func TestServiceListPagination(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	svc, _ := newService(t, internal.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}))
	ctx := context.Background()

	titles := []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon"}
	for _, title := range titles {
		if _, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: title, TitleEN: title}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	page, err := svc.List(ctx, projects.ListProjectsRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 5 || page.Pages != 3 || len(page.Items) != 2 {
		t.Fatalf("expected 5 total over 3 pages with 2 items, got total=%d pages=%d items=%d",
			page.Total, page.Pages, len(page.Items))
	}
	if page.Items[0].TitlePT != "Epsilon" {
		t.Fatalf("expected newest first, got %q", page.Items[0].TitlePT)
	}

	last, err := svc.List(ctx, projects.ListProjectsRequest{Page: 3, PageSize: 2})
	if err != nil {
		t.Fatalf("list last page: %v", err)
	}
	if len(last.Items) != 1 || last.Items[0].TitlePT != "Alpha" {
		t.Fatalf("expected oldest alone on the last page, got %+v", last.Items)
	}
}

func TestServiceListFilters(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Ecori Redesign", TitleEN: "Ecori Redesign"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: "Outro", TitleEN: "Other"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	published := domain.StatusPublished
	if _, err := svc.Replace(ctx, projects.ReplaceProjectRequest{ID: a.ID, Status: &published}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	page, err := svc.List(ctx, projects.ListProjectsRequest{Status: &published})
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != a.ID {
		t.Fatalf("expected only the published project, got %+v", page.Items)
	}

	page, err = svc.List(ctx, projects.ListProjectsRequest{Query: "ecori"})
	if err != nil {
		t.Fatalf("list by query: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != a.ID {
		t.Fatalf("expected query match on title, got %+v", page.Items)
	}
}

func TestServiceListCustomPageSizes(t *testing.T) {
	svc, _ := newService(t, internal.WithPageSizes(2, 3))
	ctx := context.Background()

	for _, title := range []string{"Um", "Dois", "Tres", "Quatro"} {
		if _, err := svc.Create(ctx, projects.CreateProjectRequest{TitlePT: title, TitleEN: title}); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}

	page, err := svc.List(ctx, projects.ListProjectsRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.PageSize != 2 || len(page.Items) != 2 {
		t.Fatalf("expected default page size 2, got size=%d items=%d", page.PageSize, len(page.Items))
	}

	capped, err := svc.List(ctx, projects.ListProjectsRequest{PageSize: 10})
	if err != nil {
		t.Fatalf("list capped: %v", err)
	}
	if capped.PageSize != 3 || len(capped.Items) != 3 {
		t.Fatalf("expected cap at 3, got size=%d items=%d", capped.PageSize, len(capped.Items))
	}
}
