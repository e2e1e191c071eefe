package portfolio_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/assets"
	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/domain"
	"github.com/goliatone/go-portfolio/internal/di"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
	"github.com/goliatone/go-portfolio/projects"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestModule_EndToEndWithBunAndCache(t *testing.T) {
	ctx := context.Background()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	if err := portfolio.Migrate(ctx, bunDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := portfolio.DefaultConfig()
	cfg.Auth.AdminToken = "integration-token"
	cfg.Cache.DefaultTTL = 50 * time.Millisecond

	module, err := portfolio.New(cfg, di.WithBunDB(bunDB))
	if err != nil {
		t.Fatalf("portfolio.New: %v", err)
	}
	if module.DB() != bunDB {
		t.Fatal("expected module to expose the injected bun handle")
	}

	created, err := module.Projects().Create(ctx, projects.CreateProjectRequest{
		TitlePT: "Redesign do aplicativo Ecori",
		TitleEN: "Ecori app redesign",
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if created.Slug != "redesign-do-aplicativo-ecori" {
		t.Fatalf("unexpected slug %q", created.Slug)
	}
	if created.Status != domain.StatusDraft {
		t.Fatalf("expected draft status, got %q", created.Status)
	}

	upload, err := module.Assets().Upload(ctx, assets.UploadRequest{
		Filename:    "tela-inicial.png",
		ContentType: "image/png",
		Body:        bytes.NewReader(testPNG(t)),
		Alt:         "Tela inicial do aplicativo",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if !upload.Created {
		t.Fatal("expected first upload to create the asset")
	}

	again, err := module.Assets().Upload(ctx, assets.UploadRequest{
		Filename:    "tela-inicial-copy.png",
		ContentType: "image/png",
		Body:        bytes.NewReader(testPNG(t)),
	})
	if err != nil {
		t.Fatalf("re-upload: %v", err)
	}
	if again.Created {
		t.Fatal("expected identical bytes to dedupe")
	}
	if again.Asset.ID != upload.Asset.ID {
		t.Fatalf("expected deduped asset id %s, got %s", upload.Asset.ID, again.Asset.ID)
	}

	handler, err := module.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	// Drafts stay invisible on the public slug route.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/projects/slug/"+created.Slug, nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for draft slug, got %d", rec.Code)
	}

	published := domain.StatusPublished
	blockList := []blocks.Block{
		{Type: blocks.TypeHeading, TextPT: "Contexto", TextEN: "Context"},
		{Type: blocks.TypeImage, AssetID: upload.Asset.ID.String(), Alt: "Tela inicial"},
		{Type: blocks.TypeButton, TextPT: "Ver protótipo", TextEN: "View prototype", Href: "https://example.com/prototype"},
	}
	updated, err := module.Projects().Replace(ctx, projects.ReplaceProjectRequest{
		ID:     created.ID,
		Status: &published,
		Blocks: &blockList,
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(updated.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(updated.Blocks))
	}
	if updated.Blocks[1].Asset == nil || updated.Blocks[1].Asset.URL == "" {
		t.Fatal("expected image block to hydrate its asset")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/projects/slug/"+created.Slug+"?locale=en", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for published slug, got %d: %s", rec.Code, rec.Body.String())
	}

	var page struct {
		Title         string `json:"title"`
		HeroBackLabel string `json:"heroBackLabel"`
		Blocks        []struct {
			Type  string `json:"type"`
			Text  string `json:"text"`
			Image *struct {
				URL string `json:"url"`
				Alt string `json:"alt"`
			} `json:"image"`
		} `json:"blocks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode rendered page: %v", err)
	}
	if page.Title != "Ecori app redesign" {
		t.Fatalf("unexpected rendered title %q", page.Title)
	}
	if page.HeroBackLabel != projects.DefaultHeroBackLabelEN {
		t.Fatalf("unexpected back label %q", page.HeroBackLabel)
	}
	if len(page.Blocks) != 3 {
		t.Fatalf("expected 3 rendered blocks, got %d", len(page.Blocks))
	}
	if page.Blocks[1].Image == nil || page.Blocks[1].Image.URL != upload.Asset.URL {
		t.Fatalf("expected rendered image URL %q, got %+v", upload.Asset.URL, page.Blocks[1].Image)
	}

	// Writes stay behind the guard.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/projects", bytes.NewReader([]byte(`{}`))))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}
}

func TestModule_MemoryDefaults(t *testing.T) {
	ctx := context.Background()

	module, err := portfolio.New(portfolio.DefaultConfig())
	if err != nil {
		t.Fatalf("portfolio.New: %v", err)
	}
	if module.DB() != nil {
		t.Fatal("expected no database handle on memory storage")
	}

	created, err := module.Projects().Create(ctx, projects.CreateProjectRequest{
		TitlePT: "Identidade visual",
		TitleEN: "Visual identity",
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}

	fetched, err := module.Projects().Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if fetched.Slug != "identidade-visual" {
		t.Fatalf("unexpected slug %q", fetched.Slug)
	}
}

func testPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 24, 12))
	for x := 0; x < 24; x++ {
		for y := 0; y < 12; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 20), B: 90, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
