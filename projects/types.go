package projects

import (
	"time"

	"github.com/goliatone/go-portfolio/assets"
	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// HeroMetaItem is one label/value pair shown near a project's hero title,
// e.g. "Cliente: Ecori". Each locale carries its own ordered list.
type HeroMetaItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Filled reports whether both sides of the pair are populated. Items missing
// either side are dropped before persistence.
func (h HeroMetaItem) Filled() bool {
	return trimNonEmpty(h.Label) && trimNonEmpty(h.Value)
}

// FilterHeroMeta drops items missing a label or a value, preserving order.
func FilterHeroMeta(items []HeroMetaItem) []HeroMetaItem {
	out := make([]HeroMetaItem, 0, len(items))
	for _, item := range items {
		if item.Filled() {
			out = append(out, item)
		}
	}
	return out
}

// Project is a case-study page: bilingual metadata plus an ordered block
// collection. The slug is derived from the Portuguese title at creation and
// never changes afterwards.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID     uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	Slug   string        `bun:"slug,notnull,unique" json:"slug"`
	Status domain.Status `bun:"status,notnull,default:'draft'" json:"status"`

	TitlePT         string         `bun:"title_pt,notnull" json:"titlePt"`
	SubtitlePT      *string        `bun:"subtitle_pt" json:"subtitlePt,omitempty"`
	HeroMetaPT      []HeroMetaItem `bun:"hero_meta_pt,type:jsonb,nullzero" json:"heroMetaPt,omitempty"`
	HeroBackLabelPT *string        `bun:"hero_back_label_pt" json:"heroBackLabelPt,omitempty"`

	TitleEN         string         `bun:"title_en,notnull" json:"titleEn"`
	SubtitleEN      *string        `bun:"subtitle_en" json:"subtitleEn,omitempty"`
	HeroMetaEN      []HeroMetaItem `bun:"hero_meta_en,type:jsonb,nullzero" json:"heroMetaEn,omitempty"`
	HeroBackLabelEN *string        `bun:"hero_back_label_en" json:"heroBackLabelEn,omitempty"`

	SEOTitle       *string `bun:"seo_title" json:"seoTitle,omitempty"`
	SEODescription *string `bun:"seo_description" json:"seoDescription,omitempty"`

	PreviewImage   *string    `bun:"preview_image" json:"previewImage,omitempty"`
	PreviewTitlePT *string    `bun:"preview_title_pt" json:"previewTitlePt,omitempty"`
	PreviewTitleEN *string    `bun:"preview_title_en" json:"previewTitleEn,omitempty"`
	CoverImageID   *uuid.UUID `bun:"cover_image_id,type:uuid,nullzero" json:"coverImageId,omitempty"`

	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updatedAt"`

	CoverImage *assets.Asset `bun:"rel:belongs-to,join:cover_image_id=id" json:"coverImage,omitempty"`
	BlockRows  []*blocks.Row `bun:"rel:has-many,join:id=project_id" json:"-"`

	// Blocks is the decoded, ordered block list attached on reads. Never
	// persisted directly; writes go through the codec.
	Blocks []blocks.Block `bun:"-" json:"blocks"`
	// BlockCount is filled on list reads where blocks are not decoded.
	BlockCount int `bun:"-" json:"blockCount"`
}

// Published reports whether the project is reachable through the public
// slug lookup.
func (p *Project) Published() bool {
	return p != nil && p.Status == domain.StatusPublished
}

func trimNonEmpty(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
