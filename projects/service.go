package projects

import (
	"context"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/domain"
	"github.com/google/uuid"
)

// Service exposes the project aggregate use-cases: the whole-aggregate
// read/replace operations plus the publish-gated public lookup.
type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (*Project, error)
	Get(ctx context.Context, id uuid.UUID) (*Project, error)
	GetByPublicSlug(ctx context.Context, slug string) (*Project, error)
	Replace(ctx context.Context, req ReplaceProjectRequest) (*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, req ListProjectsRequest) (*ProjectPage, error)
}

// Hero back label defaults applied at creation when none is supplied.
const (
	DefaultHeroBackLabelPT = "Voltar para projetos"
	DefaultHeroBackLabelEN = "Back to projects"
)

// CreateProjectRequest captures the fields accepted when creating a project.
// The slug is derived from TitlePT; blocks are never created here.
type CreateProjectRequest struct {
	TitlePT         string         `json:"titlePt"`
	SubtitlePT      *string        `json:"subtitlePt,omitempty"`
	HeroMetaPT      []HeroMetaItem `json:"heroMetaPt,omitempty"`
	HeroBackLabelPT *string        `json:"heroBackLabelPt,omitempty"`

	TitleEN         string         `json:"titleEn"`
	SubtitleEN      *string        `json:"subtitleEn,omitempty"`
	HeroMetaEN      []HeroMetaItem `json:"heroMetaEn,omitempty"`
	HeroBackLabelEN *string        `json:"heroBackLabelEn,omitempty"`

	PreviewImage   *string `json:"previewImage,omitempty"`
	PreviewTitlePT *string `json:"previewTitlePt,omitempty"`
	PreviewTitleEN *string `json:"previewTitleEn,omitempty"`
}

// Validate enforces the mandatory bilingual titles.
func (r CreateProjectRequest) Validate() error {
	errs := validation.Errors{}
	if strings.TrimSpace(r.TitlePT) == "" {
		errs["titlePt"] = ErrTitlePTRequired
	}
	if strings.TrimSpace(r.TitleEN) == "" {
		errs["titleEn"] = ErrTitleENRequired
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReplaceProjectRequest is a partial update of a project aggregate. Nil
// pointers mean "leave untouched". When Blocks is non-nil the whole block
// collection is replaced in the same transaction as the scalar update.
type ReplaceProjectRequest struct {
	ID uuid.UUID `json:"-"`

	Status *domain.Status `json:"status,omitempty"`

	TitlePT         *string         `json:"titlePt,omitempty"`
	SubtitlePT      *string         `json:"subtitlePt,omitempty"`
	HeroMetaPT      *[]HeroMetaItem `json:"heroMetaPt,omitempty"`
	HeroBackLabelPT *string         `json:"heroBackLabelPt,omitempty"`

	TitleEN         *string         `json:"titleEn,omitempty"`
	SubtitleEN      *string         `json:"subtitleEn,omitempty"`
	HeroMetaEN      *[]HeroMetaItem `json:"heroMetaEn,omitempty"`
	HeroBackLabelEN *string         `json:"heroBackLabelEn,omitempty"`

	SEOTitle       *string `json:"seoTitle,omitempty"`
	SEODescription *string `json:"seoDescription,omitempty"`

	PreviewImage   *string    `json:"previewImage,omitempty"`
	PreviewTitlePT *string    `json:"previewTitlePt,omitempty"`
	PreviewTitleEN *string    `json:"previewTitleEn,omitempty"`
	CoverImageID   *uuid.UUID `json:"coverImageId,omitempty"`

	Blocks *[]blocks.Block `json:"blocks,omitempty"`
}

// Validate rejects identity-less patches, blanked mandatory titles, unknown
// statuses, and incomplete blocks. Block failures are keyed by position so
// the boundary can surface per-field messages, and the whole offending set
// is reported once under "blocks".
func (r ReplaceProjectRequest) Validate() error {
	errs := validation.Errors{}
	if r.ID == uuid.Nil {
		errs["id"] = ErrProjectIDRequired
	}
	if r.TitlePT != nil && strings.TrimSpace(*r.TitlePT) == "" {
		errs["titlePt"] = ErrTitlePTRequired
	}
	if r.TitleEN != nil && strings.TrimSpace(*r.TitleEN) == "" {
		errs["titleEn"] = ErrTitleENRequired
	}
	if r.Status != nil && !r.Status.Valid() {
		errs["status"] = ErrStatusInvalid
	}
	if r.Blocks != nil {
		var bad []int
		for i, b := range *r.Blocks {
			if !b.Type.Known() || !b.Complete() {
				bad = append(bad, i)
				errs["blocks."+strconv.Itoa(i)] = ErrBlockIncomplete
			}
		}
		if len(bad) > 0 {
			errs["blocks"] = &BlockValidationError{Positions: bad}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListFilter narrows a project listing.
type ListFilter struct {
	Status *domain.Status
	// Query substring-matches title, subtitle, and slug in either locale.
	Query  string
	Limit  int
	Offset int
}

// ListProjectsRequest captures listing parameters. Page is 1-based.
type ListProjectsRequest struct {
	Status   *domain.Status
	Locale   *domain.Locale
	Query    string
	Page     int
	PageSize int
}

// Validate rejects malformed filters.
func (r ListProjectsRequest) Validate() error {
	errs := validation.Errors{}
	if r.Status != nil && !r.Status.Valid() {
		errs["status"] = ErrStatusInvalid
	}
	if r.Locale != nil && !r.Locale.Valid() {
		errs["locale"] = validation.NewError("projects.list.locale_invalid", "locale must be pt or en")
	}
	if r.Page < 0 {
		errs["page"] = validation.NewError("projects.list.page_invalid", "page must be positive")
	}
	if r.PageSize < 0 {
		errs["limit"] = validation.NewError("projects.list.limit_invalid", "limit must be positive")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProjectPage is one page of project summaries plus pagination totals.
type ProjectPage struct {
	Items    []*Project `json:"projects"`
	Page     int        `json:"page"`
	PageSize int        `json:"limit"`
	Total    int        `json:"total"`
	Pages    int        `json:"pages"`
}
