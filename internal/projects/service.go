package projects

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/domain"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
	"github.com/goliatone/go-portfolio/projects"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	// slugProbeLimit bounds the collision walk; beyond it the suffix falls
	// back to a random component.
	slugProbeLimit = 50
)

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPageSizes overrides the default and maximum listing page sizes.
func WithPageSizes(defaultSize, maxSize int) ServiceOption {
	return func(s *service) {
		if defaultSize > 0 {
			s.defaultPageSize = defaultSize
		}
		if maxSize > 0 {
			s.maxPageSize = maxSize
		}
	}
}

// service implements projects.Service.
type service struct {
	repo   Repository
	now    func() time.Time
	id     IDGenerator
	logger interfaces.Logger

	defaultPageSize int
	maxPageSize     int
}

// NewService constructs a project service with the required dependencies.
func NewService(repo Repository, opts ...ServiceOption) projects.Service {
	s := &service{
		repo:            repo,
		now:             time.Now,
		id:              uuid.New,
		logger:          logging.NoOp(),
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates the request, derives a unique slug from the Portuguese
// title, and persists a new draft project without blocks.
func (s *service) Create(ctx context.Context, req projects.CreateProjectRequest) (*projects.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, req.TitlePT)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	record := &projects.Project{
		ID:     s.id(),
		Slug:   slug,
		Status: domain.StatusDraft,

		TitlePT:         req.TitlePT,
		SubtitlePT:      req.SubtitlePT,
		HeroMetaPT:      projects.FilterHeroMeta(req.HeroMetaPT),
		HeroBackLabelPT: defaultBackLabel(req.HeroBackLabelPT, projects.DefaultHeroBackLabelPT),

		TitleEN:         req.TitleEN,
		SubtitleEN:      req.SubtitleEN,
		HeroMetaEN:      projects.FilterHeroMeta(req.HeroMetaEN),
		HeroBackLabelEN: defaultBackLabel(req.HeroBackLabelEN, projects.DefaultHeroBackLabelEN),

		PreviewImage:   req.PreviewImage,
		PreviewTitlePT: req.PreviewTitlePT,
		PreviewTitleEN: req.PreviewTitleEN,

		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created", "project_id", created.ID, "slug", created.Slug)
	return s.decode(created)
}

// Get fetches the full aggregate by identifier.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*projects.Project, error) {
	if id == uuid.Nil {
		return nil, projects.ErrProjectIDRequired
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.decode(record)
}

// GetByPublicSlug fetches the aggregate by slug through the publish gate.
// Draft projects are reported as missing so the public surface cannot tell
// an unpublished slug from one that never existed.
func (s *service) GetByPublicSlug(ctx context.Context, slug string) (*projects.Project, error) {
	record, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !record.Published() {
		return nil, &projects.NotFoundError{Resource: "project", Key: slug}
	}
	return s.decode(record)
}

// Replace applies a partial update to the aggregate. When the request
// carries a block list the whole collection is replaced in the same
// transaction as the scalar changes.
func (s *service) Replace(ctx context.Context, req projects.ReplaceProjectRequest) (*projects.Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil && !current.Status.CanTransition(*req.Status) {
		return nil, projects.ErrStatusInvalid
	}

	applyPatch(current, req)
	current.UpdatedAt = s.now().UTC()

	var rows []*blocks.Row
	if req.Blocks != nil {
		rows, err = blocks.ToRows(current.ID, *req.Blocks)
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []*blocks.Row{}
		}
	}

	updated, err := s.repo.UpdateWithBlocks(ctx, current, rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated", "project_id", updated.ID, "blocks_replaced", req.Blocks != nil)
	return s.decode(updated)
}

// Delete removes the project and its block rows.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return projects.ErrProjectIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("project deleted", "project_id", id)
	return nil
}

// List returns one page of project summaries ordered by most recently
// updated. Page defaults to 1, the page size to 10 capped at 100.
func (s *service) List(ctx context.Context, req projects.ListProjectsRequest) (*projects.ProjectPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 {
		size = s.defaultPageSize
	}
	if size > s.maxPageSize {
		size = s.maxPageSize
	}

	items, total, err := s.repo.List(ctx, projects.ListFilter{
		Status: req.Status,
		Query:  req.Query,
		Limit:  size,
		Offset: (page - 1) * size,
	})
	if err != nil {
		return nil, err
	}

	pages := total / size
	if total%size != 0 {
		pages++
	}

	return &projects.ProjectPage{
		Items:    items,
		Page:     page,
		PageSize: size,
		Total:    total,
		Pages:    pages,
	}, nil
}

// uniqueSlug normalizes the title and walks -1, -2, ... suffixes until the
// slug is free.
func (s *service) uniqueSlug(ctx context.Context, title string) (string, error) {
	base, err := projects.GenerateSlug(title)
	if err != nil || base == "" {
		return "", projects.ErrSlugInvalid
	}

	candidate := base
	for attempt := 1; ; attempt++ {
		taken, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("projects: slug probe: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		if attempt > slugProbeLimit {
			return base + "-" + s.id().String()[:8], nil
		}
		candidate = base + "-" + strconv.Itoa(attempt)
	}
}

// decode attaches the ordered block list from the stored rows.
func (s *service) decode(record *projects.Project) (*projects.Project, error) {
	if record == nil {
		return nil, nil
	}
	list, err := blocks.FromRows(record.BlockRows)
	if err != nil {
		return nil, err
	}
	record.Blocks = list
	record.BlockCount = len(list)
	return record, nil
}

func applyPatch(record *projects.Project, req projects.ReplaceProjectRequest) {
	if req.Status != nil {
		record.Status = *req.Status
	}
	if req.TitlePT != nil {
		record.TitlePT = *req.TitlePT
	}
	if req.SubtitlePT != nil {
		record.SubtitlePT = req.SubtitlePT
	}
	if req.HeroMetaPT != nil {
		record.HeroMetaPT = projects.FilterHeroMeta(*req.HeroMetaPT)
	}
	if req.HeroBackLabelPT != nil {
		record.HeroBackLabelPT = req.HeroBackLabelPT
	}
	if req.TitleEN != nil {
		record.TitleEN = *req.TitleEN
	}
	if req.SubtitleEN != nil {
		record.SubtitleEN = req.SubtitleEN
	}
	if req.HeroMetaEN != nil {
		record.HeroMetaEN = projects.FilterHeroMeta(*req.HeroMetaEN)
	}
	if req.HeroBackLabelEN != nil {
		record.HeroBackLabelEN = req.HeroBackLabelEN
	}
	if req.SEOTitle != nil {
		record.SEOTitle = req.SEOTitle
	}
	if req.SEODescription != nil {
		record.SEODescription = req.SEODescription
	}
	if req.PreviewImage != nil {
		record.PreviewImage = req.PreviewImage
	}
	if req.PreviewTitlePT != nil {
		record.PreviewTitlePT = req.PreviewTitlePT
	}
	if req.PreviewTitleEN != nil {
		record.PreviewTitleEN = req.PreviewTitleEN
	}
	if req.CoverImageID != nil {
		record.CoverImageID = req.CoverImageID
	}
}

func defaultBackLabel(supplied *string, fallback string) *string {
	if supplied != nil && *supplied != "" {
		return supplied
	}
	value := fallback
	return &value
}
