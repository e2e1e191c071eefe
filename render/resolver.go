// Package render resolves a stored project into the locale-specific view
// model a template layer consumes. Resolution picks one language per field,
// converts legacy markdown paragraphs to HTML, and translates image sizing
// presets into CSS widths. Blocks with nothing to show in the requested
// locale disappear from the output rather than rendering empty shells.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-portfolio/blocks"
	"github.com/goliatone/go-portfolio/domain"
	"github.com/goliatone/go-portfolio/projects"
)

// Page is the fully resolved, single-locale view of a project.
type Page struct {
	Slug          string                  `json:"slug"`
	Title         string                  `json:"title"`
	Subtitle      string                  `json:"subtitle,omitempty"`
	HeroMeta      []projects.HeroMetaItem `json:"heroMeta,omitempty"`
	HeroBackLabel string                  `json:"heroBackLabel"`
	Blocks        []Node                  `json:"blocks"`
}

// Node is one renderable block. Only the fields for its Type are set.
type Node struct {
	Type blocks.Type `json:"type"`

	// HEADING and BUTTON share the resolved label.
	Level string `json:"level,omitempty"`
	Text  string `json:"text,omitempty"`

	// PARAGRAPH carries already-safe HTML authored in the admin editor.
	HTML string `json:"html,omitempty"`

	Image *ImageView `json:"image,omitempty"`

	Href string `json:"href,omitempty"`

	Items []string `json:"items,omitempty"`
}

// ImageView is the display geometry for an image block.
type ImageView struct {
	URL           string    `json:"url"`
	Alt           string    `json:"alt,omitempty"`
	Caption       string    `json:"caption,omitempty"`
	Width         string    `json:"width"`
	Height        string    `json:"height,omitempty"`
	ObjectFit     string    `json:"objectFit,omitempty"`
	Zoom          *ZoomView `json:"zoom,omitempty"`
	HideOnMobile  bool      `json:"hideOnMobile,omitempty"`
	HideOnDesktop bool      `json:"hideOnDesktop,omitempty"`
}

// ZoomView configures the hover zoom lens.
type ZoomView struct {
	Level      float64 `json:"level"`
	LensSize   int     `json:"lensSize"`
	LensBorder int     `json:"lensBorder"`
}

// Preset widths; images never overflow their column.
var sizeWidths = map[blocks.Size]string{
	blocks.SizeSmall:  "min(100%, 400px)",
	blocks.SizeMedium: "min(100%, 600px)",
	blocks.SizeLarge:  "min(100%, 1000px)",
	blocks.SizeFull:   "100%",
}

// Resolver renders stored projects into locale-specific pages.
type Resolver struct {
	md goldmark.Markdown
}

// NewResolver constructs a resolver. The markdown converter is only used
// for legacy paragraphs that predate the rich-text editor.
func NewResolver() *Resolver {
	return &Resolver{
		md: goldmark.New(
			goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
		),
	}
}

// Resolve produces the single-locale page for the project.
func (r *Resolver) Resolve(project *projects.Project, locale domain.Locale) (*Page, error) {
	if project == nil {
		return nil, fmt.Errorf("render: nil project")
	}

	page := &Page{
		Slug:          project.Slug,
		Title:         pick(locale, project.TitlePT, project.TitleEN),
		Subtitle:      pick(locale, deref(project.SubtitlePT), deref(project.SubtitleEN)),
		HeroBackLabel: resolveBackLabel(project, locale),
	}
	if locale == domain.LocaleEN {
		page.HeroMeta = append(page.HeroMeta, project.HeroMetaEN...)
	} else {
		page.HeroMeta = append(page.HeroMeta, project.HeroMetaPT...)
	}

	for _, b := range project.Blocks {
		node, err := r.resolveBlock(b, locale)
		if err != nil {
			return nil, err
		}
		if node != nil {
			page.Blocks = append(page.Blocks, *node)
		}
	}
	return page, nil
}

func (r *Resolver) resolveBlock(b blocks.Block, locale domain.Locale) (*Node, error) {
	switch b.Type {
	case blocks.TypeHeading:
		text := resolveText(locale, b.TextPT, b.TextEN, b.Text)
		if text == "" {
			return nil, nil
		}
		level := b.Level
		if level == "" {
			level = blocks.LevelH3
		}
		return &Node{Type: b.Type, Level: level, Text: text}, nil

	case blocks.TypeParagraph:
		html := resolveText(locale, b.HTMLPT, b.HTMLEN, b.HTML)
		if html == "" {
			converted, err := r.markdownToHTML(b.Markdown)
			if err != nil {
				return nil, err
			}
			html = converted
		}
		if html == "" {
			return nil, nil
		}
		return &Node{Type: b.Type, HTML: html}, nil

	case blocks.TypeImage:
		view := resolveImage(b)
		if view == nil {
			return nil, nil
		}
		return &Node{Type: b.Type, Image: view}, nil

	case blocks.TypeButton:
		text := resolveText(locale, b.TextPT, b.TextEN, b.Text)
		if text == "" || blocks.ValidateHref(b.Href) != blocks.HrefValid {
			return nil, nil
		}
		return &Node{Type: b.Type, Text: text, Href: strings.TrimSpace(b.Href)}, nil

	case blocks.TypeList:
		items := resolveItems(locale, b.ItemsPT, b.ItemsEN, b.Items)
		if len(items) == 0 {
			return nil, nil
		}
		return &Node{Type: b.Type, Items: items}, nil

	case blocks.TypeDivider:
		return &Node{Type: b.Type}, nil
	}
	return nil, nil
}

func (r *Resolver) markdownToHTML(markdown string) (string, error) {
	trimmed := strings.TrimSpace(markdown)
	if trimmed == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(trimmed), &buf); err != nil {
		return "", fmt.Errorf("render: markdown conversion: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func resolveImage(b blocks.Block) *ImageView {
	url := ""
	if b.Asset != nil {
		url = b.Asset.URL
	}
	if url == "" {
		return nil
	}

	alt := strings.TrimSpace(b.Alt)
	if alt == "" && b.Asset != nil {
		alt = b.Asset.Alt
	}

	view := &ImageView{
		URL:           url,
		Alt:           alt,
		Caption:       strings.TrimSpace(b.Caption),
		HideOnMobile:  b.HideOnMobile,
		HideOnDesktop: b.HideOnDesktop,
	}

	if b.UseCustomSize && b.CustomWidth > 0 {
		view.Width = fmt.Sprintf("min(100%%, %dpx)", b.CustomWidth)
		if b.CustomHeight > 0 {
			view.Height = fmt.Sprintf("%dpx", b.CustomHeight)
			fit := string(b.ObjectFit)
			if fit == "" {
				fit = string(blocks.FitCover)
			}
			view.ObjectFit = fit
		}
	} else {
		width, ok := sizeWidths[b.Size]
		if !ok {
			width = sizeWidths[blocks.SizeLarge]
		}
		view.Width = width
	}

	if b.EnableZoom {
		zoom := &ZoomView{
			Level:      b.ZoomLevel,
			LensSize:   b.LensSize,
			LensBorder: b.LensBorder,
		}
		if zoom.Level <= 0 {
			zoom.Level = blocks.DefaultZoomLevel
		}
		if zoom.LensSize <= 0 {
			zoom.LensSize = blocks.DefaultLensSize
		}
		if zoom.LensBorder <= 0 {
			zoom.LensBorder = blocks.DefaultLensBorder
		}
		view.Zoom = zoom
	}

	return view
}

// resolveText picks the requested locale, falling back only to the legacy
// unsuffixed field kept for content authored before the bilingual fields
// existed. There is no cross-language fallback; an untranslated field
// renders nothing.
func resolveText(locale domain.Locale, pt, en, legacy string) string {
	order := []string{pt, legacy}
	if locale == domain.LocaleEN {
		order = []string{en, legacy}
	}
	for _, candidate := range order {
		if trimmed := strings.TrimSpace(candidate); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func resolveItems(locale domain.Locale, pt, en, legacy []string) []string {
	order := [][]string{pt, legacy}
	if locale == domain.LocaleEN {
		order = [][]string{en, legacy}
	}
	for _, candidate := range order {
		filtered := filterBlank(candidate)
		if len(filtered) > 0 {
			return filtered
		}
	}
	return nil
}

func filterBlank(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func resolveBackLabel(project *projects.Project, locale domain.Locale) string {
	if locale == domain.LocaleEN {
		if label := deref(project.HeroBackLabelEN); label != "" {
			return label
		}
		return projects.DefaultHeroBackLabelEN
	}
	if label := deref(project.HeroBackLabelPT); label != "" {
		return label
	}
	return projects.DefaultHeroBackLabelPT
}

func pick(locale domain.Locale, pt, en string) string {
	if locale == domain.LocaleEN {
		if strings.TrimSpace(en) != "" {
			return strings.TrimSpace(en)
		}
		return strings.TrimSpace(pt)
	}
	if strings.TrimSpace(pt) != "" {
		return strings.TrimSpace(pt)
	}
	return strings.TrimSpace(en)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
