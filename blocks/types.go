package blocks

import (
	"time"

	"github.com/goliatone/go-portfolio/assets"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Type tags one of the six block variants. The set is closed: the validator
// and codec reject anything outside it.
type Type string

const (
	TypeHeading   Type = "HEADING"
	TypeParagraph Type = "PARAGRAPH"
	TypeImage     Type = "IMAGE"
	TypeButton    Type = "BUTTON"
	TypeList      Type = "LIST"
	TypeDivider   Type = "DIVIDER"
)

// Types lists every known block variant in a stable order.
var Types = []Type{TypeHeading, TypeParagraph, TypeImage, TypeButton, TypeList, TypeDivider}

// Known reports whether t is one of the six block variants.
func (t Type) Known() bool {
	switch t {
	case TypeHeading, TypeParagraph, TypeImage, TypeButton, TypeList, TypeDivider:
		return true
	}
	return false
}

// Size names one of the preset display widths for image blocks.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeFull   Size = "full"
)

// Fit mirrors the CSS object-fit values accepted for custom-sized images.
type Fit string

const (
	FitCover   Fit = "cover"
	FitContain Fit = "contain"
	FitFill    Fit = "fill"
)

// Heading levels accepted by the editor.
const (
	LevelH1 = "h1"
	LevelH2 = "h2"
	LevelH3 = "h3"
)

// Zoom lens defaults applied when an image block enables hover zoom.
const (
	DefaultZoomLevel  = 2.2
	DefaultLensSize   = 120
	DefaultLensBorder = 1
)

// Block is the flat editor representation of one content unit. All variant
// fields live side by side and the Type tag decides which of them are
// meaningful; the validator enforces the per-variant rules. Bilingual field
// groups keep a legacy unsuffixed sibling (Text, HTML, Items) for content
// authored before the bilingual split.
type Block struct {
	// ID is the persisted row id, or a client-generated temporary id for
	// blocks that have never been saved.
	ID   string `json:"id,omitempty"`
	Type Type   `json:"type"`

	// HEADING fields. Text* doubles as the BUTTON label group.
	Level  string `json:"level,omitempty"`
	TextPT string `json:"textPt,omitempty"`
	TextEN string `json:"textEn,omitempty"`
	Text   string `json:"text,omitempty"`

	// PARAGRAPH fields. Markdown is a legacy authoring fallback rendered
	// only when no HTML is present.
	HTMLPT   string `json:"htmlPt,omitempty"`
	HTMLEN   string `json:"htmlEn,omitempty"`
	HTML     string `json:"html,omitempty"`
	Markdown string `json:"markdown,omitempty"`

	// IMAGE fields.
	AssetID       string        `json:"assetId,omitempty"`
	Asset         *assets.Asset `json:"asset,omitempty"`
	Alt           string        `json:"alt,omitempty"`
	Caption       string        `json:"caption,omitempty"`
	Size          Size          `json:"size,omitempty"`
	UseCustomSize bool          `json:"useCustomSize,omitempty"`
	CustomWidth   int           `json:"customWidth,omitempty"`
	CustomHeight  int           `json:"customHeight,omitempty"`
	ObjectFit     Fit           `json:"objectFit,omitempty"`
	EnableZoom    bool          `json:"enableZoom,omitempty"`
	ZoomLevel     float64       `json:"zoomLevel,omitempty"`
	LensSize      int           `json:"lensSize,omitempty"`
	LensBorder    int           `json:"lensBorder,omitempty"`
	HideOnMobile  bool          `json:"hideOnMobile,omitempty"`
	HideOnDesktop bool          `json:"hideOnDesktop,omitempty"`

	// BUTTON field; the label comes from the Text* group.
	Href string `json:"href,omitempty"`

	// LIST fields.
	ItemsPT []string `json:"itemsPt,omitempty"`
	ItemsEN []string `json:"itemsEn,omitempty"`
	Items   []string `json:"items,omitempty"`
}

// New returns a block of the given variant seeded with the editor defaults
// for that variant. The caller assigns the (temporary) id.
func New(t Type) Block {
	b := Block{Type: t}
	switch t {
	case TypeHeading:
		b.Level = LevelH3
	case TypeImage:
		b.Size = SizeLarge
		b.ObjectFit = FitCover
		b.ZoomLevel = DefaultZoomLevel
		b.LensSize = DefaultLensSize
		b.LensBorder = DefaultLensBorder
	case TypeList:
		b.ItemsPT = []string{}
		b.ItemsEN = []string{}
	}
	return b
}

// Row is the stored representation of a block: one table row per block with
// the variant fields folded into an opaque JSON payload. The hydrated asset
// is carried as a join, never inside the payload.
type Row struct {
	bun.BaseModel `bun:"table:project_blocks,alias:pb"`

	ID        uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	ProjectID uuid.UUID  `bun:"project_id,notnull,type:uuid" json:"project_id"`
	Type      Type       `bun:"type,notnull" json:"type"`
	Position  int        `bun:"position,notnull,default:0" json:"position"`
	Payload   string     `bun:"payload,notnull" json:"payload"`
	AssetID   *uuid.UUID `bun:"asset_id,type:uuid,nullzero" json:"asset_id,omitempty"`
	CreatedAt time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Asset *assets.Asset `bun:"rel:belongs-to,join:asset_id=id" json:"asset,omitempty"`
}
