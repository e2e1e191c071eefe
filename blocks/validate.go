package blocks

import (
	"net/url"
	"strings"
)

// HrefState classifies a button href. An empty href is "not yet filled",
// which is deliberately distinct from a malformed one: the editor shows an
// inline error only for the latter.
type HrefState int

const (
	HrefEmpty HrefState = iota
	HrefValid
	HrefInvalid
)

// ValidateHref classifies the href. Valid means it parses as an absolute
// URL with an http or https scheme.
func ValidateHref(href string) HrefState {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return HrefEmpty
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return HrefInvalid
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return HrefInvalid
	}
	return HrefValid
}

// AutoCompleteHref prefixes https:// when the value lacks a scheme. It is the
// blur-time convenience transform applied by the editor, not a validation
// bypass: the result is still classified by ValidateHref.
func AutoCompleteHref(href string) string {
	trimmed := strings.TrimSpace(href)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}

// Complete reports whether the block is ready to persist. Bilingual field
// groups use locale-or semantics: one populated locale (or the legacy
// unsuffixed field) is enough, both are never required. An incomplete block
// is a soft condition; callers decide whether to drop it or block the save.
func (b Block) Complete() bool {
	switch b.Type {
	case TypeHeading:
		return anyFilled(b.TextPT, b.TextEN, b.Text)
	case TypeParagraph:
		return anyFilled(b.HTMLPT, b.HTMLEN, b.HTML, b.Markdown)
	case TypeImage:
		return strings.TrimSpace(b.AssetID) != "" && strings.TrimSpace(b.Alt) != ""
	case TypeButton:
		return anyFilled(b.TextPT, b.TextEN, b.Text) && ValidateHref(b.Href) == HrefValid
	case TypeList:
		return anyItem(b.ItemsPT) || anyItem(b.ItemsEN) || anyItem(b.Items)
	case TypeDivider:
		return true
	}
	return false
}

func anyFilled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

func anyItem(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}
