package domain

// Status represents the visibility lifecycle of a project.
type Status string

const (
	// StatusDraft indicates a project still under preparation, unreachable
	// through the public slug lookup.
	StatusDraft Status = "draft"
	// StatusPublished identifies a project available on the public site.
	StatusPublished Status = "published"
)

// Valid reports whether the value is a known lifecycle status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step. Publish and unpublish are both explicit and reversible; re-saving the
// current status is a no-op transition and always allowed.
func (s Status) CanTransition(next Status) bool {
	return s.Valid() && next.Valid()
}

// Locale identifies one of the two supported content languages.
type Locale string

const (
	// LocalePT is Brazilian Portuguese, the authoring locale.
	LocalePT Locale = "pt"
	// LocaleEN is English.
	LocaleEN Locale = "en"
)

// Valid reports whether the locale is supported.
func (l Locale) Valid() bool {
	return l == LocalePT || l == LocaleEN
}
