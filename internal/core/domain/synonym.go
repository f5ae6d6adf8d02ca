package domain

// SynonymRule maps an informal phrase to a canonical item name.
// Synonym tables are configuration data; they are never derived from the catalog.
type SynonymRule struct {
	// Pattern is matched exactly against the normalised requested name.
	Pattern string `toml:"pattern" json:"pattern"`

	// Item is the canonical item name substituted for the requested name.
	Item string `toml:"item" json:"item"`

	// Modifiers are phrases resolved ahead of any caller-supplied modifiers.
	Modifiers []string `toml:"modifiers,omitempty" json:"modifiers,omitempty"`

	// Hint is an optional keyword used for containment matching
	// when exact label and name lookups fail.
	Hint string `toml:"hint,omitempty" json:"hint,omitempty"`
}

// Validate reports whether the rule can be used.
func (r SynonymRule) Validate() error {
	if r.Pattern == "" || r.Item == "" {
		return ErrInvalidInput
	}
	return nil
}
