// Package rules implements the declarative "what counts as equal"
// predicates that internal/fingerprint folds into per-node digests,
// and the default/built-in rule sets used when a caller supplies no
// configuration.
package rules

// AttrFilter controls which of a tag's attributes participate in a
// rule's fingerprint. A nil *AttrFilter on a Rule means no attributes
// participate at all.
type AttrFilter struct {
	// IncludedAttr, when non-nil, is the exhaustive whitelist of
	// attribute names that may participate; a non-nil empty slice
	// means no attribute passes (as the built-in next_is_same_text
	// rule uses to mean "care about tag/text/sibling only").
	IncludedAttr []string `yaml:"included_attr,omitempty"`

	// ExcludeAttr removes names from whatever IncludedAttr (or, absent
	// that, every attribute) would otherwise allow through.
	ExcludeAttr []string `yaml:"exclude_attr,omitempty"`

	// WithPos and WithStyle control the position/style exemption
	// lists in exceptions.go.
	WithPos   bool `yaml:"with_pos"`
	WithStyle bool `yaml:"with_style"`
}

// Rule is one named fingerprinting predicate, evaluated bottom-up by
// internal/fingerprint.
type Rule struct {
	Name string `yaml:"name"`

	ApplyToTags     []string `yaml:"apply_to_tags,omitempty"`
	DontApplyToTags []string `yaml:"dont_apply_to_tags,omitempty"`

	Attr *AttrFilter `yaml:"attr,omitempty"`

	// IncludeText defaults to true when nil.
	IncludeText *bool `yaml:"include_text,omitempty"`

	Recursive     bool   `yaml:"recursive"`
	ChildrensRule string `yaml:"childrens_rule,omitempty"`
	SortChildren  bool   `yaml:"sort_children,omitempty"`

	PrevSiblingRule string `yaml:"prev_sibling_rule,omitempty"`
	NextSiblingRule string `yaml:"next_sibling_rule,omitempty"`
}

// IncludesText reports whether r folds in a tag's text, honouring the
// "defaults to true" rule for an omitted include_text field.
func (r Rule) IncludesText() bool {
	if r.IncludeText == nil {
		return true
	}
	return *r.IncludeText
}

// ChildRuleName returns the rule name r's children should be evaluated
// under: its own name childrens_rule is unset.
func (r Rule) ChildRuleName() string {
	if r.ChildrensRule != "" {
		return r.ChildrensRule
	}
	return r.Name
}

// AppliesToTag reports whether r is defined for an element named tag,
// per its whitelist/blacklist.
func (r Rule) AppliesToTag(tag string) bool {
	if len(r.ApplyToTags) > 0 && !contains(r.ApplyToTags, tag) {
		return false
	}
	return !contains(r.DontApplyToTags, tag)
}

// FilterAttrNames returns the sorted attribute names of names that
// survive r's attribute filter, or nil if r.Attr is nil.
func (r Rule) FilterAttrNames(names []string) []string {
	return filteredAttrNames(names, r.Attr)
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
