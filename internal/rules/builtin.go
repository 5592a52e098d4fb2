package rules

func boolPtr(b bool) *bool { return &b }

// All is the built-in "everything, children in order" rule: every
// attribute (with_pos/with_style both on), text, and children folded
// in document order.
var All = Rule{
	Name:         "all",
	Attr:         &AttrFilter{WithPos: true, WithStyle: true},
	Recursive:    true,
	SortChildren: false,
}

// AllSubtrees is the built-in attribute-agnostic rule: no attributes,
// no text, but every descendant still contributes.
var AllSubtrees = Rule{
	Name:        "all_subtrees",
	Attr:        nil,
	IncludeText: boolPtr(false),
	Recursive:   true,
}

// AllWithoutSubtrees is the built-in "everything local, no
// descendants" rule.
var AllWithoutSubtrees = Rule{
	Name:      "all_without_subtrees",
	Attr:      &AttrFilter{WithPos: true, WithStyle: true},
	Recursive: false,
}

// Builtins returns the always-available rules, addressable by name
// from any configuration regardless of which rules a caller supplies.
func Builtins() []Rule {
	return []Rule{All, AllSubtrees, AllWithoutSubtrees}
}

// DefaultRules is the rule list used when no configuration is
// supplied.
//
// same_text_in_text is declared first: next_is_same_text folds in the
// next sibling's digest under it, and a sibling rule may only
// reference a rule declared earlier.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:        "same_text_in_text",
			ApplyToTags: []string{"text"},
			Attr:        nil,
			Recursive:   false,
		},
		{
			Name:            "next_is_same_text",
			Attr:            &AttrFilter{IncludedAttr: []string{}, WithPos: true, WithStyle: true},
			Recursive:       false,
			NextSiblingRule: "same_text_in_text",
		},
		{
			Name:         "with_reorder",
			Attr:         &AttrFilter{WithPos: true, WithStyle: true},
			Recursive:    true,
			SortChildren: true,
		},
		{
			Name:         "without_attr",
			Attr:         nil,
			Recursive:    true,
			SortChildren: true,
		},
		{
			Name:         "without_text",
			Attr:         &AttrFilter{WithPos: true, WithStyle: true},
			IncludeText:  boolPtr(false),
			Recursive:    true,
			SortChildren: true,
		},
		{
			Name:         "only_tag",
			Attr:         nil,
			IncludeText:  boolPtr(false),
			Recursive:    true,
			SortChildren: true,
		},
	}
}

// DefaultPriorities is the matching priority order used when no
// configuration is supplied.
func DefaultPriorities() []string {
	return []string{"next_is_same_text", "all", "with_reorder", "without_attr", "without_text", "only_tag"}
}

// SameLinkHost is a supplemental built-in rule (not in
// DefaultPriorities, but always registered and selectable): it applies
// only to tags carrying an "href" or "xlink:href" attribute, and folds in the
// canonicalised link host computed by internal/hostlink rather than
// the raw attribute text, so two documents that link to the same
// resource across a scheme/case/punycode rewrite still match.
var SameLinkHost = Rule{
	Name:      "same_link_host",
	Attr:      &AttrFilter{IncludedAttr: []string{"href", "xlink:href"}, WithPos: true, WithStyle: true},
	Recursive: false,
}
