package rules

// Set bundles a resolved collection of named rules with the priority
// order the matcher walks them in. Unknown rule names referenced from
// priorities are dropped at construction rather than reported, so the
// matcher never consults an unresolvable name.
type Set struct {
	byName     map[string]Rule
	order      []string // declaration order: builtins, then configured
	priorities []string
}

// NewSet builds a Set from configured (on top of the always-available
// built-ins and the supplemental same_link_host rule) and priorities.
//
// Declaration order (builtins and same_link_host, then configured, in
// the order given) is preserved and exposed via Ordered: a rule with a
// prev_sibling_rule/next_sibling_rule must be declared after the rule
// it references, so that a single forward pass over Ordered computes
// every rule's prerequisites before the rule itself.
func NewSet(configured []Rule, priorities []string) *Set {
	byName := make(map[string]Rule)
	var order []string

	add := func(r Rule) {
		if _, exists := byName[r.Name]; !exists {
			order = append(order, r.Name)
		}
		byName[r.Name] = r
	}

	for _, r := range Builtins() {
		add(r)
	}
	add(SameLinkHost)
	for _, r := range configured {
		add(r)
	}

	resolved := make([]string, 0, len(priorities))
	for _, name := range priorities {
		if _, ok := byName[name]; ok {
			resolved = append(resolved, name)
		}
	}

	return &Set{byName: byName, order: order, priorities: resolved}
}

// Default returns the Set used when no configuration is supplied.
func Default() *Set {
	return NewSet(DefaultRules(), DefaultPriorities())
}

// Rule looks up a rule by name.
func (s *Set) Rule(name string) (Rule, bool) {
	r, ok := s.byName[name]
	return r, ok
}

// Priorities returns the matching priority order, already filtered to
// names that resolved to a known rule.
func (s *Set) Priorities() []string {
	return s.priorities
}

// Ordered returns every known rule in declaration order: builtins and
// same_link_host first, then configured rules in the order supplied to
// NewSet. A fingerprinting pass that evaluates rules in this order is
// guaranteed to have already computed any rule named as a
// prev_sibling_rule/next_sibling_rule before it is needed, since a
// configuration only composes by referencing a rule declared earlier.
func (s *Set) Ordered() []Rule {
	rules := make([]Rule, 0, len(s.order))
	for _, name := range s.order {
		rules = append(rules, s.byName[name])
	}
	return rules
}
