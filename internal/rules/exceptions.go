package rules

// Attribute names collapsed out of a rule's fingerprint when the
// corresponding AttrFilter flag is false. Kept as static, auditable
// lists rather than inline conditionals.
var (
	positionAttrs = []string{"x", "y", "cx", "cy"}
	styleAttrs    = []string{"fill", "stroke"}
)

// filteredAttrNames returns the sorted attribute names of attrNames
// that survive f, or nil if f is nil (no attributes participate).
func filteredAttrNames(attrNames []string, f *AttrFilter) []string {
	if f == nil {
		return nil
	}

	var ret []string
	for _, name := range attrNames {
		if f.IncludedAttr != nil && !contains(f.IncludedAttr, name) {
			continue
		}
		if contains(f.ExcludeAttr, name) {
			continue
		}
		if !f.WithPos && contains(positionAttrs, name) {
			continue
		}
		if !f.WithStyle && contains(styleAttrs, name) {
			continue
		}
		ret = append(ret, name)
	}
	return ret
}
