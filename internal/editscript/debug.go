package editscript

import (
	"fmt"
	"strings"
)

// MarshalDebug renders steps to a verbose, human-readable listing,
// one line per step, used in tests. This
// format is private and may change without notice.
func MarshalDebug(steps []Step) []byte {
	var b strings.Builder
	for _, s := range steps {
		writeStepDebug(&b, s)
	}
	return []byte(b.String())
}

func writeStepDebug(b *strings.Builder, s Step) {
	switch v := s.(type) {
	case Add:
		fmt.Fprintf(b, "add      id=%s parent=%s prev=%s next=%s\n",
			v.ID, v.ParentID, derefOr(v.PrevChildID, "-"), derefOr(v.NextChildID, "-"))
	case Remove:
		fmt.Fprintf(b, "remove   id=%s parent=%s prev=%s next=%s\n",
			v.ID, v.ParentID, derefOr(v.PrevChildID, "-"), derefOr(v.NextChildID, "-"))
	case Move:
		fmt.Fprintf(b, "move     id=%s new_parent=%s new_prev=%s new_next=%s\n",
			v.ID, v.NewParentID, derefOr(v.NewPrevChildID, "-"), derefOr(v.NewNextChildID, "-"))
	case ChangeProperties:
		fmt.Fprintf(b, "change   id=%s adds=%d removes=%d changes=%d\n", v.ID, len(v.Adds), len(v.Removes), len(v.Changes))
		for _, a := range v.Adds {
			fmt.Fprintf(b, "             + %s=%q\n", a.Prop, a.Value)
		}
		for _, r := range v.Removes {
			fmt.Fprintf(b, "             - %s=%q\n", r.Prop, r.Value)
		}
		for _, c := range v.Changes {
			fmt.Fprintf(b, "             ~ %s: %q -> %q\n", c.Prop, c.Start, c.End)
		}
	case ChangeText:
		fmt.Fprintf(b, "chg_text id=%s new_text=%q\n", v.ID, v.NewText)
	default:
		panic("editscript: unknown step type")
	}
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
