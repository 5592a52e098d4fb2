// Package editscript builds the typed add/remove/move/change edit
// script that transforms an identified origin SVG into its matched
// target, and serialises it to the external JSON wire contract.
//
// Dynamic polymorphism is replaced by a closed set of concrete step
// types, each carrying its own Action tag as an ordinary JSON field,
// the same tagged-variant shape internal/attr uses for attribute
// values.
package editscript

// Action names one of the five step kinds. The string values are
// part of the external wire contract and must not change.
type Action string

const (
	ActionAdd        Action = "add"
	ActionRemove     Action = "remove"
	ActionMove       Action = "move"
	ActionChange     Action = "change"
	ActionChangeText Action = "change_text"
)

// Step is satisfied by every concrete step type. It exists so a
// script can be held as []Step; the JSON encoding of a []Step slice
// comes directly from each concrete type's own exported fields, with
// no further indirection needed.
type Step interface {
	action() Action
}

// Add inserts a newly-serialised subtree under ParentID, between the
// named siblings (after all adds/removes are conceptually applied).
type Add struct {
	Action      Action  `json:"action"`
	SVG         string  `json:"svg"`
	ID          string  `json:"id"`
	ParentID    string  `json:"parent_id"`
	PrevChildID *string `json:"prev_child_id,omitempty"`
	NextChildID *string `json:"next_child_id,omitempty"`
}

func (Add) action() Action { return ActionAdd }

// Remove deletes the subtree identified by ID. The sibling context is
// read from the origin tree as it stood before the diff.
type Remove struct {
	Action      Action  `json:"action"`
	ID          string  `json:"id"`
	ParentID    string  `json:"parent_id"`
	PrevChildID *string `json:"prev_child_id,omitempty"`
	NextChildID *string `json:"next_child_id,omitempty"`
}

func (Remove) action() Action { return ActionRemove }

// Move relocates the already-matched node identified by ID to a new
// position, possibly under a new parent.
type Move struct {
	Action         Action  `json:"action"`
	ID             string  `json:"id"`
	NewParentID    string  `json:"new_parent_id"`
	NewPrevChildID *string `json:"new_prev_child_id,omitempty"`
	NewNextChildID *string `json:"new_next_child_id,omitempty"`
}

func (Move) action() Action { return ActionMove }

// PropValue is one attribute add or removal: the attribute's name and
// the single value it took on the side where it existed.
type PropValue struct {
	Prop  string `json:"prop"`
	Value string `json:"value"`
}

// PropChange is one attribute whose value differs between origin and
// target.
type PropChange struct {
	Prop  string `json:"prop"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ChangeProperties carries the attribute-map delta of a matched node
// whose InternalChanges flag is set.
type ChangeProperties struct {
	Action  Action       `json:"action"`
	ID      string       `json:"id"`
	Adds    []PropValue  `json:"adds,omitempty"`
	Removes []PropValue  `json:"removes,omitempty"`
	Changes []PropChange `json:"changes,omitempty"`
}

func (ChangeProperties) action() Action { return ActionChange }

// ChangeText replaces the text content of a matched node.
type ChangeText struct {
	Action  Action `json:"action"`
	ID      string `json:"id"`
	NewText string `json:"new_text"`
}

func (ChangeText) action() Action { return ActionChangeText }
