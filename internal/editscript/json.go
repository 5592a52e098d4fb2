package editscript

import "encoding/json"

// MarshalJSON renders steps as the external wire contract: a JSON
// array of tagged step objects, each carrying its own "action" field.
// No further wrapping is needed since every concrete Step already
// marshals to its documented shape via its own json tags.
func MarshalJSON(steps []Step) ([]byte, error) {
	return json.Marshal(steps)
}
