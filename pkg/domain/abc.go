package domain

import "strings"

// ABCRecord captures an episode using the cognitive-behavioral ABC model.
type ABCRecord struct {
	// A is the activating event.
	A string `json:"a"`
	// B is the triggering belief.
	B string `json:"b"`
	// C is the emotional consequence.
	C string `json:"c"`
}

// Complete reports whether all three fields hold non-blank text.
func (r ABCRecord) Complete() bool {
	return strings.TrimSpace(r.A) != "" &&
		strings.TrimSpace(r.B) != "" &&
		strings.TrimSpace(r.C) != ""
}
