// Package transcript computes content-addressed identifiers for conversations.
//
// Each turn is hashed together with the hash of the turn before it, so two
// histories share a fingerprint only if they hold the same turns in the same
// order, and a history's fingerprint is reproducible from any copy of it.
// Nothing is stored; the fingerprint exists to correlate log lines for one
// conversation across stateless requests.
package transcript

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/papercomputeco/chatrelay/pkg/llm"
)

// link is the hash input for one turn.
type link struct {
	Turn   llm.Turn `json:"turn"`
	Parent string   `json:"parent,omitempty"`
}

// TurnHash returns the hash of turn chained onto parent. parent is empty for
// the first turn of a conversation.
func TurnHash(turn llm.Turn, parent string) string {
	// Canonical JSON encoding for deterministic hashing
	data, err := json.Marshal(link{Turn: turn, Parent: parent})
	if err != nil {
		panic("failed to marshal hash input: " + err.Error())
	}

	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Fingerprint returns the hash of the last turn of history, or "" for an
// empty history.
func Fingerprint(history []llm.Turn) string {
	var head string
	for _, t := range history {
		head = TurnHash(t, head)
	}
	return head
}
