package llm

import "encoding/json"

// ChatResponse is the envelope returned to the client on success.
type ChatResponse struct {
	Success             bool   `json:"success"`
	Response            string `json:"response"`
	ConversationHistory []Turn `json:"conversationHistory"`
}

// GeneratedTextKeys lists, in priority order, the fields an inference
// endpoint may put its generated text under.
var GeneratedTextKeys = []string{"generated_text", "text", "response", "result"}

// InferenceResponse is the decoded body of an inference endpoint reply. Its
// shape varies between servers, so it is kept untyped.
type InferenceResponse map[string]any

// ExtractText returns the value of the first key in GeneratedTextKeys holding
// a truthy value. Strings are returned as-is; any other truthy value is
// returned as its JSON encoding.
func (r InferenceResponse) ExtractText() (string, bool) {
	for _, key := range GeneratedTextKeys {
		v, ok := r[key]
		if !ok || !truthy(v) {
			continue
		}
		if s, ok := v.(string); ok {
			return s, true
		}
		data, err := json.Marshal(v)
		if err != nil {
			continue
		}
		return string(data), true
	}
	return "", false
}

// truthy reports whether a decoded JSON value counts as present.
// null, false, 0, "", [] and {} do not.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
