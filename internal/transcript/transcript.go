// Package transcript reads conversation exports.
//
// Parsing is strict only about structure: the payload must be a well-formed
// JSON object. Every field inside it is optional and falls back to a
// documented default when missing or of the wrong type.
package transcript

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/alnah/go-chat2doc/internal/dateutil"
)

// ErrInvalidPayload indicates the payload is not a JSON object.
var ErrInvalidPayload = errors.New("invalid conversation payload")

// Fallbacks applied to missing fields.
const (
	NotAvailable = "N/A"
	UnknownRole  = "unknown"
	TextKind     = "text"
)

// Known roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Pasted extras are the only extras that carry renderable content.
const (
	ExtraKindText   = "TEXT"
	ExtraNamePasted = "Pasted"
)

// Transcript is a parsed export.
type Transcript struct {
	Conversation Conversation
	Messages     []Message
}

// Conversation holds conversation-level metadata.
type Conversation struct {
	ID           string
	Name         string
	LastModified dateutil.EpochMillis
	CurrentNode  string
}

// Message is one entry of the conversation.
type Message struct {
	Role      string
	Content   string
	Kind      string
	Timestamp dateutil.EpochMillis
	Model     string   // empty when absent
	Timings   *Timings // nil when absent or empty
	Extras    []ExtraItem
}

// ExtraItem is content attached to a message.
type ExtraItem struct {
	Kind    string
	Name    string
	Content string
}

// IsPasted reports whether the item contributes rendered content.
func (e ExtraItem) IsPasted() bool {
	return e.Kind == ExtraKindText && e.Name == ExtraNamePasted
}

// Timings carries generation statistics reported by the model server.
type Timings struct {
	PromptTokens Count
	PromptMs     float64
	OutputTokens Count
	OutputMs     float64
}

// Count is an optional integer statistic.
type Count struct {
	Value int64
	Valid bool
}

// String returns the number, or "N/A" when absent.
func (c Count) String() string {
	if !c.Valid {
		return NotAvailable
	}
	return strconv.FormatInt(c.Value, 10)
}

// Parse decodes a conversation export. It fails only when data is not valid
// JSON or its top level is not an object.
func Parse(data []byte) (*Transcript, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidPayload)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top-level value must be an object, got %s", ErrInvalidPayload, root.Type)
	}

	t := &Transcript{Conversation: parseConversation(root.Get("conv"))}
	root.Get("messages").ForEach(func(_, value gjson.Result) bool {
		if value.IsObject() {
			t.Messages = append(t.Messages, parseMessage(value))
		}
		return true
	})
	return t, nil
}

func parseConversation(v gjson.Result) Conversation {
	return Conversation{
		ID:           stringOr(v.Get("id"), NotAvailable),
		Name:         stringOr(v.Get("name"), NotAvailable),
		LastModified: epochOrZero(v.Get("lastModified")),
		CurrentNode:  stringOr(v.Get("currNode"), NotAvailable),
	}
}

func parseMessage(v gjson.Result) Message {
	m := Message{
		Role:      stringOr(v.Get("role"), UnknownRole),
		Content:   stringOr(v.Get("content"), ""),
		Kind:      stringOr(v.Get("type"), TextKind),
		Timestamp: epochOrZero(v.Get("timestamp")),
		Model:     stringOr(v.Get("model"), ""),
		Timings:   parseTimings(v.Get("timings")),
	}
	v.Get("extra").ForEach(func(_, item gjson.Result) bool {
		// Non-object entries are ignored.
		if item.IsObject() {
			m.Extras = append(m.Extras, ExtraItem{
				Kind:    stringOr(item.Get("type"), ""),
				Name:    stringOr(item.Get("name"), ""),
				Content: stringOr(item.Get("content"), ""),
			})
		}
		return true
	})
	return m
}

func parseTimings(v gjson.Result) *Timings {
	if !v.IsObject() || len(v.Map()) == 0 {
		return nil
	}
	return &Timings{
		PromptTokens: countOf(v.Get("prompt_n")),
		PromptMs:     floatOrZero(v.Get("prompt_ms")),
		OutputTokens: countOf(v.Get("predicted_n")),
		OutputMs:     floatOrZero(v.Get("predicted_ms")),
	}
}

// stringOr returns the field's text, or def when the field is missing or null.
// Scalars of other types are rendered as their JSON text.
func stringOr(v gjson.Result, def string) string {
	switch v.Type {
	case gjson.Null:
		return def
	case gjson.String:
		return v.Str
	default:
		return v.Raw
	}
}

// epochOrZero reads an epoch-millisecond field. Missing fields count as 0;
// values that are not integral numbers keep only their literal form.
func epochOrZero(v gjson.Result) dateutil.EpochMillis {
	switch v.Type {
	case gjson.Null:
		return dateutil.Millis(0)
	case gjson.Number:
		if ms, err := strconv.ParseInt(v.Raw, 10, 64); err == nil {
			return dateutil.Millis(ms)
		}
		f := v.Num
		if f >= -(1<<53) && f <= 1<<53 {
			ms := int64(f)
			return dateutil.EpochMillis{Millis: ms, Numeric: true, Literal: v.Raw}
		}
		return dateutil.Literal(v.Raw)
	case gjson.String:
		return dateutil.Literal(v.Str)
	default:
		return dateutil.Literal(v.Raw)
	}
}

func countOf(v gjson.Result) Count {
	if v.Type != gjson.Number {
		return Count{}
	}
	n, err := strconv.ParseInt(v.Raw, 10, 64)
	if err != nil {
		if v.Num != float64(int64(v.Num)) {
			return Count{}
		}
		n = int64(v.Num)
	}
	return Count{Value: n, Valid: true}
}

func floatOrZero(v gjson.Result) float64 {
	if v.Type != gjson.Number {
		return 0
	}
	return v.Num
}
