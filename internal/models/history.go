package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidHistory = errors.New("history must be a string or a list of turns")

// Turn is one entry of a structured conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UnmarshalJSON accepts both {"role","parts":[...]} and {"role","content"}
// shapes. A missing role becomes "unknown" and missing content becomes empty.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("history turn must be an object: %w", err)
	}
	if raw == nil {
		return errors.New("history turn must be an object")
	}

	t.Role = "unknown"
	if role, ok := raw["role"]; ok {
		t.Role = stringify(role)
	}

	t.Content = ""
	if parts, ok := raw["parts"].([]any); ok {
		if len(parts) > 0 {
			t.Content = stringify(parts[0])
		}
	} else if content, ok := raw["content"]; ok {
		t.Content = stringify(content)
	}

	return nil
}

// History is either a raw transcript string or an ordered list of turns.
type History struct {
	Raw   string
	Turns []Turn
	// Structured is true when the history arrived as a list.
	Structured bool
}

func NewRawHistory(raw string) History {
	return History{Raw: raw}
}

func NewTurnHistory(turns ...Turn) History {
	return History{Turns: turns, Structured: true}
}

func (h *History) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrInvalidHistory
	}

	switch trimmed[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*h = NewRawHistory(raw)
	case '[':
		var turns []Turn
		if err := json.Unmarshal(trimmed, &turns); err != nil {
			return err
		}
		*h = NewTurnHistory(turns...)
	default:
		return ErrInvalidHistory
	}

	return nil
}

func (h History) MarshalJSON() ([]byte, error) {
	if h.Structured {
		if h.Turns == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(h.Turns)
	}
	return json.Marshal(h.Raw)
}

// Text flattens the history into the transcript fed to the model.
func (h History) Text() string {
	if !h.Structured {
		return h.Raw
	}

	var sb strings.Builder
	for _, turn := range h.Turns {
		sb.WriteString(turn.Role)
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Len is the number of structured turns, or -1 for a raw transcript.
func (h History) Len() int {
	if !h.Structured {
		return -1
	}
	return len(h.Turns)
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64, bool:
		return fmt.Sprint(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
