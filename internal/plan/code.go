package plan

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// CodePrefix marks a share code.
const CodePrefix = "IF-"

// maxCodeLen bounds what DecodeSelection will look at.
const maxCodeLen = 256

// compactSelection keeps share codes short.
type compactSelection struct {
	State     string `json:"s,omitempty"`
	Age       string `json:"a,omitempty"`
	Ownership string `json:"o,omitempty"`
	History   string `json:"h,omitempty"`
	Goal      string `json:"g,omitempty"`
}

// EncodeSelection packs sel into a URL-safe share code.
func EncodeSelection(sel Selection) (string, error) {
	sel = sel.Trimmed()
	data, err := json.Marshal(compactSelection(sel))
	if err != nil {
		return "", err
	}
	return CodePrefix + base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeSelection reverses EncodeSelection. Every failure wraps ErrInvalidCode.
func DecodeSelection(code string) (Selection, error) {
	code = strings.TrimSpace(code)
	if !strings.HasPrefix(code, CodePrefix) {
		return Selection{}, fmt.Errorf("%w: missing prefix", ErrInvalidCode)
	}
	if len(code) > maxCodeLen {
		return Selection{}, fmt.Errorf("%w: too long", ErrInvalidCode)
	}

	data, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(code, CodePrefix))
	if err != nil {
		return Selection{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	var c compactSelection
	if err := json.Unmarshal(data, &c); err != nil {
		return Selection{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	return Selection(c).Trimmed(), nil
}
