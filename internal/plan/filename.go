package plan

import (
	"regexp"
	"strings"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SafeFileName replaces every character outside [A-Za-z0-9_-] with "_".
// An empty state yields "N_A".
func SafeFileName(state string) string {
	state = strings.TrimSpace(state)
	if state == "" {
		state = Placeholder
	}
	return unsafeFileChars.ReplaceAllString(state, "_")
}

// FileName is the attachment name for a plan: insurance-plan-<state>.pdf.
func FileName(state string) string {
	return "insurance-plan-" + SafeFileName(state) + ".pdf"
}
