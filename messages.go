package fieldpipe

import (
	"github.com/samber/lo"

	"github.com/reoring/fieldpipe/i18n"
)

// Messages maps check codes to human-readable failure messages.
type Messages map[string]string

// DefaultMessages returns a copy of the dictionary the current i18n
// Translator produces for every built-in check code.
func DefaultMessages() Messages { return Messages(i18n.Dictionary()) }

// Merge returns a new Messages holding m overlaid with overrides. Neither
// input is modified.
func (m Messages) Merge(overrides Messages) Messages {
	return lo.Assign(Messages{}, m, overrides)
}

// Lookup returns the message stored for code, or the dictionary default.
func (m Messages) Lookup(code string) string {
	if msg, ok := m[code]; ok {
		return msg
	}
	return i18n.T(code)
}
