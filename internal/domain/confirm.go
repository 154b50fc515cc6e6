package domain

import "strings"

// ConfirmVariant drives the visual treatment of a confirmation dialog.
type ConfirmVariant string

const (
	ConfirmWarning ConfirmVariant = "warning"
	ConfirmDanger  ConfirmVariant = "danger"
	ConfirmInfo    ConfirmVariant = "info"
	ConfirmSuccess ConfirmVariant = "success"
)

// ParseConfirmVariant returns the variant named by s, or ConfirmInfo.
func ParseConfirmVariant(s string) ConfirmVariant {
	switch v := ConfirmVariant(strings.ToLower(strings.TrimSpace(s))); v {
	case ConfirmWarning, ConfirmDanger, ConfirmSuccess:
		return v
	default:
		return ConfirmInfo
	}
}

// ButtonEmphasis maps the variant to the confirm button style.
func (v ConfirmVariant) ButtonEmphasis() string {
	switch v {
	case ConfirmDanger:
		return "destructive"
	case ConfirmWarning:
		return "caution"
	case ConfirmSuccess:
		return "positive"
	default:
		return "neutral"
	}
}

// ConfirmDialog is the yes/no prompt the frontend renders.
type ConfirmDialog struct {
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	ConfirmText string         `json:"confirmText"`
	CancelText  string         `json:"cancelText"`
	Variant     ConfirmVariant `json:"variant"`
	Emphasis    string         `json:"emphasis"`
}

// NewConfirmDialog fills in default button labels and the emphasis.
func NewConfirmDialog(title, message string, variant ConfirmVariant) ConfirmDialog {
	return ConfirmDialog{
		Title:       title,
		Message:     message,
		ConfirmText: "OK",
		CancelText:  "Cancel",
		Variant:     variant,
		Emphasis:    variant.ButtonEmphasis(),
	}
}

// ConfirmFromResult builds the error prompt for a failed operation.
// ok is false when r succeeded and nothing needs to be shown.
func ConfirmFromResult(title string, r Result) (ConfirmDialog, bool) {
	if r.Success {
		return ConfirmDialog{}, false
	}
	d := NewConfirmDialog(title, r.Error, ConfirmDanger)
	d.CancelText = ""
	return d, true
}
