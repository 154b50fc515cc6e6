package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mdnotes/internal/domain"
)

func TestParseConfirmVariant(t *testing.T) {
	assert.Equal(t, domain.ConfirmDanger, domain.ParseConfirmVariant("danger"))
	assert.Equal(t, domain.ConfirmWarning, domain.ParseConfirmVariant(" WARNING "))
	assert.Equal(t, domain.ConfirmSuccess, domain.ParseConfirmVariant("success"))
	assert.Equal(t, domain.ConfirmInfo, domain.ParseConfirmVariant("info"))
	assert.Equal(t, domain.ConfirmInfo, domain.ParseConfirmVariant("purple"))
	assert.Equal(t, domain.ConfirmInfo, domain.ParseConfirmVariant(""))
}

func TestButtonEmphasis(t *testing.T) {
	assert.Equal(t, "destructive", domain.ConfirmDanger.ButtonEmphasis())
	assert.Equal(t, "caution", domain.ConfirmWarning.ButtonEmphasis())
	assert.Equal(t, "positive", domain.ConfirmSuccess.ButtonEmphasis())
	assert.Equal(t, "neutral", domain.ConfirmInfo.ButtonEmphasis())
}

func TestConfirmFromResult(t *testing.T) {
	_, show := domain.ConfirmFromResult("Save failed", domain.OK())
	assert.False(t, show)

	d, show := domain.ConfirmFromResult("Save failed", domain.Fail("permission denied", nil))
	assert.True(t, show)
	assert.Equal(t, "Save failed", d.Title)
	assert.Equal(t, "permission denied", d.Message)
	assert.Equal(t, domain.ConfirmDanger, d.Variant)
	assert.Equal(t, "destructive", d.Emphasis)
	assert.Empty(t, d.CancelText)
}

func TestNewConfirmDialog_Defaults(t *testing.T) {
	d := domain.NewConfirmDialog("Delete note?", "This cannot be undone.", domain.ConfirmWarning)
	assert.Equal(t, "OK", d.ConfirmText)
	assert.Equal(t, "Cancel", d.CancelText)
	assert.Equal(t, "caution", d.Emphasis)
}
