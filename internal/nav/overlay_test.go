package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlay_ZeroValueIsClosed(t *testing.T) {
	var o Overlay
	assert.False(t, o.Active())
	assert.Equal(t, WidgetNone, o.Widget())
	assert.Equal(t, ModeNormal, o.Mode())
}

func TestOverlay_EditingOnlyInRenameInput(t *testing.T) {
	widgets := []Widget{
		WidgetHelp, WidgetRenameInput, WidgetAddJob, WidgetAddJobConfirm,
		WidgetRemoveJobConfirm, WidgetColumnPicker,
	}
	for _, w := range widgets {
		t.Run(w.String(), func(t *testing.T) {
			var o Overlay
			o.Open(w)
			assert.True(t, o.Active())
			assert.Equal(t, w, o.Widget())
			if w == WidgetRenameInput {
				assert.Equal(t, ModeEditing, o.Mode())
			} else {
				assert.Equal(t, ModeNormal, o.Mode())
			}
		})
	}
}

func TestOverlay_LeavingRenameResetsMode(t *testing.T) {
	var o Overlay
	o.Open(WidgetRenameInput)
	o.Open(WidgetHelp)
	assert.Equal(t, ModeNormal, o.Mode())

	o.Open(WidgetRenameInput)
	o.Close()
	assert.False(t, o.Active())
	assert.Equal(t, ModeNormal, o.Mode())
}
