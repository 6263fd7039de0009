package dialogs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postiq-ai/postiq-bot/app/dialog"
	v1 "github.com/postiq-ai/postiq-bot/app/logic/v1"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

func windowOf(t *testing.T, d *dialog.Dialog, state dialog.State) *dialog.Window {
	t.Helper()
	for _, w := range d.Windows {
		if w.State == state {
			return w
		}
	}
	t.Fatalf("window %s not found in %s", state, d.ID)
	return nil
}

func findButton(t *testing.T, w *dialog.Window, id string) dialog.Button {
	t.Helper()
	for _, wd := range w.Widgets {
		if row, ok := wd.(dialog.Row); ok {
			for _, inner := range row.Buttons {
				if b, ok := inner.(dialog.Button); ok && b.ID == id {
					return b
				}
			}
		}
	}
	t.Fatalf("button %s not found in %s", id, w.State)
	return dialog.Button{}
}

func buttonIDs(w *dialog.Window) []string {
	var ids []string
	for _, wd := range w.Widgets {
		switch b := wd.(type) {
		case dialog.Button:
			ids = append(ids, b.ID)
		case dialog.Row:
			for _, inner := range b.Buttons {
				if btn, ok := inner.(dialog.Button); ok {
					ids = append(ids, btn.ID)
				}
			}
		}
	}
	return ids
}

func TestConfirmImageOffersFlip(t *testing.T) {
	w := windowOf(t, NewGeneratePublicationDialog(nil), v1.StateGenPubConfirmImage)

	flip := findButton(t, w, "flip")
	require.NotNil(t, flip.Visible)

	// No earlier generation: nothing to flip to.
	assert.False(t, flip.Visible(&v1.GeneratePublicationData{}))
	assert.True(t, flip.Visible(&v1.GeneratePublicationData{
		PreviousGenerationBackup: types.FileIDBackup("file-old"),
	}))
}

func TestRegenerateFailureBannerRendersOnEditMenu(t *testing.T) {
	w := windowOf(t, NewGeneratePublicationDialog(nil), v1.StateGenPubEditTextMenu)

	var banner *dialog.Format
	for _, wd := range w.Widgets {
		if f, ok := wd.(dialog.Format); ok && f.Visible != nil {
			banner = &f
			break
		}
	}
	require.NotNil(t, banner, "edit menu carries no conditional banner")
	assert.False(t, banner.Visible(&v1.GeneratePublicationData{}))
	assert.True(t, banner.Visible(&v1.GeneratePublicationData{ProcessingError: true}))
}

func TestModerationEntriesLiveInContentMenu(t *testing.T) {
	content := windowOf(t, NewContentMenuDialog(nil), v1.StateContentMenu)
	ids := buttonIDs(content)
	assert.Contains(t, ids, "mod_pub")
	assert.Contains(t, ids, "mod_cut")

	// An exhausted moderation list pops back to its parent, which must
	// be the content menu rather than the main menu.
	main := windowOf(t, NewMainMenuDialog(nil), v1.StateMainMenu)
	ids = buttonIDs(main)
	assert.NotContains(t, ids, "mod_pub")
	assert.NotContains(t, ids, "mod_cut")
}
