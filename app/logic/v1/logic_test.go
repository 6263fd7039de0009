package v1

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

func TestRecoveryTargetMatrix(t *testing.T) {
	assert.Equal(t, StateIntroAgreement, RecoveryTarget(nil))
	assert.Equal(t, StateIntroAgreement, RecoveryTarget(&types.UserState{}))
	assert.Equal(t, StateIntroAccessDenied, RecoveryTarget(&types.UserState{AccountID: 5}))
	assert.Equal(t, StateMainMenu, RecoveryTarget(&types.UserState{AccountID: 5, OrganizationID: 9}))
}

func TestClampCursor(t *testing.T) {
	assert.Equal(t, 0, clampCursor(-1, 3))
	assert.Equal(t, 0, clampCursor(0, 3))
	assert.Equal(t, 2, clampCursor(2, 3))
	assert.Equal(t, 2, clampCursor(3, 3))
	assert.Equal(t, 0, clampCursor(0, 0))
}

func TestRemoveAtAdvancesAndClamps(t *testing.T) {
	items := []string{"a", "b", "c"}

	// Removing in the middle keeps the cursor on the successor.
	items, cursor := removeAt(items, 1)
	assert.Equal(t, []string{"a", "c"}, items)
	assert.Equal(t, 1, cursor)

	// Removing the last item clamps back.
	items, cursor = removeAt(items, cursor)
	assert.Equal(t, []string{"a"}, items)
	assert.Equal(t, 0, cursor)

	items, cursor = removeAt(items, cursor)
	assert.Empty(t, items)
	assert.Equal(t, 0, cursor)
}

func TestPublicationTextCaps(t *testing.T) {
	data := &GeneratePublicationData{}
	assert.Equal(t, types.PUBLICATION_TEXT_LIMIT_PLAIN, data.TextLimit())

	data.ImageFileID = "AgAC123"
	assert.Equal(t, types.PUBLICATION_TEXT_LIMIT_WITH_IMAGE, data.TextLimit())

	data.Text = string(make([]rune, types.PUBLICATION_TEXT_LIMIT_WITH_IMAGE))
	assert.False(t, data.TextTooLong())
	data.Text += "x"
	assert.True(t, data.TextTooLong())

	// Dropping the image lifts the cap.
	data.ImageFileID = ""
	assert.False(t, data.TextTooLong())
}

func TestSelectedNetworksRequiresOne(t *testing.T) {
	data := &GeneratePublicationData{Networks: map[string]bool{
		types.SOCIAL_NETWORK_TELEGRAM:  false,
		types.SOCIAL_NETWORK_VKONTAKTE: false,
	}}
	assert.Empty(t, data.selectedNetworks())

	data.Networks[types.SOCIAL_NETWORK_TELEGRAM] = true
	assert.Equal(t, []string{types.SOCIAL_NETWORK_TELEGRAM}, data.selectedNetworks())
}

func TestImageBackupRoundTrip(t *testing.T) {
	data := &GeneratePublicationData{ImageFileID: "file-1"}

	original := data.currentImage()
	assert.Equal(t, types.IMAGE_SOURCE_FILE_ID, original.Type)

	// Regeneration applied, then rejected: the original returns intact.
	data.applyImage(types.URLBackup("https://img.example/a.png", 0))
	assert.Equal(t, "https://img.example/a.png", data.ImageURL)
	assert.Empty(t, data.ImageFileID)

	data.applyImage(original)
	assert.Equal(t, "file-1", data.ImageFileID)
	assert.Empty(t, data.ImageURL)

	// The union survives the session codec byte for byte.
	raw, err := json.Marshal(original)
	require.NoError(t, err)
	var decoded types.ImageBackup
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}

func TestImageBackupRejectsUnknownSource(t *testing.T) {
	var b types.ImageBackup
	err := json.Unmarshal([]byte(`{"type":"inline","value":"zzz"}`), &b)
	assert.Error(t, err)
}

func TestIsYoutubeReference(t *testing.T) {
	assert.True(t, isYoutubeReference("https://www.youtube.com/watch?v=abc"))
	assert.True(t, isYoutubeReference("https://youtu.be/abc"))
	assert.True(t, isYoutubeReference(" https://m.youtube.com/watch?v=abc "))
	assert.False(t, isYoutubeReference("https://vimeo.com/123"))
	assert.False(t, isYoutubeReference("youtube.com/watch"))
	assert.False(t, isYoutubeReference("not a url"))
}

func TestFlipCandidateAlternatesImages(t *testing.T) {
	data := &GeneratePublicationData{
		PreviousGenerationBackup: types.FileIDBackup("file-old"),
		CandidateImage:           types.URLBackup("https://img.example/new.png", 0),
	}

	data.flipCandidate()
	assert.Equal(t, "file-old", data.CandidateImage.Value)
	assert.Equal(t, "https://img.example/new.png", data.PreviousGenerationBackup.Value)

	// Flipping again restores the fresh candidate.
	data.flipCandidate()
	assert.Equal(t, "https://img.example/new.png", data.CandidateImage.Value)
	assert.Equal(t, "file-old", data.PreviousGenerationBackup.Value)
}
