package v1

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/clients"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

// GeneratePublicationData is the FSM state of the richest dialog. The
// preview window is the hub; every edit path returns to it.
type GeneratePublicationData struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
	UserText     string `json:"user_text"`

	Title string   `json:"title"`
	Text  string   `json:"text"`
	Tags  []string `json:"tags"`

	ImageURL    string `json:"image_url"`
	ImageFileID string `json:"image_file_id"`

	// HasChanges gates the save button after the publication exists.
	HasChanges    bool   `json:"has_changes"`
	PublicationID string `json:"publication_id"`

	// OriginalImageBackup is written once before the first image
	// regeneration and restored on reject. PreviousGenerationBackup is
	// refreshed on every regeneration for the old/new flip.
	OriginalImageBackup      types.ImageBackup `json:"original_image_backup"`
	PreviousGenerationBackup types.ImageBackup `json:"previous_generation_backup"`
	CandidateImage           types.ImageBackup `json:"candidate_image"`

	Networks     map[string]bool `json:"networks"`
	NetworkError bool            `json:"network_error"`

	InputInvalid    bool   `json:"input_invalid"`
	ProcessingError bool   `json:"processing_error"`
	Outcome         string `json:"outcome"`
}

func (GeneratePublicationData) DialogID() string { return DialogGeneratePublication }

func NewGeneratePublicationData() session.Data {
	return &GeneratePublicationData{Networks: map[string]bool{}}
}

func (d *GeneratePublicationData) HasImage() bool {
	return d.ImageURL != "" || d.ImageFileID != ""
}

func (d *GeneratePublicationData) currentImage() types.ImageBackup {
	if d.ImageFileID != "" {
		return types.FileIDBackup(d.ImageFileID)
	}
	if d.ImageURL != "" {
		return types.URLBackup(d.ImageURL, 0)
	}
	return types.ImageBackup{}
}

// flipCandidate trades the shown candidate for the previous generation
// so the confirm window can alternate between the two.
func (d *GeneratePublicationData) flipCandidate() {
	d.CandidateImage, d.PreviousGenerationBackup = d.PreviousGenerationBackup, d.CandidateImage
}

func (d *GeneratePublicationData) applyImage(b types.ImageBackup) {
	switch b.Type {
	case types.IMAGE_SOURCE_FILE_ID:
		d.ImageFileID = b.Value
		d.ImageURL = ""
	case types.IMAGE_SOURCE_URL:
		d.ImageURL = b.Value
		d.ImageFileID = ""
	default:
		d.ImageURL = ""
		d.ImageFileID = ""
	}
}

// TextLimit is the soft cap that applies to the current image state.
func (d *GeneratePublicationData) TextLimit() int {
	if d.HasImage() {
		return types.PUBLICATION_TEXT_LIMIT_WITH_IMAGE
	}
	return types.PUBLICATION_TEXT_LIMIT_PLAIN
}

func (d *GeneratePublicationData) TextTooLong() bool {
	return len([]rune(d.Text)) > d.TextLimit()
}

type GeneratePublicationService struct {
	core *core.Core
}

func NewGeneratePublicationService(core *core.Core) *GeneratePublicationService {
	return &GeneratePublicationService{core: core}
}

func (s *GeneratePublicationService) SelectCategory(c *dialog.Context, value, label string) error {
	var id int64
	if _, err := fmt.Sscanf(value, "%d", &id); err != nil {
		return errors.New("GeneratePublicationService.SelectCategory", "bad category id "+value, err).
			Kind(errors.KindValidation)
	}

	data := c.Data().(*GeneratePublicationData)
	data.CategoryID = id
	data.CategoryName = label
	c.SwitchTo(StateGenPubInputText)
	return nil
}

// SubmitText runs the initial generation under the long deadline. A
// timeout or transport failure stays on the generation window with a
// retry flag; it never transitions.
func (s *GeneratePublicationService) SubmitText(c *dialog.Context, text string) error {
	data := c.Data().(*GeneratePublicationData)
	data.UserText = text
	data.InputInvalid = false
	return s.generate(c, data)
}

func (s *GeneratePublicationService) Retry(c *dialog.Context) error {
	return s.generate(c, c.Data().(*GeneratePublicationData))
}

func (s *GeneratePublicationService) generate(c *dialog.Context, data *GeneratePublicationData) error {
	ctx, cancel := c.WithTimeout(c.GenerationTimeout())
	defer cancel()

	generated, err := s.core.Clients().Publication.GenerateText(ctx, clients.GenerateTextRequest{
		OrganizationID: c.User().OrganizationID,
		CategoryID:     data.CategoryID,
		UserText:       data.UserText,
	})
	if err != nil {
		if errors.IsKind(err, errors.KindInsufficientBalance) {
			return err
		}
		slog.Warn("publication generation failed", slog.Any("error", err))
		data.ProcessingError = true
		c.SwitchTo(StateGenPubGeneration)
		return nil
	}

	data.ProcessingError = false
	data.Title = generated.Title
	data.Text = generated.Text
	data.Tags = generated.Tags
	c.SwitchTo(StateGenPubPreview)
	return nil
}

func (s *GeneratePublicationService) RegenerateAll(c *dialog.Context) error {
	return s.regenerate(c, "")
}

func (s *GeneratePublicationService) RegenerateWithPrompt(c *dialog.Context, prompt string) error {
	return s.regenerate(c, prompt)
}

func (s *GeneratePublicationService) regenerate(c *dialog.Context, prompt string) error {
	data := c.Data().(*GeneratePublicationData)

	ctx, cancel := c.WithTimeout(c.GenerationTimeout())
	defer cancel()

	generated, err := s.core.Clients().Publication.RegenerateText(ctx, clients.RegenerateTextRequest{
		OrganizationID: c.User().OrganizationID,
		CategoryID:     data.CategoryID,
		PreviousText:   data.Text,
		Prompt:         prompt,
	})
	if err != nil {
		if errors.IsKind(err, errors.KindInsufficientBalance) {
			return err
		}
		slog.Warn("publication regeneration failed", slog.Any("error", err))
		// The edit menu carries the failure banner; landing on the
		// preview would hide the outcome behind the unchanged text.
		data.ProcessingError = true
		c.SwitchTo(StateGenPubEditTextMenu)
		return nil
	}

	data.ProcessingError = false
	data.Title = generated.Title
	data.Text = generated.Text
	data.Tags = generated.Tags
	data.HasChanges = true
	c.SwitchTo(StateGenPubPreview)
	return nil
}

func (s *GeneratePublicationService) EditTitle(c *dialog.Context, title string) error {
	data := c.Data().(*GeneratePublicationData)
	data.Title = title
	data.HasChanges = true
	data.InputInvalid = false
	c.SwitchTo(StateGenPubPreview)
	return nil
}

func (s *GeneratePublicationService) EditTags(c *dialog.Context, raw string) error {
	data := c.Data().(*GeneratePublicationData)
	data.Tags = lo.FilterMap(strings.Split(raw, ","), func(t string, _ int) (string, bool) {
		t = strings.TrimSpace(t)
		return t, t != ""
	})
	data.HasChanges = true
	data.InputInvalid = false
	c.SwitchTo(StateGenPubPreview)
	return nil
}

func (s *GeneratePublicationService) EditContent(c *dialog.Context, text string) error {
	data := c.Data().(*GeneratePublicationData)
	data.Text = text
	data.HasChanges = true
	data.InputInvalid = false
	if data.TextTooLong() {
		c.SwitchTo(StateGenPubTextTooLong)
		return nil
	}
	c.SwitchTo(StateGenPubPreview)
	return nil
}

func (s *GeneratePublicationService) MarkInvalid(c *dialog.Context, _ dialog.InputViolation) error {
	c.Data().(*GeneratePublicationData).InputInvalid = true
	return nil
}

// GenerateImage requests fresh images; the first candidate goes to the
// confirm window with both backups maintained.
func (s *GeneratePublicationService) GenerateImage(c *dialog.Context) error {
	return s.generateImage(c, "")
}

func (s *GeneratePublicationService) GenerateImageWithPrompt(c *dialog.Context, prompt string) error {
	return s.generateImage(c, prompt)
}

func (s *GeneratePublicationService) generateImage(c *dialog.Context, prompt string) error {
	data := c.Data().(*GeneratePublicationData)

	ctx, cancel := c.WithTimeout(c.GenerationTimeout())
	defer cancel()

	urls, err := s.core.Clients().Publication.GenerateImage(ctx, clients.GenerateImageRequest{
		OrganizationID:  c.User().OrganizationID,
		PublicationText: data.Text,
		Prompt:          prompt,
	})
	if err != nil {
		if errors.IsKind(err, errors.KindInsufficientBalance) {
			return err
		}
		slog.Warn("image generation failed", slog.Any("error", err))
		data.ProcessingError = true
		c.SwitchTo(StateGenPubImageMenu)
		return nil
	}
	if len(urls) == 0 {
		data.ProcessingError = true
		c.SwitchTo(StateGenPubImageMenu)
		return nil
	}

	if data.OriginalImageBackup.Empty() && data.HasImage() {
		data.OriginalImageBackup = data.currentImage()
	}
	data.PreviousGenerationBackup = data.currentImage()
	data.CandidateImage = types.URLBackup(urls[0], 0)
	data.ProcessingError = false
	c.SwitchTo(StateGenPubConfirmImage)
	return nil
}

// FlipCandidate swaps the shown image with the previous generation;
// pressing again swaps back.
func (s *GeneratePublicationService) FlipCandidate(c *dialog.Context) error {
	c.Data().(*GeneratePublicationData).flipCandidate()
	return nil
}

// ConfirmImage promotes the candidate to the publication image.
func (s *GeneratePublicationService) ConfirmImage(c *dialog.Context) error {
	data := c.Data().(*GeneratePublicationData)
	data.applyImage(data.CandidateImage)
	data.CandidateImage = types.ImageBackup{}
	data.HasChanges = true
	if data.TextTooLong() {
		c.SwitchTo(StateGenPubTextTooLong)
		return nil
	}
	c.SwitchTo(StateGenPubPreview)
	return nil
}

// RejectImage restores the pre-regeneration original.
func (s *GeneratePublicationService) RejectImage(c *dialog.Context) error {
	data := c.Data().(*GeneratePublicationData)
	data.applyImage(data.OriginalImageBackup)
	data.CandidateImage = types.ImageBackup{}
	c.SwitchTo(StateGenPubPreview)
	return nil
}

func (s *GeneratePublicationService) UploadImage(c *dialog.Context, media dialog.IncomingMedia) error {
	if media.PhotoFileID == "" {
		c.Data().(*GeneratePublicationData).InputInvalid = true
		return nil
	}

	data := c.Data().(*GeneratePublicationData)
	if data.OriginalImageBackup.Empty() && data.HasImage() {
		data.OriginalImageBackup = data.currentImage()
	}
	data.ImageFileID = media.PhotoFileID
	data.ImageURL = ""
	data.HasChanges = true
	data.InputInvalid = false

	c.DeleteUserMessage()
	c.ForceSend()

	if data.TextTooLong() {
		c.SwitchTo(StateGenPubTextTooLong)
		return nil
	}
	c.SwitchTo(StateGenPubPreview)
	return nil
}

func (s *GeneratePublicationService) RemoveImage(c *dialog.Context) error {
	data := c.Data().(*GeneratePublicationData)
	data.ImageURL = ""
	data.ImageFileID = ""
	data.HasChanges = true
	c.SwitchTo(StateGenPubPreview)
	return nil
}

// CompressText resolves the too-long alert by regenerating under the
// active limit.
func (s *GeneratePublicationService) CompressText(c *dialog.Context) error {
	data := c.Data().(*GeneratePublicationData)
	prompt := fmt.Sprintf("Сократи текст до %d символов, сохранив смысл.", data.TextLimit())
	return s.regenerate(c, prompt)
}

// SaveEdits persists accumulated edits to an existing publication.
func (s *GeneratePublicationService) SaveEdits(c *dialog.Context) error {
	data := c.Data().(*GeneratePublicationData)
	if data.PublicationID != "" {
		_, err := s.core.Clients().Publication.Change(c.Context(), data.PublicationID, clients.ChangePublicationRequest{
			Title:       lo.ToPtr(data.Title),
			Text:        lo.ToPtr(data.Text),
			Tags:        data.Tags,
			ImageURL:    lo.ToPtr(data.ImageURL),
			ImageFileID: lo.ToPtr(data.ImageFileID),
		})
		if err != nil {
			return errors.Trace("GeneratePublicationService.SaveEdits", err)
		}
	}
	data.HasChanges = false
	return nil
}

// OpenNetworkSelect guards the text caps before the submit step.
func (s *GeneratePublicationService) OpenNetworkSelect(c *dialog.Context) error {
	data := c.Data().(*GeneratePublicationData)
	if data.TextTooLong() {
		c.SwitchTo(StateGenPubTextTooLong)
		return nil
	}
	data.NetworkError = false
	c.SwitchTo(StateGenPubNetworkSelect)
	return nil
}

func (s *GeneratePublicationService) ToggleNetwork(widgetID string) dialog.Handler {
	return func(c *dialog.Context) error {
		data := c.Data().(*GeneratePublicationData)
		if data.Networks == nil {
			data.Networks = map[string]bool{}
		}
		data.Networks[widgetID] = !data.Networks[widgetID]
		data.NetworkError = false
		return nil
	}
}

func (d *GeneratePublicationData) selectedNetworks() []string {
	networks := make([]string, 0, len(d.Networks))
	for id, on := range d.Networks {
		if on {
			networks = append(networks, id)
		}
	}
	return networks
}

// Submit creates the publication. The moderation permission decides
// between direct publishing and the moderation queue; drafts skip both.
func (s *GeneratePublicationService) Submit(c *dialog.Context, draft bool) error {
	data := c.Data().(*GeneratePublicationData)

	networks := data.selectedNetworks()
	if !draft && len(networks) == 0 {
		data.NetworkError = true
		return nil
	}

	status := types.MODERATION_STATUS_PUBLISHED
	switch {
	case draft:
		status = types.MODERATION_STATUS_DRAFT
	default:
		employee, err := s.core.Clients().Employee.GetByAccount(c.Context(), c.User().AccountID)
		if err != nil {
			return errors.Trace("GeneratePublicationService.Submit", err)
		}
		if employee.RequiredModeration {
			status = types.MODERATION_STATUS_MODERATION
		}
	}

	created, err := s.core.Clients().Publication.Create(c.Context(), clients.CreatePublicationRequest{
		OrganizationID:   c.User().OrganizationID,
		CategoryID:       data.CategoryID,
		CreatorAccountID: c.User().AccountID,
		Title:            data.Title,
		Text:             data.Text,
		Tags:             data.Tags,
		ImageURL:         data.ImageURL,
		ImageFileID:      data.ImageFileID,
		SocialNetworks:   networks,
		ModerationStatus: status,
	})
	if err != nil {
		return errors.Trace("GeneratePublicationService.Submit", err)
	}

	data.PublicationID = created.ID
	data.HasChanges = false
	data.Outcome = string(status)
	c.SwitchTo(StateGenPubSuccess)
	return nil
}

type GeneratePublicationGetter struct {
	core *core.Core
}

func NewGeneratePublicationGetter(core *core.Core) *GeneratePublicationGetter {
	return &GeneratePublicationGetter{core: core}
}

func (g *GeneratePublicationGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	if view.User == nil || view.User.OrganizationID == 0 {
		return nil, &dialog.RestartError{Target: RecoveryTarget(view.User)}
	}
	data := view.Data.(*GeneratePublicationData)

	vd := dialog.ViewData{
		"category":         data.CategoryName,
		"title":            data.Title,
		"text":             data.Text,
		"tags":             strings.Join(data.Tags, ", "),
		"text_limit":       fmt.Sprintf("%d", data.TextLimit()),
		"text_len":         fmt.Sprintf("%d", len([]rune(data.Text))),
		"outcome":          outcomeLine(data.Outcome),
		"input_invalid":    flag(data.InputInvalid),
		"processing_error": flag(data.ProcessingError),
		"network_error":    flag(data.NetworkError),
	}

	if data.CategoryID == 0 {
		categories, err := g.core.Clients().Category.ListByOrganization(ctx, view.User.OrganizationID)
		if err != nil {
			return nil, errors.Trace("GeneratePublicationGetter.ViewData", err)
		}
		vd["categories"] = lo.Map(categories, func(cat types.Category, _ int) dialog.SelectOption {
			return dialog.SelectOption{
				Value: fmt.Sprintf("%d", cat.ID),
				Label: cat.Name,
			}
		})
	}
	return vd, nil
}

func outcomeLine(outcome string) string {
	switch types.ModerationStatus(outcome) {
	case types.MODERATION_STATUS_PUBLISHED:
		return "Публикация опубликована."
	case types.MODERATION_STATUS_MODERATION:
		return "Публикация отправлена на модерацию."
	case types.MODERATION_STATUS_DRAFT:
		return "Публикация сохранена в черновики."
	default:
		return ""
	}
}

// PreviewMedia resolves the preview image for the media slot.
func PreviewMedia(data session.Data, _ dialog.ViewData) *dialog.MediaRef {
	d, ok := data.(*GeneratePublicationData)
	if !ok {
		return nil
	}
	switch {
	case d.ImageFileID != "":
		return &dialog.MediaRef{FileID: d.ImageFileID}
	case d.ImageURL != "":
		return &dialog.MediaRef{URL: d.ImageURL, Filename: imageFilename(d.ImageURL)}
	default:
		return nil
	}
}

// CandidateMedia shows the image pending confirmation.
func CandidateMedia(data session.Data, _ dialog.ViewData) *dialog.MediaRef {
	d, ok := data.(*GeneratePublicationData)
	if !ok || d.CandidateImage.Empty() {
		return nil
	}
	switch d.CandidateImage.Type {
	case types.IMAGE_SOURCE_FILE_ID:
		return &dialog.MediaRef{FileID: d.CandidateImage.Value}
	default:
		return &dialog.MediaRef{URL: d.CandidateImage.Value, Filename: imageFilename(d.CandidateImage.Value)}
	}
}

func imageFilename(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 && i+1 < len(url) {
		return url[i+1:]
	}
	return url
}
