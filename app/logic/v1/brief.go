package v1

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/clients"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

// BRIEF_TOKEN_LIMIT caps the interview history; crossing it triggers a
// summarization pass that collapses the history into one synthetic turn.
const BRIEF_TOKEN_LIMIT = 30_000

const briefSummaryPrefix = "[SUMMARY]: "

// BriefCore is the shared per-turn state of both interview dialogs.
type BriefCore struct {
	TotalTokens      int    `json:"total_tokens"`
	MessageToUser    string `json:"message_to_user"`
	TranscribeFailed bool   `json:"transcribe_failed"`
	ProcessingError  bool   `json:"processing_error"`
}

func (b *BriefCore) clearFlags() {
	b.TranscribeFailed = false
	b.ProcessingError = false
}

type OrganizationBriefData struct {
	BriefCore
}

func (OrganizationBriefData) DialogID() string { return DialogOrganizationBrief }

func NewOrganizationBriefData() session.Data { return &OrganizationBriefData{} }

type CategoryBriefData struct {
	BriefCore
	// CategoryID != 0 means the interview updates an existing category.
	CategoryID int64 `json:"category_id"`
}

func (CategoryBriefData) DialogID() string { return DialogCategoryBrief }

func NewCategoryBriefData() session.Data { return &CategoryBriefData{} }

// BriefService runs the LLM interview loop for organization and
// category briefs.
type BriefService struct {
	core *core.Core
}

func NewBriefService(core *core.Core) *BriefService {
	return &BriefService{core: core}
}

func (s *BriefService) HandleOrganizationText(c *dialog.Context, text string) error {
	data := c.Data().(*OrganizationBriefData)
	return s.turn(c, types.LLM_CHAT_PURPOSE_ORGANIZATION, text, &data.BriefCore,
		s.organizationPrompt, s.applyOrganization)
}

func (s *BriefService) HandleOrganizationMedia(c *dialog.Context, media dialog.IncomingMedia) error {
	data := c.Data().(*OrganizationBriefData)
	text, err := s.transcribe(c, media, &data.BriefCore)
	if err != nil || text == "" {
		return err
	}
	return s.turn(c, types.LLM_CHAT_PURPOSE_ORGANIZATION, text, &data.BriefCore,
		s.organizationPrompt, s.applyOrganization)
}

func (s *BriefService) HandleCategoryText(c *dialog.Context, text string) error {
	data := c.Data().(*CategoryBriefData)
	return s.turn(c, types.LLM_CHAT_PURPOSE_CATEGORY, text, &data.BriefCore,
		s.categoryPrompt, s.applyCategory)
}

func (s *BriefService) HandleCategoryMedia(c *dialog.Context, media dialog.IncomingMedia) error {
	data := c.Data().(*CategoryBriefData)
	text, err := s.transcribe(c, media, &data.BriefCore)
	if err != nil || text == "" {
		return err
	}
	return s.turn(c, types.LLM_CHAT_PURPOSE_CATEGORY, text, &data.BriefCore,
		s.categoryPrompt, s.applyCategory)
}

// transcribe round-trips a voice upload to the audio service. An empty
// transcript is surfaced as a flag, not an error.
func (s *BriefService) transcribe(c *dialog.Context, media dialog.IncomingMedia, data *BriefCore) (string, error) {
	fileID := media.VoiceFileID
	if fileID == "" {
		fileID = media.AudioFileID
	}
	if fileID == "" {
		data.TranscribeFailed = true
		return "", nil
	}

	raw, err := c.DownloadFile(fileID)
	if err != nil {
		slog.Warn("voice download failed", slog.Any("error", err))
		data.TranscribeFailed = true
		return "", nil
	}

	ctx, cancel := c.WithTimeout(c.GenerationTimeout())
	defer cancel()

	text, err := s.core.Clients().Audio.Transcribe(ctx, "voice.ogg", bytes.NewReader(raw))
	if err != nil {
		slog.Warn("transcription failed", slog.Any("error", err))
		data.TranscribeFailed = true
		return "", nil
	}
	if strings.TrimSpace(text) == "" {
		data.TranscribeFailed = true
		return "", nil
	}
	return text, nil
}

// turn is one interview step: append the user message, call the LLM
// with the full history, summarize when the history grows past the
// limit, and either commit the extracted payload or ask the next
// question.
func (s *BriefService) turn(
	c *dialog.Context,
	purpose, text string,
	data *BriefCore,
	prompt func(c *dialog.Context) (string, error),
	apply func(c *dialog.Context, resp *clients.BriefResponse) (bool, error),
) error {
	data.clearFlags()

	chatID, err := s.ensureChat(c, purpose)
	if err != nil {
		return err
	}

	msgStore := s.core.Store().LLMMessageStore()
	err = msgStore.Create(c.Context(), types.LLMMessage{
		ChatID:    chatID,
		Role:      types.LLM_ROLE_USER,
		Text:      text,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return errors.Trace("BriefService.turn", err)
	}

	history, err := msgStore.ListByChatID(c.Context(), chatID)
	if err != nil {
		return errors.Trace("BriefService.turn", err)
	}

	systemPrompt, err := prompt(c)
	if err != nil {
		return errors.Trace("BriefService.turn", err)
	}

	ctx, cancel := c.WithTimeout(c.GenerationTimeout())
	defer cancel()

	timer := s.core.Metrics().LLMResponseTimer("brief")
	resp, tokens, err := s.core.Clients().LLM.Brief(ctx, systemPrompt, history)
	timer.ObserveDuration()
	if err != nil {
		s.core.Metrics().LLMErrorInc("brief")
		slog.Warn("brief turn failed", slog.String("purpose", purpose), slog.Any("error", err))
		data.ProcessingError = true
		return nil
	}

	if tokens == 0 {
		tokens = countTokens(history)
	}
	data.TotalTokens += tokens

	if data.TotalTokens >= BRIEF_TOKEN_LIMIT {
		if err := s.summarize(c, chatID, history); err != nil {
			return err
		}
		data.TotalTokens = 0
	}

	done, err := apply(c, resp)
	if err != nil {
		if errors.IsKind(err, errors.KindInsufficientBalance) {
			return err
		}
		slog.Warn("brief payload commit failed", slog.String("purpose", purpose), slog.Any("error", err))
		data.ProcessingError = true
		return nil
	}
	if done {
		return nil
	}

	err = msgStore.Create(c.Context(), types.LLMMessage{
		ChatID:    chatID,
		Role:      types.LLM_ROLE_ASSISTANT,
		Text:      resp.MessageToUser,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return errors.Trace("BriefService.turn", err)
	}

	data.MessageToUser = resp.MessageToUser
	return nil
}

func (s *BriefService) ensureChat(c *dialog.Context, purpose string) (int64, error) {
	chats := s.core.Store().LLMChatStore()
	chat, err := chats.GetByChatPurpose(c.Context(), c.ChatID(), purpose)
	if err != nil {
		return 0, errors.Trace("BriefService.ensureChat", err)
	}
	if chat != nil {
		return chat.ID, nil
	}
	id, err := chats.Create(c.Context(), types.LLMChat{
		TgChatID:  c.ChatID(),
		Purpose:   purpose,
		CreatedAt: time.Now().Unix(),
	})
	if err != nil {
		return 0, errors.Trace("BriefService.ensureChat", err)
	}
	return id, nil
}

// summarize collapses the history into one synthetic user turn.
func (s *BriefService) summarize(c *dialog.Context, chatID int64, history []types.LLMMessage) error {
	ctx, cancel := c.WithTimeout(c.GenerationTimeout())
	defer cancel()

	summary, err := s.core.Clients().LLM.Summarize(ctx, history)
	if err != nil {
		return errors.Trace("BriefService.summarize", err)
	}

	msgStore := s.core.Store().LLMMessageStore()
	if err := msgStore.DeleteByChatID(c.Context(), chatID); err != nil {
		return errors.Trace("BriefService.summarize", err)
	}
	err = msgStore.Create(c.Context(), types.LLMMessage{
		ChatID:    chatID,
		Role:      types.LLM_ROLE_USER,
		Text:      briefSummaryPrefix + summary,
		CreatedAt: time.Now().Unix(),
	})
	return errors.Trace("BriefService.summarize", err)
}

const organizationPromptTemplate = `You interview a business owner to build their marketing profile.
Current profile:
name: %s
about: %s
tone: %s
audience: %s
Ask one question at a time. Answer strictly as JSON: {"message_to_user": "..."} while facts are missing, or {"organization_data": {...}} once the profile is complete.`

func (s *BriefService) organizationPrompt(c *dialog.Context) (string, error) {
	org, err := s.core.Clients().Organization.Get(c.Context(), c.User().OrganizationID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(organizationPromptTemplate, org.Name, org.About, org.Tone, org.Audience), nil
}

const categoryPromptTemplate = `You interview a marketer to define a content category.
Current category:
name: %s
prompt: %s
tags: %s
Ask one question at a time. Answer strictly as JSON: {"message_to_user": "..."} while facts are missing, or {"category_data": {...}} once the category is complete.`

func (s *BriefService) categoryPrompt(c *dialog.Context) (string, error) {
	data := c.Data().(*CategoryBriefData)
	if data.CategoryID == 0 {
		return fmt.Sprintf(categoryPromptTemplate, "", "", ""), nil
	}
	category, err := s.core.Clients().Category.Get(c.Context(), data.CategoryID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(categoryPromptTemplate,
		category.Name, category.Prompt, strings.Join(category.Tags, ", ")), nil
}

func (s *BriefService) applyOrganization(c *dialog.Context, resp *clients.BriefResponse) (bool, error) {
	if resp.OrganizationData == nil || resp.OrganizationData.Empty() {
		return false, nil
	}
	_, err := s.core.Clients().Organization.Update(c.Context(), c.User().OrganizationID, *resp.OrganizationData)
	if err != nil {
		return false, err
	}
	c.SwitchTo(StateOrgBriefSuccess)
	return true, nil
}

func (s *BriefService) applyCategory(c *dialog.Context, resp *clients.BriefResponse) (bool, error) {
	if resp.CategoryData == nil || resp.CategoryData.Empty() {
		return false, nil
	}

	data := c.Data().(*CategoryBriefData)
	if data.CategoryID == 0 {
		created, err := s.core.Clients().Category.Create(c.Context(), clients.CreateCategoryRequest{
			OrganizationID: c.User().OrganizationID,
			Name:           strValue(resp.CategoryData.Name),
			Prompt:         strValue(resp.CategoryData.Prompt),
			Tags:           resp.CategoryData.Tags,
		})
		if err != nil {
			return false, err
		}
		data.CategoryID = created.ID
	} else {
		if _, err := s.core.Clients().Category.Update(c.Context(), data.CategoryID, *resp.CategoryData); err != nil {
			return false, err
		}
	}
	c.SwitchTo(StateCategoryBriefSuccess)
	return true, nil
}

// countTokens approximates the history size when the gateway omits
// usage figures.
func countTokens(history []types.LLMMessage) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0
	}
	n := 0
	for _, m := range history {
		n += len(enc.Encode(m.Text, nil, nil))
	}
	return n
}

func strValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// BriefGetter renders the assistant's latest question plus error flags.
type BriefGetter struct {
	core *core.Core
}

func NewBriefGetter(core *core.Core) *BriefGetter {
	return &BriefGetter{core: core}
}

func (g *BriefGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	var data *BriefCore
	switch d := view.Data.(type) {
	case *OrganizationBriefData:
		data = &d.BriefCore
	case *CategoryBriefData:
		data = &d.BriefCore
	default:
		return dialog.ViewData{}, nil
	}

	message := data.MessageToUser
	if message == "" {
		message = "Расскажите о себе текстом или голосовым сообщением."
	}
	return dialog.ViewData{
		"message":           message,
		"transcribe_failed": flag(data.TranscribeFailed),
		"processing_error":  flag(data.ProcessingError),
	}, nil
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return ""
}
