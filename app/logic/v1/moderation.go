package v1

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/clients"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/safe"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

const (
	REJECT_COMMENT_MIN_LEN = 10
	REJECT_COMMENT_MAX_LEN = 500
)

// Moderation walks an in-memory list loaded once on entry. Approving
// removes the current item and advances with the cursor clamped; an
// exhausted list pops back to the content menu.

type ModerationPublicationData struct {
	Items          []types.Publication `json:"items"`
	Cursor         int                 `json:"cursor"`
	CommentInvalid bool                `json:"comment_invalid"`
}

func (ModerationPublicationData) DialogID() string { return DialogModerationPublication }

func NewModerationPublicationData() session.Data { return &ModerationPublicationData{} }

type ModerationVideoCutData struct {
	Items          []types.VideoCut `json:"items"`
	Cursor         int              `json:"cursor"`
	CommentInvalid bool             `json:"comment_invalid"`
}

func (ModerationVideoCutData) DialogID() string { return DialogModerationVideoCut }

func NewModerationVideoCutData() session.Data { return &ModerationVideoCutData{} }

type ModerationService struct {
	core *core.Core
}

func NewModerationService(core *core.Core) *ModerationService {
	return &ModerationService{core: core}
}

// StartPublications loads the moderation queue and enters the dialog.
func (s *ModerationService) StartPublications(c *dialog.Context) error {
	items, err := s.core.Clients().Publication.ListByOrganization(
		c.Context(), c.User().OrganizationID, types.MODERATION_STATUS_MODERATION)
	if err != nil {
		return errors.Trace("ModerationService.StartPublications", err)
	}
	c.Start(StateModerationPubList, &ModerationPublicationData{Items: items})
	return nil
}

func (s *ModerationService) StartVideoCuts(c *dialog.Context) error {
	items, err := s.core.Clients().VideoCut.ListByOrganization(
		c.Context(), c.User().OrganizationID, types.MODERATION_STATUS_MODERATION)
	if err != nil {
		return errors.Trace("ModerationService.StartVideoCuts", err)
	}
	c.Start(StateModerationCutList, &ModerationVideoCutData{Items: items})
	return nil
}

func clampCursor(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

// removeAt drops the cursor's item and returns the clamped cursor.
func removeAt[T any](items []T, cursor int) ([]T, int) {
	items = append(items[:cursor], items[cursor+1:]...)
	return items, clampCursor(cursor, len(items))
}

func (s *ModerationService) PublicationPrev(c *dialog.Context) error {
	data := c.Data().(*ModerationPublicationData)
	data.Cursor = clampCursor(data.Cursor-1, len(data.Items))
	return nil
}

func (s *ModerationService) PublicationNext(c *dialog.Context) error {
	data := c.Data().(*ModerationPublicationData)
	data.Cursor = clampCursor(data.Cursor+1, len(data.Items))
	return nil
}

func (s *ModerationService) PublicationApprove(c *dialog.Context) error {
	data := c.Data().(*ModerationPublicationData)
	if len(data.Items) == 0 {
		c.Done(nil)
		return nil
	}

	item := data.Items[data.Cursor]
	err := s.core.Clients().Publication.Moderate(c.Context(), item.ID, clients.ModerateRequest{
		ModeratorAccountID: c.User().AccountID,
		Verdict:            types.MODERATION_STATUS_APPROVED,
	})
	if err != nil {
		return errors.Trace("ModerationService.PublicationApprove", err)
	}

	data.Items, data.Cursor = removeAt(data.Items, data.Cursor)
	if len(data.Items) == 0 {
		c.Done(nil)
	}
	return nil
}

func (s *ModerationService) PublicationRejectPrompt(c *dialog.Context) error {
	data := c.Data().(*ModerationPublicationData)
	data.CommentInvalid = false
	c.SwitchTo(StateModerationPubComment)
	return nil
}

func (s *ModerationService) PublicationReject(c *dialog.Context, comment string) error {
	data := c.Data().(*ModerationPublicationData)
	if len(data.Items) == 0 {
		c.Done(nil)
		return nil
	}

	item := data.Items[data.Cursor]
	err := s.core.Clients().Publication.Moderate(c.Context(), item.ID, clients.ModerateRequest{
		ModeratorAccountID: c.User().AccountID,
		Verdict:            types.MODERATION_STATUS_REJECTED,
		ModerationComment:  comment,
	})
	if err != nil {
		return errors.Trace("ModerationService.PublicationReject", err)
	}

	s.mirrorVerdict(item.CreatorAccountID,
		fmt.Sprintf("Публикация «%s» отклонена модератором. Комментарий: %s", item.Title, comment))

	data.Items, data.Cursor = removeAt(data.Items, data.Cursor)
	if len(data.Items) == 0 {
		c.Done(nil)
		return nil
	}
	c.SwitchTo(StateModerationPubList)
	return nil
}

func (s *ModerationService) PublicationCommentInvalid(c *dialog.Context, _ dialog.InputViolation) error {
	c.Data().(*ModerationPublicationData).CommentInvalid = true
	return nil
}

func (s *ModerationService) VideoCutPrev(c *dialog.Context) error {
	data := c.Data().(*ModerationVideoCutData)
	data.Cursor = clampCursor(data.Cursor-1, len(data.Items))
	return nil
}

func (s *ModerationService) VideoCutNext(c *dialog.Context) error {
	data := c.Data().(*ModerationVideoCutData)
	data.Cursor = clampCursor(data.Cursor+1, len(data.Items))
	return nil
}

func (s *ModerationService) VideoCutApprove(c *dialog.Context) error {
	data := c.Data().(*ModerationVideoCutData)
	if len(data.Items) == 0 {
		c.Done(nil)
		return nil
	}

	item := data.Items[data.Cursor]
	err := s.core.Clients().VideoCut.Moderate(c.Context(), item.ID, clients.ModerateRequest{
		ModeratorAccountID: c.User().AccountID,
		Verdict:            types.MODERATION_STATUS_APPROVED,
	})
	if err != nil {
		return errors.Trace("ModerationService.VideoCutApprove", err)
	}

	data.Items, data.Cursor = removeAt(data.Items, data.Cursor)
	if len(data.Items) == 0 {
		c.Done(nil)
	}
	return nil
}

func (s *ModerationService) VideoCutRejectPrompt(c *dialog.Context) error {
	data := c.Data().(*ModerationVideoCutData)
	data.CommentInvalid = false
	c.SwitchTo(StateModerationCutComment)
	return nil
}

func (s *ModerationService) VideoCutReject(c *dialog.Context, comment string) error {
	data := c.Data().(*ModerationVideoCutData)
	if len(data.Items) == 0 {
		c.Done(nil)
		return nil
	}

	item := data.Items[data.Cursor]
	err := s.core.Clients().VideoCut.Moderate(c.Context(), item.ID, clients.ModerateRequest{
		ModeratorAccountID: c.User().AccountID,
		Verdict:            types.MODERATION_STATUS_REJECTED,
		ModerationComment:  comment,
	})
	if err != nil {
		return errors.Trace("ModerationService.VideoCutReject", err)
	}

	s.mirrorVerdict(item.CreatorAccountID,
		fmt.Sprintf("Видеоклип «%s» отклонён модератором. Комментарий: %s", item.Title, comment))

	data.Items, data.Cursor = removeAt(data.Items, data.Cursor)
	if len(data.Items) == 0 {
		c.Done(nil)
		return nil
	}
	c.SwitchTo(StateModerationCutList)
	return nil
}

func (s *ModerationService) VideoCutCommentInvalid(c *dialog.Context, _ dialog.InputViolation) error {
	c.Data().(*ModerationVideoCutData).CommentInvalid = true
	return nil
}

// mirrorVerdict forwards the verdict to the item's creator, best-effort:
// a missing state or a failed send is logged and forgotten.
func (s *ModerationService) mirrorVerdict(creatorAccountID int64, text string) {
	bot := s.core.Bot()
	store := s.core.Store().UserStateStore()

	go safe.RunWithComponent(func() {
		state, err := store.GetByAccountID(context.Background(), creatorAccountID)
		if err != nil || state == nil {
			slog.Warn("verdict mirror skipped",
				slog.Int64("creator_account_id", creatorAccountID), slog.Any("error", err))
			return
		}
		if _, err := bot.Send(tgbotapi.NewMessage(state.TgChatID, text)); err != nil {
			slog.Warn("verdict mirror send failed",
				slog.Int64("tg_chat_id", state.TgChatID), slog.Any("error", err))
		}
	}, "moderation.mirror")
}

type ModerationPublicationGetter struct {
	core *core.Core
}

func NewModerationPublicationGetter(core *core.Core) *ModerationPublicationGetter {
	return &ModerationPublicationGetter{core: core}
}

func (g *ModerationPublicationGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	data := view.Data.(*ModerationPublicationData)
	if len(data.Items) == 0 {
		return dialog.ViewData{"position": "0/0", "title": "", "text": "Очередь модерации пуста."}, nil
	}

	item := data.Items[data.Cursor]
	return dialog.ViewData{
		"position": fmt.Sprintf("%d/%d", data.Cursor+1, len(data.Items)),
		"title":    item.Title,
		"text":     item.Text,
		"tags":     strings.Join(item.Tags, ", "),
	}, nil
}

type ModerationVideoCutGetter struct {
	core *core.Core
}

func NewModerationVideoCutGetter(core *core.Core) *ModerationVideoCutGetter {
	return &ModerationVideoCutGetter{core: core}
}

func (g *ModerationVideoCutGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	data := view.Data.(*ModerationVideoCutData)
	if len(data.Items) == 0 {
		return dialog.ViewData{"position": "0/0", "title": "", "text": "Очередь модерации пуста."}, nil
	}

	item := data.Items[data.Cursor]
	return dialog.ViewData{
		"position":  fmt.Sprintf("%d/%d", data.Cursor+1, len(data.Items)),
		"title":     item.Title,
		"text":      item.Description,
		"tags":      strings.Join(item.Tags, ", "),
		"video_url": item.VideoURL,
	}, nil
}
