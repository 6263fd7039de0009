package v1

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/postiq-ai/postiq-bot/app/core"
	"github.com/postiq-ai/postiq-bot/app/dialog"
	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/clients"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type VideoCutData struct {
	YoutubeReference string           `json:"youtube_reference"`
	ReferenceInvalid bool             `json:"reference_invalid"`
	Items            []types.VideoCut `json:"items"`
	Cursor           int              `json:"cursor"`
}

func (VideoCutData) DialogID() string { return DialogVideoCut }

func NewVideoCutData() session.Data { return &VideoCutData{} }

// VideoCutService drives the vizard flow: submit a YouTube reference,
// wait for the generated-callback alert, then browse and publish cuts.
type VideoCutService struct {
	core *core.Core
}

func NewVideoCutService(core *core.Core) *VideoCutService {
	return &VideoCutService{core: core}
}

// SubmitReference validates the link and queues generation. Completion
// arrives later through the vizard-generated webhook.
func (s *VideoCutService) SubmitReference(c *dialog.Context, reference string) error {
	data := c.Data().(*VideoCutData)

	if !isYoutubeReference(reference) {
		data.ReferenceInvalid = true
		return nil
	}
	data.ReferenceInvalid = false
	data.YoutubeReference = reference

	err := s.core.Clients().VideoCut.Generate(c.Context(), clients.GenerateVideoCutRequest{
		OrganizationID:   c.User().OrganizationID,
		CreatorAccountID: c.User().AccountID,
		YoutubeReference: reference,
	})
	if err != nil {
		return errors.Trace("VideoCutService.SubmitReference", err)
	}

	c.SwitchTo(StateVideoCutGenerating)
	return nil
}

func isYoutubeReference(reference string) bool {
	u, err := url.Parse(strings.TrimSpace(reference))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	return host == "youtube.com" || host == "youtu.be" || host == "m.youtube.com"
}

// OpenList loads the finished cuts for browsing.
func (s *VideoCutService) OpenList(c *dialog.Context) error {
	data := c.Data().(*VideoCutData)

	items, err := s.core.Clients().VideoCut.ListByOrganization(
		c.Context(), c.User().OrganizationID, types.MODERATION_STATUS_DRAFT)
	if err != nil {
		return errors.Trace("VideoCutService.OpenList", err)
	}
	data.Items = items
	data.Cursor = 0
	c.SwitchTo(StateVideoCutList)
	return nil
}

// OpenLibrary pushes the cut list from another dialog's frame.
func (s *VideoCutService) OpenLibrary(c *dialog.Context) error {
	items, err := s.core.Clients().VideoCut.ListByOrganization(
		c.Context(), c.User().OrganizationID, types.MODERATION_STATUS_DRAFT)
	if err != nil {
		return errors.Trace("VideoCutService.OpenLibrary", err)
	}
	c.Start(StateVideoCutList, &VideoCutData{Items: items})
	return nil
}

func (s *VideoCutService) Prev(c *dialog.Context) error {
	data := c.Data().(*VideoCutData)
	data.Cursor = clampCursor(data.Cursor-1, len(data.Items))
	return nil
}

func (s *VideoCutService) Next(c *dialog.Context) error {
	data := c.Data().(*VideoCutData)
	data.Cursor = clampCursor(data.Cursor+1, len(data.Items))
	return nil
}

func (s *VideoCutService) OpenPreview(c *dialog.Context) error {
	data := c.Data().(*VideoCutData)
	if len(data.Items) == 0 {
		return nil
	}
	c.SwitchTo(StateVideoCutPreview)
	return nil
}

// SendToModeration hands the current cut to the moderation queue and
// removes it from the local list.
func (s *VideoCutService) SendToModeration(c *dialog.Context) error {
	data := c.Data().(*VideoCutData)
	if len(data.Items) == 0 {
		c.SwitchTo(StateVideoCutList)
		return nil
	}

	item := data.Items[data.Cursor]
	if err := s.core.Clients().VideoCut.SendToModeration(c.Context(), item.ID); err != nil {
		return errors.Trace("VideoCutService.SendToModeration", err)
	}

	data.Items, data.Cursor = removeAt(data.Items, data.Cursor)
	c.SwitchTo(StateVideoCutPublish)
	return nil
}

func (s *VideoCutService) Delete(c *dialog.Context) error {
	data := c.Data().(*VideoCutData)
	if len(data.Items) == 0 {
		c.SwitchTo(StateVideoCutList)
		return nil
	}

	item := data.Items[data.Cursor]
	if err := s.core.Clients().VideoCut.Delete(c.Context(), item.ID); err != nil {
		return errors.Trace("VideoCutService.Delete", err)
	}

	data.Items, data.Cursor = removeAt(data.Items, data.Cursor)
	c.SwitchTo(StateVideoCutList)
	return nil
}

type VideoCutGetter struct {
	core *core.Core
}

func NewVideoCutGetter(core *core.Core) *VideoCutGetter {
	return &VideoCutGetter{core: core}
}

func (g *VideoCutGetter) ViewData(ctx context.Context, view *dialog.View) (dialog.ViewData, error) {
	data := view.Data.(*VideoCutData)

	vd := dialog.ViewData{
		"reference":         data.YoutubeReference,
		"reference_invalid": flag(data.ReferenceInvalid),
		"position":          "0/0",
	}
	if len(data.Items) > 0 {
		item := data.Items[data.Cursor]
		vd["position"] = fmt.Sprintf("%d/%d", data.Cursor+1, len(data.Items))
		vd["title"] = item.Title
		vd["description"] = item.Description
		vd["tags"] = strings.Join(item.Tags, ", ")
		vd["video_url"] = item.VideoURL
	}
	return vd, nil
}
