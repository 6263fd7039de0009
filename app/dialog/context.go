package dialog

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeResetStack
)

type ShowMode int

const (
	ShowEdit ShowMode = iota
	ShowSend
)

type pendingKind int

const (
	pendNone pendingKind = iota
	pendStart
	pendSwitch
	pendDone
)

type pending struct {
	kind   pendingKind
	target State
	data   session.Data
	mode   Mode
	result any
}

// Context is the mutable handler surface. Transitions requested here are
// applied after the handler returns; the render happens exactly once per
// inbound update.
type Context struct {
	ctx     context.Context
	manager *Manager
	sess    *session.Session
	user    *types.UserState
	update  tgbotapi.Update

	pend     pending
	showMode ShowMode
	forced   bool
}

func (c *Context) Context() context.Context {
	return c.ctx
}

func (c *Context) ChatID() int64 {
	return c.sess.ChatID
}

func (c *Context) User() *types.UserState {
	return c.user
}

// Data returns the top frame's typed payload. Handlers mutate it in
// place; the engine persists the session after the render.
func (c *Context) Data() session.Data {
	top := c.sess.Top()
	if top == nil {
		return nil
	}
	return top.Data
}

func (c *Context) Update() tgbotapi.Update {
	return c.update
}

// MessageText extracts the inbound text, empty for non-text updates.
func (c *Context) MessageText() string {
	if c.update.Message == nil {
		return ""
	}
	return c.update.Message.Text
}

func (c *Context) Start(target State, data session.Data) {
	c.pend = pending{kind: pendStart, target: target, data: data, mode: ModeNormal}
}

func (c *Context) StartReset(target State, data session.Data) {
	c.pend = pending{kind: pendStart, target: target, data: data, mode: ModeResetStack}
}

// SwitchTo moves the top frame to another window of the same dialog,
// keeping its data.
func (c *Context) SwitchTo(target State) {
	c.pend = pending{kind: pendSwitch, target: target}
}

// Done pops the top frame; result reaches the parent dialog's
// OnChildDone hook.
func (c *Context) Done(result any) {
	c.pend = pending{kind: pendDone, result: result}
}

// ForceSend makes this render send a fresh message instead of editing.
// Voice/file inputs that delete the user's raw message use it.
func (c *Context) ForceSend() {
	c.showMode = ShowSend
	c.forced = true
}

// WithTimeout derives a per-call deadline; long generation calls pass
// the manager's generation timeout.
func (c *Context) WithTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.ctx, d)
}

func (c *Context) GenerationTimeout() time.Duration {
	return c.manager.generationTimeout
}

// DownloadFile fetches the raw bytes of a user upload by file id.
func (c *Context) DownloadFile(fileID string) ([]byte, error) {
	return c.manager.downloadFile(c.ctx, fileID)
}

// DeleteUserMessage removes the inbound message from the chat,
// best-effort.
func (c *Context) DeleteUserMessage() {
	if c.update.Message == nil {
		return
	}
	c.manager.deleteMessage(c.sess.ChatID, c.update.Message.MessageID)
}
