package dialog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

// ErrNoSession means the chat has no dialog stack (fresh chat or purged
// KV). The recovery middleware routes such chats to a re-entry dialog.
var ErrNoSession = fmt.Errorf("no dialog session")

// Sender is the slice of the Telegram API the engine needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// FileCache is the engine's view of the file-id cache (C2).
type FileCache interface {
	Create(ctx context.Context, data types.CachedFile) error
	GetByFilename(ctx context.Context, filename string) (*types.CachedFile, error)
}

type CommandHandler func(ctx *Context) error

type Manager struct {
	bot      Sender
	sessions session.Store
	locker   *session.Locker
	cache    FileCache

	dialogs  map[string]*Dialog
	commands map[string]CommandHandler

	// limiter throttles every outbound message; Telegram rejects bots
	// that exceed roughly thirty sends per second overall.
	limiter *rate.Limiter

	generationTimeout time.Duration
}

func NewManager(bot Sender, sessions session.Store, locker *session.Locker, cache FileCache, generationTimeout time.Duration) *Manager {
	return &Manager{
		bot:               bot,
		sessions:          sessions,
		locker:            locker,
		cache:             cache,
		dialogs:           make(map[string]*Dialog),
		commands:          make(map[string]CommandHandler),
		limiter:           rate.NewLimiter(rate.Every(time.Second/sendsPerSecond), sendsPerSecond),
		generationTimeout: generationTimeout,
	}
}

// Register wires a dialog and its data factory for session decoding.
func (m *Manager) Register(d *Dialog) {
	if _, ok := m.dialogs[d.ID]; ok {
		panic(fmt.Sprintf("dialog: duplicate dialog %q", d.ID))
	}
	m.dialogs[d.ID] = d
	session.RegisterData(d.ID, d.NewData)
}

func (m *Manager) RegisterCommand(name string, h CommandHandler) {
	m.commands[name] = h
}

// HandleUpdate is the single entry point for platform updates. Same-chat
// work is serialized through the locker; the session is loaded once,
// dispatched, rendered once and saved.
func (m *Manager) HandleUpdate(ctx context.Context, user *types.UserState, update tgbotapi.Update) error {
	chatID := chatIDOf(update)
	if chatID == 0 {
		return nil
	}

	return m.locker.WithLock(chatID, func() error {
		sess, err := m.sessions.Load(ctx, chatID)
		if err != nil && err != session.ErrNotFound {
			return err
		}

		if cmd := commandOf(update); cmd != "" {
			handler, ok := m.commands[cmd]
			if !ok {
				return nil
			}
			if sess == nil {
				sess = session.New(chatID)
			}
			return m.run(ctx, sess, user, update, func(c *Context) error {
				return handler(c)
			})
		}

		if sess == nil || sess.Top() == nil {
			return ErrNoSession
		}

		return m.run(ctx, sess, user, update, m.dispatch)
	})
}

// StartDialog resets or extends a chat's stack from outside a handler:
// recovery re-entry and the employee-added welcome path use it.
func (m *Manager) StartDialog(ctx context.Context, user *types.UserState, chatID int64, target State, data session.Data, reset bool) error {
	return m.locker.WithLock(chatID, func() error {
		sess, err := m.sessions.Load(ctx, chatID)
		if err != nil && err != session.ErrNotFound {
			return err
		}
		if sess == nil {
			sess = session.New(chatID)
		}

		return m.run(ctx, sess, user, tgbotapi.Update{}, func(c *Context) error {
			if reset {
				c.StartReset(target, data)
			} else {
				c.Start(target, data)
			}
			return nil
		})
	})
}

// run executes one handler, applies its transitions, renders once and
// persists the session.
func (m *Manager) run(ctx context.Context, sess *session.Session, user *types.UserState, update tgbotapi.Update, handler func(*Context) error) error {
	c := &Context{
		ctx:     ctx,
		manager: m,
		sess:    sess,
		user:    user,
		update:  update,
	}

	if err := handler(c); err != nil {
		return err
	}

	if err := m.applyTransitions(c); err != nil {
		return err
	}

	if sess.Top() == nil {
		// Last frame popped with no successor: drop the session so the
		// next update routes through recovery.
		return m.sessions.Drop(ctx, sess.ChatID)
	}

	if err := m.render(c); err != nil {
		return err
	}

	return m.sessions.Save(ctx, sess)
}

const maxTransitionHops = 8

func (m *Manager) applyTransitions(c *Context) error {
	for hops := 0; c.pend.kind != pendNone; hops++ {
		if hops >= maxTransitionHops {
			return errors.New("dialog.Manager.applyTransitions", "transition loop detected", nil)
		}

		pend := c.pend
		c.pend = pending{}

		switch pend.kind {
		case pendStart:
			d, ok := m.dialogs[pend.target.Dialog()]
			if !ok {
				return errors.New("dialog.Manager.applyTransitions", "unknown dialog "+pend.target.Dialog(), nil)
			}
			data := pend.data
			if data == nil {
				data = d.NewData()
			}
			if pend.mode == ModeResetStack {
				c.sess.Reset()
			}
			c.sess.Push(&session.Frame{Dialog: pend.target.Dialog(), State: pend.target.Window(), Data: data})

		case pendSwitch:
			top := c.sess.Top()
			if top == nil {
				return ErrNoSession
			}
			if pend.target.Dialog() != top.Dialog {
				return errors.New("dialog.Manager.applyTransitions",
					"switch_to crosses dialogs: "+string(pend.target), nil)
			}
			top.State = pend.target.Window()

		case pendDone:
			c.sess.Pop()
			top := c.sess.Top()
			if top == nil {
				return nil
			}
			if d := m.dialogs[top.Dialog]; d != nil && d.OnChildDone != nil {
				if err := d.OnChildDone(c, pend.result); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// dispatch routes the inbound update to the focused window's widget
// handlers.
func (m *Manager) dispatch(c *Context) error {
	top := c.sess.Top()
	d := m.dialogs[top.Dialog]
	if d == nil {
		return errors.New("dialog.Manager.dispatch", "unknown dialog "+top.Dialog, nil)
	}
	w := d.window(top.State)
	if w == nil {
		return errors.New("dialog.Manager.dispatch", "unknown window "+top.Dialog+"."+top.State, nil)
	}

	if cq := c.update.CallbackQuery; cq != nil {
		defer m.answerCallback(cq.ID)
		return m.dispatchCallback(c, w, cq.Data)
	}

	if msg := c.update.Message; msg != nil {
		if media := incomingMedia(msg); media != nil {
			return m.dispatchMedia(c, w, *media)
		}
		if msg.Text != "" {
			return m.dispatchText(c, w, msg.Text)
		}
	}
	return nil
}

func (m *Manager) dispatchCallback(c *Context, w *Window, data string) error {
	widgetID, arg := splitCallbackData(data)

	var (
		found bool
		err   error
	)
	walkButtons(w.Widgets, func(wd Widget) bool {
		switch b := wd.(type) {
		case Button:
			if b.ID == widgetID && b.OnClick != nil {
				found = true
				err = b.OnClick(c)
				return true
			}
		case Checkbox:
			if b.ID == widgetID && b.OnToggle != nil {
				found = true
				err = b.OnToggle(c)
				return true
			}
		case Select:
			if b.ID == widgetID && b.OnSelect != nil {
				found = true
				idx, convErr := strconv.Atoi(arg)
				if convErr != nil {
					return true
				}
				err = m.invokeSelect(c, b, idx)
				return true
			}
		}
		return false
	})
	if !found {
		// Stale keyboard from a previous window; ignore.
		slog.Debug("callback for unknown widget",
			slog.String("widget", widgetID), slog.String("window", string(w.State)))
	}
	return err
}

func (m *Manager) invokeSelect(c *Context, s Select, idx int) error {
	// Re-resolve options through the getter so the index maps to the
	// same list the user saw.
	vd, err := m.viewData(c)
	if err != nil {
		return err
	}
	opts, _ := vd[s.OptionsFrom].([]SelectOption)
	if idx < 0 || idx >= len(opts) {
		return nil
	}
	return s.OnSelect(c, idx, opts[idx])
}

func (m *Manager) dispatchText(c *Context, w *Window, text string) error {
	for _, wd := range w.Widgets {
		input, ok := wd.(TextInput)
		if !ok {
			continue
		}

		if violation, bad := validateInput(text, input.MinLen, input.MaxLen); bad {
			if input.OnInvalid != nil {
				return input.OnInvalid(c, violation)
			}
			return nil
		}
		if input.OnInput != nil {
			return input.OnInput(c, text)
		}
		return nil
	}
	return nil
}

func (m *Manager) dispatchMedia(c *Context, w *Window, media IncomingMedia) error {
	for _, wd := range w.Widgets {
		if input, ok := wd.(MediaInput); ok && input.OnMedia != nil {
			return input.OnMedia(c, media)
		}
	}
	return nil
}

// validateInput checks rune length; min and max themselves are accepted.
func validateInput(text string, minLen, maxLen int) (InputViolation, bool) {
	n := len([]rune(strings.TrimSpace(text)))
	switch {
	case n == 0:
		return ViolationEmpty, true
	case minLen > 0 && n < minLen:
		return ViolationTooShort, true
	case maxLen > 0 && n > maxLen:
		return ViolationTooLong, true
	}
	return 0, false
}

func (m *Manager) answerCallback(id string) {
	if _, err := m.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		slog.Warn("answer callback failed", slog.Any("error", err))
	}
}

// downloadFile pulls the raw bytes of a user upload (voice, photo) for
// forwarding to a collaborator service.
func (m *Manager) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := m.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, errors.NewTransport("dialog.Manager.downloadFile", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.New("dialog.Manager.downloadFile", "build request failed", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.NewTransport("dialog.Manager.downloadFile", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewTransport("dialog.Manager.downloadFile",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return io.ReadAll(resp.Body)
}

func (m *Manager) deleteMessage(chatID int64, messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := m.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		slog.Debug("delete message failed",
			slog.Int64("chat_id", chatID), slog.Int("message_id", messageID), slog.Any("error", err))
	}
}

func chatIDOf(update tgbotapi.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID
	}
	return 0
}

func commandOf(update tgbotapi.Update) string {
	if update.Message != nil && update.Message.IsCommand() {
		return update.Message.Command()
	}
	return ""
}

func incomingMedia(msg *tgbotapi.Message) *IncomingMedia {
	media := IncomingMedia{MessageID: msg.MessageID}
	switch {
	case len(msg.Photo) > 0:
		media.PhotoFileID = msg.Photo[len(msg.Photo)-1].FileID
	case msg.Voice != nil:
		media.VoiceFileID = msg.Voice.FileID
	case msg.Audio != nil:
		media.AudioFileID = msg.Audio.FileID
	default:
		return nil
	}
	return &media
}

func splitCallbackData(data string) (widgetID, arg string) {
	if i := strings.LastIndex(data, ":"); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, ""
}

// walkButtons visits interactive widgets depth-first until visit
// returns true.
func walkButtons(widgets []Widget, visit func(Widget) bool) {
	for _, wd := range widgets {
		if row, ok := wd.(Row); ok {
			walkButtons(row.Buttons, visit)
			continue
		}
		if visit(wd) {
			return
		}
	}
}
