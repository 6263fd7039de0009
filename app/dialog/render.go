package dialog

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/errors"
	"github.com/postiq-ai/postiq-bot/pkg/safe"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

const maxRestartHops = 3

// Telegram's documented overall bot send ceiling.
const sendsPerSecond = 30

// send throttles an outbound message before handing it to the bot API.
func (m *Manager) send(ctx context.Context, msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return tgbotapi.Message{}, errors.NewTransport("dialog.Manager.send", err)
	}
	return m.bot.Send(msg)
}

// render draws the focused window into the chat. RestartError from a
// getter reroutes the stack and retries, capped to avoid restart loops.
func (m *Manager) render(c *Context) error {
	for hop := 0; ; hop++ {
		if hop >= maxRestartHops {
			return errors.New("dialog.Manager.render", "getter restart loop detected", nil)
		}

		err := m.renderOnce(c)
		restart, ok := err.(*RestartError)
		if !ok {
			return err
		}

		c.StartReset(restart.Target, restart.Data)
		if err := m.applyTransitions(c); err != nil {
			return err
		}
	}
}

func (m *Manager) renderOnce(c *Context) error {
	top := c.sess.Top()
	d := m.dialogs[top.Dialog]
	if d == nil {
		return errors.New("dialog.Manager.renderOnce", "unknown dialog "+top.Dialog, nil)
	}
	w := d.window(top.State)
	if w == nil {
		return errors.New("dialog.Manager.renderOnce", "unknown window "+top.Dialog+"."+top.State, nil)
	}

	vd, err := m.windowViewData(c, w)
	if err != nil {
		return err
	}

	text := assembleText(w, top.Data, vd)
	keyboard := buildKeyboard(w, top.Data, vd)
	media := resolveMedia(w, top.Data, vd)

	if media != nil {
		return m.showMedia(c, w, *media, text, keyboard)
	}
	return m.showText(c, w, text, keyboard)
}

// viewData resolves the getter of the currently focused window; the
// Select dispatch path uses it to rebuild the option list.
func (m *Manager) viewData(c *Context) (ViewData, error) {
	top := c.sess.Top()
	d := m.dialogs[top.Dialog]
	if d == nil {
		return nil, errors.New("dialog.Manager.viewData", "unknown dialog "+top.Dialog, nil)
	}
	w := d.window(top.State)
	if w == nil {
		return nil, errors.New("dialog.Manager.viewData", "unknown window "+top.Dialog+"."+top.State, nil)
	}
	return m.windowViewData(c, w)
}

func (m *Manager) windowViewData(c *Context, w *Window) (ViewData, error) {
	if w.Getter == nil {
		return ViewData{}, nil
	}
	vd, err := w.Getter.ViewData(c.ctx, &View{Data: c.Data(), User: c.user})
	if err != nil {
		return nil, err
	}
	if vd == nil {
		vd = ViewData{}
	}
	return vd, nil
}

func assembleText(w *Window, sd session.Data, vd ViewData) string {
	blocks := make([]string, 0, len(w.Widgets))
	for _, wd := range w.Widgets {
		switch t := wd.(type) {
		case Const:
			blocks = append(blocks, t.Text)
		case Format:
			if t.Visible != nil && !t.Visible(sd) {
				continue
			}
			if rendered := t.render(vd); rendered != "" {
				blocks = append(blocks, rendered)
			}
		}
	}
	return strings.Join(blocks, "\n\n")
}

func buildKeyboard(w *Window, sd session.Data, vd ViewData) *tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, wd := range w.Widgets {
		switch t := wd.(type) {
		case Row:
			var row []tgbotapi.InlineKeyboardButton
			for _, inner := range t.Buttons {
				if b := keyboardButton(inner, sd, vd); b != nil {
					row = append(row, *b)
				}
			}
			if len(row) > 0 {
				rows = append(rows, row)
			}
		case Select:
			rows = append(rows, selectRows(t, vd)...)
		default:
			if b := keyboardButton(wd, sd, vd); b != nil {
				rows = append(rows, []tgbotapi.InlineKeyboardButton{*b})
			}
		}
	}
	if len(rows) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

func keyboardButton(wd Widget, sd session.Data, vd ViewData) *tgbotapi.InlineKeyboardButton {
	switch t := wd.(type) {
	case Button:
		if t.Visible != nil && !t.Visible(sd) {
			return nil
		}
		text := t.Text
		if t.TextFrom != "" {
			if s := toString(vd[t.TextFrom]); s != "" {
				text = s
			}
		}
		b := tgbotapi.NewInlineKeyboardButtonData(text, t.ID)
		return &b
	case URLButton:
		if t.Visible != nil && !t.Visible(sd) {
			return nil
		}
		url := t.URL
		if t.URLFrom != "" {
			url = toString(vd[t.URLFrom])
		}
		if url == "" {
			return nil
		}
		b := tgbotapi.NewInlineKeyboardButtonURL(t.Text, url)
		return &b
	case Checkbox:
		if t.Visible != nil && !t.Visible(sd) {
			return nil
		}
		mark := "☐"
		if t.Checked != nil && t.Checked(sd) {
			mark = "✅"
		}
		b := tgbotapi.NewInlineKeyboardButtonData(mark+" "+t.Text, t.ID)
		return &b
	}
	return nil
}

func selectRows(s Select, vd ViewData) [][]tgbotapi.InlineKeyboardButton {
	opts, _ := vd[s.OptionsFrom].([]SelectOption)
	perRow := s.PerRow
	if perRow <= 0 {
		perRow = 1
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, opt := range opts {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(opt.Label, s.ID+":"+strconv.Itoa(i)))
		if len(row) == perRow || i == len(opts)-1 {
			rows = append(rows, row)
			row = nil
		}
	}
	return rows
}

func resolveMedia(w *Window, sd session.Data, vd ViewData) *MediaRef {
	for _, wd := range w.Widgets {
		if media, ok := wd.(Media); ok && media.Ref != nil {
			return media.Ref(sd, vd)
		}
	}
	return nil
}

func (m *Manager) showText(c *Context, w *Window, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	if c.sess.MessageID != 0 && c.showMode == ShowEdit && !c.forced {
		edit := tgbotapi.NewEditMessageText(c.sess.ChatID, c.sess.MessageID, text)
		edit.ParseMode = w.ParseMode
		if keyboard != nil {
			edit.ReplyMarkup = keyboard
		}
		_, err := m.send(c.ctx, edit)
		if err == nil || isNotModified(err) {
			return nil
		}
		slog.Debug("edit failed, falling back to send",
			slog.Int64("chat_id", c.sess.ChatID), slog.Any("error", err))
	}

	msg := tgbotapi.NewMessage(c.sess.ChatID, text)
	msg.ParseMode = w.ParseMode
	if keyboard != nil {
		msg.ReplyMarkup = keyboard
	}
	sent, err := m.send(c.ctx, msg)
	if err != nil {
		return errors.NewTransport("dialog.Manager.showText", err)
	}

	m.deleteMessage(c.sess.ChatID, c.sess.MessageID)
	c.sess.MessageID = sent.MessageID
	return nil
}

// showMedia always sends a fresh message: Telegram cannot edit a text
// message into a photo or swap media kinds reliably, so the previous
// window message is deleted after the new one lands.
func (m *Manager) showMedia(c *Context, w *Window, ref MediaRef, caption string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	file, cached := m.mediaFile(c.ctx, ref)

	photo := tgbotapi.NewPhoto(c.sess.ChatID, file)
	photo.Caption = caption
	photo.ParseMode = w.ParseMode
	if keyboard != nil {
		photo.ReplyMarkup = keyboard
	}

	sent, err := m.send(c.ctx, photo)
	if err != nil {
		return errors.NewTransport("dialog.Manager.showMedia", err)
	}

	if !cached && ref.Filename != "" && len(sent.Photo) > 0 {
		fileID := sent.Photo[len(sent.Photo)-1].FileID
		go safe.Run(func() {
			if err := m.cache.Create(context.Background(), types.CachedFile{
				Filename: ref.Filename,
				FileID:   fileID,
			}); err != nil {
				slog.Warn("file cache store failed",
					slog.String("filename", ref.Filename), slog.Any("error", err))
			}
		})
	}

	m.deleteMessage(c.sess.ChatID, c.sess.MessageID)
	c.sess.MessageID = sent.MessageID
	return nil
}

// mediaFile prefers a known file id, then the cache, then a URL upload.
func (m *Manager) mediaFile(ctx context.Context, ref MediaRef) (tgbotapi.RequestFileData, bool) {
	if ref.FileID != "" {
		return tgbotapi.FileID(ref.FileID), true
	}
	if ref.Filename != "" {
		if cached, err := m.cache.GetByFilename(ctx, ref.Filename); err == nil && cached != nil {
			return tgbotapi.FileID(cached.FileID), true
		}
	}
	return tgbotapi.FileURL(ref.URL), false
}

func isNotModified(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
