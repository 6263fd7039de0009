package dialog

import (
	"fmt"
	"strings"

	"github.com/postiq-ai/postiq-bot/app/session"
)

// ViewData is the getter result consumed by format widgets and dynamic
// labels during a render.
type ViewData map[string]any

// Widget is one declarative element of a window: a text block, a button,
// an input hook or a media slot. Widgets hold no per-chat state; all
// state lives in the frame data.
type Widget interface {
	widget()
}

// Const renders a fixed text block.
type Const struct {
	Text string
}

func (Const) widget() {}

// Format renders text with {placeholder} substitution from view data.
type Format struct {
	Template string
	// When set, the block is skipped unless the predicate holds.
	Visible func(data session.Data) bool
}

func (Format) widget() {}

func (f Format) render(vd ViewData) string {
	out := f.Template
	for k, v := range vd {
		out = strings.ReplaceAll(out, "{"+k+"}", toString(v))
	}
	return out
}

// Button is an inline keyboard button dispatching to OnClick.
type Button struct {
	ID   string
	Text string
	// TextFrom overrides Text with a view-data key when set.
	TextFrom string
	Visible  func(data session.Data) bool
	OnClick  Handler
}

func (Button) widget() {}

// URLButton opens a link; no callback round trip.
type URLButton struct {
	Text string
	// URLFrom names the view-data key holding the target.
	URLFrom string
	URL     string
	Visible func(data session.Data) bool
}

func (URLButton) widget() {}

// Row groups buttons into one keyboard row.
type Row struct {
	Buttons []Widget
}

func (Row) widget() {}

// TextInput consumes a plain text message. The engine validates length
// first: violations go to OnInvalid (set a flag, re-render), valid text
// to OnInput.
type TextInput struct {
	ID        string
	MinLen    int
	MaxLen    int
	OnInput   func(ctx *Context, text string) error
	OnInvalid func(ctx *Context, violation InputViolation) error
}

func (TextInput) widget() {}

type InputViolation int

const (
	ViolationEmpty InputViolation = iota
	ViolationTooShort
	ViolationTooLong
)

// MediaInput consumes photo/voice/audio/document messages.
type MediaInput struct {
	ID      string
	OnMedia func(ctx *Context, media IncomingMedia) error
}

func (MediaInput) widget() {}

type IncomingMedia struct {
	PhotoFileID string
	VoiceFileID string
	AudioFileID string
	// MessageID of the user's raw message, for dialogs that delete it.
	MessageID int
}

// Select renders one button per option; OnSelect receives the chosen
// option.
type Select struct {
	ID string
	// OptionsFrom names the view-data key holding []SelectOption.
	OptionsFrom string
	PerRow      int
	OnSelect    func(ctx *Context, index int, opt SelectOption) error
}

func (Select) widget() {}

type SelectOption struct {
	Value string
	Label string
}

// Checkbox toggles a boolean owned by the dialog data.
type Checkbox struct {
	ID       string
	Text     string
	Checked  func(data session.Data) bool
	Visible  func(data session.Data) bool
	OnToggle Handler
}

func (Checkbox) widget() {}

// Media declares the window's media attachment. Ref is resolved at
// render time against the frame data and view data.
type Media struct {
	Ref func(data session.Data, vd ViewData) *MediaRef
}

func (Media) widget() {}

// MediaRef points at an image either by Telegram file id or by URL with
// a content-addressable filename used for the file-id cache.
type MediaRef struct {
	FileID   string
	URL      string
	Filename string
}

type Handler func(ctx *Context) error

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
