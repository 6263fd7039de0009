package dialog

import (
	"context"
	"fmt"

	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

// State is a fully qualified window id: "Dialog.window".
type State string

func NewState(dialog, window string) State {
	return State(dialog + "." + window)
}

func (s State) Dialog() string {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return string(s[:i])
		}
	}
	return string(s)
}

func (s State) Window() string {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return string(s[i+1:])
		}
	}
	return ""
}

// Getter computes view data for a render. Getters are pure: they receive
// no transition surface, only a read view of the frame. A getter that
// needs a transition signals it through RestartError.
type Getter interface {
	ViewData(ctx context.Context, view *View) (ViewData, error)
}

type GetterFunc func(ctx context.Context, view *View) (ViewData, error)

func (f GetterFunc) ViewData(ctx context.Context, view *View) (ViewData, error) {
	return f(ctx, view)
}

// View is what a getter may observe: frame data and the hydrated user
// state. No session, no transitions.
type View struct {
	Data session.Data
	User *types.UserState
}

// RestartError is the sanctioned escape hatch for getters: the engine
// converts it into start(reset_stack, Target) before rendering anything.
type RestartError struct {
	Target State
	Data   session.Data
}

func (e *RestartError) Error() string {
	return fmt.Sprintf("getter requested restart to %s", e.Target)
}

// Window is one screen: widget layout plus its getter.
type Window struct {
	State     State
	Widgets   []Widget
	Getter    Getter
	ParseMode string
}

// Dialog is an ordered set of windows sharing one data type.
type Dialog struct {
	ID      string
	NewData func() session.Data
	Windows []*Window
	// OnChildDone runs on this dialog's top frame after a child dialog
	// pops with done(result).
	OnChildDone func(ctx *Context, result any) error
}

func (d *Dialog) window(id string) *Window {
	for _, w := range d.Windows {
		if w.State.Window() == id {
			return w
		}
	}
	return nil
}
