package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/postiq-ai/postiq-bot/pkg/errors"
)

// ErrNotFound means the KV store has no session for the chat. The engine
// treats the chat as fresh and routes through recovery.
var ErrNotFound = fmt.Errorf("session not found")

// Data is the typed per-dialog payload of a frame. Each dialog registers
// a factory so stored frames decode back into their concrete struct.
type Data interface {
	DialogID() string
}

var dataFactories = map[string]func() Data{}

func RegisterData(dialog string, factory func() Data) {
	if _, ok := dataFactories[dialog]; ok {
		panic(fmt.Sprintf("session: duplicate data factory for dialog %q", dialog))
	}
	dataFactories[dialog] = factory
}

// Frame is one stack entry: the active dialog instance, its focused
// window and its data.
type Frame struct {
	Dialog string
	State  string
	Data   Data
}

type frameJSON struct {
	Dialog string          `json:"dialog"`
	State  string          `json:"state"`
	Data   json.RawMessage `json:"data"`
}

func (f Frame) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(f.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(frameJSON{Dialog: f.Dialog, State: f.State, Data: raw})
}

func (f *Frame) UnmarshalJSON(raw []byte) error {
	var fj frameJSON
	if err := json.Unmarshal(raw, &fj); err != nil {
		return err
	}

	factory, ok := dataFactories[fj.Dialog]
	if !ok {
		return fmt.Errorf("session: no data factory for dialog %q", fj.Dialog)
	}
	data := factory()
	if len(fj.Data) > 0 {
		if err := json.Unmarshal(fj.Data, data); err != nil {
			return err
		}
	}

	f.Dialog = fj.Dialog
	f.State = fj.State
	f.Data = data
	return nil
}

// Session holds the per-chat intent stack plus the id of the message the
// engine currently renders into.
type Session struct {
	ChatID    int64    `json:"chat_id"`
	MessageID int      `json:"message_id"`
	Stack     []*Frame `json:"stack"`
}

func New(chatID int64) *Session {
	return &Session{ChatID: chatID}
}

func (s *Session) Top() *Frame {
	if len(s.Stack) == 0 {
		return nil
	}
	return s.Stack[len(s.Stack)-1]
}

// Parent returns the frame under the top, nil for a single-frame stack.
func (s *Session) Parent() *Frame {
	if len(s.Stack) < 2 {
		return nil
	}
	return s.Stack[len(s.Stack)-2]
}

func (s *Session) Push(f *Frame) {
	s.Stack = append(s.Stack, f)
}

func (s *Session) Pop() *Frame {
	top := s.Top()
	if top == nil {
		return nil
	}
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top
}

func (s *Session) Reset() {
	s.Stack = s.Stack[:0]
}

func (s *Session) Encode() ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, errors.New("session.Encode", "session encode failed", err)
	}
	return raw, nil
}

func Decode(raw []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.New("session.Decode", "session decode failed", err)
	}
	return &s, nil
}

// Store is the C1 contract. Implementations must keep Save/Load coherent
// for concurrent same-chat callers together with a Locker.
type Store interface {
	Load(ctx context.Context, chatID int64) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Drop(ctx context.Context, chatID int64) error
}
