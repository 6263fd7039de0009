package dialog

import (
	"context"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postiq-ai/postiq-bot/app/session"
	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type fakeBot struct {
	sent    []tgbotapi.Chattable
	nextID  int
	sendErr error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.nextID++
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetFileDirectURL(fileID string) (string, error) {
	return "https://files.invalid/" + fileID, nil
}

type memStore struct {
	sessions map[int64]*session.Session
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[int64]*session.Session)}
}

func (s *memStore) Load(_ context.Context, chatID int64) (*session.Session, error) {
	sess, ok := s.sessions[chatID]
	if !ok {
		return nil, session.ErrNotFound
	}
	// Round-trip through the codec so tests catch marshaling breaks.
	raw, err := sess.Encode()
	if err != nil {
		return nil, err
	}
	return session.Decode(raw)
}

func (s *memStore) Save(_ context.Context, sess *session.Session) error {
	s.sessions[sess.ChatID] = sess
	return nil
}

func (s *memStore) Drop(_ context.Context, chatID int64) error {
	delete(s.sessions, chatID)
	return nil
}

type memCache struct {
	files map[string]string
}

func (c *memCache) Create(_ context.Context, f types.CachedFile) error {
	if c.files == nil {
		c.files = make(map[string]string)
	}
	c.files[f.Filename] = f.FileID
	return nil
}

func (c *memCache) GetByFilename(_ context.Context, filename string) (*types.CachedFile, error) {
	id, ok := c.files[filename]
	if !ok {
		return nil, nil
	}
	return &types.CachedFile{Filename: filename, FileID: id}, nil
}

type counterData struct {
	Dialog string `json:"-"`
	Count  int    `json:"count"`
}

func (d *counterData) DialogID() string { return d.Dialog }

func newTestManager(bot *fakeBot, store session.Store) *Manager {
	return NewManager(bot, store, session.NewLocker(), &memCache{}, 2*time.Minute)
}

func counterDialog(id string) *Dialog {
	d := &Dialog{
		ID:      id,
		NewData: func() session.Data { return &counterData{Dialog: id} },
	}
	d.Windows = []*Window{
		{
			State: NewState(id, "main"),
			Widgets: []Widget{
				Const{Text: "counter"},
				Button{ID: "inc", Text: "+1", OnClick: func(c *Context) error {
					c.Data().(*counterData).Count++
					return nil
				}},
				Button{ID: "close", Text: "close", OnClick: func(c *Context) error {
					c.Done(c.Data().(*counterData).Count)
					return nil
				}},
			},
		},
	}
	return d
}

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: chatID},
		Text:      text,
	}}
}

func callbackUpdate(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: chatID}},
	}}
}

func TestStartDialogPushesFrameAndRenders(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)
	m.Register(counterDialog("EngineStart"))

	err := m.StartDialog(context.Background(), nil, 7, NewState("EngineStart", "main"), nil, true)
	require.NoError(t, err)
	require.Len(t, bot.sent, 1)

	sess, err := store.Load(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, sess.Top())
	assert.Equal(t, "EngineStart", sess.Top().Dialog)
	assert.Equal(t, "main", sess.Top().State)
	assert.NotZero(t, sess.MessageID)
}

func TestCallbackDispatchMutatesDataAndEdits(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)
	m.Register(counterDialog("EngineClick"))

	require.NoError(t, m.StartDialog(context.Background(), nil, 7, NewState("EngineClick", "main"), nil, true))
	require.NoError(t, m.HandleUpdate(context.Background(), nil, callbackUpdate(7, "inc")))

	sess, err := store.Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, sess.Top().Data.(*counterData).Count)

	// First render sends, second edits the same message.
	require.Len(t, bot.sent, 2)
	_, isEdit := bot.sent[1].(tgbotapi.EditMessageTextConfig)
	assert.True(t, isEdit)
}

func TestDoneDropsSessionWhenStackEmpties(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)
	m.Register(counterDialog("EngineDone"))

	require.NoError(t, m.StartDialog(context.Background(), nil, 7, NewState("EngineDone", "main"), nil, true))
	require.NoError(t, m.HandleUpdate(context.Background(), nil, callbackUpdate(7, "close")))

	_, err := store.Load(context.Background(), 7)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestDoneNotifiesParentDialog(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)

	var got any
	parent := counterDialog("EngineParent")
	parent.OnChildDone = func(c *Context, result any) error {
		got = result
		return nil
	}
	m.Register(parent)
	m.Register(counterDialog("EngineChild"))

	require.NoError(t, m.StartDialog(context.Background(), nil, 7, NewState("EngineParent", "main"), nil, true))
	require.NoError(t, m.StartDialog(context.Background(), nil, 7, NewState("EngineChild", "main"), nil, false))

	require.NoError(t, m.HandleUpdate(context.Background(), nil, callbackUpdate(7, "inc")))
	require.NoError(t, m.HandleUpdate(context.Background(), nil, callbackUpdate(7, "close")))

	assert.Equal(t, 1, got)

	sess, err := store.Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "EngineParent", sess.Top().Dialog)
}

func TestNoSessionRoutesThroughRecovery(t *testing.T) {
	bot := &fakeBot{}
	m := newTestManager(bot, newMemStore())
	m.Register(counterDialog("EngineNoSess"))

	err := m.HandleUpdate(context.Background(), nil, textUpdate(7, "hello"))
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, bot.sent)
}

type echoData struct {
	Text    string `json:"text"`
	Invalid bool   `json:"invalid"`
}

func (d *echoData) DialogID() string { return "EngineInput" }

func TestTextInputValidation(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)

	m.Register(&Dialog{
		ID:      "EngineInput",
		NewData: func() session.Data { return &echoData{} },
		Windows: []*Window{{
			State: NewState("EngineInput", "main"),
			Widgets: []Widget{
				Const{Text: "type something"},
				TextInput{
					ID:     "text",
					MinLen: 3,
					MaxLen: 10,
					OnInput: func(c *Context, text string) error {
						c.Data().(*echoData).Text = text
						return nil
					},
					OnInvalid: func(c *Context, _ InputViolation) error {
						c.Data().(*echoData).Invalid = true
						return nil
					},
				},
			},
		}},
	})

	require.NoError(t, m.StartDialog(context.Background(), nil, 7, NewState("EngineInput", "main"), nil, true))

	require.NoError(t, m.HandleUpdate(context.Background(), nil, textUpdate(7, "ab")))
	sess, _ := store.Load(context.Background(), 7)
	assert.True(t, sess.Top().Data.(*echoData).Invalid)
	assert.Empty(t, sess.Top().Data.(*echoData).Text)

	require.NoError(t, m.HandleUpdate(context.Background(), nil, textUpdate(7, "hello")))
	sess, _ = store.Load(context.Background(), 7)
	assert.Equal(t, "hello", sess.Top().Data.(*echoData).Text)
}

func TestCommandCreatesFreshSession(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)
	m.Register(counterDialog("EngineCmd"))
	m.RegisterCommand("start", func(c *Context) error {
		c.StartReset(NewState("EngineCmd", "main"), nil)
		return nil
	})

	cmd := tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		Chat:      &tgbotapi.Chat{ID: 7},
		Text:      "/start",
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
	}}
	require.NoError(t, m.HandleUpdate(context.Background(), nil, cmd))

	sess, err := store.Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "EngineCmd", sess.Top().Dialog)
}

func TestGetterRestartReroutesStack(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)
	m.Register(counterDialog("EngineHome"))

	broken := counterDialog("EngineBroken")
	broken.Windows[0].Getter = GetterFunc(func(ctx context.Context, view *View) (ViewData, error) {
		return nil, &RestartError{Target: NewState("EngineHome", "main")}
	})
	m.Register(broken)

	require.NoError(t, m.StartDialog(context.Background(), nil, 7, NewState("EngineBroken", "main"), nil, true))

	sess, err := store.Load(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, sess.Stack, 1)
	assert.Equal(t, "EngineHome", sess.Top().Dialog)
}

func TestSelectDispatchesChosenOption(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)

	var picked string
	m.Register(&Dialog{
		ID:      "EngineSelect",
		NewData: func() session.Data { return &counterData{Dialog: "EngineSelect"} },
		Windows: []*Window{{
			State: NewState("EngineSelect", "main"),
			Getter: GetterFunc(func(ctx context.Context, view *View) (ViewData, error) {
				return ViewData{"options": []SelectOption{
					{Value: "a", Label: "A"},
					{Value: "b", Label: "B"},
				}}, nil
			}),
			Widgets: []Widget{
				Const{Text: "pick one"},
				Select{ID: "pick", OptionsFrom: "options", PerRow: 2,
					OnSelect: func(c *Context, index int, opt SelectOption) error {
						picked = opt.Value
						return nil
					}},
			},
		}},
	})

	require.NoError(t, m.StartDialog(context.Background(), nil, 7, NewState("EngineSelect", "main"), nil, true))
	require.NoError(t, m.HandleUpdate(context.Background(), nil, callbackUpdate(7, "pick:1")))

	assert.Equal(t, "b", picked)
}

func TestEditNotModifiedTreatedAsSuccess(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)
	m.Register(counterDialog("EngineNoop"))

	require.NoError(t, m.StartDialog(context.Background(), nil, 7, NewState("EngineNoop", "main"), nil, true))

	bot.sendErr = &tgbotapi.Error{Message: "Bad Request: message is not modified"}
	err := m.HandleUpdate(context.Background(), nil, callbackUpdate(7, "inc"))
	require.NoError(t, err)

	// The edit failed softly; no fallback send happened.
	require.Len(t, bot.sent, 2)
}

func TestSameChatUpdatesSerialized(t *testing.T) {
	bot := &fakeBot{}
	store := newMemStore()
	m := newTestManager(bot, store)
	m.Register(counterDialog("EngineRace"))

	require.NoError(t, m.StartDialog(context.Background(), nil, 7, NewState("EngineRace", "main"), nil, true))

	done := make(chan struct{})
	for i := 0; i < 16; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_ = m.HandleUpdate(context.Background(), nil, callbackUpdate(7, "inc"))
		}()
	}
	for i := 0; i < 16; i++ {
		<-done
	}

	sess, err := store.Load(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 16, sess.Top().Data.(*counterData).Count)
}

func TestSendThrottleHonorsCancellation(t *testing.T) {
	bot := &fakeBot{}
	m := newTestManager(bot, newMemStore())

	sent, err := m.send(context.Background(), tgbotapi.NewMessage(7, "привет"))
	require.NoError(t, err)
	assert.Equal(t, 1, sent.MessageID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.send(ctx, tgbotapi.NewMessage(7, "пропало"))
	require.Error(t, err)
	assert.Len(t, bot.sent, 1)
}
