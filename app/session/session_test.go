package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	Counter int    `json:"counter"`
	Note    string `json:"note"`
}

func (testData) DialogID() string { return "test_dialog" }

func init() {
	RegisterData("test_dialog", func() Data { return &testData{} })
}

func TestSessionEncodeRoundTripBitEqual(t *testing.T) {
	s := New(42)
	s.MessageID = 1007
	s.Push(&Frame{Dialog: "test_dialog", State: "first", Data: &testData{Counter: 3, Note: "a"}})
	s.Push(&Frame{Dialog: "test_dialog", State: "second", Data: &testData{Counter: 9}})

	raw, err := s.Encode()
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, decoded.Stack, 2)
	assert.Equal(t, "second", decoded.Top().State)
	assert.Equal(t, 9, decoded.Top().Data.(*testData).Counter)

	again, err := decoded.Encode()
	require.NoError(t, err)
	assert.Equal(t, raw, again, "serialize→deserialize→serialize must be bit-equal")
}

func TestDecodeUnknownDialogFails(t *testing.T) {
	_, err := Decode([]byte(`{"chat_id":1,"message_id":0,"stack":[{"dialog":"nope","state":"x","data":{}}]}`))
	require.Error(t, err)
}

func TestStackOps(t *testing.T) {
	s := New(1)
	assert.Nil(t, s.Top())
	assert.Nil(t, s.Pop())

	s.Push(&Frame{Dialog: "test_dialog", State: "a", Data: &testData{}})
	s.Push(&Frame{Dialog: "test_dialog", State: "b", Data: &testData{}})
	assert.Equal(t, "b", s.Top().State)
	assert.Equal(t, "a", s.Parent().State)

	popped := s.Pop()
	assert.Equal(t, "b", popped.State)
	assert.Equal(t, "a", s.Top().State)
	assert.Nil(t, s.Parent())

	s.Reset()
	assert.Nil(t, s.Top())
}

func TestLockerSerializesSameChat(t *testing.T) {
	l := NewLocker()

	var (
		counter int
		wg      sync.WaitGroup
	)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.WithLock(7, func() error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 64, counter)
}
