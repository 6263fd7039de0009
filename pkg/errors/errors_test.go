package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindSurvivesWrap(t *testing.T) {
	base := NewTransport("clients.publication.GenerateText", fmt.Errorf("dial tcp: timeout"))

	wrapped := Wrap(base, "GeneratePublicationService.Generate", "generation failed")
	assert.Equal(t, KindTransport, KindOf(wrapped))
	assert.Equal(t, http.StatusBadGateway, wrapped.GetCode())

	traced := Trace("dialog.engine", wrapped)
	assert.Equal(t, KindTransport, KindOf(traced))
	assert.True(t, IsKind(traced, KindTransport))
}

func TestForeignErrorIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(fmt.Errorf("boom")))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestTraceChainRendered(t *testing.T) {
	err := Trace("b", New("a", "msg", nil))
	assert.Contains(t, err.Error(), `"a->b"`)
	assert.NoError(t, Trace("b", nil))
}

func TestConstructorsCodes(t *testing.T) {
	assert.Equal(t, http.StatusPaymentRequired, NewInsufficientBalance("t").GetCode())
	assert.Equal(t, http.StatusUnauthorized, NewAuth("t").GetCode())
	assert.Equal(t, http.StatusBadRequest, NewValidation("t", "too short").GetCode())
	assert.Equal(t, "too short", NewValidation("t", "too short").Message())
}
