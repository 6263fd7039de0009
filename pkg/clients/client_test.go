package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/postiq-ai/postiq-bot/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.Client(), srv.URL, "test-secret")
}

func TestDoInjectsSecretHeader(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Interservice-Secret")
		w.Write([]byte(`{}`))
	})

	var out struct{}
	err := c.do(context.Background(), "t", http.MethodGet, "/x", nil, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "test-secret", got)
}

func TestDoErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		expect errors.Kind
	}{
		{"server error is transport", http.StatusInternalServerError, "boom", errors.KindTransport},
		{"not found is transport", http.StatusNotFound, "missing", errors.KindTransport},
		{"402 is insufficient balance", http.StatusPaymentRequired, "", errors.KindInsufficientBalance},
		{"garbage body is decode", http.StatusOK, "not-json", errors.KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			var out struct{}
			err := c.do(context.Background(), "t", http.MethodGet, "/x", nil, nil, &out)
			require.Error(t, err)
			assert.Equal(t, tt.expect, errors.KindOf(err))
		})
	}
}

func TestDoNetworkFailureIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := New(srv.Client(), srv.URL, "")
	srv.Close()

	err := c.do(context.Background(), "t", http.MethodGet, "/x", nil, nil, nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindTransport, errors.KindOf(err))
}

func TestPublicationModerateEmptyCommentSent(t *testing.T) {
	var body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		raw := make([]byte, r.ContentLength)
		r.Body.Read(raw)
		body = string(raw)
		w.Write([]byte(`{}`))
	})

	pub := NewPublicationClient(c)
	err := pub.Moderate(context.Background(), "pub-1", ModerateRequest{
		ModeratorAccountID: 7,
		Verdict:            "approved",
	})
	require.NoError(t, err)
	// Empty comment must be serialized, not omitted: the service treats
	// empty string as "no comment".
	assert.Contains(t, body, `"moderation_comment":""`)
}
