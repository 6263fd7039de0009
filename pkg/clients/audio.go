package clients

import (
	"context"
	"io"

	"github.com/postiq-ai/postiq-bot/pkg/types"
)

type AudioClient struct {
	*Client
}

func NewAudioClient(c *Client) *AudioClient {
	return &AudioClient{Client: c}
}

// Transcribe ships a voice/audio file to the transcription service.
// Blocking CPU work lives on the service side; this is a plain upload.
func (c *AudioClient) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	var out types.Transcription
	err := c.doMultipart(ctx, "clients.audio.Transcribe",
		"/api/audio/transcribe", "file", filename, audio, nil, &out)
	if err != nil {
		return "", err
	}
	return out.Text, nil
}
