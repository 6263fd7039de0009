package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/postiq-ai/postiq-bot/pkg/errors"
)

const interserviceSecretHeader = "X-Interservice-Secret"

// Client is the shared transport under every service facade. Stateless
// and safe for concurrent use; retries are the caller's decision.
type Client struct {
	http    *http.Client
	baseURL string
	secret  string
}

func New(httpClient *http.Client, baseURL, secret string) *Client {
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		secret:  secret,
	}
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do performs one JSON round trip. Non-2xx become KindTransport (402 is
// promoted to KindInsufficientBalance), undecodable bodies KindDecode.
func (c *Client) do(ctx context.Context, trace, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.New(trace, "request encode failed", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), body)
	if err != nil {
		return errors.New(trace, "request build failed", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(ctx, req)

	return c.roundTrip(trace, req, out)
}

// doMultipart uploads a single named file part plus string fields.
func (c *Client) doMultipart(ctx context.Context, trace, path, field, filename string, file io.Reader, fields map[string]string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return errors.New(trace, "multipart build failed", err)
	}
	if _, err = io.Copy(part, file); err != nil {
		return errors.New(trace, "multipart copy failed", err)
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	if err = w.Close(); err != nil {
		return errors.New(trace, "multipart close failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &buf)
	if err != nil {
		return errors.New(trace, "request build failed", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	c.decorate(ctx, req)

	return c.roundTrip(trace, req, out)
}

func (c *Client) decorate(ctx context.Context, req *http.Request) {
	if c.secret != "" {
		req.Header.Set(interserviceSecretHeader, c.secret)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func (c *Client) roundTrip(trace string, req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.NewTransport(trace, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return errors.NewTransport(trace, err)
	}

	if resp.StatusCode == http.StatusPaymentRequired {
		return errors.NewInsufficientBalance(trace)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewTransport(trace,
			fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(raw, 256)))
	}

	if out == nil {
		return nil
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return errors.NewDecode(trace, err)
	}
	return nil
}

// download fetches raw bytes, bypassing JSON decoding.
func (c *Client) download(ctx context.Context, trace, path string, query url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return nil, errors.New(trace, "request build failed", err)
	}
	c.decorate(ctx, req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.NewTransport(trace, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewTransport(trace, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return io.ReadAll(resp.Body)
}

func truncate(raw []byte, n int) string {
	if len(raw) <= n {
		return string(raw)
	}
	return string(raw[:n]) + "..."
}
