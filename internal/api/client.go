package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/armazemdigital/vendas-core.git/internal/sale"
	"github.com/armazemdigital/vendas-core.git/internal/session"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "api").Logger()

// Error is a server rejection: non-2xx status plus the body's message
// when one was present. Transport failures are ordinary wrapped errors,
// never *Error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// Unauthorized reports a missing/expired credential; the calling
// surface is expected to redirect to login.
func (e *Error) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

// Client talks to the remote storefront backend. It is the single
// serialization boundary; everything above it works with typed records.
type Client struct {
	base  string
	http  *http.Client
	creds session.TokenProvider
}

func New(base string, creds session.TokenProvider, timeout time.Duration) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		http:  &http.Client{Timeout: timeout},
		creds: creds,
	}
}

func (c *Client) ListCustomers(ctx context.Context) ([]sale.Customer, error) {
	var out []sale.Customer
	if err := c.do(ctx, http.MethodGet, "/clientes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProducts(ctx context.Context) ([]sale.Product, error) {
	var out []sale.Product
	if err := c.do(ctx, http.MethodGet, "/produtos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSales(ctx context.Context) ([]sale.Sale, error) {
	var out []sale.Sale
	if err := c.do(ctx, http.MethodGet, "/vendas", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateSale(ctx context.Context, p sale.Payload) (sale.Sale, error) {
	var out sale.Sale
	if err := c.do(ctx, http.MethodPost, "/vendas", p, &out); err != nil {
		return sale.Sale{}, err
	}
	return out, nil
}

func (c *Client) UpdateSale(ctx context.Context, id string, p sale.Payload) (sale.Sale, error) {
	var out sale.Sale
	if err := c.do(ctx, http.MethodPut, "/vendas/"+id, p, &out); err != nil {
		return sale.Sale{}, err
	}
	return out, nil
}

func (c *Client) DeleteSale(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/vendas/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.creds.Token(); tok != "" {
		req.Header.Set("auth-token", tok)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &Error{Status: res.StatusCode, Message: errorMessage(res.Body)}
		logger.Warn().Str("method", method).Str("path", path).
			Int("status", res.StatusCode).Str("message", apiErr.Message).
			Msg("request rejected")
		return apiErr
	}
	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// errorMessage pulls the optional human-readable field out of an error
// body. The backend uses "message" mostly, "error" in a few places.
func errorMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Err
}
