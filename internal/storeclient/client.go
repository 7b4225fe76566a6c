// Package storeclient is the typed transport to the record store. It holds
// no business logic: every call is one request, with no caching and no retry.
package storeclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"

	"framevault/internal/metrics"
)

// Collection names a record store collection.
type Collection string

const (
	Users  Collection = "users"
	Albums Collection = "albums"
	Photos Collection = "photos"
	Shares Collection = "shares"
)

// Client calls the record store over HTTP.
type Client struct {
	baseURL string
	http    *client.Client
}

// New constructs a record store client. timeout bounds every request.
func New(baseURL string, timeout time.Duration) *Client {
	cc := client.New()
	cc.SetTimeout(timeout)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    cc,
	}
}

// FetchOne loads the record with id into out. found is false when the store
// has no such record.
func (c *Client) FetchOne(ctx context.Context, col Collection, id string, out any) (bool, error) {
	err := c.doJSON(ctx, col, http.MethodGet, "/"+string(col)+"/"+url.PathEscape(id), nil, nil, out)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// FetchMany loads every record matching filter into out, which must point
// to a slice. No matches leaves an empty slice.
func (c *Client) FetchMany(ctx context.Context, col Collection, filter map[string]string, out any) error {
	return c.doJSON(ctx, col, http.MethodGet, "/"+string(col), filter, nil, out)
}

// Create posts record and decodes the stored version, id included, into out.
func (c *Client) Create(ctx context.Context, col Collection, record, out any) error {
	return c.doJSON(ctx, col, http.MethodPost, "/"+string(col), nil, record, out)
}

// Delete removes the record with id. A record that is already gone is not
// an error.
func (c *Client) Delete(ctx context.Context, col Collection, id string) error {
	err := c.doJSON(ctx, col, http.MethodDelete, "/"+string(col)+"/"+url.PathEscape(id), nil, nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return nil
	}
	return err
}

// Ping checks that the record store answers its health probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, "healthz", http.MethodGet, "/healthz", nil, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, col Collection, method, path string, query map[string]string, payload, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.StoreRequestDuration.
			WithLabelValues(string(col), method, outcomeOf(err)).
			Observe(time.Since(start).Seconds())
	}()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}

	req := c.http.R().
		SetContext(ctx).
		SetMethod(method).
		SetURL(c.baseURL + path)
	for k, v := range query {
		req.SetParam(k, v)
	}
	if payload != nil {
		req.SetJSON(payload)
	}

	resp, err := req.Send()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	defer resp.Close()

	if status := resp.StatusCode(); status >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(resp.Body(), &errResp)
		msg := errResp.Error
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{Status: status, Message: fmt.Sprintf("%s %s: %d %s", method, path, status, msg)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: decode %s %s: %w", ErrRequestFailed, method, path, err)
	}
	return nil
}

func outcomeOf(err error) string {
	var apiErr *APIError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, context.Canceled):
		return metrics.OutcomeCanceled
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrConflict):
		return metrics.OutcomeConflict
	default:
		return metrics.OutcomeError
	}
}
