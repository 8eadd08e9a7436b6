package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wbdash/wbdash/internal/client/selection"
	"github.com/wbdash/wbdash/internal/common"
)

// Scope exposes the current account selection. A nil Set means nothing
// is selected.
type Scope interface {
	Selection() *selection.Set
}

// RequestOptions tweaks a scoped request. The zero value is a GET.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    any
}

// ScopedFetcher issues analytics requests filtered by the selection.
type ScopedFetcher struct {
	baseURL string
	http    *http.Client
	scope   Scope
	creds   Credentials
}

func NewScopedFetcher(baseURL string, timeout time.Duration, scope Scope, creds Credentials) *ScopedFetcher {
	return &ScopedFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		scope:   scope,
		creds:   creds,
	}
}

// SelectedIDs renders the selection as the wb_lk_ids value: ascending ids
// joined by commas, or "" when empty.
func (f *ScopedFetcher) SelectedIDs() string {
	if f.scope == nil {
		return ""
	}
	sel := f.scope.Selection()
	if sel == nil {
		return ""
	}
	ids := sel.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// BuildURL joins endpoint to the base URL and adds wb_lk_ids plus every
// non-nil param, each rendered with fmt.Sprint.
func (f *ScopedFetcher) BuildURL(endpoint string, params map[string]any) string {
	q := url.Values{}
	q.Set(common.AccountsParam, f.SelectedIDs())
	for k, v := range params {
		if v == nil || k == common.AccountsParam {
			continue
		}
		q.Set(k, fmt.Sprint(v))
	}
	return f.baseURL + endpoint + "?" + q.Encode()
}

// Fetch performs the request and decodes a 2xx JSON body into out. Any
// other status yields a generic *StatusError carrying only the code.
func (f *ScopedFetcher) Fetch(ctx context.Context, endpoint string, opts *RequestOptions, params map[string]any, out any) error {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, f.BuildURL(endpoint, params), body)
	if err != nil {
		return err
	}
	// Caller headers go last and may replace the defaults.
	req.Header.Set("Content-Type", "application/json")
	setAuthHeaders(req, f.creds)
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}
