package actors

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/compozy/workflow-actor/actorsys"
)

// httpCallArgs is the map-form argument shape for `get`/`post`: {"url":
// "...", "body": ..., "headers": {"K":"V"}}. `body` is ignored by `get`.
type httpCallArgs struct {
	URL     string            `json:"url"`
	Body    any               `json:"body"`
	Headers map[string]string `json:"headers"`
}

// HTTPCallActor dispatches outbound-only `get`/`post` requests via
// go-resty/resty/v2 (SPEC_FULL.md's "HTTP-call actor" built-in kind). It
// never listens, so it never becomes the "distributed HTTP transport to
// remote nodes" spec.md §1 excludes — it is exclusively a caller.
type HTTPCallActor struct {
	client *resty.Client
}

// NewHTTPCallActor builds an HTTPCallActor with a bounded request timeout.
func NewHTTPCallActor(timeout time.Duration) *HTTPCallActor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPCallActor{client: resty.New().SetTimeout(timeout)}
}

func (a *HTTPCallActor) Dispatch(ctx context.Context, action string, args string) actorsys.Result {
	var req httpCallArgs
	if err := json.Unmarshal([]byte(args), &req); err != nil {
		return actorsys.Fail(fmt.Sprintf("BadArguments: %v", err))
	}
	if req.URL == "" {
		return actorsys.Fail("BadArguments: url is required")
	}

	r := a.client.R().SetContext(ctx).SetHeaders(req.Headers)

	var resp *resty.Response
	var err error
	switch action {
	case "get":
		resp, err = r.Get(req.URL)
	case "post":
		resp, err = r.SetBody(req.Body).Post(req.URL)
	default:
		return actorsys.Fail(fmt.Sprintf("UnknownAction: %s", action))
	}
	if err != nil {
		return actorsys.Fail(fmt.Sprintf("http %s %s failed: %v", action, req.URL, err))
	}
	if resp.IsError() {
		return actorsys.Fail(fmt.Sprintf("http %s %s returned %d: %s", action, req.URL, resp.StatusCode(), resp.String()))
	}
	return actorsys.Ok(resp.String())
}
