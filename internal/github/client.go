// Package github holds the thin GitHub surface the gate needs: token
// resolution and a tag listing for the release-tag check.
package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"
)

type Client struct {
	Client *github.Client
	HTTP   *http.Client
}

// loggingRoundTripper emits one line per request and response (including
// latency) when verbose logging is enabled. Logs go to stderr so structured
// stdout output stays clean.
type loggingRoundTripper struct {
	base http.RoundTripper
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	fmt.Fprintf(os.Stderr, "[verbose] github api: %s %s\n", req.Method, req.URL.String())
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[verbose] github api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
	} else {
		fmt.Fprintf(os.Stderr, "[verbose] github api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
	}
	return resp, err
}

// NewClient builds a GitHub client. An empty token yields an unauthenticated
// client, which is enough for public tag listings within rate limits.
func NewClient(ctx context.Context, token string, verbose bool) (*Client, error) {
	if ctx == nil {
		return nil, fmt.Errorf("github client: ctx is nil")
	}

	transport := http.DefaultTransport
	if verbose {
		transport = &loggingRoundTripper{base: transport}
	}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		transport = &oauth2.Transport{Source: ts, Base: transport}
	}
	hc := &http.Client{Transport: transport}

	return &Client{
		Client: github.NewClient(hc),
		HTTP:   hc,
	}, nil
}

// ListTags returns the names of all tags on owner/repo.
func (c *Client) ListTags(ctx context.Context, owner, repo string) ([]string, error) {
	var names []string
	opt := &github.ListOptions{PerPage: 100}
	for {
		tags, resp, err := c.Client.Repositories.ListTags(ctx, owner, repo, opt)
		if err != nil {
			return nil, fmt.Errorf("list tags %s/%s: %w", owner, repo, err)
		}
		for _, t := range tags {
			names = append(names, t.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return names, nil
}
