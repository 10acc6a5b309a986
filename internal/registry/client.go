// Package registry fetches the gitignore template index and template
// bodies from a remote template repository.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIBaseURL = "https://api.github.com"
	defaultRawBaseURL = "https://raw.githubusercontent.com"
	defaultTimeout    = 15 * time.Second

	templateSuffix = ".gitignore"
)

// Client fetches template metadata and bodies over the GitHub API.
type Client struct {
	APIBaseURL string
	RawBaseURL string
	Owner      string
	Repo       string
	Ref        string
	Client     *http.Client
}

// NewClient constructs a client for the given source repository with
// defaults applied.
func NewClient(owner, repo, ref string) *Client {
	return &Client{
		APIBaseURL: defaultAPIBaseURL,
		RawBaseURL: defaultRawBaseURL,
		Owner:      strings.TrimSpace(owner),
		Repo:       strings.TrimSpace(repo),
		Ref:        strings.TrimSpace(ref),
		Client:     &http.Client{Timeout: defaultTimeout},
	}
}

type treeResponse struct {
	Tree      []treeEntry `json:"tree"`
	Truncated bool        `json:"truncated"`
}

type treeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// ListTemplatePaths enumerates every template file path in the source
// repository tree, in API order.
func (c *Client) ListTemplatePaths(ctx context.Context) ([]string, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	url := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1",
		strings.TrimRight(c.APIBaseURL, "/"), c.Owner, c.Repo, c.Ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build tree request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("list template tree: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, err
	}

	var tree treeResponse
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("decode tree response: %w", err)
	}
	if tree.Truncated {
		return nil, fmt.Errorf("template tree listing truncated for %s/%s", c.Owner, c.Repo)
	}

	paths := make([]string, 0, len(tree.Tree))
	for _, entry := range tree.Tree {
		if entry.Type != "blob" || !strings.HasSuffix(entry.Path, templateSuffix) {
			continue
		}
		paths = append(paths, entry.Path)
	}
	return paths, nil
}

// FetchBody retrieves the raw text of one template by its source path.
func (c *Client) FetchBody(ctx context.Context, path string) (string, error) {
	if err := c.validate(); err != nil {
		return "", err
	}
	if strings.TrimSpace(path) == "" {
		return "", errors.New("template path is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	url := fmt.Sprintf("%s/%s/%s/%s/%s",
		strings.TrimRight(c.RawBaseURL, "/"), c.Owner, c.Repo, c.Ref, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build body request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch template %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := readResponseBody(resp)
	if err != nil {
		return "", fmt.Errorf("fetch template %s: %w", path, err)
	}
	return string(body), nil
}

func (c *Client) validate() error {
	if c == nil {
		return errors.New("registry client is nil")
	}
	if c.Owner == "" || c.Repo == "" || c.Ref == "" {
		return errors.New("registry source owner, repo, and ref are required")
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.Client == nil {
		c.Client = &http.Client{Timeout: defaultTimeout}
	}
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = defaultTimeout
	}
	return c.Client
}

func readResponseBody(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		if snippet == "" {
			snippet = resp.Status
		}
		return nil, fmt.Errorf("request failed (%s): %s", resp.Status, snippet)
	}

	return body, nil
}
