package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
)

var (
	pageIDPattern  = regexp.MustCompile(`/pages/(\d+)`)
	displayPattern = regexp.MustCompile(`/display/([^/]+)/([^/?#]+)`)
)

// GetPage retrieves a page with its storage-format body.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Page, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/rest/api/content/%s?expand=body.storage", pageID))
	if err != nil {
		return nil, err
	}

	var page Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse page response: %w", err)
	}

	return &page, nil
}

// GetChildren retrieves the direct child pages of a page. Bodies are
// not expanded; fetch each child with GetPage when its content is needed.
func (c *Client) GetChildren(ctx context.Context, pageID string) ([]Page, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/rest/api/content/%s/child/page?limit=200", pageID))
	if err != nil {
		return nil, err
	}

	var resp pagedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse children response: %w", err)
	}

	return resp.Results, nil
}

// ResolvePageID extracts a page ID from a Confluence page URL.
// Modern URLs carry the ID in the path (/pages/123456/Title); legacy
// display URLs (/display/SPACE/Page+Title) require a lookup by space
// key and title.
func (c *Client) ResolvePageID(ctx context.Context, pageURL string) (string, error) {
	if m := pageIDPattern.FindStringSubmatch(pageURL); m != nil {
		return m[1], nil
	}

	m := displayPattern.FindStringSubmatch(pageURL)
	if m == nil {
		return "", fmt.Errorf("could not determine page ID from URL: %s", pageURL)
	}

	space := m[1]
	title, err := url.QueryUnescape(m[2])
	if err != nil {
		title = m[2]
	}

	path := fmt.Sprintf("/rest/api/content?spaceKey=%s&title=%s&limit=1",
		url.QueryEscape(space), url.QueryEscape(title))
	body, err := c.Get(ctx, path)
	if err != nil {
		return "", err
	}

	var resp pagedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse content lookup response: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("no page found in space %s with title %q", space, title)
	}

	return resp.Results[0].ID, nil
}
