package api

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// GetImages retrieves the image attachments of a page. Download URLs
// are returned absolute, resolved against the client's base URL.
func (c *Client) GetImages(ctx context.Context, pageID string) ([]Image, error) {
	body, err := c.Get(ctx, fmt.Sprintf("/rest/api/content/%s/child/attachment?limit=200", pageID))
	if err != nil {
		return nil, err
	}

	var resp attachmentsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse attachments response: %w", err)
	}

	var images []Image
	for _, att := range resp.Results {
		if !strings.Contains(att.Metadata.MediaType, "image") {
			continue
		}
		download := att.Links.Download
		if strings.HasPrefix(download, "/") {
			download = c.baseURL + download
		}
		images = append(images, Image{Filename: att.Title, URL: download})
	}

	return images, nil
}
