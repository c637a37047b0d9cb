// Package api provides the Confluence content REST API client.
package api

// Page represents a Confluence page with its storage-format body.
type Page struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  *Body  `json:"body,omitempty"`
}

// Body contains page content in various representations.
type Body struct {
	Storage *BodyRepresentation `json:"storage,omitempty"`
}

// BodyRepresentation holds content in a specific format.
type BodyRepresentation struct {
	Value          string `json:"value"`
	Representation string `json:"representation,omitempty"`
}

// Storage returns the storage-format body, or "" if the page was
// fetched without body expansion.
func (p *Page) Storage() string {
	if p.Body == nil || p.Body.Storage == nil {
		return ""
	}
	return p.Body.Storage.Value
}

// Image is an image attachment on a page.
type Image struct {
	Filename string
	URL      string
}

type pagedResponse struct {
	Results []Page `json:"results"`
}

type attachment struct {
	Title    string             `json:"title"`
	Metadata attachmentMetadata `json:"metadata"`
	Links    attachmentLinks    `json:"_links"`
}

type attachmentMetadata struct {
	MediaType string `json:"mediaType"`
}

type attachmentLinks struct {
	Download string `json:"download"`
}

type attachmentsResponse struct {
	Results []attachment `json:"results"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}
