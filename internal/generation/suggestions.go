package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/constructtrack/constructtrack-backend/internal/worktracking/domain"
)

type itemsRequest struct {
	Image      string                `json:"image"`
	Categories []domain.WorkCategory `json:"categories"`
}

type itemsResponse struct {
	Items []json.RawMessage `json:"items"`
}

type subTasksRequest struct {
	Name     string              `json:"name"`
	Category domain.WorkCategory `json:"category"`
}

type subTasksResponse struct {
	SubTasks []json.RawMessage `json:"subtasks"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

type imageResponse struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type ideasRequest struct {
	Image string `json:"image"`
	Style string `json:"style,omitempty"`
}

type ideasResponse struct {
	Text string `json:"text"`
}

// SuggestItems asks the generator which work items are visible in image, a
// data URL or remote reference. Entries that do not decode as
// {name, category} are kept as empty proposals so the batch survives.
func (c *Client) SuggestItems(ctx context.Context, image string) ([]domain.ItemProposal, error) {
	var out itemsResponse
	err := c.post(ctx, "/v1/items", itemsRequest{Image: image, Categories: domain.Categories}, &out)
	if err != nil {
		return nil, err
	}
	return domain.ParseProposals(out.Items), nil
}

// SuggestSubTasks returns step names for a work item. Non-string entries
// are dropped.
func (c *Client) SuggestSubTasks(ctx context.Context, name string, category domain.WorkCategory) ([]string, error) {
	var out subTasksResponse
	if err := c.post(ctx, "/v1/subtasks", subTasksRequest{Name: name, Category: category}, &out); err != nil {
		return nil, err
	}
	return domain.ParseNames(out.SubTasks), nil
}

// GenerateImage renders prompt and returns the picture as a data URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	var out imageResponse
	if err := c.post(ctx, "/v1/images", imageRequest{Prompt: prompt}, &out); err != nil {
		return "", err
	}
	if out.Data == "" {
		return "", fmt.Errorf("%w: no image data received", ErrUpstream)
	}
	mime := out.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + out.Data, nil
}

// DesignIdeas returns markdown suggestions for restyling the room in image.
func (c *Client) DesignIdeas(ctx context.Context, image, style string) (string, error) {
	var out ideasResponse
	if err := c.post(ctx, "/v1/ideas", ideasRequest{Image: image, Style: strings.TrimSpace(style)}, &out); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", fmt.Errorf("%w: empty design ideas", ErrUpstream)
	}
	return out.Text, nil
}
