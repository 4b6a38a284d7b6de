package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ContactMessage is one entry in the contact inbox.
type ContactMessage struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactSubmission is the payload a site visitor sends.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"message"`
}

// SubmitContactMessage posts a visitor message. Used by the public site;
// requires no auth token.
func (c *Client) SubmitContactMessage(ctx context.Context, submission ContactSubmission) error {
	return c.do(ctx, http.MethodPost, "/contact-messages", submission, nil)
}

// ContactMessages lists inbox messages, newest first. A limit of 0 fetches
// everything.
func (c *Client) ContactMessages(ctx context.Context, limit int) ([]ContactMessage, error) {
	path := "/contact-messages"
	if limit > 0 {
		path += "?limit=" + url.QueryEscape(strconv.Itoa(limit))
	}
	var out []ContactMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

// UnreadMessageCount reports how many inbox messages are unread.
func (c *Client) UnreadMessageCount(ctx context.Context) (int, error) {
	var res unreadCountResponse
	if err := c.do(ctx, http.MethodGet, "/contact-messages/unread-count", nil, &res); err != nil {
		return 0, err
	}
	return res.Count, nil
}

// MarkMessageRead flags one message as read.
func (c *Client) MarkMessageRead(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/contact-messages/%d/read", id), nil, nil)
}

// DeleteContactMessage removes one message from the inbox.
func (c *Client) DeleteContactMessage(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/contact-messages/%d", id), nil, nil)
}
