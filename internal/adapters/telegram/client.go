// Package telegram is a small Bot API client: the methods the bot calls and a long poller
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trainerbot/internal/adapters/rest"
	perr "trainerbot/internal/platform/errors"
)

const (
	defaultAPIURL      = "https://api.telegram.org"
	defaultPollTimeout = 30 * time.Second
)

// Options configures the Client
type Options struct {
	Token  string
	APIURL string

	// PollTimeout is the getUpdates long poll window, the HTTP timeout is derived from it
	PollTimeout time.Duration
	Retries     int
}

// Client calls the Bot API
type Client struct {
	rc          *rest.Client
	pollTimeout time.Duration
}

// APIError is a Bot API error response
type APIError struct {
	Method      string
	Code        int
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

// New returns a Client, an empty token is a configuration error
func New(o Options) (*Client, error) {
	if strings.TrimSpace(o.Token) == "" {
		return nil, perr.InvalidArgf("telegram: bot token is required")
	}
	if o.APIURL == "" {
		o.APIURL = defaultAPIURL
	}
	if o.PollTimeout <= 0 {
		o.PollTimeout = defaultPollTimeout
	}
	return &Client{
		rc: rest.New(rest.Options{
			Name:       "telegram",
			BaseURL:    strings.TrimRight(o.APIURL, "/") + "/bot" + o.Token,
			Timeout:    o.PollTimeout + 15*time.Second,
			MaxRetries: o.Retries,
		}),
		pollTimeout: o.PollTimeout,
	}, nil
}

// call posts params to method and decodes the result into out
func (c *Client) call(ctx context.Context, method string, params, out any) error {
	var env envelope
	err := c.rc.JSON(ctx, http.MethodPost, "/"+method, params, &env)
	if err != nil {
		// error statuses carry the envelope in the body
		if se, ok := rest.AsStatus(err); ok {
			var body envelope
			if json.Unmarshal([]byte(se.Body), &body) == nil && body.Description != "" {
				return perr.Wrap(&APIError{Method: method, Code: body.ErrorCode, Description: body.Description},
					perr.CodeOf(err), "telegram: "+method)
			}
		}
		return err
	}
	if !env.OK {
		return perr.Wrap(&APIError{Method: method, Code: env.ErrorCode, Description: env.Description},
			perr.ErrorCodeUpstream, "telegram: "+method)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUpstream, "telegram: decode "+method)
	}
	return nil
}

// GetUpdates long polls for updates after offset
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	params := map[string]any{
		"offset":          offset,
		"timeout":         int(c.pollTimeout / time.Second),
		"allowed_updates": []string{"message", "callback_query"},
	}
	var out []Update
	if err := c.call(ctx, "getUpdates", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage posts a message and returns it
func (c *Client) SendMessage(ctx context.Context, m SendMessage) (Message, error) {
	var out Message
	err := c.call(ctx, "sendMessage", m, &out)
	return out, err
}

// EditMessageText replaces the text and inline keyboard of a message
func (c *Client) EditMessageText(ctx context.Context, m EditMessageText) error {
	return c.call(ctx, "editMessageText", m, nil)
}

// DeleteMessage removes a message the bot sent
func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	return c.call(ctx, "deleteMessage", map[string]int64{"chat_id": chatID, "message_id": messageID}, nil)
}

// AnswerCallbackQuery stops the button spinner
func (c *Client) AnswerCallbackQuery(ctx context.Context, id, text string) error {
	params := map[string]string{"callback_query_id": id}
	if text != "" {
		params["text"] = text
	}
	return c.call(ctx, "answerCallbackQuery", params, nil)
}

// AnswerWebAppQuery posts an article on behalf of the user and closes the Mini App
func (c *Client) AnswerWebAppQuery(ctx context.Context, queryID string, r InlineQueryResultArticle) (SentWebAppMessage, error) {
	if r.Type == "" {
		r.Type = "article"
	}
	var out SentWebAppMessage
	err := c.call(ctx, "answerWebAppQuery", map[string]any{
		"web_app_query_id": queryID,
		"result":           r,
	}, &out)
	return out, err
}
