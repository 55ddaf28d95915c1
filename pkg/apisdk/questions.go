package apisdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const questionsPath = "/api/questions/"

// ListQuestions lists the user's questions, newest first. A non-empty
// search keeps only questions containing it, case-insensitively.
func (c *Client) ListQuestions(ctx context.Context, search string) ([]Question, error) {
	var params url.Values
	if search = strings.TrimSpace(search); search != "" {
		params = url.Values{"search": {search}}
	}

	var out []Question
	if err := c.getJSON(ctx, questionsPath, params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateQuestion(ctx context.Context, text string) (*Question, error) {
	var out Question
	if err := c.sendJSON(ctx, http.MethodPost, questionsPath, map[string]string{"question": text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuestion patches the question text.
func (c *Client) UpdateQuestion(ctx context.Context, id int64, text string) (*Question, error) {
	var out Question
	body := map[string]string{"question": text}
	if err := c.sendJSON(ctx, http.MethodPatch, itemPath("questions", id, ""), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteQuestion(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, itemPath("questions", id, ""), nil, nil)
}

// ListAnswers returns the active answers of a question. The endpoint has
// shipped both a bare list and a {"success", "data"} envelope; both work.
func (c *Client) ListAnswers(ctx context.Context, questionID int64) ([]Answer, error) {
	resp, err := c.Send(ctx, Request{Method: http.MethodGet, Path: itemPath("questions", questionID, "answers")})
	if err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("%w: decode answers: %v", ErrUnexpectedResponse, err)
		}
		raw = env.Data
	}

	var out []Answer
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode answers: %v", ErrUnexpectedResponse, err)
	}
	return out, nil
}

// AddAnswer attaches a new answer to a question. Like ListAnswers it
// accepts the reply bare or enveloped.
func (c *Client) AddAnswer(ctx context.Context, questionID int64, text string) (*Answer, error) {
	resp, err := c.Send(ctx, Request{
		Method: http.MethodPost,
		Path:   itemPath("questions", questionID, "add_answer"),
		Body:   map[string]string{"answer": text},
	})
	if err != nil {
		return nil, err
	}

	raw := resp.Body
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		raw = env.Data
	}

	var out Answer
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode answer: %v", ErrUnexpectedResponse, err)
	}
	return &out, nil
}

func (c *Client) UpdateAnswer(ctx context.Context, answerID int64, text string) (*Answer, error) {
	var out Answer
	body := map[string]string{"answer": text}
	if err := c.sendJSON(ctx, http.MethodPatch, itemPath("answers", answerID, ""), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAnswer(ctx context.Context, answerID int64) error {
	return c.sendJSON(ctx, http.MethodDelete, itemPath("answers", answerID, ""), nil, nil)
}
