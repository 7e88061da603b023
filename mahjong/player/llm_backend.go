package player

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/ratel-online/mahjong16/consts"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Backend sends a conversation to a chat model and returns its reply. A rate-limited
// call returns consts.ErrorsRateLimited.
type Backend interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

const (
	GeminiURL = "https://generativelanguage.googleapis.com/v1beta"
	OpenAIURL = "https://api.deepseek.com/v1"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
}

type apiError struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

// GeminiBackend calls the generateContent endpoint. Assistant turns are sent with the
// "model" role.
type GeminiBackend struct {
	Client *http.Client
	URL    string
	Model  string
	APIKey string
}

func (b GeminiBackend) Complete(ctx context.Context, messages []Message) (string, error) {
	req := geminiRequest{Contents: make([]geminiContent, 0, len(messages))}
	for _, m := range messages {
		part := []geminiPart{{Text: m.Content}}
		switch m.Role {
		case RoleSystem:
			req.SystemInstruction = &geminiContent{Parts: part}
		case RoleAssistant:
			req.Contents = append(req.Contents, geminiContent{Role: "model", Parts: part})
		default:
			req.Contents = append(req.Contents, geminiContent{Role: RoleUser, Parts: part})
		}
	}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", strings.TrimRight(b.URL, "/"), b.Model, b.APIKey)
	resp := geminiResponse{}
	status, err := post(ctx, b.Client, url, nil, req, &resp)
	if err != nil {
		return "", err
	}
	if resp.Error != nil {
		if resp.Error.Status == "RESOURCE_EXHAUSTED" || status == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %s", consts.ErrorsRateLimited, resp.Error.Message)
		}
		return "", fmt.Errorf("gemini %s: %s", resp.Error.Status, resp.Error.Message)
	}
	if status == http.StatusTooManyRequests {
		return "", consts.ErrorsRateLimited
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates (http %d)", status)
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

// OpenAIBackend calls an OpenAI compatible chat completions endpoint such as DeepSeek.
type OpenAIBackend struct {
	Client *http.Client
	URL    string
	Model  string
	APIKey string
}

func (b OpenAIBackend) Complete(ctx context.Context, messages []Message) (string, error) {
	url := strings.TrimRight(b.URL, "/") + "/chat/completions"
	header := http.Header{}
	if b.APIKey != "" {
		header.Set("Authorization", "Bearer "+b.APIKey)
	}
	resp := chatResponse{}
	status, err := post(ctx, b.Client, url, header, chatRequest{Model: b.Model, Messages: messages}, &resp)
	if err != nil {
		return "", err
	}
	if status == http.StatusTooManyRequests {
		return "", consts.ErrorsRateLimited
	}
	if resp.Error != nil {
		return "", fmt.Errorf("chat completions: %s", resp.Error.Message)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completions: no choices (http %d)", status)
	}
	return resp.Choices[0].Message.Content, nil
}

// post sends body as JSON and decodes the reply into out when it is JSON.
func post(ctx context.Context, client *http.Client, url string, header http.Header, body, out interface{}) (int, error) {
	if client == nil {
		client = http.DefaultClient
	}
	data, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, err
	}
	for key, values := range header {
		req.Header[key] = values
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if err := json.Unmarshal(raw, out); err != nil && resp.StatusCode < http.StatusBadRequest {
		return resp.StatusCode, fmt.Errorf("decode reply (http %d): %v", resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}
