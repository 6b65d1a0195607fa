// Package groq adapts Groq's OpenAI-compatible chat-completions API to the
// eino ChatModel interface.
package groq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
)

var ErrEmptyResponse = errors.New("groq: empty completion")

// Config describes how to reach the endpoint.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// ChatModel calls /chat/completions through go-openai.
type ChatModel struct {
	client *openai.Client
	model  string
}

type options struct {
	jsonObject bool
}

// WithJSONObject asks the endpoint for response_format {"type":"json_object"}.
func WithJSONObject() model.Option {
	return model.WrapImplSpecificOptFn(func(o *options) {
		o.jsonObject = true
	})
}

// NewChatModel validates cfg and builds the client.
func NewChatModel(cfg Config) (*ChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("groq: api key is required")
	}

	clientCfg := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	clientCfg.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultModel
	}

	return &ChatModel{
		client: openai.NewClientWithConfig(clientCfg),
		model:  modelName,
	}, nil
}

func (m *ChatModel) buildRequest(input []*schema.Message, opts []model.Option) openai.ChatCompletionRequest {
	common := model.GetCommonOptions(&model.Options{Model: &m.model}, opts...)
	specific := model.GetImplSpecificOptions(&options{}, opts...)

	req := openai.ChatCompletionRequest{
		Model:    m.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(input)),
	}
	if common.Model != nil && *common.Model != "" {
		req.Model = *common.Model
	}
	if common.Temperature != nil {
		req.Temperature = *common.Temperature
	}
	if common.MaxTokens != nil {
		req.MaxTokens = *common.MaxTokens
	}
	if common.TopP != nil {
		req.TopP = *common.TopP
	}
	if len(common.Stop) > 0 {
		req.Stop = common.Stop
	}
	if specific.jsonObject {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	for _, msg := range input {
		if msg == nil {
			continue
		}
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return req
}

// Generate returns the first choice of a non-streaming completion.
func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	resp, err := m.client.CreateChatCompletion(ctx, m.buildRequest(input, opts))
	if err != nil {
		return nil, describeError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choice := resp.Choices[0]
	msg := schema.AssistantMessage(choice.Message.Content, nil)
	msg.ResponseMeta = &schema.ResponseMeta{
		FinishReason: string(choice.FinishReason),
		Usage: &schema.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	return msg, nil
}

// Stream forwards content deltas as assistant message chunks.
func (m *ChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	req := m.buildRequest(input, opts)
	req.Stream = true

	stream, err := m.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		return nil, describeError(err)
	}

	sr, sw := schema.Pipe[*schema.Message](8)
	go func() {
		defer stream.Close()
		defer sw.Close()

		for {
			chunk, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				sw.Send(nil, describeError(err))
				return
			}
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			if closed := sw.Send(schema.AssistantMessage(chunk.Choices[0].Delta.Content, nil), nil); closed {
				return
			}
		}
	}()
	return sr, nil
}

// BindTools is part of model.ChatModel; the games never use tool calling.
func (m *ChatModel) BindTools([]*schema.ToolInfo) error {
	return errors.New("groq: tool calling is not supported")
}

func describeError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("groq: status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("groq: status %d: %w", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return fmt.Errorf("groq: %w", err)
}
