// Package ai wraps chat-completion calls behind a small Gateway and builds the
// per-game prompts.
package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/gamehub/backend/internal/config"
	"github.com/zhouzirui/gamehub/backend/internal/logging"
)

var (
	// ErrUnavailable means no model is configured; callers should fall back.
	ErrUnavailable = errors.New("ai: completion gateway not configured")
	// ErrGeneration covers upstream failures and unusable output.
	ErrGeneration = errors.New("ai: upstream generation failed")

	errEmptyOutput = errors.New("empty completion")
)

// Request is one chat completion. Zero Temperature or MaxTokens means the
// gateway default.
type Request struct {
	Operation   string
	Messages    []*schema.Message
	Temperature float32
	MaxTokens   int
	JSON        bool
}

// Completer returns the model's text for a request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Streamer returns the model's text incrementally.
type Streamer interface {
	Stream(ctx context.Context, req Request) (*schema.StreamReader[*schema.Message], error)
}

// Options tunes a Gateway.
type Options struct {
	Temperature float32
	Timeout     time.Duration
	MaxAttempts uint
	RetryDelay  time.Duration
	// JSONOptions are appended when a request asks for a JSON object.
	JSONOptions []model.Option
}

// Gateway runs requests through a compiled eino chain around a chat model.
type Gateway struct {
	chain compose.Runnable[[]*schema.Message, *schema.Message]
	opts  Options
}

// NewGateway compiles the chain. A nil chatModel yields a disabled gateway
// whose calls all fail with ErrUnavailable.
func NewGateway(ctx context.Context, chatModel model.ChatModel, opts Options) (*Gateway, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 1
	}

	g := &Gateway{opts: opts}
	if chatModel == nil {
		return g, nil
	}

	chain := compose.NewChain[[]*schema.Message, *schema.Message]()
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile completion chain: %w", err)
	}
	g.chain = runnable
	return g, nil
}

// NewService builds the gateway described by cfg. Missing credentials are
// not an error: the gateway is returned disabled.
func NewService(ctx context.Context, cfg config.AIConfig) (*Gateway, error) {
	opts := Options{
		Temperature: float32(cfg.Temperature),
		Timeout:     cfg.Timeout,
		MaxAttempts: cfg.MaxAttempts,
		RetryDelay:  cfg.RetryDelay,
		JSONOptions: cfg.JSONModeOptions(),
	}

	logger := logging.Component("ai")
	if !cfg.Enabled() {
		logger.Warn().Str("provider", cfg.Provider).
			Msg("AI credentials missing, every game will use its fallback content")
		return NewGateway(ctx, nil, opts)
	}

	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	logger.Info().Str("provider", cfg.Provider).Str("model", cfg.ModelName()).
		Msg("completion gateway ready")
	return NewGateway(ctx, chatModel, opts)
}

// Enabled reports whether a model is attached.
func (g *Gateway) Enabled() bool {
	return g != nil && g.chain != nil
}

func (g *Gateway) modelOptions(req Request) []model.Option {
	temperature := g.opts.Temperature
	if req.Temperature > 0 {
		temperature = req.Temperature
	}

	opts := []model.Option{model.WithTemperature(temperature)}
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}
	if req.JSON {
		opts = append(opts, g.opts.JSONOptions...)
	}
	return opts
}

// Complete returns the trimmed text of the first choice.
func (g *Gateway) Complete(ctx context.Context, req Request) (string, error) {
	op := operationLabel(req.Operation)
	if !g.Enabled() {
		aiRequests.WithLabelValues(op, "unavailable").Inc()
		return "", ErrUnavailable
	}

	started := time.Now()
	var content string
	err := retry.Do(
		func() error {
			callCtx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
			defer cancel()

			msg, err := g.chain.Invoke(callCtx, req.Messages, compose.WithChatModelOption(g.modelOptions(req)...))
			if err != nil {
				return err
			}
			text := strings.TrimSpace(msg.Content)
			if text == "" {
				return errEmptyOutput
			}
			content = text
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(g.opts.MaxAttempts),
		retry.Delay(g.opts.RetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().Str("operation", op).Uint("attempt", n+1).Err(err).Msg("retrying completion")
		}),
	)
	aiDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())

	if err != nil {
		aiRequests.WithLabelValues(op, "error").Inc()
		return "", fmt.Errorf("%w: %s: %v", ErrGeneration, op, err)
	}

	aiRequests.WithLabelValues(op, "ok").Inc()
	log.Ctx(ctx).Debug().Str("operation", op).Int("length", len(content)).Msg("completion generated")
	return content, nil
}

// Stream runs the chain in streaming mode. The timeout covers the whole
// stream; the returned reader must be closed by the caller.
func (g *Gateway) Stream(ctx context.Context, req Request) (*schema.StreamReader[*schema.Message], error) {
	op := operationLabel(req.Operation)
	if !g.Enabled() {
		aiRequests.WithLabelValues(op, "unavailable").Inc()
		return nil, ErrUnavailable
	}

	started := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	upstream, err := g.chain.Stream(callCtx, req.Messages, compose.WithChatModelOption(g.modelOptions(req)...))
	if err != nil {
		cancel()
		aiRequests.WithLabelValues(op, "error").Inc()
		return nil, fmt.Errorf("%w: %s: %v", ErrGeneration, op, err)
	}

	sr, sw := schema.Pipe[*schema.Message](8)
	go func() {
		defer cancel()
		defer upstream.Close()
		defer sw.Close()

		status := "ok"
		defer func() {
			aiDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
			aiRequests.WithLabelValues(op, status).Inc()
		}()

		for {
			chunk, err := upstream.Recv()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				status = "error"
				sw.Send(nil, fmt.Errorf("%w: %s: %v", ErrGeneration, op, err))
				return
			}
			if closed := sw.Send(chunk, nil); closed {
				return
			}
		}
	}()
	return sr, nil
}

func operationLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
