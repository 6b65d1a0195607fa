package games

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
)

// FortuneInput describes the player. Empty fields get playful defaults.
type FortuneInput struct {
	Name  string
	Month string
	Place string
	Hobby string
}

func (in FortuneInput) withDefaults() FortuneInput {
	def := func(v, d string) string {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
		return d
	}
	return FortuneInput{
		Name:  def(in.Name, "Friend"),
		Month: def(in.Month, "a mysterious month"),
		Place: def(in.Place, "somewhere magical"),
		Hobby: def(in.Hobby, "daydreaming"),
	}
}

// Fortune holds three numbered predictions.
type Fortune struct {
	Predictions string    `json:"predictions"`
	Source      ai.Status `json:"source"`
}

// FortuneTeller is the stateless one-shot prediction game.
type FortuneTeller struct {
	ai     ai.Completer
	stream ai.Streamer
}

// NewFortuneTeller creates the fortune controller. stream may be nil.
func NewFortuneTeller(completer ai.Completer, stream ai.Streamer) *FortuneTeller {
	return &FortuneTeller{ai: completer, stream: stream}
}

// Predict returns the predictions in one piece.
func (f *FortuneTeller) Predict(ctx context.Context, in FortuneInput) (*Fortune, error) {
	in = in.withDefaults()
	fallback := func() string { return fallbackFortune(in.Name, in.Month, in.Place, in.Hobby) }

	req, err := ai.FortunePrompt(in.Name, in.Month, in.Place, in.Hobby)
	if err != nil {
		r := ai.Recover(ctx, ai.OpFortune, "", err, fallback)
		return &Fortune{Predictions: r.Value, Source: r.Status}, nil
	}
	text, err := f.ai.Complete(ctx, req)
	r := ai.Recover(ctx, ai.OpFortune, text, err, fallback)
	return &Fortune{Predictions: r.Value, Source: r.Status}, nil
}

// Stream emits the predictions chunk by chunk. If the stream cannot start
// the offline predictions are emitted as a single chunk. The full text is
// returned once emitting is done.
func (f *FortuneTeller) Stream(ctx context.Context, in FortuneInput, emit func(delta string) error) (*Fortune, error) {
	in = in.withDefaults()
	fallback := func() string { return fallbackFortune(in.Name, in.Month, in.Place, in.Hobby) }

	serveFallback := func(cause error) (*Fortune, error) {
		r := ai.Recover(ctx, ai.OpFortune, "", cause, fallback)
		if err := emit(r.Value); err != nil {
			return nil, err
		}
		return &Fortune{Predictions: r.Value, Source: r.Status}, nil
	}

	if f.stream == nil {
		return serveFallback(ai.ErrUnavailable)
	}
	req, err := ai.FortunePrompt(in.Name, in.Month, in.Place, in.Hobby)
	if err != nil {
		return serveFallback(err)
	}
	sr, err := f.stream.Stream(ctx, req)
	if err != nil {
		return serveFallback(err)
	}
	defer sr.Close()

	var sb strings.Builder
	for {
		chunk, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if sb.Len() == 0 {
				return serveFallback(err)
			}
			// Keep what was already delivered.
			break
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		sb.WriteString(chunk.Content)
		if err := emit(chunk.Content); err != nil {
			return nil, err
		}
	}

	if strings.TrimSpace(sb.String()) == "" {
		return serveFallback(errors.New("empty stream"))
	}
	return &Fortune{Predictions: sb.String(), Source: ai.StatusGenerated}, nil
}
