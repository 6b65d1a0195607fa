// Package httpx adapts game controllers to HTTP: request decoding and
// validation, the response envelope and error-to-status mapping.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
	"github.com/zhouzirui/gamehub/backend/pkg/utils"
)

const maxBodyBytes = 1 << 20

// RequestError is a malformed or invalid request body.
type RequestError struct {
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// Response is a successful result.
type Response struct {
	StatusCode int
	Body       any
}

// OK wraps body in a 200 response.
func OK(body any) *Response {
	return &Response{StatusCode: http.StatusOK, Body: body}
}

// HandlerFunc handles a request and returns either a response or an error.
type HandlerFunc func(r *http.Request) (*Response, error)

// Wrap turns h into an http.HandlerFunc that always answers with a JSON envelope.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rsp, err := h(r)
		if err != nil {
			WriteError(w, r, err)
			return
		}
		if rsp == nil {
			rsp = OK(nil)
		}
		status := rsp.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		utils.RespondJSON(r.Context(), w, status, rsp.Body)
	}
}

// StatusOf maps an error to its HTTP status and client-facing message.
func StatusOf(err error) (int, string) {
	var reqErr *RequestError
	var valErr *games.ValidationError
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, reqErr.Message
	case errors.As(err, &valErr):
		return http.StatusBadRequest, valErr.Error()
	case errors.Is(err, games.ErrSessionNotFound):
		return http.StatusNotFound, games.ErrSessionNotFound.Error()
	case errors.Is(err, games.ErrForecastNotReady), errors.Is(err, games.ErrAnswersAlreadySubmitted):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ai.ErrGeneration), errors.Is(err, ai.ErrUnavailable):
		return http.StatusBadGateway, "the AI service could not produce a response"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// WriteError logs err and writes its error envelope.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := StatusOf(err)
	ev := log.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Ctx(r.Context()).Error()
	}
	ev.Err(err).Int("status", status).Msg("request failed")
	utils.RespondError(r.Context(), w, status, msg)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Decode reads the JSON body into dst and validates it. An empty body
// decodes as {} so optional-only requests may omit it.
func Decode(r *http.Request, dst any) error {
	if r.Body != nil {
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
			return &RequestError{Message: "invalid request body: " + describeDecodeError(err)}
		}
	}
	return Validate(dst)
}

// Validate runs the struct validation rules on v.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &RequestError{Message: err.Error()}
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeField(fe))
	}
	return &RequestError{Message: strings.Join(msgs, "; ")}
}

func describeField(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must have exactly %s items", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type.Kind())
	}
	return "malformed JSON"
}
