package provider

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
)

// ErrMissingAPIKey is returned by constructors of providers that need a credential.
var ErrMissingAPIKey = errors.New("API key is required")

// ErrorKind is the coarse class of a provider failure.
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindAuth
	KindQuota
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindQuota:
		return "quota"
	default:
		return "other"
	}
}

// Classify sorts a provider error into auth, quota or other. SDK status codes
// decide first; otherwise the message text is searched. Auth wins over quota.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}
	if errors.Is(err, ErrMissingAPIKey) {
		return KindAuth
	}

	switch statusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindQuota
	}

	var oaErr *openai.Error
	if errors.As(err, &oaErr) && oaErr.Code == "insufficient_quota" {
		return KindQuota
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"), strings.Contains(msg, "unauthorized"):
		return KindAuth
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "quota"):
		return KindQuota
	}
	return KindOther
}

func statusCode(err error) int {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return oaErr.StatusCode
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return anErr.StatusCode
	}
	var olErr api.StatusError
	if errors.As(err, &olErr) {
		return olErr.StatusCode
	}
	return 0
}

// Message extracts the provider's own error text, without SDK request framing
// where the SDK exposes it.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var oaErr *openai.Error
	if errors.As(err, &oaErr) && oaErr.Message != "" {
		return oaErr.Message
	}
	var olErr api.StatusError
	if errors.As(err, &olErr) && olErr.ErrorMessage != "" {
		return olErr.ErrorMessage
	}
	return err.Error()
}
