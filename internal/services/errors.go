package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyContent       = errors.New("content must not be empty")

	ErrQuotaExceeded     = errors.New("quota exceeded")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNotConfigured     = errors.New("provider not configured")
)

// APIError 外部 API 返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Code       string // 如 RESOURCE_EXHAUSTED
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// ErrorKind 内容拉取失败的分类
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindQuota
	KindTransport
	KindMalformed
)

func (k ErrorKind) String() string {
	switch k {
	case KindQuota:
		return "quota"
	case KindTransport:
		return "transport"
	case KindMalformed:
		return "malformed"
	}
	return "other"
}

var (
	quotaPatterns     = []string{"429", "resource_exhausted", "quota", "rate limit", "rate-limit", "too many requests"}
	transportPatterns = []string{"fetch failed", "failed to fetch", "connection refused", "connection reset", "no such host", "network", "timeout", "eof", "tls handshake"}
)

// ClassifyError 先看错误类型，再按消息特征匹配
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return KindOther
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return KindQuota
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return KindQuota
	}

	if errors.Is(err, ErrMalformedResponse) {
		return KindMalformed
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var validationErrs validator.ValidationErrors
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.As(err, &validationErrs) {
		return KindMalformed
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, ErrNotConfigured) {
		return KindTransport
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindTransport
	}

	msg := strings.ToLower(err.Error())
	if apiErr != nil {
		msg += " " + strings.ToLower(apiErr.Code)
	}
	for _, p := range quotaPatterns {
		if strings.Contains(msg, p) {
			return KindQuota
		}
	}
	for _, p := range transportPatterns {
		if strings.Contains(msg, p) {
			return KindTransport
		}
	}
	return KindOther
}
