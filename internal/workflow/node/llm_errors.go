package node

import (
	"errors"
	"net/http"
	"strings"
)

// statusCoder 上游 SDK 错误通常携带 HTTP 状态码
type statusCoder interface {
	StatusCode() int
}

type httpStatusError interface {
	HTTPStatusCode() int
}

// IsQuotaExceededError 上游配额/频率超限（429、"quota"、"rate limit"）
func IsQuotaExceededError(err error) bool {
	if err == nil {
		return false
	}
	if status, ok := upstreamStatus(err); ok && status == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "status code: 429"), strings.Contains(msg, "status: 429"):
		return true
	case strings.Contains(msg, "quota"):
		return true
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "rate_limit"):
		return true
	case strings.Contains(msg, "too many requests"):
		return true
	default:
		return false
	}
}

// IsCredentialError 凭证缺失或无效
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}
	if status, ok := upstreamStatus(err); ok && status == http.StatusUnauthorized {
		return true
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return true
	case strings.Contains(strings.ToLower(msg), "api_key"):
		return true
	default:
		return false
	}
}

func upstreamStatus(err error) (int, bool) {
	var sc statusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}
	var hs httpStatusError
	if errors.As(err, &hs) {
		return hs.HTTPStatusCode(), true
	}
	return 0, false
}
