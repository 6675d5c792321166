// Package httpapi 提供 HTTP 展开服务的路由与客户端。
//
// 端点：
//   - GET  /health
//   - POST /v1/split   {"text"}
//   - POST /v1/check   {"text"}
//   - POST /v1/expand  {"text", "vars", "env"}
//
// 展开相关错误返回 422，body 为 [ErrorResponse]。
package httpapi

// 错误码
const (
	CodeBadRequest      = "bad_request"
	CodeInvalidFormat   = "invalid_format"
	CodeMissingVariable = "missing_variable"
	CodeEnvForbidden    = "env_forbidden"
	CodeInternal        = "internal"
)

// TextRequest 为 split / check 的请求体。
type TextRequest struct {
	Text string `json:"text"`
}

// ExpandRequest 为 expand 的请求体。
//
// Env 为 true 时变量可回退到服务端进程环境变量，需服务端开启 allow-env。
type ExpandRequest struct {
	Text string            `json:"text"`
	Vars map[string]string `json:"vars,omitempty"`
	Env  bool              `json:"env,omitempty"`
}

// Entry 片段。
type Entry struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

// SplitResponse split 响应。
type SplitResponse struct {
	Entries []Entry `json:"entries"`
}

// CheckResponse check 响应。
type CheckResponse struct {
	Valid bool     `json:"valid"`
	Names []string `json:"names"`
}

// ExpandResponse expand 响应。
type ExpandResponse struct {
	Result string `json:"result"`
}

// HealthResponse 健康检查响应。
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse 错误响应。Offset 与 Name 仅在展开错误时出现。
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Offset *int   `json:"offset,omitempty"`
	Name   string `json:"name,omitempty"`
}
