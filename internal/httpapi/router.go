package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

// Options 路由选项。
type Options struct {
	// AllowEnv 允许 expand 请求回退到服务端进程环境变量。
	AllowEnv bool
	// BodyLimit 请求体上限，如 "1M"；空字符串表示不限制。
	BodyLimit string
	// Env 为环境变量来源，nil 时使用 [pctexp.Env]。
	Env pctexp.Source
}

// Router 绑定展开服务的全部端点。
type Router struct {
	e    *echo.Echo
	opts Options
}

// NewRouter 创建 Router 并注册中间件。
func NewRouter(e *echo.Echo, opts Options) *Router {
	if opts.Env == nil {
		opts.Env = pctexp.Env()
	}

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(RequestLogger())
	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	return &Router{e: e, opts: opts}
}

// New 创建已绑定全部端点的 echo 实例。
func New(opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	NewRouter(e, opts).Bind()

	return e
}

// Bind 注册路由。
func (r *Router) Bind() {
	r.e.GET("/health", r.health)

	v1 := r.e.Group("/v1")
	v1.POST("/split", r.split)
	v1.POST("/check", r.check)
	v1.POST("/expand", r.expand)
}

func (r *Router) health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (r *Router) split(c echo.Context) error {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	resp := SplitResponse{Entries: []Entry{}}
	sp := pctexp.Split(req.Text)
	for sp.Scan() {
		e := sp.Entry()
		resp.Entries = append(resp.Entries, Entry{Kind: e.Kind.String(), Text: e.Text, Offset: e.Offset})
	}
	if err := sp.Err(); err != nil {
		return expandError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func (r *Router) check(c echo.Context) error {
	var req TextRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	names, err := pctexp.Names(req.Text)
	if err != nil {
		return expandError(c, err)
	}
	if names == nil {
		names = []string{}
	}

	return c.JSON(http.StatusOK, CheckResponse{Valid: true, Names: names})
}

func (r *Router) expand(c echo.Context) error {
	var req ExpandRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	var src pctexp.Source = pctexp.Map(req.Vars)
	if req.Env {
		if !r.opts.AllowEnv {
			return c.JSON(http.StatusForbidden, ErrorResponse{
				Error: "environment lookup is disabled on this server",
				Code:  CodeEnvForbidden,
			})
		}
		src = pctexp.Chain(src, r.opts.Env)
	}

	out, err := pctexp.Expand(req.Text, src)
	if err != nil {
		return expandError(c, err)
	}

	return c.JSON(http.StatusOK, ExpandResponse{Result: out})
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeBadRequest})
}

// expandError 将展开错误映射为 422 响应。
func expandError(c echo.Context, err error) error {
	var formatErr *pctexp.FormatError
	var missingErr *pctexp.MissingVariableError

	switch {
	case errors.As(err, &formatErr):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  err.Error(),
			Code:   CodeInvalidFormat,
			Offset: &formatErr.Offset,
		})
	case errors.As(err, &missingErr):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  err.Error(),
			Code:   CodeMissingVariable,
			Offset: &missingErr.Offset,
			Name:   missingErr.Name,
		})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: CodeInternal})
	}
}
