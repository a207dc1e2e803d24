package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/pkg/httpcontext"
)

// Middleware wraps a request handler.
type Middleware func(fasthttp.RequestHandler) fasthttp.RequestHandler

// Chain applies mws so that the first one is the outermost.
func Chain(h fasthttp.RequestHandler, mws ...Middleware) fasthttp.RequestHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// AccessLog logs one line per request with status and latency.
func AccessLog(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			start := time.Now()
			next(ctx)

			status := ctx.Response.StatusCode()
			fields := []zap.Field{
				zap.ByteString("method", ctx.Method()),
				zap.ByteString("path", ctx.Path()),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.ByteString("request_id", ctx.Response.Header.Peek(httpcontext.HeaderRequestID)),
			}
			switch {
			case status >= 500:
				logger.Error("request", fields...)
			case status >= 400:
				logger.Warn("request", fields...)
			default:
				logger.Info("request", fields...)
			}
		}
	}
}

// Recover turns a handler panic into a 500 response.
func Recover(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("handler panic",
						zap.ByteString("path", ctx.Path()),
						zap.String("panic", fmt.Sprint(rec)),
						zap.Stack("stack"),
					)
					ctx.ResetBody()
					ctx.Error(http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next(ctx)
		}
	}
}
