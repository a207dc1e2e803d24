package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
			return func(ctx *fasthttp.RequestCtx) {
				order = append(order, name)
				next(ctx)
			}
		}
	}
	h := Chain(func(*fasthttp.RequestCtx) { order = append(order, "handler") }, mark("outer"), mark("inner"))
	h(&fasthttp.RequestCtx{})
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := Recover(zap.New(core))(func(*fasthttp.RequestCtx) { panic("boom") })

	var ctx fasthttp.RequestCtx
	assert.NotPanics(t, func() { h(&ctx) })
	assert.Equal(t, fasthttp.StatusInternalServerError, ctx.Response.StatusCode())
	assert.Equal(t, 1, logs.FilterMessage("handler panic").Len())
}

func TestAccessLogLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	for _, status := range []int{200, 404, 502} {
		h := AccessLog(log)(func(ctx *fasthttp.RequestCtx) { ctx.SetStatusCode(status) })
		var ctx fasthttp.RequestCtx
		ctx.Request.SetRequestURI("/api/v1/tasks")
		h(&ctx)
	}

	entries := logs.All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
		assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
		assert.Equal(t, int64(404), entries[1].ContextMap()["status"])
	}
}
