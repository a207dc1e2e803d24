// Package httpcontext bridges fasthttp request contexts and context.Context.
package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/taskboard/pkg/logger"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"

// Adapter derives a deadline-bound context for each request.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach returns a context carrying the request id and the adapter timeout.
// The request id is taken from the incoming header or generated.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	reqID := requestID(ctx)
	ctx.Response.Header.Set(HeaderRequestID, reqID)

	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)
	return appLogger.ContextWithRequestID(stdCtx, reqID), cancel
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if id := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID))); id != "" {
		return id
	}
	return uuid.NewString()
}
