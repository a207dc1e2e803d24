package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/httpcontext"
	"github.com/fastygo/taskboard/usecase/posts"
)

type PostsHandler struct {
	baseHandler
	browser *posts.Browser
}

func NewPostsHandler(browser *posts.Browser, adapter *httpcontext.Adapter, logger *zap.Logger) *PostsHandler {
	return &PostsHandler{
		baseHandler: newBaseHandler(adapter, logger),
		browser:     browser,
	}
}

// @Summary Browse posts
// @Tags posts
// @Param search query string false "search text, resets the page"
// @Param page query int false "page number"
// @Router /api/v1/posts [get]
func (h *PostsHandler) ListPosts(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	var nav posts.Navigation
	args := ctx.QueryArgs()
	if args.Has("search") {
		search := string(args.Peek("search"))
		nav.Search = &search
	}
	if raw := args.Peek("page"); len(raw) > 0 {
		page, err := strconv.Atoi(string(raw))
		if err != nil || page < 1 {
			h.respondError(stdCtx, ctx, domain.NewError(domain.ErrCodeInvalid, "page must be a positive integer"))
			return
		}
		nav.Page = page
	}

	// First visit after a start without a feed loads it on demand.
	if !h.browser.Loaded() && h.browser.Err() == nil {
		if err := h.browser.Load(stdCtx); err != nil {
			h.respondError(stdCtx, ctx, err)
			return
		}
	}

	page, err := h.browser.Browse(nav)
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, page)
}

// @Summary Reload posts
// @Tags posts
// @Router /api/v1/posts/reload [post]
func (h *PostsHandler) Reload(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.browser.Reload(stdCtx); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	page, err := h.browser.Browse(posts.Navigation{})
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, page)
}
