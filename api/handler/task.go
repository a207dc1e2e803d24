package handler

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/taskboard/api/transport"
	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/pkg/httpcontext"
	taskUC "github.com/fastygo/taskboard/usecase/task"
	"github.com/fastygo/taskboard/usecase/taskview"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tag, err := taskview.ParseTag(string(ctx.QueryArgs().Peek("filter")))
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	search := string(ctx.QueryArgs().Peek("search"))

	tasks := h.uc.List()
	h.respondSuccess(ctx, http.StatusOK, transport.TaskList{
		Tasks:  taskview.Filter(tasks, tag, search),
		Counts: taskview.CountByTag(tasks),
		Filter: tag,
		Search: search,
	})
}

// @Summary Task statistics
// @Tags tasks
// @Router /api/v1/tasks/stats [get]
func (h *TaskHandler) Stats(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, taskview.Summarize(h.uc.List()))
}

// @Summary Get task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, ok := h.uc.Get(pathID(ctx))
	if !ok {
		h.respondError(stdCtx, ctx, domain.ErrTaskNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Add(stdCtx, req.Input())
	if err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update task
// @Tags tasks
// @Router /api/v1/tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	var req transport.TaskPatchRequest
	if !h.decode(ctx, &req) {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, pathID(ctx), req.Patch())
	h.respondMutation(stdCtx, ctx, updated, err)
}

// @Summary Toggle task completion
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	toggled, err := h.uc.ToggleComplete(stdCtx, pathID(ctx))
	h.respondMutation(stdCtx, ctx, toggled, err)
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if _, err := h.uc.Remove(stdCtx, pathID(ctx)); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

// @Summary Delete all tasks
// @Tags tasks
// @Router /api/v1/tasks [delete]
func (h *TaskHandler) ClearTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Clear(stdCtx); err != nil {
		h.respondError(stdCtx, ctx, err)
		return
	}
	h.respondNoContent(ctx)
}

// respondMutation answers 204 when the task did not exist.
func (h *TaskHandler) respondMutation(stdCtx context.Context, ctx *fasthttp.RequestCtx, task *domain.Task, err error) {
	switch {
	case err != nil:
		h.respondError(stdCtx, ctx, err)
	case task == nil:
		h.respondNoContent(ctx)
	default:
		h.respondSuccess(ctx, http.StatusOK, task)
	}
}
