package ops

import (
	"context"
	"log/slog"
	"net/http"

	deliverycontext "listingmanager/internal/delivery/context"
	"listingmanager/internal/delivery/response"
	"listingmanager/internal/delivery/scheduler"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TaskTrigger starts task cycles on demand
type TaskTrigger interface {
	Trigger(ctx context.Context, name string) (string, error)
	Tasks() []string
}

// TaskHandler serves the manual task endpoints
type TaskHandler struct {
	trigger TaskTrigger
	logger  *slog.Logger
}

// NewTaskHandler creates a task handler
func NewTaskHandler(trigger TaskTrigger, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{trigger: trigger, logger: logger}
}

type taskRunResponse struct {
	Task    string `json:"task"`
	CycleID string `json:"cycle_id"`
}

// ListTasks returns the registered task names
func (h *TaskHandler) ListTasks(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string][]string{"tasks": h.trigger.Tasks()})
}

// RunTask starts one cycle of the task named in the path
func (h *TaskHandler) RunTask(c echo.Context) error {
	name := c.Param("name")
	ctx := c.Request().Context()

	cycleID, err := h.trigger.Trigger(ctx, name)
	switch {
	case err == nil:
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Info("Task triggered manually",
			slog.String("task", name),
			slog.String("cycle_id", cycleID),
		)

		return response.Success(c, http.StatusAccepted, taskRunResponse{Task: name, CycleID: cycleID})
	case errors.Is(err, scheduler.ErrUnknownTask):
		return response.NotFound(c, "UNKNOWN_TASK", "unknown task", map[string]any{"task": name, "tasks": h.trigger.Tasks()})
	case errors.Is(err, scheduler.ErrTaskRunning):
		return response.Conflict(c, "TASK_RUNNING", "a cycle of this task is already running", map[string]string{"task": name})
	case errors.Is(err, scheduler.ErrStopped):
		return response.ServiceUnavailable(c, "SHUTTING_DOWN", "scheduler is shutting down")
	default:
		return errors.WithStack(err)
	}
}
