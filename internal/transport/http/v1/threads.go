package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coldcanuk/MyChatApp/internal/domain"
)

// GetThreads lists every stored thread id.
// GET /get_threads
func (h *Handler) GetThreads(c echo.Context) error {
	ids, err := h.service.ListThreads(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if ids == nil {
		ids = []string{}
	}

	return c.JSON(http.StatusOK, domain.ThreadListResponse{Threads: ids})
}

// LoadThread returns the full persisted thread document.
// GET /load_thread/:thread_id
func (h *Handler) LoadThread(c echo.Context) error {
	threadID := c.Param("thread_id")

	thread, err := h.service.LoadThread(c.Request().Context(), threadID)
	if err != nil {
		if errors.Is(err, domain.ErrThreadNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "thread not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, thread)
}

// DeleteThread removes a stored thread.
// DELETE /delete_thread/:thread_id
func (h *Handler) DeleteThread(c echo.Context) error {
	threadID := c.Param("thread_id")

	if err := h.service.DeleteThread(c.Request().Context(), threadID); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
