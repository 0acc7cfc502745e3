package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	httpHandler "github.com/consensuslabs/reelstream/backend/internal/http"
	"github.com/gin-gonic/gin"
)

const checkTimeout = 2 * time.Second

// Status of a single dependency
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Component is the result of one dependency check
type Component struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the body of the health endpoint
type Report struct {
	Status     string      `json:"status"`
	Components []Component `json:"components"`
}

// Handler handles health check related endpoints
type Handler struct {
	responseHandler ResponseHandler
	checks          map[string]Pinger
}

// NewHandler creates a new health check handler. checks maps a dependency name
// (postgres, mongo, redis) to its pinger; nil pingers are skipped.
func NewHandler(responseHandler ResponseHandler, checks map[string]Pinger) *Handler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &Handler{
		responseHandler: responseHandler,
		checks:          active,
	}
}

// Check pings every dependency with a shared timeout
func (h *Handler) Check(ctx context.Context) Report {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	report := Report{Status: StatusUp, Components: make([]Component, 0, len(h.checks))}
	for name, p := range h.checks {
		component := Component{Name: name, Status: StatusUp}
		if err := p.Ping(ctx); err != nil {
			component.Status = StatusDown
			component.Error = err.Error()
			report.Status = StatusDown
		}
		report.Components = append(report.Components, component)
	}
	sort.Slice(report.Components, func(i, j int) bool {
		return report.Components[i].Name < report.Components[j].Name
	})
	return report
}

// @Summary Health check endpoint
// @Description Checks if the API server and its stores are reachable
// @Tags health
// @Produce json
// @Success 200 {object} http.Response{data=Report} "Health check successful"
// @Failure 503 {object} http.Response{data=Report} "A dependency is down"
// @Router /health [get]
func (h *Handler) HandleHealthCheck(c *gin.Context) {
	report := h.Check(c.Request.Context())
	if report.Status == StatusDown {
		c.JSON(http.StatusServiceUnavailable, httpHandler.Response{
			Success: false,
			Data:    report,
			Error:   &httpHandler.Error{Code: "UNAVAILABLE", Message: "A dependency is unavailable"},
		})
		return
	}
	h.responseHandler.SuccessResponse(c, report, "Health check successful")
}
