package http

import (
	"net/http"

	"github.com/brunotrento11/Teste-sub000/internal/scheduler/dto"
	"github.com/brunotrento11/Teste-sub000/internal/scheduler/service"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"

	"github.com/labstack/echo/v4"
)

// JobHandler handles HTTP requests for risk job definitions.
type JobHandler struct {
	jobService       service.JobService
	executionService service.ExecutionService
	logger           *logger.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService, executionService service.ExecutionService, logger *logger.Logger) *JobHandler {
	return &JobHandler{jobService: jobService, executionService: executionService, logger: logger}
}

// RegisterRoutes registers the job routes to the Echo group.
func (h *JobHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateJob)
	g.GET("", h.GetAllJobs)
	g.GET("/:id", h.GetJobByID)
	g.PUT("/:id", h.UpdateJob)
	g.DELETE("/:id", h.DeleteJob)
	g.GET("/:id/executions", h.GetJobExecutions)
}

// CreateJob godoc
// @Summary Create a new job
// @Description Create a risk job with its cron schedules
// @Tags jobs
// @Accept  json
// @Produce  json
// @Param   job  body    dto.CreateJobRequest   true    "Job to create"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c echo.Context) error {
	var req dto.CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	jobResponse, err := h.jobService.CreateJob(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusCreated, jobResponse)
}

// GetJobByID godoc
// @Summary Get a job by ID
// @Tags jobs
// @Produce  json
// @Param   id  path    int true    "Job ID"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJobByID(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid job ID")
	}

	jobResponse, err := h.jobService.GetJobByID(c.Request().Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jobResponse)
}

// GetAllJobs godoc
// @Summary Get all jobs
// @Tags jobs
// @Produce  json
// @Success 200 {array} dto.JobResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /jobs [get]
func (h *JobHandler) GetAllJobs(c echo.Context) error {
	jobs, err := h.jobService.GetAllJobs(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get all jobs", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get jobs"})
	}
	return c.JSON(http.StatusOK, jobs)
}

// DeleteJob godoc
// @Summary Delete a job and its schedules
// @Tags jobs
// @Param   id  path    int true    "Job ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{id} [delete]
func (h *JobHandler) DeleteJob(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid job ID")
	}

	if err := h.jobService.DeleteJob(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UpdateJob godoc
// @Summary Update an existing job
// @Description Replaces the definition and the schedules of a job
// @Tags jobs
// @Accept  json
// @Produce  json
// @Param   id  path    int true    "Job ID"
// @Param   job  body    dto.UpdateJobRequest   true    "Job to update"
// @Success 200 {object} dto.JobResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{id} [put]
func (h *JobHandler) UpdateJob(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid job ID")
	}

	var req dto.UpdateJobRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	jobResponse, err := h.jobService.UpdateJob(c.Request().Context(), id, &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, jobResponse)
}

// GetJobExecutions godoc
// @Summary List executions of the function a job runs
// @Tags jobs
// @Produce  json
// @Param   id  path    int true    "Job ID"
// @Success 200 {object} dto.ExecutionListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /jobs/{id}/executions [get]
func (h *JobHandler) GetJobExecutions(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "Invalid job ID")
	}

	var req dto.ListExecutionsRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return badRequest(c, "Invalid query parameters")
	}

	resp, err := h.executionService.ListByJob(c.Request().Context(), id, &req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
