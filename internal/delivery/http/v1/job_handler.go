package v1

import (
	"bytes"
	"fmt"
	"net/http"

	"hireova-backend/internal/delivery/http/response"
	"hireova-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type JobHandler struct {
	jobUC         domain.JobUsecase
	applicationUC domain.ApplicationUsecase
}

func NewJobHandler(r *gin.RouterGroup, jobUC domain.JobUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &JobHandler{jobUC: jobUC, applicationUC: applicationUC}

	jobs := r.Group("/jobs")
	{
		jobs.POST("", handler.Create)
		jobs.GET("", handler.List)
		jobs.GET("/:id", handler.Get)
		jobs.PATCH("/:id", handler.Update)
		jobs.DELETE("/:id", handler.Delete)
		jobs.GET("/:id/applications", handler.ListApplications)
		jobs.GET("/:id/applications/export", handler.ExportApplications)
	}
}

// Create godoc
// @Summary      Create a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      domain.JobCreate  true  "Job"
// @Success      201   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.JobCreate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created", job)
}

// List godoc
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Param        organization_id  query     string  false  "Organization ID"
// @Param        status           query     string  false  "active, paused or closed"
// @Param        page             query     int     false  "Page number"
// @Param        page_size        query     int     false  "Page size (max 100)"
// @Success      200              {object}  response.Response{data=domain.PaginatedResult[domain.Job]}
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	orgID, err := queryUUID(c, "organization_id")
	if err != nil {
		c.Error(err)
		return
	}
	page, err := queryPage(c)
	if err != nil {
		c.Error(err)
		return
	}

	filter := domain.JobFilter{OrganizationID: orgID, Status: queryString(c, "status")}
	result, err := h.jobUC.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job list", result)
}

// Get godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job details", job)
}

// Update godoc
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string            true  "Job ID"
// @Param        body  body      domain.JobUpdate  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.Job}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /jobs/{id} [patch]
func (h *JobHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.JobUpdate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.Update(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated", job)
}

// Delete godoc
// @Summary      Delete a job
// @Description  Removes the job and its applications.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.jobUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted", nil)
}

// ListApplications godoc
// @Summary      List applications for a job
// @Tags         jobs
// @Produce      json
// @Param        id         path      string  true   "Job ID"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Application]}
// @Failure      404        {object}  response.Response
// @Router       /jobs/{id}/applications [get]
func (h *JobHandler) ListApplications(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	page, err := queryPage(c)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.applicationUC.ListByJob(c.Request.Context(), id, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application list", result)
}

// ExportApplications godoc
// @Summary      Export applications for a job
// @Description  Downloads every application of the job as an xlsx workbook.
// @Tags         jobs
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path      string  true  "Job ID"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications/export [get]
func (h *JobHandler) ExportApplications(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	// Buffer so a failure can still be rendered as a JSON error.
	var buf bytes.Buffer
	if err := h.applicationUC.ExportByJob(c.Request.Context(), id, &buf); err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("applications-%s.xlsx", id)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
