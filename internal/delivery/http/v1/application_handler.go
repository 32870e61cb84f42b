package v1

import (
	"net/http"

	"hireova-backend/internal/delivery/http/response"
	"hireova-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := r.Group("/applications")
	{
		applications.POST("", handler.Create)
		applications.GET("", handler.List)
		applications.GET("/:id", handler.Get)
		applications.PATCH("/:id", handler.Update)
		applications.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Apply a candidate to a job
// @Description  The job must be active. A candidate can apply to a job once.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ApplicationCreate  true  "Application"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /applications [post]
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req domain.ApplicationCreate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// List godoc
// @Summary      List applications
// @Tags         applications
// @Produce      json
// @Param        job_id        query     string  false  "Job ID"
// @Param        candidate_id  query     string  false  "Candidate ID"
// @Param        status        query     string  false  "pending, screening, interviewed, rejected or hired"
// @Param        page          query     int     false  "Page number"
// @Param        page_size     query     int     false  "Page size (max 100)"
// @Success      200           {object}  response.Response{data=domain.PaginatedResult[domain.Application]}
// @Router       /applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	jobID, err := queryUUID(c, "job_id")
	if err != nil {
		c.Error(err)
		return
	}
	candidateID, err := queryUUID(c, "candidate_id")
	if err != nil {
		c.Error(err)
		return
	}
	page, err := queryPage(c)
	if err != nil {
		c.Error(err)
		return
	}

	filter := domain.ApplicationFilter{JobID: jobID, CandidateID: candidateID, Status: queryString(c, "status")}
	result, err := h.applicationUC.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application list", result)
}

// Get godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application details", app)
}

// Update godoc
// @Summary      Update an application
// @Description  Status changes and screening results.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "Application ID"
// @Param        body  body      domain.ApplicationUpdate  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /applications/{id} [patch]
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.ApplicationUpdate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.Update(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application updated", app)
}

// Delete godoc
// @Summary      Delete an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [delete]
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.applicationUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application deleted", nil)
}
