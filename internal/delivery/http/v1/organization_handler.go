package v1

import (
	"net/http"

	"hireova-backend/internal/delivery/http/response"
	"hireova-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type OrganizationHandler struct {
	orgUC  domain.OrganizationUsecase
	userUC domain.UserUsecase
	jobUC  domain.JobUsecase
}

func NewOrganizationHandler(r *gin.RouterGroup, orgUC domain.OrganizationUsecase, userUC domain.UserUsecase, jobUC domain.JobUsecase) {
	handler := &OrganizationHandler{orgUC: orgUC, userUC: userUC, jobUC: jobUC}

	orgs := r.Group("/organizations")
	{
		orgs.POST("", handler.Create)
		orgs.GET("", handler.List)
		orgs.GET("/:id", handler.Get)
		orgs.PATCH("/:id", handler.Update)
		orgs.DELETE("/:id", handler.Delete)
		orgs.GET("/:id/jobs", handler.ListJobs)
		orgs.GET("/:id/users", handler.ListUsers)
	}
}

// Create godoc
// @Summary      Create an organization
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        body  body      domain.OrganizationCreate  true  "Organization"
// @Success      201   {object}  response.Response{data=domain.Organization}
// @Failure      400   {object}  response.Response
// @Router       /organizations [post]
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req domain.OrganizationCreate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	org, err := h.orgUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Organization created", org)
}

// List godoc
// @Summary      List organizations
// @Tags         organizations
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size (max 100)"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Organization]}
// @Router       /organizations [get]
func (h *OrganizationHandler) List(c *gin.Context) {
	page, err := queryPage(c)
	if err != nil {
		c.Error(err)
		return
	}

	result, err := h.orgUC.List(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Organization list", result)
}

// Get godoc
// @Summary      Get an organization
// @Tags         organizations
// @Produce      json
// @Param        id   path      string  true  "Organization ID"
// @Success      200  {object}  response.Response{data=domain.Organization}
// @Failure      404  {object}  response.Response
// @Router       /organizations/{id} [get]
func (h *OrganizationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	org, err := h.orgUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Organization details", org)
}

// Update godoc
// @Summary      Update an organization
// @Description  Partial update. A stale version fails with 409.
// @Tags         organizations
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "Organization ID"
// @Param        body  body      domain.OrganizationUpdate  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.Organization}
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /organizations/{id} [patch]
func (h *OrganizationHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.OrganizationUpdate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	org, err := h.orgUC.Update(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Organization updated", org)
}

// Delete godoc
// @Summary      Delete an organization
// @Description  Removes its jobs and their applications. Users are kept without an organization.
// @Tags         organizations
// @Produce      json
// @Param        id   path      string  true  "Organization ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /organizations/{id} [delete]
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.orgUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Organization deleted", nil)
}

// ListJobs godoc
// @Summary      List jobs of an organization
// @Tags         organizations
// @Produce      json
// @Param        id         path      string  true   "Organization ID"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Job]}
// @Failure      404        {object}  response.Response
// @Router       /organizations/{id}/jobs [get]
func (h *OrganizationHandler) ListJobs(c *gin.Context) {
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

	result, err := h.jobUC.ListByOrganization(c.Request.Context(), id, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job list", result)
}

// ListUsers godoc
// @Summary      List users of an organization
// @Tags         organizations
// @Produce      json
// @Param        id         path      string  true   "Organization ID"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.User]}
// @Failure      404        {object}  response.Response
// @Router       /organizations/{id}/users [get]
func (h *OrganizationHandler) ListUsers(c *gin.Context) {
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

	result, err := h.userUC.ListByOrganization(c.Request.Context(), id, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User list", result)
}
