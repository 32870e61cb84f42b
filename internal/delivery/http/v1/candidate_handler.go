package v1

import (
	"net/http"

	"hireova-backend/internal/delivery/http/response"
	"hireova-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC   domain.CandidateUsecase
	applicationUC domain.ApplicationUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC, applicationUC: applicationUC}

	candidates := r.Group("/candidates")
	{
		candidates.POST("", handler.Create)
		candidates.GET("", handler.List)
		candidates.GET("/by-email", handler.GetByEmail)
		candidates.GET("/by-linkedin/:linkedinId", handler.GetByLinkedinID)
		candidates.GET("/:id", handler.Get)
		candidates.PATCH("/:id", handler.Update)
		candidates.DELETE("/:id", handler.Delete)
		candidates.GET("/:id/applications", handler.ListApplications)
	}
}

// Create godoc
// @Summary      Create a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CandidateCreate  true  "Candidate"
// @Success      201   {object}  response.Response{data=domain.Candidate}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /candidates [post]
func (h *CandidateHandler) Create(c *gin.Context) {
	var req domain.CandidateCreate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate created", candidate)
}

// List godoc
// @Summary      List candidates
// @Tags         candidates
// @Produce      json
// @Param        source     query     string  false  "upload, linkedin, email, referral or job_board"
// @Param        skill      query     string  false  "Candidates having this skill"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Candidate]}
// @Router       /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	page, err := queryPage(c)
	if err != nil {
		c.Error(err)
		return
	}

	filter := domain.CandidateFilter{Source: queryString(c, "source"), Skill: queryString(c, "skill")}
	result, err := h.candidateUC.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate list", result)
}

// GetByEmail godoc
// @Summary      Find a candidate by email
// @Description  Returns the most recently created candidate with the email.
// @Tags         candidates
// @Produce      json
// @Param        email  query     string  true  "Email"
// @Success      200    {object}  response.Response{data=domain.Candidate}
// @Failure      404    {object}  response.Response
// @Router       /candidates/by-email [get]
func (h *CandidateHandler) GetByEmail(c *gin.Context) {
	candidate, err := h.candidateUC.GetByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate details", candidate)
}

// GetByLinkedinID godoc
// @Summary      Find a candidate by LinkedIn ID
// @Tags         candidates
// @Produce      json
// @Param        linkedinId  path      string  true  "LinkedIn ID"
// @Success      200         {object}  response.Response{data=domain.Candidate}
// @Failure      404         {object}  response.Response
// @Router       /candidates/by-linkedin/{linkedinId} [get]
func (h *CandidateHandler) GetByLinkedinID(c *gin.Context) {
	candidate, err := h.candidateUC.GetByLinkedinID(c.Request.Context(), c.Param("linkedinId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate details", candidate)
}

// Get godoc
// @Summary      Get a candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response{data=domain.Candidate}
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate details", candidate)
}

// Update godoc
// @Summary      Update a candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "Candidate ID"
// @Param        body  body      domain.CandidateUpdate  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.Candidate}
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /candidates/{id} [patch]
func (h *CandidateHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.CandidateUpdate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.Update(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate updated", candidate)
}

// Delete godoc
// @Summary      Delete a candidate
// @Description  Removes the candidate and their applications.
// @Tags         candidates
// @Produce      json
// @Param        id   path      string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.candidateUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate deleted", nil)
}

// ListApplications godoc
// @Summary      List applications of a candidate
// @Tags         candidates
// @Produce      json
// @Param        id         path      string  true   "Candidate ID"
// @Param        page       query     int     false  "Page number"
// @Param        page_size  query     int     false  "Page size (max 100)"
// @Success      200        {object}  response.Response{data=domain.PaginatedResult[domain.Application]}
// @Failure      404        {object}  response.Response
// @Router       /candidates/{id}/applications [get]
func (h *CandidateHandler) ListApplications(c *gin.Context) {
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

	result, err := h.applicationUC.ListByCandidate(c.Request.Context(), id, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application list", result)
}
