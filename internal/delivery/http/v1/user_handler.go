package v1

import (
	"net/http"

	"hireova-backend/internal/delivery/http/response"
	"hireova-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

func NewUserHandler(r *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := r.Group("/users")
	{
		users.POST("", handler.Create)
		users.GET("", handler.List)
		users.GET("/by-email", handler.GetByEmail)
		users.GET("/:id", handler.Get)
		users.PATCH("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Create a user
// @Description  Give organization_name instead of organization_id to create a free-plan organization with the user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      domain.UserCreate  true  "User"
// @Success      201   {object}  response.Response{data=domain.User}
// @Failure      400   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req domain.UserCreate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.userUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User created", user)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        organization_id  query     string  false  "Organization ID"
// @Param        page             query     int     false  "Page number"
// @Param        page_size        query     int     false  "Page size (max 100)"
// @Success      200              {object}  response.Response{data=domain.PaginatedResult[domain.User]}
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
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

	result, err := h.userUC.List(c.Request.Context(), domain.UserFilter{OrganizationID: orgID}, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User list", result)
}

// GetByEmail godoc
// @Summary      Find a user by email
// @Tags         users
// @Produce      json
// @Param        email  query     string  true  "Email"
// @Success      200    {object}  response.Response{data=domain.User}
// @Failure      404    {object}  response.Response
// @Router       /users/by-email [get]
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.userUC.GetByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User details", user)
}

// Get godoc
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.userUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User details", user)
}

// Update godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      domain.UserUpdate  true  "Fields to change"
// @Success      200   {object}  response.Response{data=domain.User}
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req domain.UserUpdate
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	user, err := h.userUC.Update(c.Request.Context(), id, req)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated", user)
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.userUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted", nil)
}
