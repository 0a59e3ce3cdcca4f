package api

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the tracker service dependency.
type UserHandler struct {
	trackerService service.TrackerService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(trackerService service.TrackerService) *UserHandler {
	return &UserHandler{trackerService: trackerService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateUserRequest defines the expected form fields for creating a user.
// Pointer-typed so an empty username is accepted; usernames are free-form
// and "required" only rejects a missing field.
type CreateUserRequest struct {
	Username *string `form:"username" binding:"required"`
}

// UserResponse is the DTO for returning a user projected to username and id.
type UserResponse struct {
	Username string `json:"username"`
	ID       string `json:"_id"`
}

// MapUserToResponse converts a domain.User to UserResponse DTO.
func MapUserToResponse(u *domain.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{
		Username: u.Username,
		ID:       u.ID.Hex(),
	}
}

// MapUsersToResponse converts a slice of domain.User to a slice of UserResponse DTO.
func MapUsersToResponse(users []domain.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, u := range users {
		responses[i] = MapUserToResponse(&u)
	}
	return responses
}

// --- Handler Methods ---

// CreateUser handles POST /api/users.
// Accepts a form field "username" and responds with {username, _id}.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.trackerService.CreateUser(c.Request.Context(), *req.Username)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// ListUsers handles GET /api/users.
// Responds with every user as an array of {username, _id} in insertion order.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.trackerService.ListUsers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if users == nil {
		c.JSON(http.StatusOK, []UserResponse{})
		return
	}

	c.JSON(http.StatusOK, MapUsersToResponse(users))
}
