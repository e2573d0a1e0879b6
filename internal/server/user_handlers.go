package server

import (
	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /v1/users
// @Summary List users
// @Description Every user with their posts attached.
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} models.ErrorResponse
// @Router /users [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(users)
}

// CreateUser handles POST /v1/users
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body object{name=string,email=string} true "User attributes"
// @Success 201 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /users [post]
func (s *Server) CreateUser(c *fiber.Ctx) error {
	payload, err := s.parsePayload(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.CreateUser(c.UserContext(), payload)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// GetUser handles GET /v1/users/:id
// @Summary Show user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /v1/users/:id
// @Summary Update user
// @Description Both name and email are required.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body object{name=string,email=string} true "User attributes"
// @Success 200 {object} models.User
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /users/{id} [put]
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}
	payload, err := s.parsePayload(c)
	if err != nil {
		return nil
	}

	user, err := s.userService.UpdateUser(c.UserContext(), id, payload)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /v1/users/:id
// @Summary Delete user
// @Description Deletes the user and the user's posts.
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [delete]
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(c.UserContext(), id); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUserPosts handles GET /v1/users/:id/posts
// @Summary List a user's posts
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id}/posts [get]
func (s *Server) ListUserPosts(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "User")
	if err != nil {
		return nil
	}

	posts, err := s.userService.ListUserPosts(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(posts)
}
