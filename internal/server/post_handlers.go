package server

import (
	"github.com/gofiber/fiber/v2"
)

// ListPosts handles GET /v1/posts
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Failure 500 {object} models.ErrorResponse
// @Router /posts [get]
func (s *Server) ListPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /v1/posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{title=string,content=string,user_id=integer} true "Post attributes"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	payload, err := s.parsePayload(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), payload)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /v1/posts/:id
// @Summary Show post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(post)
}

// UpdatePost handles PUT /v1/posts/:id
// @Summary Update post
// @Description Title and content are required; user_id is optional.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{title=string,content=string,user_id=integer} true "Post attributes"
// @Success 200 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /posts/{id} [put]
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}
	payload, err := s.parsePayload(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, payload)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /v1/posts/:id
// @Summary Delete post
// @Tags posts
// @Param id path int true "Post ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "Post")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return s.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreatePostForUser handles POST /v1/users/:user/posts
// @Summary Create post for user
// @Description The owner comes from the path; a user_id in the body is ignored.
// @Tags posts
// @Accept json
// @Produce json
// @Param user path int true "User ID"
// @Param request body object{title=string,content=string} true "Post attributes"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /users/{user}/posts [post]
func (s *Server) CreatePostForUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "user", "User")
	if err != nil {
		return nil
	}
	payload, err := s.parsePayload(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.CreatePostForUser(c.UserContext(), userID, payload)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}
