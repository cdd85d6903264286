package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The dashboard frontend consumes raw payloads on success and a
// {"message": "..."} body on failure. Keeping that wire shape is a
// compatibility contract; error texts stay generic and fixed so no
// internal detail leaks to callers.

// ErrorBody is the error response format.
type ErrorBody struct {
	Message string `json:"message"`
}

// JSON sends a 200 OK response with the raw payload.
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 Created response with the raw payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// BadRequest sends a 400 with a fixed message.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Message: msg})
}

// Unauthorized sends a 401 with a fixed message.
func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, ErrorBody{Message: msg})
}

// NotFound sends a 404 with a fixed message.
func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, ErrorBody{Message: msg})
}

// ServerError sends a 500 with a fixed message.
func ServerError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, ErrorBody{Message: msg})
}
