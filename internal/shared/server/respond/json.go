package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload as the JSON body with the given status code.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// OK writes a 200 response.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}

// Created writes a 201 response for newly stored resources.
func Created(c *gin.Context, payload any) {
	JSON(c, http.StatusCreated, payload)
}
