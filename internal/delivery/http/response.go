package http

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type errorResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

type itemErrorResponse struct {
	Field string `json:"field,omitempty"`
	Alert string `json:"alert,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	if statusCode >= 500 {
		logrus.WithField("path", c.Request.URL.Path).Error(message)
	}
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: message})
}
