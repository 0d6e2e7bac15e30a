package controller

import (
	"net/http"

	"ideaforge/internal/apperr"
	"ideaforge/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// WriteError ends the request with the status code for the error's kind.
// Authorization and validation failures keep their message; unclassified
// store/endpoint errors are logged here and surfaced as a generic failure
// instead of leaking internals.
func WriteError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled operation error")
		message = "Internal server error"
	}
	c.JSON(status, dto.ErrorResponse{Success: false, Message: message})
}
