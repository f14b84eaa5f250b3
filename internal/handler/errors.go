package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Almas2004/led/internal/utils"
)

// writeError maps service errors onto the error envelope.
func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, utils.ErrSlugTaken):
		utils.Error(c, http.StatusConflict, "SLUG_TAKEN", "slug already exists")
	case errors.Is(err, utils.ErrSlugRequired):
		utils.Error(c, http.StatusBadRequest, "SLUG_REQUIRED", "slug is required")
	case errors.Is(err, utils.ErrInvalidStatus):
		utils.Error(c, http.StatusBadRequest, "INVALID_STATUS", "status must be one of new, in_progress, done")
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid id")
		return 0, false
	}
	return id, true
}
