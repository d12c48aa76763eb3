package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"linkfeed/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Cast a vote
// @Description  Records the caller's vote on a link. A user votes at most once per link; a repeat is rejected with 409.
// @Tags         votes
// @Produce      json
// @Param        id  path  int  true  "Link id"
// @Success      201  {object}  models.Vote
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/links/{id}/vote [post]
// @Security     BearerAuth
func (h *Handler) castVote(c *gin.Context) {
	linkID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidLinkID})
		return
	}

	vote, err := h.services.Cast(c.Request.Context(), callerID(c), linkID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrLinkNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateVote):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to cast vote", "cast_vote_failed", err, "link_id", linkID)
		}
		return
	}

	c.JSON(http.StatusCreated, vote)
}
