package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"linkfeed/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidBodyPref = "invalid request body: "
	errInvalidSkip     = "invalid 'skip'; expected a non-negative integer"
	errInvalidTake     = "invalid 'take'; expected a non-negative integer"
	errInvalidLinkID   = "invalid link id"
	errQueryFeed       = "failed to query feed"
	errPostLink        = "failed to post link"
)

func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

type postLinkRequest struct {
	URL         string `json:"url" binding:"required"`
	Description string `json:"description"`
}

// @Summary      Post a link
// @Tags         links
// @Accept       json
// @Produce      json
// @Param        body  body  postLinkRequest  true  "Link payload"
// @Success      201  {object}  models.Link
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/links [post]
// @Security     BearerAuth
func (h *Handler) postLink(c *gin.Context) {
	var req postLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	link, err := h.services.Post(c.Request.Context(), callerID(c), req.URL, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errPostLink, "post_link_failed", err, "url", req.URL)
		return
	}

	c.JSON(http.StatusCreated, link)
}

// @Summary      Get a link
// @Tags         links
// @Produce      json
// @Param        id  path  int  true  "Link id"
// @Success      200  {object}  models.Link
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/links/{id} [get]
// @Security     BearerAuth
func (h *Handler) getLink(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidLinkID})
		return
	}

	link, err := h.services.Links.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load link", "get_link_failed", err, "id", id)
		return
	}

	c.JSON(http.StatusOK, link)
}

// @Summary      Feed
// @Description  Links matching an optional case-sensitive filter over url/description, paginated with skip/take, ordered by created_at|url|description. count is the filtered total regardless of pagination. A "top" view is built by the caller: fetch an unfiltered batch and rank by the votes field client-side.
// @Tags         feed
// @Produce      json
// @Param        filter     query  string  false  "Substring to match in url or description (case-sensitive)"
// @Param        skip       query  int     false  "Rows to skip"
// @Param        take       query  int     false  "Rows to return (0 = all)"
// @Param        order_by   query  string  false  "Order field"  Enums(created_at,url,description)
// @Param        order_dir  query  string  false  "Order direction"  Enums(asc,desc)
// @Success      200  {object}  models.Feed
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /feed [get]
func (h *Handler) getFeed(c *gin.Context) {
	q := service.FeedQuery{
		Filter:   c.Query("filter"),
		OrderBy:  c.Query("order_by"),
		OrderDir: c.Query("order_dir"),
	}
	if !validOrder(q.OrderBy, q.OrderDir) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'order_by'/'order_dir'"})
		return
	}

	var err error
	if q.Skip, err = parsePageParam(c.Query("skip")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidSkip})
		return
	}
	if q.Take, err = parsePageParam(c.Query("take")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidTake})
		return
	}

	feed, err := h.services.Feed(c.Request.Context(), q)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errQueryFeed, "feed_query_failed", err,
			"filter", q.Filter, "order_by", q.OrderBy)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// parsePageParam parses an optional non-negative pagination value.
func parsePageParam(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 10, 64)
}

func validOrder(field, dir string) bool {
	switch field {
	case "", "created_at", "url", "description":
	default:
		return false
	}
	switch dir {
	case "", "asc", "desc":
	default:
		return false
	}
	return true
}
