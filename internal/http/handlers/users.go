package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"viewerhub/internal/domain"
	"viewerhub/internal/repository"

	"github.com/gin-gonic/gin"
)

type userResponse struct {
	domain.User
	WatchSeconds int64  `json:"watch_seconds"`
	WatchNanos   int32  `json:"watch_nanos"`
	Rank         string `json:"rank,omitempty"`
}

func toUserResponse(u domain.User, rank string) userResponse {
	return userResponse{
		User:         u,
		WatchSeconds: u.WatchSeconds(),
		WatchNanos:   u.WatchNanos(),
		Rank:         rank,
	}
}

// GetUser returns a viewer's aggregate together with their resolved rank.
func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), c.Param("channel_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	rank, err := h.RankSvc.Select(c.Request.Context(), u.WatchTime)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(*u, rank))
}

// GetUserRank returns only the resolved rank label.
func (h *Handler) GetUserRank(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), c.Param("channel_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	rank, err := h.RankSvc.Select(c.Request.Context(), u.WatchTime)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"channel_id": u.ChannelID, "rank": rank})
}

// ListUsers filters and sorts viewers from query parameters.
func (h *Handler) ListUsers(c *gin.Context) {
	f, err := parseUserFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users, err := h.Users.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u, ""))
	}
	c.JSON(http.StatusOK, gin.H{"users": out, "count": len(out)})
}

func parseUserFilter(c *gin.Context) (repository.UserFilter, error) {
	f := repository.UserFilter{
		ChannelID:   c.Query("channel_id"),
		DisplayName: c.Query("display_name"),
	}

	parseDur := func(name string) (*time.Duration, error) {
		v := c.Query(name)
		if v == "" {
			return nil, nil
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return nil, errors.New(name + " must be a non-negative integer")
		}
		d := time.Duration(n) * time.Second
		return &d, nil
	}
	parseMoney := func(name string) (*float64, error) {
		v := c.Query(name)
		if v == "" {
			return nil, nil
		}
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New(name + " must be a number")
		}
		return &m, nil
	}

	var err error
	if f.MinWatch, err = parseDur("min_watch_seconds"); err != nil {
		return f, err
	}
	if f.MaxWatch, err = parseDur("max_watch_seconds"); err != nil {
		return f, err
	}
	if f.MinMoney, err = parseMoney("min_money"); err != nil {
		return f, err
	}
	if f.MaxMoney, err = parseMoney("max_money"); err != nil {
		return f, err
	}

	switch sort := c.Query("sort"); sort {
	case "", repository.SortWatchTime, repository.SortMoney:
		f.Sort = sort
	default:
		return f, errors.New("sort must be watch_time or money")
	}

	switch order := c.Query("order"); order {
	case "", "asc":
	case "desc":
		f.Desc = true
	default:
		return f, errors.New("order must be asc or desc")
	}

	return f, nil
}

type userRequest struct {
	ChannelID    string  `json:"channel_id"`
	DisplayName  string  `json:"display_name"`
	WatchSeconds int64   `json:"watch_seconds"`
	WatchNanos   int32   `json:"watch_nanos"`
	Money        float64 `json:"money"`
}

func (r *userRequest) validate() error {
	if r.ChannelID == "" {
		return errors.New("channel_id is required")
	}
	if r.WatchSeconds < 0 || r.WatchNanos < 0 || r.Money < 0 {
		return errors.New("watch time and money must be non-negative")
	}
	return nil
}

// UpsertUser creates or replaces an aggregate from an admin request. The
// first-seen timestamp of an existing viewer is preserved.
func (h *Handler) UpsertUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if id := c.Param("channel_id"); id != "" {
		req.ChannelID = id
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	u := domain.User{
		ChannelID:   req.ChannelID,
		DisplayName: req.DisplayName,
		Money:       req.Money,
		FirstSeenAt: now,
		LastSeenAt:  now,
	}
	u.SetWatch(req.WatchSeconds, req.WatchNanos)

	existing, err := h.Users.Get(c.Request.Context(), req.ChannelID)
	switch {
	case err == nil:
		u.FirstSeenAt = existing.FirstSeenAt
	case !errors.Is(err, repository.ErrNotFound):
		respondError(c, err)
		return
	}

	if err := h.Users.Upsert(c.Request.Context(), &u); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u, ""))
}

// DeleteUser removes one viewer by channel id.
func (h *Handler) DeleteUser(c *gin.Context) {
	deleted, err := h.Users.Delete(c.Request.Context(), []string{c.Param("channel_id")})
	if err != nil {
		respondError(c, err)
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// DeleteUsers removes a batch of viewers.
func (h *Handler) DeleteUsers(c *gin.Context) {
	var req struct {
		ChannelIDs []string `json:"channel_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.ChannelIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "channel_ids is required"})
		return
	}

	deleted, err := h.Users.Delete(c.Request.Context(), req.ChannelIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
