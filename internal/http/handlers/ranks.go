package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"viewerhub/internal/domain"

	"github.com/gin-gonic/gin"
)

type rankResponse struct {
	domain.Rank
	RequirementSeconds int64 `json:"requirement_seconds"`
	RequirementNanos   int32 `json:"requirement_nanos"`
}

func toRankResponse(r domain.Rank) rankResponse {
	return rankResponse{
		Rank:               r,
		RequirementSeconds: r.RequirementSeconds(),
		RequirementNanos:   r.RequirementNanos(),
	}
}

// ListRanks returns all ranks highest priority first.
func (h *Handler) ListRanks(c *gin.Context) {
	ranks, err := h.Ranks.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]rankResponse, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, toRankResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"ranks": out})
}

type rankRequest struct {
	Name               string `json:"name"`
	Sorting            int32  `json:"sorting"`
	RequirementSeconds int64  `json:"requirement_seconds"`
	RequirementNanos   int32  `json:"requirement_nanos"`
}

func (r *rankRequest) toDomain(id int32) (domain.Rank, error) {
	if r.Name == "" {
		return domain.Rank{}, errors.New("name is required")
	}
	if r.RequirementSeconds < 0 || r.RequirementNanos < 0 {
		return domain.Rank{}, errors.New("requirement must be non-negative")
	}
	rk := domain.Rank{ID: id, Name: r.Name, Sorting: r.Sorting}
	rk.SetRequirement(r.RequirementSeconds, r.RequirementNanos)
	return rk, nil
}

func rankID(c *gin.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.New("rank id must be an integer")
	}
	return int32(id), nil
}

func (h *Handler) CreateRank(c *gin.Context) {
	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	rk, err := req.toDomain(0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ranks.Create(c.Request.Context(), &rk); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRankResponse(rk))
}

func (h *Handler) UpdateRank(c *gin.Context) {
	id, err := rankID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	rk, err := req.toDomain(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ranks.Update(c.Request.Context(), &rk); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRankResponse(rk))
}

func (h *Handler) DeleteRank(c *gin.Context) {
	id, err := rankID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Ranks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
