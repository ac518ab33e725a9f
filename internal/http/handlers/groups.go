package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"viewerhub/internal/domain"

	"github.com/gin-gonic/gin"
)

type groupResponse struct {
	domain.Group
	Permissions []domain.GroupPermission `json:"permissions"`
	Members     []string                 `json:"members"`
}

func groupID(c *gin.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.New("group id must be an integer")
	}
	return int32(id), nil
}

// ListGroups returns all groups highest priority first, each with its
// permission records and member channel ids.
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.Groups.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		perms, err := h.Perms.GetForGroup(c.Request.Context(), g.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		members, err := h.Groups.Members(c.Request.Context(), g.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		out = append(out, groupResponse{Group: g, Permissions: perms, Members: members})
	}
	c.JSON(http.StatusOK, gin.H{"groups": out})
}

type groupRequest struct {
	Name        string  `json:"name"`
	BonusPayout float64 `json:"bonus_payout"`
	Sorting     int32   `json:"sorting"`
}

func (h *Handler) CreateGroup(c *gin.Context) {
	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	g := domain.Group{Name: req.Name, BonusPayout: req.BonusPayout, Sorting: req.Sorting}
	if err := h.Groups.Create(c.Request.Context(), &g); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h *Handler) UpdateGroup(c *gin.Context) {
	id, err := groupID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req groupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	g := domain.Group{ID: id, Name: req.Name, BonusPayout: req.BonusPayout, Sorting: req.Sorting}
	if err := h.Groups.Update(c.Request.Context(), &g); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *Handler) DeleteGroup(c *gin.Context) {
	id, err := groupID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Groups.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// AddGroupMember links a viewer to a group. Both sides must already exist.
func (h *Handler) AddGroupMember(c *gin.Context) {
	id, err := groupID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	channelID := c.Param("channel_id")

	if _, err := h.Groups.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	exists, err := h.Users.Exists(c.Request.Context(), channelID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if err := h.Groups.AddMember(c.Request.Context(), id, channelID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group_id": id, "channel_id": channelID})
}

func (h *Handler) RemoveGroupMember(c *gin.Context) {
	id, err := groupID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Groups.RemoveMember(c.Request.Context(), id, c.Param("channel_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": c.Param("channel_id")})
}
