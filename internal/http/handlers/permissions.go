package handlers

import (
	"net/http"
	"strconv"

	"viewerhub/internal/domain"

	"github.com/gin-gonic/gin"
)

// CheckUserPermission returns the resolved grant for one permission name,
// folding group records by priority and letting any user override win. The
// optional "default" query parameter seeds the fold (false if absent).
func (h *Handler) CheckUserPermission(c *gin.Context) {
	channelID := c.Param("channel_id")
	permission := c.Param("permission")

	def := false
	if v := c.Query("default"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "default must be a boolean"})
			return
		}
		def = parsed
	}

	if _, err := h.Users.Get(c.Request.Context(), channelID); err != nil {
		respondError(c, err)
		return
	}

	granted, err := h.Permissions.Resolve(c.Request.Context(), channelID, permission, def)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channel_id": channelID,
		"permission": permission,
		"granted":    granted,
	})
}

type grantRequest struct {
	Permission string `json:"permission"`
	Granted    *bool  `json:"granted"`
}

func (r *grantRequest) ok() bool {
	return r.Permission != "" && r.Granted != nil
}

// GrantUserPermission writes a user-level record; re-granting the same name
// overwrites the previous value.
func (h *Handler) GrantUserPermission(c *gin.Context) {
	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.ok() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "permission and granted are required"})
		return
	}

	channelID := c.Param("channel_id")
	if _, err := h.Users.Get(c.Request.Context(), channelID); err != nil {
		respondError(c, err)
		return
	}

	p := domain.UserPermission{ChannelID: channelID, Permission: req.Permission, Granted: *req.Granted}
	if err := h.Perms.SetForUser(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) RevokeUserPermission(c *gin.Context) {
	err := h.Perms.DeleteForUser(c.Request.Context(), c.Param("channel_id"), c.Param("permission"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": c.Param("permission")})
}

func (h *Handler) GrantGroupPermission(c *gin.Context) {
	id, err := groupID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.ok() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "permission and granted are required"})
		return
	}

	if _, err := h.Groups.Get(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	p := domain.GroupPermission{GroupID: id, Permission: req.Permission, Granted: *req.Granted}
	if err := h.Perms.SetForGroup(c.Request.Context(), p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) RevokeGroupPermission(c *gin.Context) {
	id, err := groupID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Perms.DeleteForGroup(c.Request.Context(), id, c.Param("permission")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"revoked": c.Param("permission")})
}
