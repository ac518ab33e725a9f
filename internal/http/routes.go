package http

import (
	"viewerhub/internal/config"
	"viewerhub/internal/http/handlers"
	"viewerhub/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the API surface. Reads are open; every mutation sits
// behind the admin bearer token.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db)
	health := handlers.NewHealthHandler(db, version)

	// Health checks stay outside rate limiting so orchestrators never get 429s.
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(cfg.APIRateLimit, cfg.APIRateWindow))

	api.GET("/users", h.ListUsers)
	api.GET("/users/:channel_id", h.GetUser)
	api.GET("/users/:channel_id/rank", h.GetUserRank)
	api.GET("/users/:channel_id/permissions/:permission", h.CheckUserPermission)

	api.GET("/groups", h.ListGroups)
	api.GET("/ranks", h.ListRanks)

	admin := api.Group("")
	admin.Use(middleware.RequireAdmin(cfg.JWTSecret))

	admin.POST("/users", h.UpsertUser)
	admin.PUT("/users/:channel_id", h.UpsertUser)
	admin.DELETE("/users", h.DeleteUsers)
	admin.DELETE("/users/:channel_id", h.DeleteUser)
	admin.POST("/users/:channel_id/permissions", h.GrantUserPermission)
	admin.DELETE("/users/:channel_id/permissions/:permission", h.RevokeUserPermission)

	admin.POST("/groups", h.CreateGroup)
	admin.PUT("/groups/:id", h.UpdateGroup)
	admin.DELETE("/groups/:id", h.DeleteGroup)
	admin.POST("/groups/:id/permissions", h.GrantGroupPermission)
	admin.DELETE("/groups/:id/permissions/:permission", h.RevokeGroupPermission)
	admin.POST("/groups/:id/members/:channel_id", h.AddGroupMember)
	admin.DELETE("/groups/:id/members/:channel_id", h.RemoveGroupMember)

	admin.POST("/ranks", h.CreateRank)
	admin.PUT("/ranks/:id", h.UpdateRank)
	admin.DELETE("/ranks/:id", h.DeleteRank)
}
