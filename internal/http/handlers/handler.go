package handlers

import (
	"errors"
	"net/http"

	"viewerhub/internal/repository"
	"viewerhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB          *pgxpool.Pool
	Users       *repository.UserRepository
	Groups      *repository.GroupRepository
	Ranks       *repository.RankRepository
	Perms       *repository.PermissionRepository
	Permissions *service.PermissionService
	RankSvc     *service.RankService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	users := repository.NewUserRepository(db)
	groups := repository.NewGroupRepository(db)
	ranks := repository.NewRankRepository(db)
	perms := repository.NewPermissionRepository(db)

	return &Handler{
		DB:          db,
		Users:       users,
		Groups:      groups,
		Ranks:       ranks,
		Perms:       perms,
		Permissions: service.NewPermissionService(groups, perms),
		RankSvc:     service.NewRankService(ranks),
	}
}

// respondError maps store errors to HTTP statuses: missing records are 404,
// bad filters 400, everything else a generic 500 so internals stay internal.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, repository.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
