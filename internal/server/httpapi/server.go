// Package httpapi is the callable surface: a gin router exposing the admin
// operations, submission endpoints, the storage webhook and the read-side
// endpoints. Authorization rides on bearer tokens; rank checks stay inside
// the services, this layer only resolves who is calling.
package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tigerroots/collective/internal/common"
	"github.com/tigerroots/collective/internal/events"
	"github.com/tigerroots/collective/internal/logging"
	"github.com/tigerroots/collective/internal/roles"
	"github.com/tigerroots/collective/internal/server/repositories/repomanager"
)

// Identity resolves bearer tokens and reports credential state.
type Identity interface {
	Resolve(token string) (string, error)
	Disabled(ctx context.Context, uid string) (bool, error)
}

// Admin is the privileged operation set behind the surface.
type Admin interface {
	UpdateUserRole(ctx context.Context, callerID, targetID string, newRole roles.Role) (string, error)
	BanUser(ctx context.Context, callerID, targetID string) (string, error)
	RegisterRecruit(ctx context.Context, callerID, recruiterID string) (string, error)
	EnsureChannels(ctx context.Context) (string, error)
}

type Server struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	idp    Identity
	admin  Admin
	bus    events.Bus
	logger logging.Logger
}

func NewServer(db *sql.DB, rm repomanager.RepositoryManager, idp Identity, admin Admin,
	bus events.Bus, logger logging.Logger) *Server {
	return &Server{
		db:     db,
		rm:     rm,
		idp:    idp,
		admin:  admin,
		bus:    bus,
		logger: logger.With("module", "httpapi"),
	}
}

// Router builds the route table. The webhook and the stats read are open;
// everything else requires a resolvable, non-disabled caller.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/events/object-finalized", s.objectFinalized)
	r.GET("/stats/daily", s.statsDaily)

	authed := r.Group("/", s.authRequired)
	{
		authed.POST("/register", s.register)
		authed.POST("/admin/role", s.updateRole)
		authed.POST("/admin/ban", s.ban)
		authed.POST("/channels/ensure", s.ensureChannels)
		authed.POST("/plantings", s.createPlanting)
		authed.POST("/plantings/:pid/checkins", s.createCheckIn)
		authed.GET("/users/:uid", s.getUser)
	}

	return r
}

const callerKey = "caller_uid"

func (s *Server) authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		abortWith(c, common.ErrUnauthenticated)
		return
	}

	uid, err := s.idp.Resolve(token)
	if err != nil {
		abortWith(c, err)
		return
	}

	disabled, err := s.idp.Disabled(c.Request.Context(), uid)
	if err != nil {
		abortWith(c, err)
		return
	}
	if disabled {
		abortWith(c, common.ErrPermissionDenied)
		return
	}

	c.Set(callerKey, uid)
	c.Next()
}

func caller(c *gin.Context) string {
	return c.GetString(callerKey)
}

// abortWith translates an error kind into its status code and stable token.
func abortWith(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	token := "internal"

	for _, m := range []struct {
		kind   error
		status int
	}{
		{common.ErrUnauthenticated, http.StatusUnauthorized},
		{common.ErrInvalidArgument, http.StatusBadRequest},
		{common.ErrAlreadyExists, http.StatusConflict},
		{common.ErrNotFound, http.StatusNotFound},
		{common.ErrPermissionDenied, http.StatusForbidden},
	} {
		if errors.Is(err, m.kind) {
			status = m.status
			token = m.kind.Error()
			break
		}
	}

	c.AbortWithStatusJSON(status, gin.H{"error": token})
}
