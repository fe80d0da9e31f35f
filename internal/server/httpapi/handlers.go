package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tigerroots/collective/internal/common"
	"github.com/tigerroots/collective/internal/events"
	"github.com/tigerroots/collective/internal/roles"
	"github.com/tigerroots/collective/internal/server/models"
)

type registerRequest struct {
	RecruiterID string `json:"recruiterId" binding:"required"`
}

func (s *Server) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, common.ErrInvalidArgument)
		return
	}

	status, err := s.admin.RegisterRecruit(c.Request.Context(), caller(c), req.RecruiterID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

type updateRoleRequest struct {
	UID     string `json:"uid" binding:"required"`
	NewRole string `json:"newRole" binding:"required"`
}

func (s *Server) updateRole(c *gin.Context) {
	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, common.ErrInvalidArgument)
		return
	}

	status, err := s.admin.UpdateUserRole(c.Request.Context(), caller(c), req.UID, roles.Role(req.NewRole))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

type banRequest struct {
	UID string `json:"uid" binding:"required"`
}

func (s *Server) ban(c *gin.Context) {
	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, common.ErrInvalidArgument)
		return
	}

	status, err := s.admin.BanUser(c.Request.Context(), caller(c), req.UID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (s *Server) ensureChannels(c *gin.Context) {
	status, err := s.admin.EnsureChannels(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

type createPlantingRequest struct {
	Species       string `json:"species"`
	Location      string `json:"location"`
	PhotoThumbURL string `json:"photoThumbUrl"`
}

// createPlanting inserts the record and publishes exactly one creation event.
// Incomplete submissions are accepted and stored; the verification pipeline
// simply leaves them unapproved.
func (s *Server) createPlanting(c *gin.Context) {
	var req createPlantingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, common.ErrInvalidArgument)
		return
	}

	ctx := c.Request.Context()
	p, err := s.rm.Plantings(s.db).Create(ctx, &models.Planting{
		UserID:        caller(c),
		Species:       req.Species,
		Location:      req.Location,
		PhotoThumbURL: req.PhotoThumbURL,
	})
	if err != nil {
		abortWith(c, err)
		return
	}

	s.bus.Publish(ctx, events.Event{Topic: events.TopicPlantingCreated, PlantingID: p.PID})

	c.JSON(http.StatusCreated, gin.H{"pid": p.PID})
}

type createCheckInRequest struct {
	PhotoThumbURL string `json:"photoThumbUrl"`
}

func (s *Server) createCheckIn(c *gin.Context) {
	var req createCheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, common.ErrInvalidArgument)
		return
	}

	ctx := c.Request.Context()
	pid := c.Param("pid")

	if _, err := s.rm.Plantings(s.db).Get(ctx, pid); err != nil {
		abortWith(c, err)
		return
	}

	ci, err := s.rm.Plantings(s.db).CreateCheckIn(ctx, &models.CheckIn{
		PlantingID:    pid,
		CheckerID:     caller(c),
		PhotoThumbURL: req.PhotoThumbURL,
	})
	if err != nil {
		abortWith(c, err)
		return
	}

	s.bus.Publish(ctx, events.Event{Topic: events.TopicCheckInCreated, CheckInID: ci.CID})

	c.JSON(http.StatusCreated, gin.H{"cid": ci.CID})
}

// objectFinalizedRequest carries the storage notification payload. The
// notification also names the bucket, but the store is bound to a single
// configured bucket, so only the object path matters here.
type objectFinalizedRequest struct {
	Name string `json:"name" binding:"required"`
}

// objectFinalized is the storage webhook: the object store calls it once per
// finalized upload and the thumbnail pipeline takes over asynchronously.
func (s *Server) objectFinalized(c *gin.Context) {
	var req objectFinalizedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, common.ErrInvalidArgument)
		return
	}

	s.bus.Publish(c.Request.Context(), events.Event{
		Topic:      events.TopicObjectFinalized,
		ObjectPath: req.Name,
	})

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (s *Server) statsDaily(c *gin.Context) {
	entries, err := s.rm.Stats(s.db).ListDaily(c.Request.Context())
	if err != nil {
		abortWith(c, err)
		return
	}

	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{"date": e.Date, "totalTrees": e.TotalTrees})
	}
	c.JSON(http.StatusOK, gin.H{"daily": out})
}

func (s *Server) getUser(c *gin.Context) {
	u, err := s.rm.Users(s.db).Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uid":            u.UID,
		"name":           u.Name,
		"role":           u.Role,
		"recruiterId":    u.RecruiterID,
		"recruits":       u.Recruits,
		"totalTrees":     u.TotalTrees,
		"serviceHours":   u.ServiceHours,
		"treesInitiated": u.TreesInitiated,
	})
}
