package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetup/internal/services"
	"meetup/pkg/middleware"
	"meetup/pkg/utils"
)

type SessionController struct {
	sessionService services.SessionServiceInterface
	geocoder       services.GeocodeService
	log            *zap.Logger
}

func NewSessionController(sessionService services.SessionServiceInterface, geocoder services.GeocodeService, log *zap.Logger) *SessionController {
	return &SessionController{
		sessionService: sessionService,
		geocoder:       geocoder,
		log:            log,
	}
}

// POST /sessions
func (s *SessionController) StartHandler(c *gin.Context) {
	info, err := s.sessionService.Start()
	if err != nil {
		utils.HandleServiceError(c, s.log, err)
		return
	}
	utils.RespondSuccess(c, info, "Session started")
}

// DELETE /sessions/current
func (s *SessionController) EndHandler(c *gin.Context) {
	if err := s.sessionService.End(c.GetString(middleware.SessionIDKey)); err != nil {
		utils.HandleServiceError(c, s.log, err)
		return
	}
	utils.RespondSuccess(c, nil, "Session ended")
}

// GET /sessions/current/history
func (s *SessionController) HistoryHandler(c *gin.Context) {
	turns, err := s.sessionService.History(c.GetString(middleware.SessionIDKey))
	if err != nil {
		utils.HandleServiceError(c, s.log, err)
		return
	}
	utils.RespondSuccess(c, turns, "")
}

// GET /sessions/current/map
func (s *SessionController) MapHandler(c *gin.Context) {
	venues, err := s.sessionService.LastVenues(c.GetString(middleware.SessionIDKey))
	if err != nil {
		utils.HandleServiceError(c, s.log, err)
		return
	}
	utils.RespondSuccess(c, s.geocoder.PinVenues(c.Request.Context(), venues), "")
}

// GET /sessions/current/calendar?rank=N
func (s *SessionController) CalendarHandler(c *gin.Context) {
	sessionID := c.GetString(middleware.SessionIDKey)
	turn, err := s.sessionService.LastQuery(sessionID)
	if err != nil {
		utils.HandleServiceError(c, s.log, err)
		return
	}

	rank, err := strconv.Atoi(c.DefaultQuery("rank", "1"))
	if err != nil || rank < 1 || rank > len(turn.Venues) {
		utils.HandleServiceError(c, s.log, fmt.Errorf("%w: rank must be between 1 and %d", utils.ErrInvalidInput, len(turn.Venues)))
		return
	}

	uid := fmt.Sprintf("%s-%d@meetup", sessionID, rank)
	invite := services.MeetingInvite(uid, *turn.Meeting, turn.Venues[rank-1], services.DefaultMeetingLength, time.Now())
	c.Header("Content-Disposition", `attachment; filename="meetup.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(invite))
}
