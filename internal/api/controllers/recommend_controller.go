package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"meetup/internal/models/request_models"
	"meetup/internal/models/response_models"
	"meetup/internal/services"
	"meetup/pkg/middleware"
	"meetup/pkg/utils"
)

type RecommendController struct {
	recommendService services.RecommendServiceInterface
	followupService  services.FollowupServiceInterface
	sessionService   services.SessionServiceInterface
	log              *zap.Logger
}

func NewRecommendController(
	recommendService services.RecommendServiceInterface,
	followupService services.FollowupServiceInterface,
	sessionService services.SessionServiceInterface,
	log *zap.Logger,
) *RecommendController {
	return &RecommendController{
		recommendService: recommendService,
		followupService:  followupService,
		sessionService:   sessionService,
		log:              log,
	}
}

// POST /recommendations
func (r *RecommendController) RecommendHandler(c *gin.Context) {
	var req request_models.MeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.ErrorPrefix+"Invalid request format: "+err.Error())
		return
	}

	result, err := r.recommendService.Recommend(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, r.log, err)
		return
	}

	sessionID := c.GetString(middleware.SessionIDKey)
	if err := r.sessionService.RecordQuery(sessionID, result); err != nil {
		utils.HandleServiceError(c, r.log, err)
		return
	}

	utils.RespondSuccess(c, result, "Recommendations ready")
}

// POST /followups
func (r *RecommendController) FollowupHandler(c *gin.Context) {
	var req request_models.FollowupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, utils.ErrorPrefix+"question is required")
		return
	}

	sessionID := c.GetString(middleware.SessionIDKey)
	priorContext, err := r.sessionService.LatestContext(sessionID)
	if err != nil {
		utils.HandleServiceError(c, r.log, err)
		return
	}

	answer := r.followupService.Answer(c.Request.Context(), req.Question, priorContext)
	if err := r.sessionService.RecordFollowup(sessionID, req.Question, answer); err != nil {
		utils.HandleServiceError(c, r.log, err)
		return
	}

	utils.RespondSuccess(c, response_models.FollowupAnswer{Question: req.Question, Answer: answer}, "Follow-up answered")
}
