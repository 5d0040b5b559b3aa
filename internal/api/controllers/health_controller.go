package controllers

import (
	"github.com/gin-gonic/gin"

	"meetup/internal/config"
	"meetup/internal/models/response_models"
	"meetup/pkg/utils"
)

type HealthController struct {
	cfg *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

// GET /health/config
func (h *HealthController) ConfigHandler(c *gin.Context) {
	reports := h.cfg.Credentials()
	out := make([]response_models.CredentialStatus, len(reports))
	ready := true
	for i, r := range reports {
		out[i] = response_models.CredentialStatus{Name: r.Name, Status: r.Status, Remediation: r.Remediation}
		if r.Status != config.CredentialOK {
			ready = false
		}
	}

	msg := "All credentials configured"
	if !ready {
		msg = "Some features are disabled until credentials are fixed"
	}
	utils.RespondSuccess(c, out, msg)
}
