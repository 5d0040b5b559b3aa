package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"meetup/pkg/utils"
)

const noContextAnswer = `I don't have the context of previous venue recommendations.

Question: %s

I need the original venue recommendations to give you a specific answer about which venues would be good for your request. Could you please ask for new venue recommendations first?`

type FollowupServiceInterface interface {
	Answer(ctx context.Context, question, priorContext string) string
}

type FollowupService struct {
	llm     utils.TextGenerator
	timeout time.Duration
	log     *zap.Logger
}

func NewFollowupService(llm utils.TextGenerator, timeout time.Duration, log *zap.Logger) *FollowupService {
	return &FollowupService{
		llm:     llm,
		timeout: timeout,
		log:     log.Named("followup"),
	}
}

// Answer always returns display text. Without prior context no call is made.
func (s *FollowupService) Answer(ctx context.Context, question, priorContext string) string {
	if strings.TrimSpace(priorContext) == "" {
		return fmt.Sprintf(noContextAnswer, question)
	}
	if err := utils.GeneratorUnavailable(s.llm); err != nil {
		return utils.UserMessage(err)
	}

	text, err := generateText(ctx, s.llm, buildFollowupRequest(question, priorContext), s.timeout)
	if err != nil {
		s.log.Warn("follow-up generation failed", zap.Error(err))
		return utils.ErrorPrefix + "Error processing question: " + err.Error()
	}
	if strings.TrimSpace(text) == "" {
		return "No response received from API"
	}
	return text
}
