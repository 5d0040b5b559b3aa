package utils

import "errors"

var (
	ErrLLMCredentialMissing   = errors.New("text generation credential not configured")
	ErrMapsCredentialMissing  = errors.New("maps credential not configured")
	ErrCredentialMalformed    = errors.New("credential malformed")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected response from text generation service")
	ErrSuggestionFailed       = errors.New("venue suggestion failed")
	ErrRecommendationFailed   = errors.New("recommendation failed")
	ErrInvalidInput           = errors.New("invalid input")
	ErrSessionNotFound        = errors.New("session not found")
	ErrInvalidSessionToken    = errors.New("invalid session token")
	ErrNoRecommendations      = errors.New("no recommendations in session")
)

