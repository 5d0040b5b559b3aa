package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"meetup/internal/models/response_models"
	mem "meetup/pkg/memcache"
	"meetup/pkg/utils"
)

type SessionServiceInterface interface {
	Start() (*response_models.SessionInfo, error)
	// Resolve validates a session token and returns the live session id.
	Resolve(token string) (string, error)
	RecordQuery(sessionID string, result *response_models.RecommendationResult) error
	RecordFollowup(sessionID, question, answer string) error
	History(sessionID string) ([]response_models.ConversationTurn, error)
	LatestContext(sessionID string) (string, error)
	LastVenues(sessionID string) ([]response_models.VenueCandidate, error)
	LastQuery(sessionID string) (*response_models.ConversationTurn, error)
	End(sessionID string) error
}

type SessionService struct {
	store  mem.SessionStore[response_models.ConversationTurn]
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger
}

func NewSessionService(store mem.SessionStore[response_models.ConversationTurn], secret []byte, ttl time.Duration, log *zap.Logger) *SessionService {
	return &SessionService{
		store:  store,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		log:    log.Named("session"),
	}
}

func (s *SessionService) Start() (*response_models.SessionInfo, error) {
	id := uuid.NewString()
	token, expiresAt, err := utils.CreateSessionToken(s.secret, id, s.ttl)
	if err != nil {
		return nil, err
	}
	s.store.Create(id, s.ttl)
	s.log.Info("session started", zap.String("session_id", id))
	return &response_models.SessionInfo{SessionID: id, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *SessionService) Resolve(token string) (string, error) {
	claims, err := utils.ValidateSessionToken(s.secret, token)
	if err != nil {
		return "", err
	}
	if _, ok := s.store.Snapshot(claims.SessionID); !ok {
		return "", utils.ErrSessionNotFound
	}
	return claims.SessionID, nil
}

func (s *SessionService) RecordQuery(sessionID string, result *response_models.RecommendationResult) error {
	meeting := result.Meeting
	venues := lo.Map(result.Recommendations, func(rec response_models.RankedRecommendation, _ int) response_models.VenueCandidate {
		return rec.Venue
	})
	return s.append(sessionID, response_models.ConversationTurn{
		Kind:      response_models.TurnKindQuery,
		Meeting:   &meeting,
		Venues:    venues,
		Response:  result.Document,
		CreatedAt: s.now(),
	})
}

func (s *SessionService) RecordFollowup(sessionID, question, answer string) error {
	return s.append(sessionID, response_models.ConversationTurn{
		Kind:      response_models.TurnKindFollowup,
		Question:  question,
		Response:  answer,
		CreatedAt: s.now(),
	})
}

func (s *SessionService) append(sessionID string, turn response_models.ConversationTurn) error {
	if !s.store.Append(sessionID, turn) {
		return utils.ErrSessionNotFound
	}
	return nil
}

func (s *SessionService) History(sessionID string) ([]response_models.ConversationTurn, error) {
	turns, ok := s.store.Snapshot(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	out := make([]response_models.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *SessionService) latestQuery(sessionID string) (*response_models.ConversationTurn, error) {
	turns, ok := s.store.Snapshot(sessionID)
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Kind == response_models.TurnKindQuery && turns[i].Meeting != nil {
			turn := turns[i]
			return &turn, nil
		}
	}
	return nil, nil
}

// LatestContext renders the most recent query turn for the follow-up
// responder. It is empty when the session has no recommendations yet.
func (s *SessionService) LatestContext(sessionID string) (string, error) {
	turn, err := s.latestQuery(sessionID)
	if err != nil || turn == nil {
		return "", err
	}
	return RenderContext(*turn.Meeting, turn.Response), nil
}

func (s *SessionService) LastVenues(sessionID string) ([]response_models.VenueCandidate, error) {
	turn, err := s.LastQuery(sessionID)
	if err != nil {
		return nil, err
	}
	return turn.Venues, nil
}

// LastQuery returns the most recent original-query turn, or
// ErrNoRecommendations if there is none.
func (s *SessionService) LastQuery(sessionID string) (*response_models.ConversationTurn, error) {
	turn, err := s.latestQuery(sessionID)
	if err != nil {
		return nil, err
	}
	if turn == nil {
		return nil, utils.ErrNoRecommendations
	}
	return turn, nil
}

func (s *SessionService) End(sessionID string) error {
	if !s.store.Delete(sessionID) {
		return utils.ErrSessionNotFound
	}
	s.log.Info("session ended", zap.String("session_id", sessionID))
	return nil
}
