package response_models

import "time"

type TurnKind string

const (
	TurnKindQuery    TurnKind = "query"
	TurnKindFollowup TurnKind = "followup"
)

// ConversationTurn is either an original query (Meeting + Response) or a
// follow-up (Question + Response).
type ConversationTurn struct {
	Kind      TurnKind         `json:"type"`
	Meeting   *MeetingSummary  `json:"meeting,omitempty"`
	Venues    []VenueCandidate `json:"venues,omitempty"`
	Question  string           `json:"question,omitempty"`
	Response  string           `json:"response"`
	CreatedAt time.Time        `json:"created_at"`
}

type SessionInfo struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type FollowupAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type CredentialStatus struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	Remediation string `json:"remediation,omitempty"`
}
