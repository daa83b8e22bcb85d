package dto

import (
	"time"

	"github.com/noah-protocol/noah-client/internal/domain"
)

// ActivityEventResponse is one activity feed entry
type ActivityEventResponse struct {
	Type        domain.EventType `json:"type"`
	Label       string           `json:"label"`
	Timestamp   time.Time        `json:"timestamp"`
	TxHash      string           `json:"tx_hash"`
	TxURL       string           `json:"tx_url,omitempty"`
	Details     string           `json:"details,omitempty"`
	Beneficiary string           `json:"beneficiary,omitempty"`
	Tokens      []string         `json:"tokens,omitempty"`
}

// ActivityResponse is an owner's activity feed on one chain
type ActivityResponse struct {
	Address   string                  `json:"address"`
	ChainID   string                  `json:"chain_id"`
	Events    []ActivityEventResponse `json:"events"`
	FetchedAt time.Time               `json:"fetched_at"`
	Cached    bool                    `json:"cached"`
	Stale     bool                    `json:"stale"`
}

// MapActivityToDTO maps activity events to the API response, keeping their order
func MapActivityToDTO(events []domain.ActivityEvent, chain domain.Chain) []ActivityEventResponse {
	out := make([]ActivityEventResponse, len(events))
	for i, e := range events {
		tokens := make([]string, len(e.Tokens))
		for j, t := range e.Tokens {
			tokens[j] = t.Hex()
		}
		out[i] = ActivityEventResponse{
			Type:        e.Type,
			Label:       e.Type.Label(),
			Timestamp:   e.Timestamp.UTC(),
			TxHash:      e.TxHash.Hex(),
			TxURL:       chain.TxURL(e.TxHash),
			Details:     e.Details,
			Beneficiary: hexOrEmpty(e.Beneficiary),
			Tokens:      tokens,
		}
	}
	return out
}
