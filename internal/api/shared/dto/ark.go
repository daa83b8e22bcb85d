package dto

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/noah-protocol/noah-client/internal/domain"
)

// TokenResponse is a protected token with display metadata
type TokenResponse struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	// Balance is formatted with Decimals; "?" when it could not be read
	Balance string `json:"balance"`
}

// ArkResponse is the contract view of an owner's ark
type ArkResponse struct {
	Owner            string               `json:"owner"`
	Beneficiary      string               `json:"beneficiary"`
	Deadline         time.Time            `json:"deadline"`
	DeadlineDuration uint64               `json:"deadline_duration_seconds"`
	Duration         string               `json:"duration"`
	TimeRemaining    domain.TimeRemaining `json:"time_remaining"`
	ChainID          string               `json:"chain_id"`
	Tokens           []TokenResponse      `json:"tokens"`
}

// MapArkToDTO maps an ark and its token metadata to the API response
func MapArkToDTO(ark *domain.Ark, infos []domain.TokenInfo, chain domain.Chain, now time.Time) *ArkResponse {
	tokens := make([]TokenResponse, len(infos))
	for i, info := range infos {
		tokens[i] = TokenResponse{
			Address:  info.Address.Hex(),
			Symbol:   info.Symbol,
			Decimals: info.Decimals,
			Balance:  info.FormatBalance(),
		}
	}

	return &ArkResponse{
		Owner:            ark.Owner.Hex(),
		Beneficiary:      ark.Beneficiary.Hex(),
		Deadline:         ark.Deadline.UTC(),
		DeadlineDuration: uint64(ark.DeadlineDuration / time.Second),
		Duration:         domain.FormatDuration(ark.DeadlineDuration),
		TimeRemaining:    domain.RemainingUntil(ark.Deadline, now),
		ChainID:          chain.String(),
		Tokens:           tokens,
	}
}

func hexOrEmpty(addr *common.Address) string {
	if addr == nil {
		return ""
	}
	return addr.Hex()
}
