package rest

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// GetActivityQueryParams holds query parameters for GET /activity/:address
type GetActivityQueryParams struct {
	ChainID string `form:"chain_id"`
}

// GetAllowancesQueryParams holds query parameters for GET /allowances/:address
type GetAllowancesQueryParams struct {
	// Tokens accepts repeated parameters and comma separated lists
	Tokens []string `form:"tokens"`
}

// ParseGetActivityQuery parses query parameters for GET /activity/:address
func ParseGetActivityQuery(c *gin.Context) (*GetActivityQueryParams, error) {
	var params GetActivityQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.ChainID = strings.TrimSpace(params.ChainID)
	return &params, nil
}

// ParseGetAllowancesQuery parses query parameters for GET /allowances/:address
func ParseGetAllowancesQuery(c *gin.Context) (*GetAllowancesQueryParams, error) {
	var params GetAllowancesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	params.Tokens = splitList(params.Tokens)
	return &params, nil
}

func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
