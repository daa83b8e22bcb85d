package dto

// AllowanceResponse is the allowance one token grants the Noah contract
type AllowanceResponse struct {
	Token      string `json:"token"`
	Amount     string `json:"amount,omitempty"`
	Authorized bool   `json:"authorized"`
	Error      string `json:"error,omitempty"`
}

// AllowanceListResponse lists allowances in request order
type AllowanceListResponse struct {
	Owner       string              `json:"owner"`
	Spender     string              `json:"spender"`
	Allowances  []AllowanceResponse `json:"allowances"`
	Missing     int                 `json:"missing"`
	AllApproved bool                `json:"all_approved"`
}
