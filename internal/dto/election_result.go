package dto

// CreateElectionResultRequest whitelists the fields accepted on creation.
type CreateElectionResultRequest struct {
	State            string   `json:"state"`
	Parties          string   `json:"parties"`
	Result           *float64 `json:"result" validate:"required"`
	CollationOfficer string   `json:"collationOfficer"`
	IsRigged         *bool    `json:"isRigged"`
	TotalLg          *float64 `json:"totalLg"`
}

// RigResultRequest carries the replacement result for a rigged record. Result is optional.
type RigResultRequest struct {
	Result *float64 `json:"result"`
}

// TotalRequest selects the party to total.
type TotalRequest struct {
	Parties string `json:"parties" form:"parties"`
}

// TotalResponse keeps the legacy key casing of the totals endpoint.
type TotalResponse struct {
	Message string  `json:"message"`
	Rigged  bool    `json:"Rigged"`
	Result  float64 `json:"result"`
}
