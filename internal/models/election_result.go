package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ElectionResult is one collated result document.
type ElectionResult struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	State            string             `bson:"state" json:"state"`
	Parties          string             `bson:"parties" json:"parties"`
	Result           float64            `bson:"result" json:"result"`
	CollationOfficer string             `bson:"collationOfficer" json:"collationOfficer"`
	IsRigged         bool               `bson:"isRigged" json:"isRigged"`
	// TotalLg is stored and echoed but never interpreted.
	TotalLg *float64 `bson:"totalLg,omitempty" json:"totalLg,omitempty"`
}

// NewElectionResult builds a record that is not marked as rigged.
func NewElectionResult(state, parties string, result float64, collationOfficer string) *ElectionResult {
	return &ElectionResult{
		State:            state,
		Parties:          parties,
		Result:           result,
		CollationOfficer: collationOfficer,
		IsRigged:         false,
	}
}

// PartyTotal is the folded view of every record sharing a parties value.
type PartyTotal struct {
	Parties string  `json:"parties"`
	Rigged  bool    `json:"rigged"`
	Result  float64 `json:"result"`
	Records int     `json:"records"`
}

// FoldPartyTotal sums results across records. The total counts as rigged when any record is.
// The display name comes from the first record and falls back to the requested parties.
func FoldPartyTotal(parties string, records []ElectionResult) PartyTotal {
	total := PartyTotal{Parties: parties, Records: len(records)}
	if len(records) > 0 {
		total.Parties = records[0].Parties
	}
	for _, record := range records {
		total.Result += record.Result
		total.Rigged = total.Rigged || record.IsRigged
	}
	return total
}

// RigPatch is the only mutation the store accepts for an existing record.
// A nil Result leaves the stored result untouched.
type RigPatch struct {
	Result   *float64 `bson:"result,omitempty"`
	IsRigged bool     `bson:"isRigged"`
}
