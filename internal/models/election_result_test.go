package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewElectionResultDefaultsNotRigged(t *testing.T) {
	r := NewElectionResult("Lagos", "PartyA", 100, "X")
	assert.False(t, r.IsRigged)
	assert.True(t, r.ID.IsZero())
	assert.Nil(t, r.TotalLg)
}

func TestFoldPartyTotal(t *testing.T) {
	records := []ElectionResult{
		{Parties: "PartyA", Result: 100, IsRigged: false},
		{Parties: "PartyA", Result: 50, IsRigged: true},
	}
	total := FoldPartyTotal("PartyA", records)
	assert.Equal(t, 150.0, total.Result)
	assert.True(t, total.Rigged)
	assert.Equal(t, 2, total.Records)

	records[1].IsRigged = false
	assert.False(t, FoldPartyTotal("PartyA", records).Rigged)
}

func TestFoldPartyTotalEmpty(t *testing.T) {
	total := FoldPartyTotal("Nobody", nil)
	assert.Equal(t, PartyTotal{Parties: "Nobody"}, total)
}

func TestFoldPartyTotalNamesFromRecords(t *testing.T) {
	records := []ElectionResult{{Parties: "PartyA", Result: 3}}
	assert.Equal(t, "PartyA", FoldPartyTotal("ignored", records).Parties)
}
