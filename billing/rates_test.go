package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hausverwaltung-backend/models"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLatestEffective_PicksLastApplicablePerType(t *testing.T) {
	records := []RateRecord{
		{models.UtilityWater, 20.0, day("2026-01-01")},
		{models.UtilityWater, 25.0, day("2026-05-01")},
		{models.UtilityElectricity, 9.5, day("2026-03-01")},
		{models.UtilityElectricity, 10.5, day("2026-06-01")},
	}

	rates := LatestEffective(records, day("2026-07-15"))
	assert.Equal(t, 25.0, rates.Water)
	assert.Equal(t, 10.5, rates.Electricity)

	// As of April only the older records apply.
	rates = LatestEffective(records, day("2026-04-01"))
	assert.Equal(t, 20.0, rates.Water)
	assert.Equal(t, 9.5, rates.Electricity)
}

func TestLatestEffective_FutureRecordsIgnored(t *testing.T) {
	records := []RateRecord{
		{models.UtilityWater, 25.0, day("2026-09-01")},
	}
	rates := LatestEffective(records, day("2026-08-15"))
	assert.Zero(t, rates.Water)
}

func TestLatestEffective_MissingTypeDefaultsToZero(t *testing.T) {
	records := []RateRecord{
		{models.UtilityWater, 25.0, day("2026-01-01")},
	}
	rates := LatestEffective(records, day("2026-08-15"))
	assert.Equal(t, 25.0, rates.Water)
	assert.Zero(t, rates.Electricity)
}

func TestLatestEffective_SameDayLaterRecordWins(t *testing.T) {
	// Two corrections entered the same day: records are ordered
	// oldest-first by the caller, so the later one is authoritative.
	records := []RateRecord{
		{models.UtilityWater, 20.0, day("2026-05-01")},
		{models.UtilityWater, 22.0, day("2026-05-01")},
	}
	rates := LatestEffective(records, day("2026-06-01"))
	assert.Equal(t, 22.0, rates.Water)
}
