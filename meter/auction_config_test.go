package meter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meterio/sealed-auction/meter"
)

func TestNewAuctionConfig(t *testing.T) {
	beneficiary := addr(0xbe)

	config, err := meter.NewAuctionConfig(100, 50, beneficiary)
	assert.Nil(t, err)
	assert.Equal(t, uint32(150), config.EndHeight())

	_, err = meter.NewAuctionConfig(100, 0, beneficiary)
	assert.NotNil(t, err)
}

func TestPhaseBoundaries(t *testing.T) {
	config, err := meter.NewAuctionConfig(100, 50, addr(0xbe))
	assert.Nil(t, err)

	tests := []struct {
		height uint32
		phase  meter.Phase
	}{
		{0, meter.PhaseNotStarted},
		{99, meter.PhaseNotStarted},
		{100, meter.PhaseNotStarted}, // start boundary is exclusive
		{101, meter.PhaseOpen},
		{149, meter.PhaseOpen},
		{150, meter.PhaseOpen}, // end boundary is inclusive
		{151, meter.PhaseClosed},
		{10000, meter.PhaseClosed},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.phase, config.PhaseAt(tt.height), "height %d", tt.height)
	}
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "NotStarted", meter.PhaseNotStarted.String())
	assert.Equal(t, "Open", meter.PhaseOpen.String())
	assert.Equal(t, "Closed", meter.PhaseClosed.String())
}
