package edma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionChannelsReserveCompletionCodes(t *testing.T) {
	own := newOwnedResources(64, 128)

	err := own.apply(PartitionEntry{
		Type: ResourceDMAChannel, Start: 8, End: 23,
	}, 64, 128)

	require.NoError(t, err)
	for i := uint32(0); i < 64; i++ {
		inRange := i >= 8 && i <= 23
		assert.Equal(t, inRange, own.Channels.Test(i), "channel %d", i)
		assert.Equal(t, inRange, own.TCCs.Test(i), "tcc %d", i)
	}
	assert.False(t, own.ParamSets.Test(8))
}

func TestPartitionParamSets(t *testing.T) {
	own := newOwnedResources(64, 128)

	err := own.apply(PartitionEntry{
		Type: ResourceParamSet, Start: 0, End: 127,
	}, 64, 128)

	require.NoError(t, err)
	assert.True(t, own.ParamSets.Test(0))
	assert.True(t, own.ParamSets.Test(127))
	assert.False(t, own.Channels.Test(0))
}

func TestPartitionRejectsMalformedEntries(t *testing.T) {
	own := newOwnedResources(16, 32)

	tests := []struct {
		name string
		e    PartitionEntry
	}{
		{"inverted channel range",
			PartitionEntry{Type: ResourceDMAChannel, Start: 5, End: 2}},
		{"channel range past the pool",
			PartitionEntry{Type: ResourceDMAChannel, Start: 0, End: 16}},
		{"PaRAM range past the pool",
			PartitionEntry{Type: ResourceParamSet, Start: 30, End: 32}},
		{"unknown resource type",
			PartitionEntry{Type: ResourceType(9), Start: 0, End: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, own.apply(tt.e, 16, 32), ErrInvalidArg)
		})
	}
}
