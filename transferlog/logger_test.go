package transferlog_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soclab/edma/edma"
	"github.com/soclab/edma/edma/hwsim"
	"github.com/soclab/edma/recording"
	"github.com/soclab/edma/transferlog"
)

func TestLoggerRecordsTheChannelLifecycle(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	logger := transferlog.NewLogger(recording.NewWithDB(db))

	hw := hwsim.MakeBuilder().Build("CC0")
	c, err := edma.MakeBuilder().
		WithHardware(hw).
		WithAttrs(edma.Attrs{
			NumChannels:  64,
			NumParamSets: 128,
			NumRegions:   8,
			NumQueues:    2,
			Partitions: []edma.PartitionEntry{
				{Type: edma.ResourceDMAChannel, Start: 0, End: 15},
				{Type: edma.ResourceParamSet, Start: 0, End: 31},
			},
		}).
		Build("EDMA0")
	require.NoError(t, err)
	c.AcceptHook(logger)

	hw.WriteMemory(0x8000_0000, make([]byte, 64))
	require.NoError(t, c.Configure(2, edma.TransferRequest{
		Direction:   edma.DirMemToMem,
		SrcDataSize: 4,
		DstDataSize: 4,
		Blocks: []edma.Block{
			{SrcAddr: 0x8000_0000, DstAddr: 0x8800_0000, Size: 64},
		},
		Callback: func(*edma.Comp, any, uint32, edma.TransferStatus) {},
	}))
	require.NoError(t, c.Start(2))
	require.NoError(t, c.ChanRelease(2))

	logger.Flush()

	rows, err := db.Query(
		"SELECT Instance, Event, Channel, Detail FROM channel_events ORDER BY Seq;")
	require.NoError(t, err)
	defer rows.Close()

	type event struct {
		instance, name, detail string
		channel                int
	}
	var events []event
	for rows.Next() {
		var e event
		require.NoError(t,
			rows.Scan(&e.instance, &e.name, &e.channel, &e.detail))
		events = append(events, e)
	}
	require.NoError(t, rows.Err())

	var names []string
	for _, e := range events {
		assert.Equal(t, "EDMA0", e.instance)
		assert.Equal(t, 2, e.channel)
		names = append(names, e.name)
	}

	// The manual trigger completes during Start, so the completion event
	// lands between Start and the release's Stop.
	assert.Equal(t,
		[]string{"Configure", "Start", "Completion", "Stop", "Release"},
		names)

	assert.Equal(t, "MemToMem", events[0].detail)
	assert.Equal(t, "Complete", events[2].detail)
}
