package miner_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/assert"
	"github.com/xorcare/golden"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
)

func TestPrecommitDepositTable(t *testing.T) {
	sizes := []abi.SectorSize{2 << 10, 8 << 20, 512 << 20, 32 << 30, 64 << 30}
	durations := []abi.ChainEpoch{1, builtin.EpochsInDay, 180 * builtin.EpochsInDay, 540 * builtin.EpochsInDay}

	b := &bytes.Buffer{}
	b.WriteString("size, duration, deposit\n")
	for _, size := range sizes {
		for _, duration := range durations {
			deposit := miner.PreCommitDeposit(size, duration)
			fmt.Fprintf(b, "%d,%d,%s\n", uint64(size), int64(duration), deposit.Int)
		}
	}

	golden.Assert(t, b.Bytes())
}

func TestSealDurations(t *testing.T) {
	t.Run("defaults cover every registered seal proof", func(t *testing.T) {
		for _, proof := range []abi.RegisteredSealProof{
			abi.RegisteredSealProof_StackedDrg2KiBV1,
			abi.RegisteredSealProof_StackedDrg32GiBV1_1,
			abi.RegisteredSealProof_StackedDrg64GiBV1,
		} {
			d, ok := miner.MaxSealDuration(proof)
			assert.True(t, ok)
			assert.Equal(t, abi.ChainEpoch(10000), d)
		}
	})

	t.Run("table is copied at construction", func(t *testing.T) {
		durations := map[abi.RegisteredSealProof]abi.ChainEpoch{
			abi.RegisteredSealProof_StackedDrg2KiBV1: 7,
		}
		table := miner.NewSealDurationTable(durations)
		durations[abi.RegisteredSealProof_StackedDrg2KiBV1] = 9
		durations[abi.RegisteredSealProof_StackedDrg8MiBV1] = 9

		d, ok := table.MaxSealDuration(abi.RegisteredSealProof_StackedDrg2KiBV1)
		assert.True(t, ok)
		assert.Equal(t, abi.ChainEpoch(7), d)
		_, ok = table.MaxSealDuration(abi.RegisteredSealProof_StackedDrg8MiBV1)
		assert.False(t, ok)

		// The default table is untouched.
		d, ok = miner.MaxSealDuration(abi.RegisteredSealProof_StackedDrg2KiBV1)
		assert.True(t, ok)
		assert.Equal(t, abi.ChainEpoch(10000), d)
	})
}
