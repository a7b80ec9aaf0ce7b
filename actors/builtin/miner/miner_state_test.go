package miner_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
	"github.com/filecoin-project/miner-actors/support/ipld"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

func TestSectorStorage(t *testing.T) {
	store, st := newTestState(t)

	for _, n := range []abi.SectorNumber{3, 1, 2} {
		require.NoError(t, st.PutSector(store, newSector(n, 100)))
	}
	count, err := st.SectorCount(store)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	var order []abi.SectorNumber
	require.NoError(t, st.ForEachSector(store, func(s *miner.SectorOnChainInfo) error {
		order = append(order, s.Info.SectorNumber)
		return nil
	}))
	assert.Equal(t, []abi.SectorNumber{1, 2, 3}, order)

	// The proving set is unaffected until snapshotted.
	provingCount := 0
	require.NoError(t, st.ForEachProvingSector(store, func(*miner.SectorOnChainInfo) error {
		provingCount++
		return nil
	}))
	assert.Equal(t, 0, provingCount)

	st.SnapshotProvingSet()
	require.NoError(t, st.DeleteSectors(store, 2))

	found, err := st.HasSectorNo(store, 2)
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, st.ForEachProvingSector(store, func(*miner.SectorOnChainInfo) error {
		provingCount++
		return nil
	}))
	assert.Equal(t, 3, provingCount)
}

func TestPrecommitStorage(t *testing.T) {
	store, st := newTestState(t)

	info := &miner.SectorPreCommitOnChainInfo{
		Info: miner.SectorPreCommitInfo{
			SealProof:    sealProofType,
			SectorNumber: 7,
			SealedCID:    tutil.MakeCID("commr"),
			Expiration:   100,
		},
		PreCommitDeposit: abi.NewTokenAmount(10),
		PreCommitEpoch:   1,
	}
	require.NoError(t, st.PutPrecommittedSector(store, info))

	got, found, err := st.GetPrecommittedSector(store, 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, info.Info, got.Info)

	_, found, err = st.GetPrecommittedSector(store, 8)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, st.DeletePrecommittedSectors(store, 7))
	pending, err := st.HasPrecommittedSector(store, 7)
	require.NoError(t, err)
	assert.False(t, pending)
	assert.Error(t, st.DeletePrecommittedSectors(store, 7))
}

func TestFaultSet(t *testing.T) {
	_, st := newTestState(t)

	require.NoError(t, st.AddFaults(4, 9))
	require.NoError(t, st.AddFaults(9))
	for n, expected := range map[abi.SectorNumber]bool{4: true, 9: true, 5: false} { // nolint:nomaprange
		faulty, err := st.IsFaulty(n)
		require.NoError(t, err)
		assert.Equal(t, expected, faulty, "sector %d", n)
	}

	require.NoError(t, st.RemoveFaults(4, 100))
	count, err := st.FaultSet.Count()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestChallengeWindow(t *testing.T) {
	_, st := newTestState(t)
	assert.False(t, st.InChallengeWindow(10))

	pps := abi.ChainEpoch(10)
	st.PoStState.ProvingPeriodStart = &pps
	assert.False(t, st.InChallengeWindow(10))
	assert.True(t, st.InChallengeWindow(11))
}

func TestApplyPendingWorkerKey(t *testing.T) {
	_, st := newTestState(t)
	assert.False(t, st.ApplyPendingWorkerKey(100))

	next := tutil.NewIDAddr(t, 555)
	st.Info.PendingWorkerKey = &miner.WorkerKeyChange{NewWorker: next, EffectiveAt: 10}
	assert.False(t, st.ApplyPendingWorkerKey(9))
	assert.True(t, st.ApplyPendingWorkerKey(10))
	assert.Equal(t, next, st.GetWorker())
	assert.Nil(t, st.Info.PendingWorkerKey)
}

func newTestState(t *testing.T) (adt.Store, *miner.State) {
	store := ipld.NewADTStore(context.Background())
	st, err := miner.ConstructState(store, miner.MinerInfo{
		Owner:      tutil.NewIDAddr(t, 100),
		Worker:     tutil.NewIDAddr(t, 101),
		PeerId:     abi.PeerID(tutil.MakePID("miner")),
		SectorSize: sectorSize,
	})
	require.NoError(t, err)
	return store, st
}

func newSector(n abi.SectorNumber, expiration abi.ChainEpoch) *miner.SectorOnChainInfo {
	return &miner.SectorOnChainInfo{
		Info: miner.SectorPreCommitInfo{
			SealProof:    sealProofType,
			SectorNumber: n,
			SealedCID:    tutil.MakeCID("commr"),
			Expiration:   expiration,
		},
		ActivationEpoch:   1,
		DealWeight:        big.Zero(),
		PledgeRequirement: big.Zero(),
	}
}
