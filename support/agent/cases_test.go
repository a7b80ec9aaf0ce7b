package agent_test

import (
	"context"
	"strings"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/support/agent"
	"github.com/filecoin-project/miner-actors/support/vm"
)

func TestCreate20Miners(t *testing.T) {
	ctx := context.Background()
	initialBalance := big.Mul(big.NewInt(1000), vm.FIL)
	startingBalance := big.Mul(big.NewInt(100), vm.FIL)
	minerCount := 20

	sim := agent.NewSim(ctx, t, agent.SimConfig{
		AccountCount:          minerCount,
		AccountInitialBalance: initialBalance,
		Seed:                  42,
	})
	sim.Agents = append(sim.Agents, agent.NewMinerGenerator(sim.Accounts, agent.MinerAgentConfig{
		PrecommitRate:   0.1,
		ProofType:       abi.RegisteredSealProof_StackedDrg32GiBV1,
		StartingBalance: startingBalance,
	}, 1.0, 42))

	for i := 0; i < minerCount*2; i++ {
		require.NoError(t, sim.Tick())
	}

	miners := sim.Miners()
	assert.Equal(t, minerCount, len(miners))

	var pwrSt power.State
	require.NoError(t, sim.GetState(builtin.StoragePowerActorAddr, &pwrSt))
	assert.Equal(t, int64(minerCount), pwrSt.MinerCount)

	for _, m := range miners {
		actor, found, err := sim.GetVM().GetActor(m.IDAddress)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, builtin.StorageMinerActorCodeID, actor.Code)

		var st miner.State
		require.NoError(t, sim.GetState(m.IDAddress, &st))
		assert.Equal(t, abi.SectorSize(32<<30), st.Info.SectorSize)
	}

	acc, err := sim.CheckInvariants()
	require.NoError(t, err)
	assert.True(t, acc.IsEmpty(), strings.Join(acc.Messages(), "\n"))
}

func TestCommitPowerAndCheckInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("runs several proving periods")
	}
	ctx := context.Background()
	initialBalance := big.Mul(big.NewInt(1000), vm.FIL)
	minerCount := 3

	sim := agent.NewSim(ctx, t, agent.SimConfig{
		AccountCount:          minerCount,
		AccountInitialBalance: initialBalance,
		Seed:                  7,
	})
	sim.Agents = append(sim.Agents, agent.NewMinerGenerator(sim.Accounts, agent.MinerAgentConfig{
		PrecommitRate:   0.05,
		ProofType:       abi.RegisteredSealProof_StackedDrg2KiBV1,
		StartingBalance: big.Zero(),
		FaultRate:       0.0005,
		MaxFaultLength:  100,
	}, 1.0, 7))

	cumulativeStats := make(vm.StatsByCall)
	end := 3*miner.ProvingPeriod + 10
	for sim.GetEpoch() < end {
		require.NoError(t, sim.Tick())

		if sim.GetEpoch()%500 == 0 {
			acc, err := sim.CheckInvariants()
			require.NoError(t, err)
			require.True(t, acc.IsEmpty(), strings.Join(acc.Messages(), "\n"))
		}

		for method, stats := range sim.GetCallStats() {
			cumulativeStats.MergeStats(method.Code, method.Method, stats)
		}
	}

	var pwrSt power.State
	require.NoError(t, sim.GetState(builtin.StoragePowerActorAddr, &pwrSt))
	assert.True(t, pwrSt.TotalNetworkPower.GreaterThan(big.Zero()))

	committed := 0
	for _, m := range sim.Miners() {
		committed += m.LiveSectorCount() + m.FaultySectorCount()

		// agents never miss a window, so no miner has a recorded failure
		var st miner.State
		require.NoError(t, sim.GetState(m.IDAddress, &st))
		assert.Equal(t, int64(0), st.PoStState.NumConsecutiveFailures)
	}
	assert.Greater(t, committed, 0)

	proveCommits, ok := cumulativeStats[vm.MethodKey{Code: builtin.StorageMinerActorCodeID, Method: builtin.MethodsMiner.ProveCommitSector}]
	require.True(t, ok)
	assert.Greater(t, proveCommits.Calls, uint64(0))
	assert.Greater(t, proveCommits.Writes, uint64(0))
}
