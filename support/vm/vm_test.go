package vm_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-bitfield"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/account"
	"github.com/filecoin-project/miner-actors/actors/builtin/exported"
	initact "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/actors/runtime/proof"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
	"github.com/filecoin-project/miner-actors/support/ipld"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
	vm "github.com/filecoin-project/miner-actors/support/vm"
)

const testSectorSize = abi.SectorSize(2048)

func TestSingletonsAreValid(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)

	assertInvariants(t, v, big.Zero())
}

func TestImplicitAccountCreation(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	balance := big.Mul(big.NewInt(100), vm.FIL)
	addrs := vm.CreateAccounts(ctx, t, v, 1, balance, 93837778)

	newKey := tutil.NewBLSAddr(t, 12345)
	_, found, err := v.GetActor(newKey)
	require.NoError(t, err)
	require.False(t, found)

	value := big.Mul(big.NewInt(7), vm.FIL)
	vm.ApplyOk(t, v, addrs[0], newKey, value, builtin.MethodSend, nil)

	act, found, err := v.GetActor(newKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, builtin.AccountActorCodeID, act.Code)
	assert.True(t, value.Equals(act.Balance))

	var st account.State
	require.NoError(t, v.GetState(newKey, &st))
	assert.Equal(t, newKey, st.Address)

	// Sends to an unknown ID address have no key to create an account from.
	unknown := tutil.NewIDAddr(t, 9999)
	vm.ApplyCode(t, v, addrs[0], unknown, value, builtin.MethodSend, nil, exitcode.SysErrInvalidReceiver)

	assertInvariants(t, v, balance)
}

func TestInsufficientFundsRollsBack(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	balance := big.Mul(big.NewInt(1), vm.FIL)
	addrs := vm.CreateAccounts(ctx, t, v, 2, balance, 93837778)

	vm.ApplyCode(t, v, addrs[0], addrs[1], big.Mul(balance, big.NewInt(2)), builtin.MethodSend, nil, exitcode.SysErrInsufficientFunds)

	from, _, err := v.GetActor(addrs[0])
	require.NoError(t, err)
	assert.True(t, balance.Equals(from.Balance))
	// The sender's sequence number is consumed even though the message failed.
	assert.Equal(t, uint64(1), from.CallSeqNum)

	assertInvariants(t, v, big.Mul(balance, big.NewInt(2)))
}

func TestCreateMinerWithIDWorker(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	balance := big.Mul(big.NewInt(100), vm.FIL)
	addrs := vm.CreateAccounts(ctx, t, v, 2, balance, 93837778)
	owner, worker := addrs[0], addrs[1]
	workerID, found := v.NormalizeAddress(worker)
	require.True(t, found)

	ret := vm.ApplyOk(t, v, owner, builtin.StoragePowerActorAddr, big.Zero(), builtin.MethodsPower.CreateMiner, &power.CreateMinerParams{
		Owner:      owner,
		Worker:     workerID,
		SectorSize: testSectorSize,
		Peer:       abi.PeerID(tutil.MakePID("miner")),
	})
	minerAddrs, ok := ret.(*power.CreateMinerReturn)
	require.True(t, ok)
	assert.Equal(t, address.Actor, minerAddrs.RobustAddress.Protocol())

	// A worker given by ID has its key looked up from the account.
	vm.ExpectInvocation{
		To:     builtin.StoragePowerActorAddr,
		Method: builtin.MethodsPower.CreateMiner,
		SubInvocations: []vm.ExpectInvocation{{
			To:     builtin.InitActorAddr,
			Method: builtin.MethodsInit.Exec,
			SubInvocations: []vm.ExpectInvocation{{
				To:     minerAddrs.IDAddress,
				Method: builtin.MethodConstructor,
				SubInvocations: []vm.ExpectInvocation{
					{To: workerID, Method: builtin.MethodsAccount.PubkeyAddress, Ret: vm.ExpectObject(&worker)},
				},
			}},
		}},
	}.Matches(t, v.LastInvocation())

	// The robust address resolves to the same actor.
	robustID, found := v.NormalizeAddress(minerAddrs.RobustAddress)
	require.True(t, found)
	assert.Equal(t, minerAddrs.IDAddress, robustID)

	var st miner.State
	require.NoError(t, v.GetState(minerAddrs.IDAddress, &st))
	assert.Equal(t, workerID, st.Info.Worker)
	assert.Nil(t, st.PoStState.ProvingPeriodStart)

	stats := v.GetCallStats()[vm.MethodKey{Code: builtin.StoragePowerActorCodeID, Method: builtin.MethodsPower.CreateMiner}]
	require.NotNil(t, stats)
	assert.Equal(t, uint64(1), stats.Calls)
	assert.Greater(t, stats.Writes, uint64(0))

	assertInvariants(t, v, big.Mul(balance, big.NewInt(2)))
}

func TestOnlyPowerCreatesMiners(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 1, vm.FIL, 93837778)

	vm.ApplyCode(t, v, addrs[0], builtin.InitActorAddr, big.Zero(), builtin.MethodsInit.Exec, &initact.ExecParams{
		CodeCID: builtin.StorageMinerActorCodeID,
	}, exitcode.ErrForbidden)

	// Nothing may construct a second singleton.
	vm.ApplyCode(t, v, addrs[0], builtin.InitActorAddr, big.Zero(), builtin.MethodsInit.Exec, &initact.ExecParams{
		CodeCID: builtin.StoragePowerActorCodeID,
	}, exitcode.ErrForbidden)
}

func TestMinerLifecycle(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	balance := big.Mul(big.NewInt(10_000), vm.FIL)
	addrs := vm.CreateAccounts(ctx, t, v, 2, balance, 93837778)
	owner, worker := addrs[0], addrs[1]
	totalBalance := big.Mul(balance, big.NewInt(2))

	ret := vm.ApplyOk(t, v, owner, builtin.StoragePowerActorAddr, big.Zero(), builtin.MethodsPower.CreateMiner, &power.CreateMinerParams{
		Owner:      owner,
		Worker:     worker,
		SectorSize: testSectorSize,
		Peer:       abi.PeerID(tutil.MakePID("miner")),
	})
	minerAddrs, ok := ret.(*power.CreateMinerReturn)
	require.True(t, ok)
	minerAddr := minerAddrs.IDAddress

	//
	// precommit
	//

	precommitEpoch := abi.ChainEpoch(200)
	expiration := precommitEpoch + 20_000
	v, err := v.WithEpoch(precommitEpoch)
	require.NoError(t, err)

	deposit := miner.PreCommitDeposit(testSectorSize, expiration-precommitEpoch)
	sectorNumber := abi.SectorNumber(100)
	vm.ApplyOk(t, v, worker, minerAddr, deposit, builtin.MethodsMiner.PreCommitSector, &miner.PreCommitSectorParams{
		SealProof:     abi.RegisteredSealProof_StackedDrg2KiBV1,
		SectorNumber:  sectorNumber,
		SealedCID:     tutil.MakeCID("sealed"),
		SealRandEpoch: precommitEpoch - 1,
		DealIDs:       nil,
		Expiration:    expiration,
	})

	minerActor, found, err := v.GetActor(minerAddr)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, deposit.Equals(minerActor.Balance))

	// Proving too soon fails without a state change.
	vm.ApplyCode(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.ProveCommitSector, &miner.ProveCommitSectorParams{
		SectorNumber: sectorNumber,
	}, exitcode.ErrIllegalArgument)

	//
	// prove commit
	//

	proveEpoch := precommitEpoch + miner.PreCommitChallengeDelay + 1
	v, err = v.WithEpoch(proveEpoch)
	require.NoError(t, err)

	// A rejected seal rolls back every change the message made.
	v.SetSyscalls(&tutil.MockSyscalls{RejectSeals: true})
	headBefore := minerActor.Head
	vm.ApplyCode(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.ProveCommitSector, &miner.ProveCommitSectorParams{
		SectorNumber: sectorNumber,
	}, exitcode.ErrIllegalArgument)
	minerActor, _, err = v.GetActor(minerAddr)
	require.NoError(t, err)
	assert.Equal(t, headBefore, minerActor.Head)
	assert.True(t, deposit.Equals(minerActor.Balance))

	v.SetSyscalls(&tutil.MockSyscalls{})
	vm.ApplyOk(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.ProveCommitSector, &miner.ProveCommitSectorParams{
		SectorNumber: sectorNumber,
	})

	vm.ExpectInvocation{
		To:     minerAddr,
		Method: builtin.MethodsMiner.ProveCommitSector,
		SubInvocations: []vm.ExpectInvocation{
			{To: builtin.StorageMarketActorAddr, Method: builtin.MethodsMarket.ComputeDataCommitment},
			{To: builtin.StorageMarketActorAddr, Method: builtin.MethodsMarket.VerifyDealsOnSectorProveCommit},
			{To: builtin.StoragePowerActorAddr, Method: builtin.MethodsPower.OnSectorProveCommit},
			{To: builtin.StoragePowerActorAddr, Method: builtin.MethodsPower.EnrollCronEvent},
			{To: builtin.StoragePowerActorAddr, Method: builtin.MethodsPower.EnrollCronEvent},
			{To: mustNormalize(t, v, worker), Method: builtin.MethodSend, Value: &deposit},
		},
	}.Matches(t, v.LastInvocation())

	minerActor, _, err = v.GetActor(minerAddr)
	require.NoError(t, err)
	assert.True(t, minerActor.Balance.IsZero(), "precommit deposit not refunded")

	var minerSt miner.State
	require.NoError(t, v.GetState(minerAddr, &minerSt))
	require.NotNil(t, minerSt.PoStState.ProvingPeriodStart)
	provingPeriodStart := proveEpoch + miner.ProvingPeriod
	assert.Equal(t, provingPeriodStart, *minerSt.PoStState.ProvingPeriodStart)

	var powerSt power.State
	require.NoError(t, v.GetState(builtin.StoragePowerActorAddr, &powerSt))
	assert.True(t, abi.NewStoragePower(int64(testSectorSize)).Equals(powerSt.TotalNetworkPower))

	assertInvariants(t, v, totalBalance)

	//
	// windowed PoSt
	//

	// Before the challenge window opens the PoSt is rejected.
	postParams := &miner.SubmitWindowedPoStParams{
		Candidates: []proof.PoStCandidate{
			{RegisteredProof: abi.RegisteredPoStProof_StackedDrgWindow2KiBV1, SectorNumber: sectorNumber, ChallengeIndex: 0},
			{RegisteredProof: abi.RegisteredPoStProof_StackedDrgWindow2KiBV1, SectorNumber: sectorNumber, ChallengeIndex: 1},
		},
		Proofs: []proof.PoStProof{{PoStProof: abi.RegisteredPoStProof_StackedDrgWindow2KiBV1, ProofBytes: []byte("proof")}},
	}
	vm.ApplyCode(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.SubmitWindowedPoSt, postParams, miner.ErrPoStTooEarly)

	v, err = v.WithEpoch(provingPeriodStart + miner.WindowedPoStChallengeDuration/2)
	require.NoError(t, err)

	// Only the worker may submit.
	vm.ApplyCode(t, v, owner, minerAddr, big.Zero(), builtin.MethodsMiner.SubmitWindowedPoSt, postParams, exitcode.ErrForbidden)

	vm.ApplyOk(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.SubmitWindowedPoSt, postParams)
	vm.ExpectInvocation{
		To:     minerAddr,
		Method: builtin.MethodsMiner.SubmitWindowedPoSt,
		SubInvocations: []vm.ExpectInvocation{
			{To: builtin.StoragePowerActorAddr, Method: builtin.MethodsPower.OnMinerWindowedPoStSuccess},
		},
	}.Matches(t, v.LastInvocation())

	require.NoError(t, v.GetState(minerAddr, &minerSt))
	nextProvingPeriodStart := provingPeriodStart + miner.ProvingPeriod
	assert.Equal(t, nextProvingPeriodStart, *minerSt.PoStState.ProvingPeriodStart)

	//
	// cron at the end of the challenge window finds the PoSt
	//

	v, err = v.WithEpoch(provingPeriodStart + miner.WindowedPoStChallengeDuration)
	require.NoError(t, err)
	vm.CronTick(t, v)

	require.NoError(t, v.GetState(minerAddr, &minerSt))
	assert.Equal(t, int64(0), minerSt.PoStState.NumConsecutiveFailures)
	assert.Equal(t, nextProvingPeriodStart, *minerSt.PoStState.ProvingPeriodStart)

	require.NoError(t, v.GetState(builtin.StoragePowerActorAddr, &powerSt))
	assert.Equal(t, v.GetEpoch(), powerSt.LastEpochTick)
	assert.True(t, abi.NewStoragePower(int64(testSectorSize)).Equals(powerSt.TotalNetworkPower))

	assertInvariants(t, v, totalBalance)

	//
	// a missed PoSt is detected by cron
	//

	v, err = v.WithEpoch(nextProvingPeriodStart + miner.WindowedPoStChallengeDuration)
	require.NoError(t, err)
	vm.CronTick(t, v)

	vm.ExpectInvocation{
		To:     builtin.CronActorAddr,
		Method: builtin.MethodsCron.EpochTick,
		SubInvocations: []vm.ExpectInvocation{{
			To:     builtin.StoragePowerActorAddr,
			Method: builtin.MethodsPower.OnEpochTickEnd,
			SubInvocations: []vm.ExpectInvocation{{
				To:     minerAddr,
				Method: builtin.MethodsMiner.OnDeferredCronEvent,
				SubInvocations: []vm.ExpectInvocation{
					{To: builtin.StoragePowerActorAddr, Method: builtin.MethodsPower.EnrollCronEvent},
					{To: builtin.StoragePowerActorAddr, Method: builtin.MethodsPower.OnMinerWindowedPoStFailure},
				},
			}},
		}},
	}.Matches(t, v.LastInvocation())

	require.NoError(t, v.GetState(minerAddr, &minerSt))
	assert.Equal(t, int64(1), minerSt.PoStState.NumConsecutiveFailures)
	assert.Equal(t, nextProvingPeriodStart+miner.ProvingPeriod, *minerSt.PoStState.ProvingPeriodStart)

	require.NoError(t, v.GetState(builtin.StoragePowerActorAddr, &powerSt))
	assert.True(t, powerSt.TotalNetworkPower.IsZero())
	faulty, err := powerSt.HasDetectedFault(v.Store(), minerAddr)
	require.NoError(t, err)
	assert.True(t, faulty)

	claim, found, err := powerSt.GetClaim(v.Store(), minerAddr)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, abi.NewStoragePower(int64(testSectorSize)).Equals(claim.Power))

	assertInvariants(t, v, totalBalance)
}

func TestExtendFaultySectorKeepsClaim(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	balance := big.Mul(big.NewInt(10_000), vm.FIL)
	addrs := vm.CreateAccounts(ctx, t, v, 2, balance, 93837778)
	owner, worker := addrs[0], addrs[1]
	totalBalance := big.Mul(balance, big.NewInt(2))
	minerAddr := createMiner(t, v, owner, worker)

	precommitEpoch := abi.ChainEpoch(200)
	expiration := precommitEpoch + 20_000
	v, err := v.WithEpoch(precommitEpoch)
	require.NoError(t, err)
	preCommit(t, v, worker, minerAddr, 100, expiration)

	proveEpoch := precommitEpoch + miner.PreCommitChallengeDelay + 1
	v, err = v.WithEpoch(proveEpoch)
	require.NoError(t, err)
	vm.ApplyOk(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.ProveCommitSector, &miner.ProveCommitSectorParams{SectorNumber: 100})
	sectorPower := abi.NewStoragePower(int64(testSectorSize))
	assertClaim(t, v, minerAddr, sectorPower, power.PledgeForWeight(&power.SectorStorageWeightDesc{
		SectorSize: testSectorSize,
		Duration:   expiration - proveEpoch,
		DealWeight: big.Zero(),
	}))

	declareEpoch := proveEpoch + 1
	v, err = v.WithEpoch(declareEpoch)
	require.NoError(t, err)
	vm.ApplyOk(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.DeclareTemporaryFaults, &miner.DeclareTemporaryFaultsParams{
		Sectors:  bitfield.NewFromSet([]uint64{100}),
		Duration: 100,
	})
	begin := declareEpoch + miner.DeclaredFaultEffectiveDelay

	v = vm.AdvanceTillEpoch(t, v, begin)
	assertClaim(t, v, minerAddr, big.Zero(), big.Zero())

	newExpiration := expiration + 1000
	vm.ApplyOk(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.ExtendSectorExpiration, &miner.ExtendSectorExpirationParams{
		SectorNumber:  100,
		NewExpiration: newExpiration,
	})
	assertClaim(t, v, minerAddr, big.Zero(), big.Zero())
	assertInvariants(t, v, totalBalance)

	v = vm.AdvanceTillEpoch(t, v, begin+100)
	assertClaim(t, v, minerAddr, sectorPower, power.PledgeForWeight(&power.SectorStorageWeightDesc{
		SectorSize: testSectorSize,
		Duration:   newExpiration - proveEpoch,
		DealWeight: big.Zero(),
	}))

	var minerSt miner.State
	require.NoError(t, v.GetState(minerAddr, &minerSt))
	faulty, err := minerSt.IsFaulty(100)
	require.NoError(t, err)
	assert.False(t, faulty)
	assertInvariants(t, v, totalBalance)
}

func TestExpiredPrecommitEventSparesReusedSectorNumber(t *testing.T) {
	ctx := context.Background()
	maxSeal := abi.ChainEpoch(50)
	registry := exported.NewRegistry(append(exported.BuiltinActors(), miner.Actor{
		SealDurations: miner.NewSealDurationTable(map[abi.RegisteredSealProof]abi.ChainEpoch{
			abi.RegisteredSealProof_StackedDrg2KiBV1: maxSeal,
		}),
	})...)
	v := vm.NewVMWithSingletonsForRegistry(ctx, t, registry)
	balance := big.Mul(big.NewInt(10_000), vm.FIL)
	addrs := vm.CreateAccounts(ctx, t, v, 2, balance, 93837778)
	owner, worker := addrs[0], addrs[1]
	totalBalance := big.Mul(balance, big.NewInt(2))
	minerAddr := createMiner(t, v, owner, worker)

	// The first precommit's expiry event is enrolled for epoch 251.
	v, err := v.WithEpoch(200)
	require.NoError(t, err)
	preCommit(t, v, worker, minerAddr, 100, 20_000)
	v, err = v.WithEpoch(202)
	require.NoError(t, err)
	vm.ApplyOk(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.ProveCommitSector, &miner.ProveCommitSectorParams{SectorNumber: 100})
	v, err = v.WithEpoch(203)
	require.NoError(t, err)
	vm.ApplyOk(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.TerminateSectors, &miner.TerminateSectorsParams{Sectors: sectorSetPtr(100)})

	secondEpoch := abi.ChainEpoch(240)
	v, err = v.WithEpoch(secondEpoch)
	require.NoError(t, err)
	deposit := preCommit(t, v, worker, minerAddr, 100, 20_000)

	v = vm.AdvanceTillEpoch(t, v, 253)
	var minerSt miner.State
	require.NoError(t, v.GetState(minerAddr, &minerSt))
	pending, err := minerSt.HasPrecommittedSector(v.Store(), 100)
	require.NoError(t, err)
	assert.True(t, pending)
	minerActor, _, err := v.GetActor(minerAddr)
	require.NoError(t, err)
	assert.True(t, deposit.Equals(minerActor.Balance))

	// A proof after the seal window is rejected and the precommit's own expiry burns the deposit.
	v, err = v.WithEpoch(secondEpoch + maxSeal + 1)
	require.NoError(t, err)
	vm.ApplyCode(t, v, worker, minerAddr, big.Zero(), builtin.MethodsMiner.ProveCommitSector,
		&miner.ProveCommitSectorParams{SectorNumber: 100}, exitcode.ErrIllegalArgument)
	vm.CronTick(t, v)
	require.NoError(t, v.GetState(minerAddr, &minerSt))
	pending, err = minerSt.HasPrecommittedSector(v.Store(), 100)
	require.NoError(t, err)
	assert.False(t, pending)
	burnt, _, err := v.GetActor(builtin.BurntFundsActorAddr)
	require.NoError(t, err)
	assert.True(t, deposit.Equals(burnt.Balance))
	assertInvariants(t, v, totalBalance)
}

func TestSystemActorRejectsCalls(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	addrs := vm.CreateAccounts(ctx, t, v, 1, vm.FIL, 93837778)

	// The system actor exports only its constructor, which only the system may call.
	vm.ApplyCode(t, v, addrs[0], builtin.SystemActorAddr, big.Zero(), builtin.MethodConstructor, nil, exitcode.ErrForbidden)
	vm.ApplyCode(t, v, addrs[0], builtin.SystemActorAddr, big.Zero(), abi.MethodNum(99), nil, exitcode.SysErrInvalidMethod)
}

func TestStoreMetricsFeedCallStats(t *testing.T) {
	ctx := context.Background()
	v := vm.NewVMWithSingletons(ctx, t)
	source, ok := v.GetStatsSource().(*ipld.MetricsBlockStore)
	require.True(t, ok)

	writes := source.WriteCount()
	vm.CreateAccounts(ctx, t, v, 3, vm.FIL, 1)
	assert.Greater(t, source.WriteCount(), writes)
}

func TestStateSurvivesCARExport(t *testing.T) {
	ctx := context.Background()
	blocks := ipld.NewBlockStoreInMemory()
	v := vm.NewVMWithSingletonsOnBlockStore(ctx, t, blocks)
	balance := big.Mul(big.NewInt(100), vm.FIL)
	addrs := vm.CreateAccounts(ctx, t, v, 2, balance, 4242)

	ret := vm.ApplyOk(t, v, addrs[0], builtin.StoragePowerActorAddr, big.Zero(), builtin.MethodsPower.CreateMiner, &power.CreateMinerParams{
		Owner:      addrs[0],
		Worker:     addrs[0],
		SectorSize: testSectorSize,
		Peer:       abi.PeerID(tutil.MakePID("exported")),
	})
	minerAddrs, ok := ret.(*power.CreateMinerReturn)
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, ipld.ExportCAR(ctx, blocks, v.StateRoot(), &buf))

	imported := ipld.NewBlockStoreInMemory()
	root, err := ipld.ImportCAR(imported, &buf)
	require.NoError(t, err)
	assert.Equal(t, v.StateRoot(), root)
	assert.Less(t, imported.Len(), blocks.Len())

	v2, err := vm.NewVMAtEpoch(ctx, exported.DefaultRegistry(), adt.WrapBlockStore(ctx, imported), root, v.GetEpoch())
	require.NoError(t, err)
	total := big.Mul(balance, big.NewInt(2))
	assertInvariants(t, v2, total)

	var st miner.State
	require.NoError(t, v2.GetState(minerAddrs.IDAddress, &st))
	assert.Equal(t, testSectorSize, st.Info.SectorSize)

	// the imported state executes messages like the original
	vm.ApplyOk(t, v2, addrs[0], addrs[1], vm.FIL, builtin.MethodSend, nil)
	assertInvariants(t, v2, total)
}

func createMiner(t *testing.T, v *vm.VM, owner, worker address.Address) address.Address {
	ret := vm.ApplyOk(t, v, owner, builtin.StoragePowerActorAddr, big.Zero(), builtin.MethodsPower.CreateMiner, &power.CreateMinerParams{
		Owner:      owner,
		Worker:     worker,
		SectorSize: testSectorSize,
		Peer:       abi.PeerID(tutil.MakePID("miner")),
	})
	minerAddrs, ok := ret.(*power.CreateMinerReturn)
	require.True(t, ok)
	return minerAddrs.IDAddress
}

// Precommits a sector at the VM's epoch, paying the exact deposit, and returns the deposit.
func preCommit(t *testing.T, v *vm.VM, worker, minerAddr address.Address, sectorNo abi.SectorNumber, expiration abi.ChainEpoch) abi.TokenAmount {
	deposit := miner.PreCommitDeposit(testSectorSize, expiration-v.GetEpoch())
	vm.ApplyOk(t, v, worker, minerAddr, deposit, builtin.MethodsMiner.PreCommitSector, &miner.PreCommitSectorParams{
		SealProof:     abi.RegisteredSealProof_StackedDrg2KiBV1,
		SectorNumber:  sectorNo,
		SealedCID:     tutil.MakeCID("sealed"),
		SealRandEpoch: v.GetEpoch() - 1,
		Expiration:    expiration,
	})
	return deposit
}

func assertClaim(t *testing.T, v *vm.VM, minerAddr address.Address, expectedPower abi.StoragePower, expectedPledge abi.TokenAmount) {
	var powerSt power.State
	require.NoError(t, v.GetState(builtin.StoragePowerActorAddr, &powerSt))
	claim, found, err := powerSt.GetClaim(v.Store(), minerAddr)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, expectedPower.Equals(claim.Power), "power %v, expected %v", claim.Power, expectedPower)
	assert.True(t, expectedPledge.Equals(claim.Pledge), "pledge %v, expected %v", claim.Pledge, expectedPledge)
}

func sectorSetPtr(sectorNos ...uint64) *bitfield.BitField {
	bf := bitfield.NewFromSet(sectorNos)
	return &bf
}

func mustNormalize(t *testing.T, v *vm.VM, a address.Address) address.Address {
	id, found := v.NormalizeAddress(a)
	require.True(t, found, "no id for %v", a)
	return id
}

func assertInvariants(t *testing.T, v *vm.VM, expectedBalance abi.TokenAmount) {
	acc, err := v.CheckStateInvariants(expectedBalance)
	require.NoError(t, err)
	assert.True(t, acc.IsEmpty(), strings.Join(acc.Messages(), "\n"))
}
