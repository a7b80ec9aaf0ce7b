package vm

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/account"
	"github.com/filecoin-project/miner-actors/actors/builtin/cron"
	"github.com/filecoin-project/miner-actors/actors/builtin/exported"
	initactor "github.com/filecoin-project/miner-actors/actors/builtin/init"
	"github.com/filecoin-project/miner-actors/actors/builtin/market"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/actors/builtin/system"
	"github.com/filecoin-project/miner-actors/actors/states"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
	"github.com/filecoin-project/miner-actors/support/ipld"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

var FIL = big.NewInt(1e18)

//
// Genesis like setup
//

// Creates a new VM and initializes all singleton actors.
// Block store access is counted and attributed to the methods that caused it.
func NewVMWithSingletons(ctx context.Context, t testing.TB) *VM {
	return NewVMWithSingletonsOnBlockStore(ctx, t, ipld.NewBlockStoreInMemory())
}

// Same as NewVMWithSingletons, keeping all state in the given block store.
func NewVMWithSingletonsOnBlockStore(ctx context.Context, t testing.TB, blocks ipldcbor.IpldBlockstore) *VM {
	return newVMWithSingletons(ctx, t, exported.DefaultRegistry(), blocks)
}

// Same as NewVMWithSingletons, running the actors of the given registry.
func NewVMWithSingletonsForRegistry(ctx context.Context, t testing.TB, registry *exported.Registry) *VM {
	return newVMWithSingletons(ctx, t, registry, ipld.NewBlockStoreInMemory())
}

func newVMWithSingletons(ctx context.Context, t testing.TB, registry *exported.Registry, blocks ipldcbor.IpldBlockstore) *VM {
	bs := ipld.NewMetricsBlockStore(blocks)
	store := adt.WrapBlockStore(ctx, bs)

	vm := NewVM(ctx, registry, store)
	vm.SetStatsSource(bs)

	initializeActor(ctx, t, vm, &system.State{}, builtin.SystemActorCodeID, builtin.SystemActorAddr, big.Zero())

	initState, err := initactor.ConstructState(store, "scenarios")
	require.NoError(t, err)
	initializeActor(ctx, t, vm, initState, builtin.InitActorCodeID, builtin.InitActorAddr, big.Zero())

	cronState := cron.ConstructState(cron.BuiltInEntries())
	initializeActor(ctx, t, vm, cronState, builtin.CronActorCodeID, builtin.CronActorAddr, big.Zero())

	powerState, err := power.ConstructState(store)
	require.NoError(t, err)
	initializeActor(ctx, t, vm, powerState, builtin.StoragePowerActorCodeID, builtin.StoragePowerActorAddr, big.Zero())

	marketState, err := market.ConstructState(store)
	require.NoError(t, err)
	initializeActor(ctx, t, vm, marketState, builtin.StorageMarketActorCodeID, builtin.StorageMarketActorAddr, big.Zero())

	// burnt funds
	initializeActor(ctx, t, vm, &account.State{Address: builtin.BurntFundsActorAddr}, builtin.AccountActorCodeID, builtin.BurntFundsActorAddr, big.Zero())

	_, err = vm.checkpoint()
	require.NoError(t, err)

	return vm
}

// Creates n account actors in the VM with the given balance.
// Each account has a distinct BLS key address, registered with the init actor.
func CreateAccounts(ctx context.Context, t testing.TB, vm *VM, n int, balance abi.TokenAmount, seed int64) []address.Address {
	var initState initactor.State
	err := vm.GetState(builtin.InitActorAddr, &initState)
	require.NoError(t, err)

	addrPairs := make([]addrPair, n)
	for i := range addrPairs {
		addr := tutil.NewBLSAddr(t, seed+int64(i))
		idAddr, err := initState.MapAddressToNewID(vm.store, addr)
		require.NoError(t, err)

		addrPairs[i] = addrPair{
			pubAddr: addr,
			idAddr:  idAddr,
		}
	}
	err = vm.SetActorState(builtin.InitActorAddr, &initState)
	require.NoError(t, err)

	pubAddrs := make([]address.Address, len(addrPairs))
	for i, addrPair := range addrPairs {
		st := &account.State{Address: addrPair.pubAddr}
		initializeActor(ctx, t, vm, st, builtin.AccountActorCodeID, addrPair.idAddr, balance)
		pubAddrs[i] = addrPair.pubAddr
	}

	_, err = vm.checkpoint()
	require.NoError(t, err)
	return pubAddrs
}

func initializeActor(ctx context.Context, t testing.TB, vm *VM, state cbor.Marshaler, code cid.Cid, a address.Address, balance abi.TokenAmount) {
	stateCID, err := vm.store.Put(ctx, state)
	require.NoError(t, err)
	actor := &states.Actor{
		Head:    stateCID,
		Code:    code,
		Balance: balance,
	}
	err = vm.setActor(a, actor)
	require.NoError(t, err)
}

type addrPair struct {
	pubAddr address.Address
	idAddr  address.Address
}
