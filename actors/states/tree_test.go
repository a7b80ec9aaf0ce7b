package states_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/states"
	"github.com/filecoin-project/miner-actors/support/ipld"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

func BenchmarkStateTreeSet(b *testing.B) {
	store := ipld.NewADTStore(context.Background())
	st, err := states.NewTree(store)
	require.NoError(b, err)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		a, err := address.NewIDAddress(uint64(i))
		if err != nil {
			b.Fatal(err)
		}
		err = st.SetActor(a, &states.Actor{
			Code:       builtin.StorageMinerActorCodeID,
			Head:       builtin.AccountActorCodeID,
			CallSeqNum: uint64(i),
			Balance:    big.NewInt(1258812523),
		})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkStateTree10kGetActor(b *testing.B) {
	store := ipld.NewADTStore(context.Background())
	st, err := states.NewTree(store)
	require.NoError(b, err)

	for i := 0; i < 10000; i++ {
		a, err := address.NewIDAddress(uint64(i))
		if err != nil {
			b.Fatal(err)
		}
		err = st.SetActor(a, &states.Actor{
			Code:       builtin.StorageMinerActorCodeID,
			Head:       builtin.AccountActorCodeID,
			CallSeqNum: uint64(i),
			Balance:    big.NewIntUnsigned(1258812523 + uint64(i)),
		})
		if err != nil {
			b.Fatal(err)
		}
	}

	_, err = st.Flush()
	require.NoError(b, err)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		a, err := address.NewIDAddress(uint64(i % 10000))
		if err != nil {
			b.Fatal(err)
		}
		_, found, err := st.GetActor(a)
		if !found || err != nil {
			b.Fatal(err)
		}
	}
}

func TestSetCache(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	st, err := states.NewTree(store)
	require.NoError(t, err)

	a := tutil.NewIDAddr(t, 222)
	act := &states.Actor{
		Code:       builtin.StorageMinerActorCodeID,
		Head:       builtin.AccountActorCodeID,
		CallSeqNum: 0,
		Balance:    big.NewInt(0),
	}
	require.NoError(t, st.SetActor(a, act))

	act.CallSeqNum = 1

	outact, found, err := st.GetActor(a)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(0), outact.CallSeqNum, "nonce should not have updated")
}

func TestTreeRoundTrip(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	st, err := states.NewTree(store)
	require.NoError(t, err)

	expected := map[address.Address]int64{}
	for i := uint64(100); i < 150; i++ {
		a := tutil.NewIDAddr(t, i)
		expected[a] = int64(10000 + i)
		require.NoError(t, st.SetActor(a, &states.Actor{
			Code:       builtin.AccountActorCodeID,
			Head:       builtin.AccountActorCodeID,
			CallSeqNum: i,
			Balance:    big.NewInt(int64(10000 + i)),
		}))
	}

	root, err := st.Flush()
	require.NoError(t, err)

	loaded, err := states.LoadTree(store, root)
	require.NoError(t, err)

	seen := 0
	err = loaded.ForEach(func(a address.Address, actor *states.Actor) error {
		bal, ok := expected[a]
		require.True(t, ok, "unexpected actor %v", a)
		assert.True(t, big.NewInt(bal).Equals(actor.Balance))
		assert.True(t, actor.Code.Equals(builtin.AccountActorCodeID))
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, len(expected), seen)

	keys := 0
	require.NoError(t, loaded.ForEachKey(func(a address.Address) error {
		keys++
		return nil
	}))
	assert.Equal(t, len(expected), keys)

	// Identical content produces the identical root.
	other, err := states.NewTree(store)
	require.NoError(t, err)
	for a, bal := range expected {
		id, err := address.IDFromAddress(a)
		require.NoError(t, err)
		require.NoError(t, other.SetActor(a, &states.Actor{
			Code:       builtin.AccountActorCodeID,
			Head:       builtin.AccountActorCodeID,
			CallSeqNum: id,
			Balance:    big.NewInt(bal),
		}))
	}
	otherRoot, err := other.Flush()
	require.NoError(t, err)
	assert.Equal(t, root, otherRoot)
}

func TestDeleteActor(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	st, err := states.NewTree(store)
	require.NoError(t, err)

	a := tutil.NewIDAddr(t, 1000)
	require.NoError(t, st.SetActor(a, &states.Actor{
		Code:    builtin.StorageMinerActorCodeID,
		Head:    builtin.StorageMinerActorCodeID,
		Balance: big.Zero(),
	}))

	require.NoError(t, st.DeleteActor(a))
	_, found, err := st.GetActor(a)
	require.NoError(t, err)
	assert.False(t, found)

	err = st.DeleteActor(a)
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, states.ErrActorNotFound))
}

func TestNonIDAddressRejected(t *testing.T) {
	store := ipld.NewADTStore(context.Background())
	st, err := states.NewTree(store)
	require.NoError(t, err)

	key := tutil.NewBLSAddr(t, 1)
	_, _, err = st.GetActor(key)
	assert.Error(t, err)
	assert.Error(t, st.SetActor(key, &states.Actor{Balance: big.Zero()}))
	assert.Error(t, st.DeleteActor(key))
}
