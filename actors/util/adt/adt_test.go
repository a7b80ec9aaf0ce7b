package adt_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/util/adt"
	"github.com/filecoin-project/miner-actors/support/mock"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

func TestArrayNotFound(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)
	arr, err := adt.MakeEmptyArray(store, builtin.DefaultAmtBitwidth)
	require.NoError(t, err)

	found, err := arr.Get(7, nil)
	require.NoError(t, err)
	require.False(t, found)
}

func TestArrayPop(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)
	arr, err := adt.MakeEmptyArray(store, builtin.DefaultAmtBitwidth)
	require.NoError(t, err)

	v := cbg.CborInt(5)
	require.NoError(t, arr.Set(3, &v))

	var out cbg.CborInt
	found, err := arr.Pop(3, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, v, out)

	found, err = arr.Pop(3, &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMap(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)
	addr := tutil.NewIDAddr(t, 100)

	m, err := adt.MakeEmptyMap(store, builtin.DefaultHamtBitwidth)
	require.NoError(t, err)

	t.Run("delete of absent key fails", func(t *testing.T) {
		assert.Error(t, m.Delete(abi.AddrKey(addr)))
		found, err := m.TryDelete(abi.AddrKey(addr))
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("values survive a flush", func(t *testing.T) {
		v := cbg.CborInt(42)
		require.NoError(t, m.Put(abi.AddrKey(addr), &v))
		root, err := m.Root()
		require.NoError(t, err)

		reloaded, err := adt.AsMap(store, root, builtin.DefaultHamtBitwidth)
		require.NoError(t, err)
		var out cbg.CborInt
		found, err := reloaded.Get(abi.AddrKey(addr), &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, v, out)

		keys, err := reloaded.CollectKeys()
		require.NoError(t, err)
		assert.Equal(t, []string{abi.AddrKey(addr).Key()}, keys)
	})

	t.Run("pop removes", func(t *testing.T) {
		var out cbg.CborInt
		found, err := m.Pop(abi.AddrKey(addr), &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, cbg.CborInt(42), out)

		has, err := m.Has(abi.AddrKey(addr))
		require.NoError(t, err)
		assert.False(t, has)
	})
}

func TestMultimap(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)
	mm, err := adt.MakeEmptyMultimap(store, builtin.DefaultHamtBitwidth, builtin.DefaultAmtBitwidth)
	require.NoError(t, err)

	key := abi.UIntKey(1000)
	for _, n := range []int64{3, 1, 2} {
		v := cbg.CborInt(n)
		require.NoError(t, mm.Add(key, &v))
	}

	// values come back in insertion order
	var out cbg.CborInt
	var got []int64
	require.NoError(t, mm.ForEach(key, &out, func(i int64) error {
		got = append(got, int64(out))
		return nil
	}))
	assert.Equal(t, []int64{3, 1, 2}, got)

	keys := 0
	require.NoError(t, mm.ForAll(func(k string, arr *adt.Array) error {
		keys++
		assert.Equal(t, key.Key(), k)
		assert.Equal(t, uint64(3), arr.Length())
		return nil
	}))
	assert.Equal(t, 1, keys)

	require.NoError(t, mm.RemoveAll(key))
	_, found, err := mm.Get(key)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSet(t *testing.T) {
	rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
	store := adt.AsStore(rt)
	set, err := adt.MakeEmptySet(store, builtin.DefaultHamtBitwidth)
	require.NoError(t, err)

	require.NoError(t, set.Put(abi.UIntKey(9)))
	has, err := set.Has(abi.UIntKey(9))
	require.NoError(t, err)
	assert.True(t, has)

	deleted, err := set.TryDelete(abi.UIntKey(9))
	require.NoError(t, err)
	assert.True(t, deleted)
	has, err = set.Has(abi.UIntKey(9))
	require.NoError(t, err)
	assert.False(t, has)
}
