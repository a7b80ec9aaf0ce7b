package exported_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/exported"
	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

func TestDefaultRegistry(t *testing.T) {
	reg := exported.DefaultRegistry()
	assert.Same(t, reg, exported.DefaultRegistry())

	for _, code := range reg.Codes() {
		a, ok := reg.Lookup(code)
		require.True(t, ok)
		assert.Equal(t, code, a.Code())
		assert.True(t, builtin.IsBuiltinActor(code), "unexpected code %v", code)
		assert.NotNil(t, a.State())
	}
	assert.Len(t, reg.Codes(), 7)

	_, ok := reg.Lookup(tutil.MakeCID("unknown"))
	assert.False(t, ok)
}

func TestRegistryCapturesExports(t *testing.T) {
	reg := exported.NewRegistry(miner.Actor{})
	a, ok := reg.Lookup(builtin.StorageMinerActorCodeID)
	require.True(t, ok)

	exports := a.Exports()
	assert.Len(t, exports, int(builtin.MethodsMiner.OnDeferredCronEvent)+1)
	exports[1] = nil
	assert.NotNil(t, a.Exports()[1], "registry table must not be mutable through Exports")
}

func TestRegistryReplacesActorWithSameCode(t *testing.T) {
	table := miner.NewSealDurationTable(nil)
	reg := exported.NewRegistry(append(exported.BuiltinActors(), miner.Actor{SealDurations: table})...)
	assert.Len(t, reg.Codes(), 7)

	a, ok := reg.Lookup(builtin.StorageMinerActorCodeID)
	require.True(t, ok)
	m, ok := a.Actor().(miner.Actor)
	require.True(t, ok)
	assert.Same(t, table, m.SealDurations)
}
