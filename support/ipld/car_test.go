package ipld_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/filecoin-project/miner-actors/actors/util/adt"
	"github.com/filecoin-project/miner-actors/support/ipld"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

func TestCARRoundTrip(t *testing.T) {
	ctx := context.Background()
	bs := ipld.NewBlockStoreInMemory()
	store := adt.WrapBlockStore(ctx, bs)

	leaf := cbg.CborInt(7)
	leafCid, err := store.Put(ctx, &leaf)
	require.NoError(t, err)

	inner := cbg.CborCid(leafCid)
	innerCid, err := store.Put(ctx, &inner)
	require.NoError(t, err)

	// a link to a commitment with no block behind it
	sealed := cbg.CborCid(tutil.MakeCID("sealed"))
	sealedCid, err := store.Put(ctx, &sealed)
	require.NoError(t, err)

	root := cbg.CborCid(innerCid)
	rootCid, err := store.Put(ctx, &root)
	require.NoError(t, err)

	// not reachable from root
	orphan := cbg.CborInt(99)
	_, err = store.Put(ctx, &orphan)
	require.NoError(t, err)

	t.Run("exports reachable blocks only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ipld.ExportCAR(ctx, bs, rootCid, &buf))

		imported := ipld.NewBlockStoreInMemory()
		gotRoot, err := ipld.ImportCAR(imported, &buf)
		require.NoError(t, err)
		assert.Equal(t, rootCid, gotRoot)
		assert.Equal(t, 3, imported.Len())

		var got cbg.CborInt
		require.NoError(t, adt.WrapBlockStore(ctx, imported).Get(ctx, leafCid, &got))
		assert.Equal(t, leaf, got)
	})

	t.Run("skips links without blocks", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ipld.ExportCAR(ctx, bs, sealedCid, &buf))

		imported := ipld.NewBlockStoreInMemory()
		_, err := ipld.ImportCAR(imported, &buf)
		require.NoError(t, err)
		assert.Equal(t, 1, imported.Len())
	})

	t.Run("missing root", func(t *testing.T) {
		var buf bytes.Buffer
		err := ipld.ExportCAR(ctx, bs, cid.NewCidV1(cid.DagCBOR, tutil.MakeCID("absent").Hash()), &buf)
		assert.Error(t, err)
	})
}
