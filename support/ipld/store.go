package ipld

import (
	"context"

	block "github.com/ipfs/go-block-format"
	"github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/miner-actors/actors/util/adt"
)

// An empty ADT store backed by memory. Not safe for concurrent use.
func NewADTStore(ctx context.Context) adt.Store {
	return adt.WrapBlockStore(ctx, NewBlockStoreInMemory())
}

// BlockStoreInMemory keeps every block it is given, keyed by CID.
type BlockStoreInMemory struct {
	blocks map[cid.Cid]block.Block
}

var _ ipldcbor.IpldBlockstore = (*BlockStoreInMemory)(nil)

func NewBlockStoreInMemory() *BlockStoreInMemory {
	return &BlockStoreInMemory{blocks: make(map[cid.Cid]block.Block)}
}

func (bs *BlockStoreInMemory) Get(c cid.Cid) (block.Block, error) {
	if blk, ok := bs.blocks[c]; ok {
		return blk, nil
	}
	return nil, xerrors.Errorf("block %s not found", c)
}

func (bs *BlockStoreInMemory) Put(b block.Block) error {
	bs.blocks[b.Cid()] = b
	return nil
}

// Len returns the number of distinct blocks held.
func (bs *BlockStoreInMemory) Len() int {
	return len(bs.blocks)
}

// MetricsBlockStore counts the reads and writes passing through to another store.
// The VM reads these counters to attribute store traffic to the methods that caused it.
type MetricsBlockStore struct {
	bs                    ipldcbor.IpldBlockstore
	reads, writes         uint64
	readBytes, writeBytes uint64
}

var _ ipldcbor.IpldBlockstore = (*MetricsBlockStore)(nil)

func NewMetricsBlockStore(underlying ipldcbor.IpldBlockstore) *MetricsBlockStore {
	return &MetricsBlockStore{bs: underlying}
}

func (ms *MetricsBlockStore) Get(c cid.Cid) (block.Block, error) {
	ms.reads++
	blk, err := ms.bs.Get(c)
	if err != nil {
		return nil, err
	}
	ms.readBytes += uint64(len(blk.RawData()))
	return blk, nil
}

func (ms *MetricsBlockStore) Put(b block.Block) error {
	ms.writes++
	ms.writeBytes += uint64(len(b.RawData()))
	return ms.bs.Put(b)
}

func (ms *MetricsBlockStore) ReadCount() uint64  { return ms.reads }
func (ms *MetricsBlockStore) WriteCount() uint64 { return ms.writes }
func (ms *MetricsBlockStore) ReadSize() uint64   { return ms.readBytes }
func (ms *MetricsBlockStore) WriteSize() uint64  { return ms.writeBytes }
