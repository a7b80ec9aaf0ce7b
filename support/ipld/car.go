package ipld

import (
	"bytes"
	"context"
	"io"

	"github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"github.com/ipld/go-car"
	carutil "github.com/ipld/go-car/util"
	mh "github.com/multiformats/go-multihash"
	cbg "github.com/whyrusleeping/cbor-gen"
	"golang.org/x/xerrors"
)

// Writes the DAG under root to w in CAR format, root block first.
// Only dag-cbor blocks are followed. Links with other codecs, such as sector
// commitments and identity-hashed actor code, have no block to write.
func ExportCAR(ctx context.Context, bs ipldcbor.IpldBlockstore, root cid.Cid, w io.Writer) error {
	if err := car.WriteHeader(&car.CarHeader{Roots: []cid.Cid{root}, Version: 1}, w); err != nil {
		return xerrors.Errorf("failed to write car header: %w", err)
	}

	seen := cid.NewSet()
	queue := []cid.Cid{root}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := queue[0]
		queue = queue[1:]
		if !seen.Visit(c) {
			continue
		}

		blk, err := bs.Get(c)
		if err != nil {
			return xerrors.Errorf("failed to get block %s: %w", c, err)
		}
		if err := carutil.LdWrite(w, c.Bytes(), blk.RawData()); err != nil {
			return xerrors.Errorf("failed to write block %s: %w", c, err)
		}

		err = cbg.ScanForLinks(bytes.NewReader(blk.RawData()), func(link cid.Cid) {
			if traversable(link) {
				queue = append(queue, link)
			}
		})
		if err != nil {
			return xerrors.Errorf("failed to scan links of %s: %w", c, err)
		}
	}
	return nil
}

// Loads every block of a CAR stream into bs, returning the stream's single root.
func ImportCAR(bs ipldcbor.IpldBlockstore, r io.Reader) (cid.Cid, error) {
	header, err := car.LoadCar(bs, r)
	if err != nil {
		return cid.Undef, xerrors.Errorf("failed to load car: %w", err)
	}
	if len(header.Roots) != 1 {
		return cid.Undef, xerrors.Errorf("expected one root, car has %d", len(header.Roots))
	}
	return header.Roots[0], nil
}

func traversable(c cid.Cid) bool {
	prefix := c.Prefix()
	return prefix.Codec == cid.DagCBOR && prefix.MhType != mh.IDENTITY
}
