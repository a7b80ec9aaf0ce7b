package testing

import (
	"github.com/libp2p/go-libp2p-core/peer"
	mh "github.com/multiformats/go-multihash"
)

// MakePID returns the bytes of a well-formed peer identifier derived from input.
func MakePID(input string) []byte {
	h, err := mh.Sum([]byte(input), mh.SHA2_256, -1)
	if err != nil {
		panic(err)
	}
	id, err := peer.IDFromBytes(h)
	if err != nil {
		panic(err)
	}
	return []byte(id)
}
