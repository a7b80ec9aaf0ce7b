package testing

import (
	"fmt"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/crypto"
	"github.com/ipfs/go-cid"
	"github.com/minio/blake2b-simd"

	"github.com/filecoin-project/miner-actors/actors/runtime"
	"github.com/filecoin-project/miner-actors/actors/runtime/proof"
)

// MockSyscalls is a configurable syscall implementation for tests that run real actor code.
// Proofs and signatures are accepted or rejected wholesale according to its flags.
type MockSyscalls struct {
	RejectSignatures bool
	RejectSeals      bool
	RejectPoSts      bool
	// Returned from ComputeUnsealedSectorCID. Defaults to a CID derived from the piece CIDs.
	UnsealedCID cid.Cid
}

var _ runtime.Syscalls = (*MockSyscalls)(nil)

func (s *MockSyscalls) VerifySignature(_ crypto.Signature, _ addr.Address, _ []byte) error {
	if s.RejectSignatures {
		return fmt.Errorf("signature rejected")
	}
	return nil
}

func (s *MockSyscalls) HashBlake2b(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

func (s *MockSyscalls) ComputeUnsealedSectorCID(_ abi.RegisteredSealProof, pieces []abi.PieceInfo) (cid.Cid, error) {
	if s.UnsealedCID.Defined() {
		return s.UnsealedCID, nil
	}
	var seed []byte
	for _, p := range pieces {
		seed = append(seed, p.PieceCID.Bytes()...)
	}
	return MakeCID(fmt.Sprintf("unsealed-%x", s.HashBlake2b(seed))), nil
}

func (s *MockSyscalls) VerifySeal(vi proof.SealVerifyInfo) error {
	if s.RejectSeals {
		return fmt.Errorf("seal proof for sector %d rejected", vi.Number)
	}
	return nil
}

func (s *MockSyscalls) VerifyPoSt(vi proof.WindowPoStVerifyInfo) error {
	if s.RejectPoSts {
		return fmt.Errorf("window post for prover %d rejected", vi.Prover)
	}
	return nil
}
