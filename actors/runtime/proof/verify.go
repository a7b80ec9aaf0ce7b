package proof

import (
	"github.com/filecoin-project/go-state-types/abi"
	cid "github.com/ipfs/go-cid"
)

// Information about a sector necessary for PoSt verification.
type SectorInfo struct {
	SealProof    abi.RegisteredSealProof // RegisteredProof used when sealing - needs to be mapped to PoSt registered proof when used to verify a PoSt
	SectorNumber abi.SectorNumber
	SealedCID    cid.Cid // CommR
}

// Information needed to verify a seal proof.
type SealVerifyInfo struct {
	SealProof abi.RegisteredSealProof
	abi.SectorID
	DealIDs               []abi.DealID
	Randomness            abi.SealRandomness
	InteractiveRandomness abi.InteractiveSealRandomness
	Proof                 []byte

	// Safe because we get those from the miner actor
	SealedCID   cid.Cid // CommR
	UnsealedCID cid.Cid // CommD
}

// A challenged sector ticket drawn by the prover, identified by its position in the challenge sequence.
type PoStCandidate struct {
	RegisteredProof abi.RegisteredPoStProof
	PartialTicket   []byte
	SectorNumber    abi.SectorNumber
	ChallengeIndex  int64
}

type PoStProof struct {
	PoStProof  abi.RegisteredPoStProof
	ProofBytes []byte
}

// Information needed to verify a Window PoSt submitted directly to a miner actor.
type WindowPoStVerifyInfo struct {
	Randomness        abi.PoStRandomness
	Candidates        []PoStCandidate
	Proofs            []PoStProof
	ChallengedSectors []SectorInfo
	Prover            abi.ActorID // used to derive 32-byte prover ID
}
