package agent

import (
	"container/heap"
	"crypto/sha256"
	"math/rand"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-bitfield"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
	"github.com/pkg/errors"

	"github.com/filecoin-project/miner-actors/actors/builtin"
	"github.com/filecoin-project/miner-actors/actors/builtin/miner"
	"github.com/filecoin-project/miner-actors/actors/builtin/power"
	"github.com/filecoin-project/miner-actors/actors/runtime/proof"
	tutil "github.com/filecoin-project/miner-actors/support/testing"
)

// Longest delay between a sector's precommit and its prove commit.
const maxProveCommitLag = abi.ChainEpoch(150)

type MinerAgentConfig struct {
	PrecommitRate   float64                 // average number of PreCommits per epoch
	ProofType       abi.RegisteredSealProof // seal proof type for this miner
	StartingBalance abi.TokenAmount         // initial actor balance for miner actor
	FaultRate       float64                 // temporary faults declared per live sector per epoch
	MaxFaultLength  abi.ChainEpoch          // upper bound on a declared fault's duration
}

type MinerGenerator struct {
	config            MinerAgentConfig
	createMinerEvents *RateIterator
	minersCreated     int
	accounts          []address.Address
	rnd               *rand.Rand
}

func NewMinerGenerator(accounts []address.Address, config MinerAgentConfig, createMinerRate float64, rndSeed int64) *MinerGenerator {
	rnd := rand.New(rand.NewSource(rndSeed))
	return &MinerGenerator{
		config:            config,
		createMinerEvents: NewRateIterator(createMinerRate, rnd.Int63()),
		accounts:          accounts,
		rnd:               rnd,
	}
}

func (mg *MinerGenerator) Tick(_ SimState) ([]message, error) {
	var msgs []message
	if mg.minersCreated >= len(mg.accounts) {
		return msgs, nil
	}

	err := mg.createMinerEvents.Tick(func() error {
		if mg.minersCreated < len(mg.accounts) {
			addr := mg.accounts[mg.minersCreated]
			mg.minersCreated++
			msg, err := mg.createMiner(addr, mg.config)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}
		return nil
	})
	return msgs, err
}

func (mg *MinerGenerator) createMiner(owner address.Address, cfg MinerAgentConfig) (message, error) {
	sectorSize, err := cfg.ProofType.SectorSize()
	if err != nil {
		return message{}, err
	}

	return message{
		From:   owner,
		To:     builtin.StoragePowerActorAddr,
		Value:  cfg.StartingBalance,
		Method: builtin.MethodsPower.CreateMiner,
		Params: &power.CreateMinerParams{
			Owner:      owner,
			Worker:     owner,
			SectorSize: sectorSize,
			Peer:       abi.PeerID(tutil.MakePID(owner.String())),
		},
		ReturnHandler: func(s SimState, msg message, ret cbor.Marshaler) error {
			createMinerRet, ok := ret.(*power.CreateMinerReturn)
			if !ok {
				return errors.Errorf("create miner return has wrong type: %v", ret)
			}

			params, ok := msg.Params.(*power.CreateMinerParams)
			if !ok {
				return errors.Errorf("create miner params has wrong type: %v", msg.Params)
			}

			s.AddAgent(NewMinerAgent(params.Owner, params.Worker, createMinerRet.IDAddress, createMinerRet.RobustAddress, mg.rnd.Int63(), cfg))
			return nil
		},
	}, nil
}

// MinerAgent seals sectors at a steady rate, proves them every proving period and
// occasionally declares some of them temporarily faulty.
type MinerAgent struct {
	Config        MinerAgentConfig
	Owner         address.Address
	Worker        address.Address
	IDAddress     address.Address
	RobustAddress address.Address

	// proven sectors that have not expired and carry no declared fault
	liveSectors []uint64
	// sectors with a declared fault that has not yet ended
	faultySectors []uint64
	// expiration of every proven sector
	expirations map[uint64]abi.ChainEpoch

	// priority queue used to trigger actions at future epochs
	operationSchedule *opQueue
	// whether a PoSt is already scheduled for the current proving period
	postScheduled bool

	preCommitEvents  *RateIterator
	faultEvents      *RateIterator
	nextSectorNumber abi.SectorNumber
	rnd              *rand.Rand
}

func NewMinerAgent(owner address.Address, worker address.Address, idAddress address.Address, robustAddress address.Address,
	rndSeed int64, config MinerAgentConfig,
) *MinerAgent {
	rnd := rand.New(rand.NewSource(rndSeed))
	return &MinerAgent{
		Config:        config,
		Owner:         owner,
		Worker:        worker,
		IDAddress:     idAddress,
		RobustAddress: robustAddress,

		expirations:       make(map[uint64]abi.ChainEpoch),
		operationSchedule: &opQueue{},
		preCommitEvents:   NewRateIterator(config.PrecommitRate, rnd.Int63()),
		// the fault rate scales with the number of live sectors
		faultEvents: NewRateIterator(0.0, rnd.Int63()),
		rnd:         rnd,
	}
}

func (ma *MinerAgent) Tick(s SimState) ([]message, error) {
	var messages []message

	for _, op := range ma.operationSchedule.PopOpsUntil(s.GetEpoch()) {
		switch o := op.action.(type) {
		case proveCommitAction:
			messages = append(messages, ma.createProveCommit(s.GetEpoch(), o.sectorNumber))
		case registerSectorAction:
			if err := ma.registerSector(s, o.sectorNumber); err != nil {
				return nil, err
			}
		case submitPoStAction:
			msgs, err := ma.submitPoSt(s)
			if err != nil {
				return nil, err
			}
			messages = append(messages, msgs...)
		case faultEndAction:
			ma.endFault(s.GetEpoch(), o.sectorNumber)
		case expireSectorAction:
			ma.liveSectors = removeSector(ma.liveSectors, uint64(o.sectorNumber))
			ma.faultySectors = removeSector(ma.faultySectors, uint64(o.sectorNumber))
			delete(ma.expirations, uint64(o.sectorNumber))
		}
	}

	// PreCommits follow a Poisson distribution at the PreCommit rate. The owner account
	// is assumed to hold enough funds for every deposit.
	if err := ma.preCommitEvents.Tick(func() error {
		msg, err := ma.createPreCommit(s.GetEpoch())
		if err != nil {
			return err
		}
		messages = append(messages, msg)
		return nil
	}); err != nil {
		return nil, err
	}

	faultRate := ma.Config.FaultRate * float64(len(ma.liveSectors))
	if err := ma.faultEvents.TickWithRate(faultRate, func() error {
		messages = append(messages, ma.createFault(s.GetEpoch())...)
		return nil
	}); err != nil {
		return nil, err
	}

	return messages, nil
}

func (ma *MinerAgent) LiveSectorCount() int {
	return len(ma.liveSectors)
}

func (ma *MinerAgent) FaultySectorCount() int {
	return len(ma.faultySectors)
}

// create PreCommit message and activation trigger
func (ma *MinerAgent) createPreCommit(currentEpoch abi.ChainEpoch) (message, error) {
	sectorSize, err := ma.Config.ProofType.SectorSize()
	if err != nil {
		return message{}, err
	}

	sectorNumber := ma.nextSectorNumber
	ma.nextSectorNumber++
	expiration := ma.sectorExpiration(currentEpoch)

	// assume PreCommit succeeds and schedule prove commit
	ma.operationSchedule.ScheduleOp(ma.sectorActivation(currentEpoch), proveCommitAction{sectorNumber})

	params := miner.PreCommitSectorParams{
		SealProof:     ma.Config.ProofType,
		SectorNumber:  sectorNumber,
		SealedCID:     sectorSealCID(ma.rnd),
		SealRandEpoch: currentEpoch,
		Expiration:    expiration,
	}

	return message{
		From:   ma.Worker,
		To:     ma.IDAddress,
		Value:  miner.PreCommitDeposit(sectorSize, expiration-currentEpoch),
		Method: builtin.MethodsMiner.PreCommitSector,
		Params: &params,
	}, nil
}

func (ma *MinerAgent) createProveCommit(epoch abi.ChainEpoch, sectorNumber abi.SectorNumber) message {
	params := miner.ProveCommitSectorParams{
		SectorNumber: sectorNumber,
		Proof:        []byte("proof"),
	}

	// the sector is visible in state once this epoch's messages have applied
	ma.operationSchedule.ScheduleOp(epoch+1, registerSectorAction{sectorNumber: sectorNumber})

	return message{
		From:   ma.Worker,
		To:     ma.IDAddress,
		Value:  big.Zero(),
		Method: builtin.MethodsMiner.ProveCommitSector,
		Params: &params,
	}
}

// Declares a temporary fault on a random live sector. Sectors that would expire before
// the fault ends are left alone.
func (ma *MinerAgent) createFault(currentEpoch abi.ChainEpoch) []message {
	if len(ma.liveSectors) == 0 {
		return nil
	}

	var sectorNumber uint64
	sectorNumber, ma.liveSectors = PopRandom(ma.liveSectors, ma.rnd)

	duration := abi.ChainEpoch(1)
	if ma.Config.MaxFaultLength > 1 {
		duration += abi.ChainEpoch(ma.rnd.Int63n(int64(ma.Config.MaxFaultLength)))
	}
	faultEnd := currentEpoch + miner.DeclaredFaultEffectiveDelay + duration
	if ma.expirations[sectorNumber] <= faultEnd {
		ma.liveSectors = append(ma.liveSectors, sectorNumber)
		return nil
	}
	ma.faultySectors = append(ma.faultySectors, sectorNumber)

	// the fault is cleared by cron at faultEnd, after that epoch's messages
	ma.operationSchedule.ScheduleOp(faultEnd+1, faultEndAction{abi.SectorNumber(sectorNumber)})

	return []message{{
		From:   ma.Worker,
		To:     ma.IDAddress,
		Value:  big.Zero(),
		Method: builtin.MethodsMiner.DeclareTemporaryFaults,
		Params: &miner.DeclareTemporaryFaultsParams{
			Sectors:  bitfield.NewFromSet([]uint64{sectorNumber}),
			Duration: duration,
		},
	}}
}

func (ma *MinerAgent) endFault(currentEpoch abi.ChainEpoch, sectorNumber abi.SectorNumber) {
	ma.faultySectors = removeSector(ma.faultySectors, uint64(sectorNumber))
	if exp, ok := ma.expirations[uint64(sectorNumber)]; ok && exp > currentEpoch {
		ma.liveSectors = append(ma.liveSectors, uint64(sectorNumber))
	}
}

// Submits a PoSt if the current epoch falls in the challenge window, and schedules the
// next submission.
func (ma *MinerAgent) submitPoSt(s SimState) ([]message, error) {
	st, err := ma.getState(s)
	if err != nil {
		return nil, err
	}
	pps := st.PoStState.ProvingPeriodStart
	if pps == nil {
		// every sector expired, the next proven sector restarts proving
		ma.postScheduled = false
		return nil, nil
	}

	epoch := s.GetEpoch()
	if epoch <= *pps {
		ma.schedulePoSt(*pps)
		return nil, nil
	}
	if epoch > *pps+miner.WindowedPoStChallengeDuration {
		// window missed, cron moves the period forward
		ma.schedulePoSt(*pps + miner.ProvingPeriod)
		return nil, nil
	}
	ma.schedulePoSt(*pps + miner.ProvingPeriod)

	postProofType, err := ma.Config.ProofType.RegisteredWindowPoStProof()
	if err != nil {
		return nil, err
	}

	candidates := make([]proof.PoStCandidate, miner.NumWindowedPoStSectors)
	for i := range candidates {
		var sectorNumber abi.SectorNumber
		if len(ma.liveSectors) > 0 {
			sectorNumber = abi.SectorNumber(ma.liveSectors[ma.rnd.Intn(len(ma.liveSectors))])
		}
		candidates[i] = proof.PoStCandidate{
			RegisteredProof: postProofType,
			PartialTicket:   []byte("not really random"),
			SectorNumber:    sectorNumber,
			ChallengeIndex:  int64(i),
		}
	}

	return []message{{
		From:   ma.Worker,
		To:     ma.IDAddress,
		Value:  big.Zero(),
		Method: builtin.MethodsMiner.SubmitWindowedPoSt,
		Params: &miner.SubmitWindowedPoStParams{
			Candidates: candidates,
			Proofs: []proof.PoStProof{{
				PoStProof:  postProofType,
				ProofBytes: []byte{},
			}},
		},
	}}, nil
}

// schedule a proof at a random epoch inside the challenge window opening after pps
func (ma *MinerAgent) schedulePoSt(pps abi.ChainEpoch) {
	proveAt := pps + 1 + abi.ChainEpoch(ma.rnd.Int63n(int64(miner.WindowedPoStChallengeDuration)))
	ma.operationSchedule.ScheduleOp(proveAt, submitPoStAction{})
	ma.postScheduled = true
}

// Starts tracking a proven sector, and starts proving if it is the first one.
func (ma *MinerAgent) registerSector(s SimState, sectorNumber abi.SectorNumber) error {
	st, err := ma.getState(s)
	if err != nil {
		return err
	}

	sector, found, err := st.GetSector(s.Store(), sectorNumber)
	if err != nil {
		return err
	} else if !found {
		log.Warnf("failed to register sector %d of miner %v, did proof verification fail?", sectorNumber, ma.IDAddress)
		return nil
	}

	if !ma.postScheduled {
		if st.PoStState.ProvingPeriodStart == nil {
			return errors.Errorf("miner %v has sector %d but no proving period", ma.IDAddress, sectorNumber)
		}
		ma.schedulePoSt(*st.PoStState.ProvingPeriodStart)
	}

	ma.liveSectors = append(ma.liveSectors, uint64(sectorNumber))
	ma.expirations[uint64(sectorNumber)] = sector.Info.Expiration
	// cron removes the sector at its expiration epoch
	ma.operationSchedule.ScheduleOp(sector.Info.Expiration+1, expireSectorAction{sectorNumber})
	return nil
}

func (ma *MinerAgent) getState(s SimState) (miner.State, error) {
	var st miner.State
	err := s.GetState(ma.IDAddress, &st)
	if err != nil {
		return miner.State{}, err
	}
	return st, err
}

// Random expiration between two and twenty proving periods out.
func (ma *MinerAgent) sectorExpiration(currentEpoch abi.ChainEpoch) abi.ChainEpoch {
	minExp := currentEpoch + maxProveCommitLag + 2*miner.ProvingPeriod
	maxExp := currentEpoch + 20*miner.ProvingPeriod
	return minExp + abi.ChainEpoch(ma.rnd.Int63n(int64(maxExp-minExp)))
}

// Random activation after the interactive challenge becomes available and well before
// the precommit expires.
func (ma *MinerAgent) sectorActivation(preCommitAt abi.ChainEpoch) abi.ChainEpoch {
	lag := maxProveCommitLag
	if maxSeal, ok := miner.MaxSealDuration(ma.Config.ProofType); ok && maxSeal < lag {
		lag = maxSeal
	}
	return preCommitAt + miner.PreCommitChallengeDelay + abi.ChainEpoch(ma.rnd.Int63n(int64(lag)))
}

// create a random seal CID
func sectorSealCID(rnd *rand.Rand) cid.Cid {
	data := make([]byte, 10)
	_, err := rnd.Read(data)
	if err != nil {
		panic(err)
	}

	sum := sha256.Sum256(data)
	hash, err := mh.Encode(sum[:], mh.SHA2_256)
	if err != nil {
		panic(err)
	}
	return cid.NewCidV1(cid.FilCommitmentSealed, hash)
}

func removeSector(sectors []uint64, sectorNumber uint64) []uint64 {
	for i, sn := range sectors {
		if sn == sectorNumber {
			sectors[i] = sectors[len(sectors)-1]
			return sectors[:len(sectors)-1]
		}
	}
	return sectors
}

type minerOp struct {
	epoch  abi.ChainEpoch
	action interface{}
}

type proveCommitAction struct {
	sectorNumber abi.SectorNumber
}

type registerSectorAction struct {
	sectorNumber abi.SectorNumber
}

type submitPoStAction struct{}

type faultEndAction struct {
	sectorNumber abi.SectorNumber
}

type expireSectorAction struct {
	sectorNumber abi.SectorNumber
}

/////////////////////////////////////////////
//
//  opQueue priority queue for scheduling
//
/////////////////////////////////////////////

type opQueue struct {
	ops []minerOp
}

var _ heap.Interface = (*opQueue)(nil)

func (o *opQueue) ScheduleOp(epoch abi.ChainEpoch, action interface{}) {
	heap.Push(o, minerOp{
		epoch:  epoch,
		action: action,
	})
}

// get operations for up to and including current epoch
func (o *opQueue) PopOpsUntil(epoch abi.ChainEpoch) []minerOp {
	var ops []minerOp

	for !o.IsEmpty() && o.NextEpoch() <= epoch {
		next := heap.Pop(o).(minerOp)
		ops = append(ops, next)
	}
	return ops
}

func (o *opQueue) NextEpoch() abi.ChainEpoch {
	return o.ops[0].epoch
}

func (o *opQueue) IsEmpty() bool {
	return len(o.ops) == 0
}

func (o *opQueue) Len() int {
	return len(o.ops)
}

func (o *opQueue) Less(i, j int) bool {
	return o.ops[i].epoch < o.ops[j].epoch
}

func (o *opQueue) Swap(i, j int) {
	o.ops[i], o.ops[j] = o.ops[j], o.ops[i]
}

func (o *opQueue) Push(x interface{}) {
	o.ops = append(o.ops, x.(minerOp))
}

func (o *opQueue) Pop() interface{} {
	op := o.ops[len(o.ops)-1]
	o.ops = o.ops[:len(o.ops)-1]
	return op
}
