package builtin

import (
	"github.com/filecoin-project/go-state-types/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
)

var MethodsAccount = struct {
	Constructor   abi.MethodNum
	PubkeyAddress abi.MethodNum
}{MethodConstructor, 2}

var MethodsInit = struct {
	Constructor abi.MethodNum
	Exec        abi.MethodNum
}{MethodConstructor, 2}

var MethodsCron = struct {
	Constructor abi.MethodNum
	EpochTick   abi.MethodNum
}{MethodConstructor, 2}

var MethodsMarket = struct {
	Constructor                    abi.MethodNum
	PublishStorageDeals            abi.MethodNum
	VerifyDealsOnSectorProveCommit abi.MethodNum
	ComputeDataCommitment          abi.MethodNum
}{MethodConstructor, 2, 3, 4}

var MethodsPower = struct {
	Constructor                          abi.MethodNum
	CreateMiner                          abi.MethodNum
	DeleteMiner                          abi.MethodNum
	OnSectorProveCommit                  abi.MethodNum
	OnSectorTerminate                    abi.MethodNum
	OnSectorTemporaryFaultEffectiveBegin abi.MethodNum
	OnSectorTemporaryFaultEffectiveEnd   abi.MethodNum
	OnSectorModifyWeightDesc             abi.MethodNum
	OnMinerWindowedPoStSuccess           abi.MethodNum
	OnMinerWindowedPoStFailure           abi.MethodNum
	EnrollCronEvent                      abi.MethodNum
	OnEpochTickEnd                       abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

var MethodsMiner = struct {
	Constructor            abi.MethodNum
	ControlAddresses       abi.MethodNum
	ChangeWorkerAddress    abi.MethodNum
	ChangePeerID           abi.MethodNum
	SubmitWindowedPoSt     abi.MethodNum
	OnDeleteMiner          abi.MethodNum
	PreCommitSector        abi.MethodNum
	ProveCommitSector      abi.MethodNum
	ExtendSectorExpiration abi.MethodNum
	TerminateSectors       abi.MethodNum
	DeclareTemporaryFaults abi.MethodNum
	OnDeferredCronEvent    abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
