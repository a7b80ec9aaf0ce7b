package runtime

import (
	"github.com/filecoin-project/go-state-types/rt"
)

// Concrete types associated with the runtime interface.

// An actor implementation as seen by the VM: its exported methods, code CID and state type.
type VMActor = rt.VMActor
