package builtin

import "fmt"

// The duration of a chain epoch.
// Epoch-denominated periods that are more naturally expressed in clock time are derived from it.
const EpochDurationSeconds = 30
const SecondsInHour = 3600
const SecondsInDay = 86400
const SecondsInYear = 31556925
const EpochsInHour = SecondsInHour / EpochDurationSeconds
const EpochsInDay = SecondsInDay / EpochDurationSeconds
const EpochsInYear = SecondsInYear / EpochDurationSeconds

func init() {
	//noinspection GoBoolExpressions
	if SecondsInHour%EpochDurationSeconds != 0 {
		// This even division is an assumption that other code might unwittingly make.
		panic(fmt.Sprintf("epoch duration %d does not evenly divide one hour (%d)", EpochDurationSeconds, SecondsInHour))
	}
}
