package folio

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsufficientHistory reports that a requested common-history window
// collapsed to nothing: there is no date range over which every instrument
// in the universe has price data. It is an explicit "no data" result,
// distinguishable from a zero-valued one.
var ErrInsufficientHistory = errors.New("no overlapping price history")

// ErrDegenerateRisk reports that relative risk contributions are not
// applicable: a single-entity universe or a zero-variance history makes the
// ratio 0/0. Callers must surface it as "not applicable", never as 0 or 1.
var ErrDegenerateRisk = errors.New("risk contribution not applicable")

// DataUnavailableError reports that price data could not be obtained for one
// instrument after all fallbacks. It is always a per-instrument failure:
// multi-instrument computations skip the instrument and continue.
type DataUnavailableError struct {
	Instrument string
	Err        error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("price data unavailable for %s: %v", e.Instrument, e.Err)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// MissingMappingError reports instruments present in the ledger but absent
// from the security registry. They would silently vanish from class-level
// aggregations while still holding value, so they must be reported.
type MissingMappingError struct {
	Instruments []string
}

func (e *MissingMappingError) Error() string {
	return fmt.Sprintf("no registry record for %s", strings.Join(e.Instruments, ", "))
}
