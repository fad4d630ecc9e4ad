package errors_test

import (
	"fmt"

	"github.com/scaledbot/censusbot/pkg/errors"
)

// Example demonstrates turning a per-article skip into its ledger reason.
func Example() {
	err := errors.Skip(errors.ErrNotTargetPlace)

	if reason, ok := errors.IsSkip(err); ok {
		fmt.Println("skipped:", reason)
	}

	// Output: skipped: not a US location
}
