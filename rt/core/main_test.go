package core

import (
	"testing"

	"go.uber.org/goleak"
)

// Nothing in core may start goroutines; the host owns all concurrency.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
