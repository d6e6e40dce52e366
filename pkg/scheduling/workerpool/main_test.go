package workerpool

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain fails the package if a worker outlives its pool.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
