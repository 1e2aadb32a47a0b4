package query

import (
	"testing"

	"go.uber.org/goleak"
)

// every fetch goroutine must be gone once its submission settles
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
