package catfile

import (
	"os"
	"testing"

	"gitlab.com/gitlab-org/gitref/internal/testhelper"
)

func TestMain(m *testing.M) {
	os.Exit(testMain(m))
}

func testMain(m *testing.M) int {
	cleanup := testhelper.Configure()
	defer cleanup()
	return m.Run()
}
