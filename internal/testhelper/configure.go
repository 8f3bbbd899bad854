package testhelper

import (
	"sync"

	gitreflog "gitlab.com/gitlab-org/gitref/internal/log"
)

var configureOnce sync.Once

// Configure sets up the global test configuration. Call it from TestMain.
func Configure() func() {
	configureOnce.Do(func() {
		gitreflog.Configure("json", "info")
	})

	return func() {}
}
