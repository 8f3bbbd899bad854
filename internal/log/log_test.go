package log

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	defer Configure("", "info")

	Configure("json", "debug")
	require.IsType(t, &logrus.JSONFormatter{}, defaultLogger.Formatter)
	require.Equal(t, logrus.DebugLevel, defaultLogger.GetLevel())

	Configure("text", "no-such-level")
	require.IsType(t, &logrus.TextFormatter{}, defaultLogger.Formatter)
	require.Equal(t, logrus.InfoLevel, defaultLogger.GetLevel())
}

func TestDefault(t *testing.T) {
	require.Equal(t, os.Getpid(), Default().Data["pid"])
}

func TestRedirectToDir(t *testing.T) {
	dir, err := ioutil.TempDir("", "gitref-log")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	closer, err := RedirectToDir(dir)
	require.NoError(t, err)

	Default().Info("hello from the test")
	require.NoError(t, closer.Close())
	require.Equal(t, os.Stderr, defaultLogger.Out)

	content, err := ioutil.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	require.Contains(t, string(content), "hello from the test")

	_, err = RedirectToDir(filepath.Join(dir, "missing"))
	require.Error(t, err)
}
