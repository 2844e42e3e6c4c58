//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import (
	"errors"
	"os"
)

func readNoEcho(_ *os.File) (string, error) {
	return "", errors.New("echo control is not supported on this platform")
}
