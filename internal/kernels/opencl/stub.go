//go:build !opencl

package opencl

import (
	"errors"

	"cgle/internal/core"
)

var errDisabled = errors.New("OpenCL support is not enabled; rebuild with -tags opencl")

func init() {
	core.RegisterDevice("opencl", func() (core.Device, error) {
		return nil, errDisabled
	})
}
