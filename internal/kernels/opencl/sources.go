// Package opencl runs the CGLE kernel on an OpenCL device with both field
// buffers resident in device memory. Build with -tags opencl; without the tag
// the device reports itself unavailable.
package opencl

import "embed"

// SourceName is the kernel file the device asks the engine to load.
const SourceName = "cgle.cl"

// KernelName is the entry point inside SourceName.
const KernelName = "cgle_step"

// Sources holds the built-in kernel source. Hosts layer an on-disk directory
// in front of it to try kernel edits without rebuilding.
//
//go:embed cgle.cl
var Sources embed.FS
