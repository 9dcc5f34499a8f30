//go:build !riffnobw64

package riff

// BW64Enabled gates acceptance of the "BW64" outer id and the ds64 64-bit
// size override. It is a build-time switch: build with the riffnobw64 tag
// to restrict the navigator to plain RIFF.
const BW64Enabled = true
