//go:build riffnobw64

package riff

// BW64Enabled is false: built with the riffnobw64 tag, only "RIFF" outer
// headers are accepted and ds64 is treated as an ordinary chunk.
const BW64Enabled = false
