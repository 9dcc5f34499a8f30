// Package riff holds the RIFF/BW64 wire format: FourCC identifiers, chunk
// headers, and the error taxonomy shared by the navigator, validator and
// counter. It knows nothing about byte sources or navigation state; it only
// knows how to decode and validate the bytes on the wire.
package riff

// FourCC is a 4-byte printable-ASCII chunk or list-type identifier.
type FourCC [4]byte

// Outer and list-chunk identifiers recognized by the navigator.
var (
	IDRiff = FourCC{'R', 'I', 'F', 'F'}
	IDList = FourCC{'L', 'I', 'S', 'T'}
	IDBW64 = FourCC{'B', 'W', '6', '4'}
	IDds64 = FourCC{'d', 's', '6', '4'}
)

// String renders the FourCC as a Go string, for display and error messages.
func (f FourCC) String() string {
	return string(f[:])
}

// Valid reports whether every byte of f is printable ASCII, the only bytes
// a well-formed chunk or list-type id may contain.
func (f FourCC) Valid() bool {
	for _, b := range f {
		if b < 0x20 || b > 0x7e {
			return false
		}
	}
	return true
}

// IsListType reports whether id is one of the chunk IDs that may contain a
// nested sub-list (RIFF, LIST, and BW64 when 64-bit sizes are enabled).
func (f FourCC) IsListType() bool {
	if f == IDRiff || f == IDList {
		return true
	}
	return BW64Enabled && f == IDBW64
}

// ParseFourCC copies the first 4 bytes of b into a FourCC. It panics if b
// has fewer than 4 bytes, matching the wire format's fixed-width contract —
// callers must only call it after confirming a short read already failed.
func ParseFourCC(b []byte) FourCC {
	var f FourCC
	copy(f[:], b[:4])
	return f
}
