package rewrite

import (
	"math/big"

	"github.com/zeebo/xxh3"

	"macrovis/internal/token"
)

// Fingerprint is the 128-bit XXH3 digest of an item's serialized tokens.
// Two byte-identical items always agree on it, so independent runs over the
// same input derive the same internal name.
type Fingerprint struct {
	Hi uint64
	Lo uint64
}

// ContentFingerprint hashes the rendered form of the original, unmodified
// item (attributes included), before any rewriting.
func ContentFingerprint(item token.Stream) Fingerprint {
	sum := xxh3.Hash128([]byte(item.String()))
	return Fingerprint{Hi: sum.Hi, Lo: sum.Lo}
}

// Decimal formats the fingerprint as an unsigned 128-bit decimal, the form
// embedded in internal macro names.
func (f Fingerprint) Decimal() string {
	v := new(big.Int).SetUint64(f.Hi)
	v.Lsh(v, 64)
	v.Or(v, new(big.Int).SetUint64(f.Lo))
	return v.String()
}
