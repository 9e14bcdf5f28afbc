// Package replay fingerprints battle results and re-runs seeded battles to
// check a reported outcome.
package replay

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/rng"
)

// ErrDigestMismatch is returned when a re-run disagrees with a reported digest.
var ErrDigestMismatch = errors.New("battle digest mismatch")

// Digest is a BLAKE2b-256 hash of a Result's JSON encoding.
type Digest [blake2b.Size256]byte

// String returns the lowercase hex form.
func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// MarshalText implements encoding.TextMarshaler.
func (d Digest) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(b []byte) error {
	parsed, err := ParseDigest(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDigest decodes a hex digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("decoding digest: %w", err)
	}
	if len(raw) != len(d) {
		return d, fmt.Errorf("digest length %d, want %d", len(raw), len(d))
	}
	copy(d[:], raw)
	return d, nil
}

// Sum digests a result.
func Sum(res combat.Result) (Digest, error) {
	b, err := json.Marshal(res)
	if err != nil {
		return Digest{}, fmt.Errorf("encoding result: %w", err)
	}
	return blake2b.Sum256(b), nil
}

// Run resolves a battle on a fresh source seeded with seed and digests it.
func Run(a, b combat.Combatant, seed uint64) (combat.Result, Digest, error) {
	res, err := combat.Resolve(a, b, rng.New(seed))
	if err != nil {
		return combat.Result{}, Digest{}, err
	}
	d, err := Sum(res)
	if err != nil {
		return combat.Result{}, Digest{}, err
	}
	return res, d, nil
}

// Verify re-runs the battle and compares it against the reported digest.
// The recomputed result is returned even on mismatch.
func Verify(a, b combat.Combatant, seed uint64, reported Digest) (combat.Result, error) {
	res, d, err := Run(a, b, seed)
	if err != nil {
		return combat.Result{}, fmt.Errorf("replaying battle: %w", err)
	}
	if d != reported {
		return res, fmt.Errorf("seed %d: got %s, reported %s: %w", seed, d, reported, ErrDigestMismatch)
	}
	return res, nil
}
