package miner

import (
	"fmt"
	"math"
	"strings"
)

// bech32Charset is the 32-character alphabet bech32 data positions are drawn
// from. Anything outside it can never appear after the bc1q tag.
const bech32Charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// dataChars is the number of pattern-constrainable characters in a bc1q
// address: 42 total minus the 4-character tag.
const dataChars = 38

// Pattern is the user's match criteria: a prefix that must appear directly
// after the bc1q tag and an optional suffix. Both parts are folded to lower
// case once at construction so Matches never normalizes per call.
type Pattern struct {
	prefix string
	suffix string
}

// NewPattern builds a normalized pattern. An empty suffix disables the
// suffix check.
func NewPattern(prefix, suffix string) Pattern {
	return Pattern{
		prefix: strings.ToLower(prefix),
		suffix: strings.ToLower(suffix),
	}
}

// Prefix returns the normalized prefix.
func (p Pattern) Prefix() string { return p.prefix }

// Suffix returns the normalized suffix, empty when none was configured.
func (p Pattern) Suffix() string { return p.suffix }

// Matches reports whether addr satisfies the pattern. It fails closed for
// anything that is not longer than the bc1q tag or does not carry it, checks
// the prefix directly after the tag, and requires the suffix only when one
// is configured. Addresses arrive lower case from bech32 encoding, so no
// folding happens here. Safe for concurrent use from any number of workers.
func (p Pattern) Matches(addr string) bool {
	if len(addr) <= len(AddressTag) || !strings.HasPrefix(addr, AddressTag) {
		return false
	}
	if !strings.HasPrefix(addr[len(AddressTag):], p.prefix) {
		return false
	}
	if p.suffix != "" && !strings.HasSuffix(addr, p.suffix) {
		return false
	}
	return true
}

// Validate returns the reasons the pattern could never match any bc1q
// address, or nil when it is searchable.
func (p Pattern) Validate() []string {
	var errs []string
	if !bech32Only(p.prefix) {
		errs = append(errs, fmt.Sprintf("prefix %q contains characters outside the bech32 charset %q", p.prefix, bech32Charset))
	}
	if !bech32Only(p.suffix) {
		errs = append(errs, fmt.Sprintf("suffix %q contains characters outside the bech32 charset %q", p.suffix, bech32Charset))
	}
	if len(p.prefix)+len(p.suffix) > dataChars {
		errs = append(errs, fmt.Sprintf("prefix and suffix together exceed the %d data characters of a bc1q address", dataChars))
	}
	return errs
}

// ExpectedAttempts estimates how many candidates must be generated on
// average before one matches: every constrained position is an independent
// 1-in-32 draw.
func (p Pattern) ExpectedAttempts() float64 {
	return math.Pow(32, float64(len(p.prefix)+len(p.suffix)))
}

func bech32Only(s string) bool {
	for _, c := range s {
		if !strings.ContainsRune(bech32Charset, c) {
			return false
		}
	}
	return true
}
