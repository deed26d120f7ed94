package miner

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/ripemd160"
)

// KeyGen is the production candidate oracle: it draws secp256k1 private
// keys from the system entropy source and derives their P2WPKH bech32
// addresses. The sha256 and ripemd160 states and the witness buffer are
// reused across calls to keep the hot loop allocation-light, so a KeyGen
// belongs to exactly one worker.
type KeyGen struct {
	hrp    string
	sha    hash.Hash
	ripemd hash.Hash
	shaBuf [sha256.Size]byte
	h160   [ripemd160.Size]byte
	// witness version byte followed by the 5-bit-grouped key hash
	program [33]byte
}

// NewKeyGen returns a generator for the given network parameters.
func NewKeyGen(params *chaincfg.Params) *KeyGen {
	return &KeyGen{
		hrp:    params.Bech32HRPSegwit,
		sha:    sha256.New(),
		ripemd: ripemd160.New(),
	}
}

// Next implements Oracle. An error is returned only when key generation or
// address encoding breaks down, which callers must treat as fatal for the
// whole run.
func (g *KeyGen) Next() (Candidate, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return Candidate{}, fmt.Errorf("generate private key: %w", err)
	}
	addr, err := g.encodeSegWit(g.hash160(key.PubKey().SerializeCompressed()))
	if err != nil {
		return Candidate{}, fmt.Errorf("encode address: %w", err)
	}
	return Candidate{Key: key, Address: addr}, nil
}

// hash160 computes ripemd160(sha256(b)) with the reusable hashers. The
// returned slice aliases internal state and is only valid until the next
// call.
func (g *KeyGen) hash160(b []byte) []byte {
	g.sha.Reset()
	g.sha.Write(b)
	g.sha.Sum(g.shaBuf[:0])
	g.ripemd.Reset()
	g.ripemd.Write(g.shaBuf[:])
	return g.ripemd.Sum(g.h160[:0])
}

// encodeSegWit encodes a 20-byte key hash as a version 0 witness address.
// The result is byte-for-byte what btcutil.AddressWitnessPubKeyHash would
// render, without constructing the address value.
func (g *KeyGen) encodeSegWit(keyHash []byte) (string, error) {
	converted, err := bech32.ConvertBits(keyHash, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert witness program: %w", err)
	}
	g.program[0] = 0
	copy(g.program[1:], converted)
	return bech32.Encode(g.hrp, g.program[:])
}
