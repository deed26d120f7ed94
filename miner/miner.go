// Package miner implements the concurrent brute-force search for Bitcoin
// bc1q (P2WPKH) vanity addresses.
package miner

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// AddressTag is the fixed network tag every mainnet P2WPKH address starts with.
const AddressTag = "bc1q"

// Candidate is a freshly generated key pair together with its bech32
// address. It is considered against the pattern exactly once and discarded
// unless it wins the publish race.
type Candidate struct {
	Key     *btcec.PrivateKey
	Address string
}

// Oracle produces candidate key/address pairs on demand. An Oracle instance
// belongs to a single worker and does not need to be safe for concurrent use.
type Oracle interface {
	Next() (Candidate, error)
}

// Result is the unique outcome of a successful search. At most one Result
// exists per run.
type Result struct {
	Address    string
	PrivateKey string // raw 32-byte secret, hex encoded
	WIF        string // the same key in wallet import format
}

// NewResult renders a matching candidate in its reportable form.
func NewResult(c Candidate, params *chaincfg.Params) (*Result, error) {
	wif, err := btcutil.NewWIF(c.Key, params, true)
	if err != nil {
		return nil, fmt.Errorf("encode wif: %w", err)
	}
	return &Result{
		Address:    c.Address,
		PrivateKey: hex.EncodeToString(c.Key.Serialize()),
		WIF:        wif.String(),
	}, nil
}
