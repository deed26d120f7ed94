package miner

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// BenchmarkOracleNext measures the full candidate pipeline: key generation,
// hash160 with reused hasher state, and bech32 encoding.
func BenchmarkOracleNext(b *testing.B) {
	g := NewKeyGen(&chaincfg.MainNetParams)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Next(); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "addr/s")
}

// BenchmarkOracleNextParallel measures candidate throughput with one oracle
// per goroutine, the way Mine runs them.
func BenchmarkOracleNextParallel(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		g := NewKeyGen(&chaincfg.MainNetParams)
		for pb.Next() {
			if _, err := g.Next(); err != nil {
				b.Error(err)
				return
			}
		}
	})
	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "addr/s")
}

// BenchmarkBtcutilAddressPath is the reference derivation through btcutil,
// for comparison against the reused-hasher fast path.
func BenchmarkBtcutilAddressPath(b *testing.B) {
	for i := 0; i < b.N; i++ {
		key, err := secp256k1.GeneratePrivateKey()
		if err != nil {
			b.Fatal(err)
		}
		addr, err := btcutil.NewAddressWitnessPubKeyHash(
			btcutil.Hash160(key.PubKey().SerializeCompressed()), &chaincfg.MainNetParams)
		if err != nil {
			b.Fatal(err)
		}
		_ = addr.EncodeAddress()
	}
	b.ReportMetric(float64(b.N)/b.Elapsed().Seconds(), "addr/s")
}

// BenchmarkHash160 isolates the reused-hasher hash160 step.
func BenchmarkHash160(b *testing.B) {
	g := NewKeyGen(&chaincfg.MainNetParams)
	pub := make([]byte, 33)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.hash160(pub)
	}
}

// BenchmarkPatternMatches isolates the matcher on a realistic address.
func BenchmarkPatternMatches(b *testing.B) {
	p := NewPattern("test", "9")
	addr := "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = p.Matches(addr)
	}
}
