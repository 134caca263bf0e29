// Command ecvrf proves, verifies and hashes ECVRF-EDWARDS25519-SHA512-Elligator2
// proofs and runs VRF-seeded sortition draws.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
