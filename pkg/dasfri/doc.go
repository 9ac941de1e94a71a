// Package dasfri provides a Data Availability Sampling library built on
// FRI over the Mersenne-31 field.
//
// A prover commits to a block of application data such that any light
// verifier can, by querying a small number of symbols, become convinced
// with high probability that the entire block has been published and is
// reconstructible from any sufficiently large subset of its symbols.
//
// # Quick Start
//
// Committing to data and generating a proof:
//
//	cfg := dasfri.DefaultConfig()
//	commitment, proof, err := dasfri.GenerateProof(data, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := dasfri.Verify(commitment, proof, cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Reconstructing original bytes from a sufficient subset of codeword
// symbols:
//
//	recovered, err := dasfri.Reconstruct(symbols, commitment, cfg)
//
// # Architecture
//
//   - pkg/dasfri/: public API (this package)
//   - internal/dasfri/: private implementation (not importable)
//
// Implementation details in internal/ can be refactored without breaking
// the public API.
package dasfri
