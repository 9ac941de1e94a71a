// Command dasfri is a demo CLI: it commits to a file's bytes, generates
// a FRI proof, and verifies it, mirroring cmd/vybium-vm-prover's
// read-execute-prove-report shape but scoped to the DAS/FRI pipeline.
// Reconstruction from sampled codeword symbols is a library operation
// (pkg/dasfri.Reconstruct) exercised by the packages' own tests; a real
// reconstructing client fetches those symbols from the network, which is
// out of this demo's scope.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vybium/das-fri/pkg/dasfri"
)

type summary struct {
	OriginalByteLen uint32   `json:"original_byte_len"`
	N0              uint32   `json:"n0"`
	LogBlowup       uint8    `json:"log_blowup"`
	NumLayers       uint8    `json:"num_layers"`
	NumQueries      uint16   `json:"num_queries"`
	C0Hex           string   `json:"c0_hex"`
	FinalValueHex   string   `json:"final_value_hex"`
	ProofBytes      int      `json:"proof_bytes"`
	SampleIndices   []uint64 `json:"sample_indices"`
	Verified        bool     `json:"verified"`
}

func main() {
	if len(os.Args) != 2 {
		fatal("usage: dasfri <path-to-file>")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fatal(fmt.Sprintf("failed to read %s: %v", os.Args[1], err))
	}

	cfg := dasfri.DefaultConfig()

	logStderr("committing...")
	commitment, err := dasfri.Commit(data, cfg)
	if err != nil {
		fatal(fmt.Sprintf("commit failed: %v", err))
	}

	logStderr("deriving sample indices from the commitment...")
	sampleIndices, err := dasfri.Sample(commitment, cfg)
	if err != nil {
		fatal(fmt.Sprintf("sample failed: %v", err))
	}

	logStderr("generating proof...")
	_, proof, err := dasfri.GenerateProof(data, cfg)
	if err != nil {
		fatal(fmt.Sprintf("generate_proof failed: %v", err))
	}

	logStderr("verifying...")
	verifyErr := dasfri.Verify(commitment, proof, cfg)
	if verifyErr != nil {
		logStderr(fmt.Sprintf("verify failed: %v", verifyErr))
	}

	proofBytes, err := dasfri.EncodeProof(proof)
	if err != nil {
		fatal(fmt.Sprintf("failed to encode proof: %v", err))
	}

	displayIndices := sampleIndices
	if len(displayIndices) > 8 {
		displayIndices = displayIndices[:8]
	}

	finalEnc := commitment.FinalValue.Encode()
	out := summary{
		OriginalByteLen: commitment.OriginalByteLen,
		N0:              commitment.N0,
		LogBlowup:       commitment.LogBlowup,
		NumLayers:       commitment.NumLayers,
		NumQueries:      commitment.NumQueries,
		C0Hex:           fmt.Sprintf("%x", commitment.C0),
		FinalValueHex:   fmt.Sprintf("%x", finalEnc),
		ProofBytes:      len(proofBytes),
		SampleIndices:   displayIndices,
		Verified:        verifyErr == nil,
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize summary: %v", err))
	}
	os.Stdout.Write(encoded)
	os.Stdout.Write([]byte("\n"))

	if verifyErr != nil {
		os.Exit(1)
	}
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "dasfri:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
