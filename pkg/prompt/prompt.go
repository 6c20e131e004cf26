// Package prompt assembles the text sent to Cairo Coder: an instruction
// followed by the Cairo source it applies to.
package prompt

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultInstruction asks the service to fix the contract that follows it.
const DefaultInstruction = "corrige este contrato"

// StdinPath is the contract path that reads the source from standard input.
const StdinPath = "-"

// DefaultContract is the AnimalNFT Starknet contract submitted when no
// contract file is given.
//
//go:embed animal_nft.cairo
var DefaultContract string

// Build joins instruction and source with a single space. Surrounding
// whitespace of both parts is dropped; an empty instruction yields the
// source alone.
func Build(instruction, source string) string {
	instruction = strings.TrimSpace(instruction)
	source = strings.TrimSpace(source)

	if instruction == "" {
		return source
	}
	if source == "" {
		return instruction
	}
	return instruction + " " + source
}

// Default returns the prompt built from DefaultInstruction and DefaultContract.
func Default() string {
	return Build(DefaultInstruction, DefaultContract)
}

// Load reads a contract from path. StdinPath reads from stdin instead.
func Load(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)

	if path == StdinPath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading contract %s: %w", path, err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("contract %s is empty", path)
	}

	return string(data), nil
}
