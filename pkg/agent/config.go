package agent

import (
	"fmt"

	"github.com/hidtools/hidlayout/pkg/descfile"
)

type Config struct {
	DataDir      string
	CorpusConfig string
}

// Corpus is the watched set of named report descriptors the agent keeps
// layout tables for.
type Corpus struct {
	Descriptors []CorpusEntry `json:"descriptors" yaml:"descriptors"`
}

type CorpusEntry struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
}

func (e CorpusEntry) Bytes() ([]byte, error) {
	desc, err := descfile.DecodeHex(e.Hex)
	if err != nil {
		return nil, fmt.Errorf("descriptor %q: %w", e.Name, err)
	}
	return desc, nil
}
