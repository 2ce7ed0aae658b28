// Package vocab defines the fixed vocabulary contract shared with the
// trained translation model: the closed reserved symbol set and the
// canonical placeholder namespace. Changing either requires a retrained
// checkpoint, so the vocabulary is versioned configuration, never a
// per-request choice.
package vocab

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Vocabulary describes one trained model's token alphabet.
type Vocabulary struct {
	Version           string   `yaml:"version"`
	PlaceholderPrefix string   `yaml:"placeholder_prefix"`
	NamespaceSize     int      `yaml:"namespace_size"`
	MaxSourceLen      int      `yaml:"max_source_len"`
	Symbols           []string `yaml:"symbols"`

	symbolSet map[string]bool
}

// Default returns the vocabulary the shipped checkpoint was trained with.
func Default() *Vocabulary {
	v := &Vocabulary{
		Version:           "v1",
		PlaceholderPrefix: "a_",
		NamespaceSize:     1000,
		MaxSourceLen:      250,
		Symbols:           []string{"+", "-", "*", "/", "-1", "(", ")", "[", "]", "{", "}"},
	}
	v.Normalize()
	return v
}

// Load reads a vocabulary YAML file. Zero-valued fields fall back to the
// defaults, so a file may override only what changed.
func Load(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary %s: %w", path, err)
	}
	v.Normalize()
	return &v, nil
}

// Normalize fills zero-valued fields from the default vocabulary and
// rebuilds the reserved-symbol index. Call it after mutating Symbols.
func (v *Vocabulary) Normalize() {
	if v.Version == "" {
		v.Version = "v1"
	}
	if v.PlaceholderPrefix == "" {
		v.PlaceholderPrefix = "a_"
	}
	if v.NamespaceSize == 0 {
		v.NamespaceSize = 1000
	}
	if v.MaxSourceLen == 0 {
		v.MaxSourceLen = 250
	}
	if len(v.Symbols) == 0 {
		v.Symbols = []string{"+", "-", "*", "/", "-1", "(", ")", "[", "]", "{", "}"}
	}
	v.symbolSet = make(map[string]bool, len(v.Symbols))
	for _, s := range v.Symbols {
		v.symbolSet[s] = true
	}
}

// IsSymbol reports whether tok is a member of the reserved symbol set.
func (v *Vocabulary) IsSymbol(tok string) bool {
	return v.symbolSet[tok]
}

// Placeholder returns the canonical placeholder token for index i.
func (v *Vocabulary) Placeholder(i int) string {
	return v.PlaceholderPrefix + strconv.Itoa(i)
}

// PlaceholderIndex returns the index encoded in tok, or -1 when tok is not
// placeholder-shaped.
func (v *Vocabulary) PlaceholderIndex(tok string) int {
	rest, ok := strings.CutPrefix(tok, v.PlaceholderPrefix)
	if !ok || rest == "" {
		return -1
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return -1
	}
	return n
}
