// Package suggest derives ranked, size-bounded completion candidates
// from the current input line and a static knowledge base of command
// names and per-command flags.
package suggest

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// CommandSpec declares one known command and the ordered flag list
// offered for it.
type CommandSpec struct {
	Name  string   `yaml:"name"`
	Flags []string `yaml:"flags,omitempty"`
}

// KnowledgeBase is the read-only command/flag table consulted for
// completion. It is constructed explicitly and passed by reference;
// nothing mutates it after construction, so one table can safely back
// any number of sessions.
type KnowledgeBase struct {
	commands []CommandSpec
	index    map[string]int
}

// NewKnowledgeBase builds a knowledge base from specs. Declared order
// is preserved; a later spec with a duplicate name replaces the
// earlier one's flags but keeps its position.
func NewKnowledgeBase(specs []CommandSpec) *KnowledgeBase {
	kb := &KnowledgeBase{index: make(map[string]int, len(specs))}
	for _, spec := range specs {
		if spec.Name == "" {
			continue
		}
		if i, ok := kb.index[spec.Name]; ok {
			kb.commands[i].Flags = spec.Flags
			continue
		}
		kb.index[spec.Name] = len(kb.commands)
		kb.commands = append(kb.commands, CommandSpec{
			Name:  spec.Name,
			Flags: append([]string(nil), spec.Flags...),
		})
	}
	return kb
}

// Commands returns the known command names in declared order.
func (kb *KnowledgeBase) Commands() []string {
	out := make([]string, len(kb.commands))
	for i, c := range kb.commands {
		out[i] = c.Name
	}
	return out
}

// Flags returns the declared flag list for name, or nil when the
// command is unknown.
func (kb *KnowledgeBase) Flags(name string) []string {
	i, ok := kb.index[name]
	if !ok {
		return nil
	}
	return append([]string(nil), kb.commands[i].Flags...)
}

// Known reports whether name is a known command.
func (kb *KnowledgeBase) Known(name string) bool {
	_, ok := kb.index[name]
	return ok
}

// kbFile is the on-disk YAML shape of a knowledge base.
type kbFile struct {
	Commands []CommandSpec `yaml:"commands"`
}

// Read parses a YAML knowledge base from r.
func Read(r io.Reader) (*KnowledgeBase, error) {
	var file kbFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	return NewKnowledgeBase(file.Commands), nil
}

// Load reads a YAML knowledge base from path.
func Load(path string) (*KnowledgeBase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open knowledge base: %w", err)
	}
	defer f.Close()
	return Read(f)
}

//go:embed commands.yaml
var defaultKB []byte

// Default returns the built-in knowledge base shipped with the binary.
func Default() *KnowledgeBase {
	kb, err := Read(bytes.NewReader(defaultKB))
	if err != nil {
		// The embedded table is validated by tests; failing to parse it
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded knowledge base invalid: %v", err))
	}
	return kb
}
