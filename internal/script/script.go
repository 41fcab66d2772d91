// Package script loads operator command scripts from YAML.
//
// A script looks like:
//
//	name: patrol
//	commands:
//	  - move forward
//	  - turn left
//	  - stop
package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoCommands is returned for a script with an empty command list.
var ErrNoCommands = errors.New("script has no commands")

// Script is a named list of commands applied in order.
type Script struct {
	Name     string   `yaml:"name"`
	Commands []string `yaml:"commands"`
}

// Parse decodes a script from r. Blank commands are dropped.
func Parse(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoCommands
		}
		return nil, fmt.Errorf("decoding script: %w", err)
	}

	cmds := s.Commands[:0]
	for _, c := range s.Commands {
		if c = strings.TrimSpace(c); c != "" {
			cmds = append(cmds, c)
		}
	}
	s.Commands = cmds

	if len(s.Commands) == 0 {
		return nil, ErrNoCommands
	}
	return &s, nil
}

// Load reads a script from path. The name defaults to the file path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}
