// Package satoriconfigs loads interpreter settings from cue files.
package satoriconfigs

import (
	"errors"
	"os"

	"github.com/satorilang/satori/configs"
	"github.com/satorilang/satori/satvm"
)

// Schema is the closed cue schema for satori.cue.
const Schema = `
stack_size?: int & >0
trace?: bool
disasm?: bool
modules?: [...string]
`

type Config struct {
	// StackSize is the VM value-stack and local-slot capacity.
	StackSize int `json:"stack_size"`
	// Trace enables per-instruction execution tracing.
	Trace bool `json:"trace"`
	// Disasm prints the compiled chunk before running it.
	Disasm bool `json:"disasm"`
	// Modules restricts imports to the listed built-ins. Empty means
	// every registered module is importable.
	Modules []string `json:"modules"`
}

func Default() Config {
	return Config{
		StackSize: satvm.DefaultStackSize,
	}
}

// Load reads every existing path; each field takes its value from the
// first file that sets it. A missing config file is not an error; fields
// set by no file keep their defaults.
func Load(paths []string) (Config, error) {
	config := Default()

	var existing []string
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	if len(existing) == 0 {
		return config, nil
	}

	loader := configs.NewLoader(existing, Schema)

	assign := func(path string, target any) error {
		err := loader.AssignFirst(path, target)
		if err != nil && !errors.Is(err, configs.ErrValueNotFound) {
			return err
		}
		return nil
	}

	if err := assign("stack_size", &config.StackSize); err != nil {
		return config, err
	}
	if err := assign("trace", &config.Trace); err != nil {
		return config, err
	}
	if err := assign("disasm", &config.Disasm); err != nil {
		return config, err
	}
	if err := assign("modules", &config.Modules); err != nil {
		return config, err
	}

	return config, nil
}
