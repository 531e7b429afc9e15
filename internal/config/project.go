package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the on-disk name of a JSasta project's optional config.
const ProjectFile = "jsasta.yaml"

// Project represents the top-level jsasta.yaml configuration: default CLI
// flag values a project can commit to its repo instead of repeating on
// every invocation.
type Project struct {
	// Entry is the default entry-point source file, relative to the
	// directory jsasta.yaml lives in, used when the CLI gets no positional
	// argument.
	Entry string `yaml:"entry,omitempty"`
	// Output names the default artifact path, overridable by -o.
	Output string `yaml:"output,omitempty"`
	// Emit selects the default output mode: "exe", "object", "asm", "llvm".
	Emit string `yaml:"emit,omitempty"`
	// Optimize is the default -O level, 0-3.
	Optimize int `yaml:"optimize,omitempty"`
	// Sanitize names a default sanitizer: address, memory, thread, undefined.
	Sanitize string `yaml:"sanitize,omitempty"`
	// Debug enables default debug-symbol emission.
	Debug bool `yaml:"debug,omitempty"`
	// CacheDir overrides the default compile cache directory.
	CacheDir string `yaml:"cacheDir,omitempty"`
	// NoCache disables the compile cache by default for this project.
	NoCache bool `yaml:"noCache,omitempty"`
}

// LoadProject reads jsasta.yaml from dir, returning a zero-value Project
// (all defaults, no error) if the file does not exist.
func LoadProject(dir string) (*Project, error) {
	path := dir + string(os.PathSeparator) + ProjectFile
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Project{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &p, nil
}
