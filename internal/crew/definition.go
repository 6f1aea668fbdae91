package crew

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed crew.yaml
var defaultDefinition []byte

// Agent is a reviewer persona. Goal may reference {query} and {file_path}.
type Agent struct {
	Name      string `yaml:"name"`
	Role      string `yaml:"role"`
	Goal      string `yaml:"goal"`
	Backstory string `yaml:"backstory"`
}

// Task is one step of the review. Description may reference {query} and
// {file_path}; every listed tool is run with the file path before the agent
// is asked to answer.
type Task struct {
	Name           string   `yaml:"name"`
	Title          string   `yaml:"title"`
	Agent          string   `yaml:"agent"`
	Tools          []string `yaml:"tools"`
	Description    string   `yaml:"description"`
	ExpectedOutput string   `yaml:"expected_output"`
}

type Definition struct {
	Agents []Agent `yaml:"agents"`
	Tasks  []Task  `yaml:"tasks"`
}

// LoadDefinition reads a crew definition from path, or the built-in one when
// path is empty.
func LoadDefinition(path string) (*Definition, error) {
	if path == "" {
		return ParseDefinition(defaultDefinition)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read crew definition: %w", err)
	}
	return ParseDefinition(data)
}

func ParseDefinition(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse crew definition: %w", err)
	}
	if err := def.validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

func (d *Definition) validate() error {
	if len(d.Tasks) == 0 {
		return errors.New("crew definition has no tasks")
	}

	agents := make(map[string]bool, len(d.Agents))
	for _, a := range d.Agents {
		if a.Name == "" || a.Role == "" {
			return errors.New("every agent needs a name and a role")
		}
		if agents[a.Name] {
			return fmt.Errorf("duplicate agent %q", a.Name)
		}
		agents[a.Name] = true
	}

	tasks := make(map[string]bool, len(d.Tasks))
	for _, t := range d.Tasks {
		if t.Name == "" || t.Description == "" {
			return errors.New("every task needs a name and a description")
		}
		if tasks[t.Name] {
			return fmt.Errorf("duplicate task %q", t.Name)
		}
		tasks[t.Name] = true
		if !agents[t.Agent] {
			return fmt.Errorf("task %q references unknown agent %q", t.Name, t.Agent)
		}
	}

	return nil
}
