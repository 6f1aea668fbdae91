// Package crew runs a fixed sequence of reviewer tasks over one lab report.
package crew

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/analyzer"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/tools"
	"github.com/BerylCAtieno/blood-report-analyzer/internal/utils"
)

type Inputs struct {
	Query    string
	FilePath string
}

type TaskOutput struct {
	Task   string `json:"task"`
	Title  string `json:"title"`
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

type Result struct {
	Tasks []TaskOutput `json:"tasks"`
}

// String renders every task output under its own heading.
func (r *Result) String() string {
	sections := make([]string, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		sections = append(sections, fmt.Sprintf("## %s\n\n%s", t.Title, t.Output))
	}
	return strings.Join(sections, "\n\n")
}

// Orchestrator is what the upload service needs from a crew.
type Orchestrator interface {
	Kickoff(ctx context.Context, inputs Inputs) (*Result, error)
}

type Crew struct {
	tasks  []Task
	agents map[string]Agent
	tools  map[string]tools.Tool
	llm    analyzer.Completer
	logger *utils.Logger
}

func New(def *Definition, llm analyzer.Completer, toolset []tools.Tool, logger *utils.Logger) (*Crew, error) {
	byName := make(map[string]tools.Tool, len(toolset))
	for _, t := range toolset {
		byName[t.Name()] = t
	}

	agents := make(map[string]Agent, len(def.Agents))
	for _, a := range def.Agents {
		agents[a.Name] = a
	}

	for _, task := range def.Tasks {
		for _, name := range task.Tools {
			if _, ok := byName[name]; !ok {
				return nil, fmt.Errorf("task %q uses unknown tool %q", task.Name, name)
			}
		}
	}

	return &Crew{
		tasks:  def.Tasks,
		agents: agents,
		tools:  byName,
		llm:    llm,
		logger: logger,
	}, nil
}

// Kickoff runs the tasks in order. Each task sees its tools' output and the
// outputs of every earlier task. The first failure stops the run.
func (c *Crew) Kickoff(ctx context.Context, inputs Inputs) (*Result, error) {
	render := strings.NewReplacer("{query}", inputs.Query, "{file_path}", inputs.FilePath).Replace
	result := &Result{Tasks: make([]TaskOutput, 0, len(c.tasks))}

	for _, task := range c.tasks {
		agent := c.agents[task.Agent]
		start := time.Now()
		c.logger.Info("Starting task", "task", task.Name, "agent", agent.Role)

		toolOutputs, err := c.runTools(ctx, task, inputs.FilePath)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", task.Name, err)
		}

		instructions := fmt.Sprintf("You are a %s.\n%s\n\nYour goal: %s",
			agent.Role, strings.TrimSpace(agent.Backstory), render(agent.Goal))
		prompt := buildPrompt(render(task.Description), task.ExpectedOutput, toolOutputs, result.Tasks)

		output, err := c.llm.Complete(ctx, instructions, prompt)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", task.Name, err)
		}

		c.logger.Info("Task completed", "task", task.Name, "output_length", len(output), "duration", time.Since(start))
		result.Tasks = append(result.Tasks, TaskOutput{
			Task:   task.Name,
			Title:  titleOf(task),
			Agent:  agent.Role,
			Output: output,
		})
	}

	return result, nil
}

type toolOutput struct {
	name   string
	output string
}

func (c *Crew) runTools(ctx context.Context, task Task, input string) ([]toolOutput, error) {
	outputs := make([]toolOutput, 0, len(task.Tools))
	for _, name := range task.Tools {
		out, err := c.tools[name].Run(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", name, err)
		}
		outputs = append(outputs, toolOutput{name: name, output: out})
	}
	return outputs, nil
}

func buildPrompt(description, expected string, toolOutputs []toolOutput, previous []TaskOutput) string {
	var b strings.Builder

	b.WriteString("Task:\n")
	b.WriteString(strings.TrimSpace(description))

	if expected != "" {
		b.WriteString("\n\nExpected output:\n")
		b.WriteString(strings.TrimSpace(expected))
	}

	for _, t := range toolOutputs {
		fmt.Fprintf(&b, "\n\nResult of tool %s:\n%s", t.name, t.output)
	}

	if len(previous) > 0 {
		b.WriteString("\n\nContext from previous tasks:")
		for _, p := range previous {
			fmt.Fprintf(&b, "\n\n### %s (%s)\n%s", p.Title, p.Agent, p.Output)
		}
	}

	return b.String()
}

func titleOf(t Task) string {
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}
