// Package tools holds the capabilities reviewers can call while working on a
// task.
package tools

import "context"

// Tool is a named capability that maps one text input to one text output.
type Tool interface {
	Name() string
	Description() string
	Run(ctx context.Context, input string) (string, error)
}
