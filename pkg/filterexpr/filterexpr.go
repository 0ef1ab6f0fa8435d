// Package filterexpr compiles CEL expressions into in-memory predicates
// over content-item attributes, so callers can narrow recommendation
// requests declaratively (e.g. `difficulty <= 0.6 && "travel" in topics`).
package filterexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
)

// Variables every filter expression may reference.
const (
	VarID         = "id"
	VarTopics     = "topics"
	VarSkills     = "skills"
	VarDifficulty = "difficulty"
	VarMinutes    = "minutes"
)

// Predicate evaluates one item's attribute map.
type Predicate func(vars map[string]any) (bool, error)

// Compile parses and checks a filter expression. An empty expression
// yields a predicate that accepts everything.
func Compile(expr string) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return func(map[string]any) (bool, error) { return true, nil }, nil
	}

	env, err := cel.NewEnv(
		cel.Variable(VarID, cel.StringType),
		cel.Variable(VarTopics, cel.ListType(cel.StringType)),
		cel.Variable(VarSkills, cel.ListType(cel.StringType)),
		cel.Variable(VarDifficulty, cel.DoubleType),
		cel.Variable(VarMinutes, cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("build filter env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	return func(vars map[string]any) (bool, error) {
		out, _, err := prg.Eval(vars)
		if err != nil {
			return false, fmt.Errorf("evaluate filter: %w", err)
		}
		b, ok := out.Value().(bool)
		if !ok {
			return false, errors.New("filter must evaluate to a boolean")
		}
		return b, nil
	}, nil
}
