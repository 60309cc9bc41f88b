// Package policy decides which API operations require the shared credential.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Engine is the OPA policy engine for endpoint authentication.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.endpoint_auth.require_key"),
		rego.Module("endpoint_auth.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// RequiresKey reports whether the operation identified by HTTP method and
// registered route needs the shared API key. Evaluation failures fail
// closed.
func (e *Engine) RequiresKey(ctx context.Context, method, route string) (bool, error) {
	input := map[string]interface{}{
		"method": method,
		"route":  route,
	}
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return true, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return true, nil
	}

	required, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return true, nil
	}
	return required, nil
}

// DefaultPolicy is the default endpoint auth policy. The credential check is
// per operation, not per resource: GET and DELETE share a route and diverge
// here by method.
const DefaultPolicy = `
package endpoint_auth

default require_key := false

require_key if {
	input.method == "POST"
	input.route == "/conversations"
}

require_key if {
	input.method == "DELETE"
	input.route == "/conversations/:id"
}

require_key if {
	input.method == "POST"
	input.route == "/conversations/:id/messages"
}

require_key if {
	input.method == "DELETE"
	input.route == "/conversations/:id/messages/:message_id"
}
`
