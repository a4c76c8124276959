package debugs

import (
	"context"

	"github.com/satorilang/satori/logs"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Eval evaluates a starlark expression against a snapshot of engine
// state, for the -debug-eval flag.
type Eval func(ctx context.Context, expr string, globals map[string]any) (string, error)

func (Module) Eval(
	logger logs.Logger,
) Eval {
	return func(ctx context.Context, expr string, globals map[string]any) (string, error) {
		mappings := make(starlark.StringDict)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: "debug-eval",
		}
		opts := &syntax.FileOptions{
			Set: true,
		}
		parsedExpr, err := opts.ParseExpr("<expr>", expr, 0)
		if err != nil {
			return "", err
		}
		value, err := starlark.EvalExprOptions(opts, thread, parsedExpr, mappings)
		if err != nil {
			return "", err
		}

		logger.DebugContext(ctx, "debug eval",
			"expr", expr,
		)
		return value.String(), nil
	}
}
