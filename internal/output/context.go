package output

import "context"

type (
	formatKey      struct{}
	queryKey       struct{}
	jsonPathKey    struct{}
	compactJSONKey struct{}
)

// WithFormat attaches the output format to ctx.
func WithFormat(ctx context.Context, format Format) context.Context {
	return context.WithValue(ctx, formatKey{}, format)
}

// FormatFromContext returns the output format, FormatText when unset.
func FormatFromContext(ctx context.Context) Format {
	if v, ok := ctx.Value(formatKey{}).(Format); ok {
		return v
	}
	return FormatText
}

// WithQuery attaches a jq expression to ctx.
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

func QueryFromContext(ctx context.Context) string {
	q, _ := ctx.Value(queryKey{}).(string)
	return q
}

// WithJSONPath attaches a JSONPath expression to ctx.
func WithJSONPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, jsonPathKey{}, path)
}

func JSONPathFromContext(ctx context.Context) string {
	p, _ := ctx.Value(jsonPathKey{}).(string)
	return p
}

// WithCompactJSON selects single-line JSON.
func WithCompactJSON(ctx context.Context, compact bool) context.Context {
	return context.WithValue(ctx, compactJSONKey{}, compact)
}

func CompactJSONFromContext(ctx context.Context) bool {
	c, _ := ctx.Value(compactJSONKey{}).(bool)
	return c
}
