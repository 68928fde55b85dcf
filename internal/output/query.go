package output

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/goccy/go-json"
	"github.com/itchyny/gojq"

	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
)

// filterResult holds what remains after --query/--jsonpath. applied is false
// when no filter ran, in which case values is the original data.
type filterResult struct {
	values  []any
	applied bool
}

func applyFilters(ctx context.Context, data any) (filterResult, error) {
	query, path := QueryFromContext(ctx), JSONPathFromContext(ctx)
	switch {
	case query != "" && path != "":
		return filterResult{}, clierrors.NewUserError("--query and --jsonpath cannot be combined", "Pick one filter")
	case query != "":
		values, err := RunQuery(query, data)
		return filterResult{values: values, applied: true}, err
	case path != "":
		value, err := RunJSONPath(path, data)
		return filterResult{values: []any{value}, applied: true}, err
	default:
		return filterResult{values: []any{data}}, nil
	}
}

// RunQuery evaluates a jq expression against the JSON form of data.
func RunQuery(query string, data any) ([]any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, invalidQuery(err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, invalidQuery(err)
	}
	input, err := toGeneric(data)
	if err != nil {
		return nil, err
	}

	var out []any
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			return out, nil
		}
		if qerr, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", qerr)
		}
		out = append(out, v)
	}
}

func invalidQuery(err error) error {
	suggestion := "Example: --query '.results[].id'"
	if strings.Contains(strings.ToLower(err.Error()), "unexpected eof") {
		suggestion = "The query looks incomplete; quote it fully"
	}
	return clierrors.WrapUserError(err, "invalid --query", suggestion)
}

// RunJSONPath evaluates a JSONPath expression against the JSON form of data.
// A leading "$" is added when missing.
func RunJSONPath(path string, data any) (any, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, clierrors.NewUserError("invalid --jsonpath value", "Example: --jsonpath '$.results[0].id'")
	}
	if !strings.HasPrefix(path, "$") {
		path = "$." + strings.TrimPrefix(path, ".")
	}
	input, err := toGeneric(data)
	if err != nil {
		return nil, err
	}
	v, err := jsonpath.Get(path, input)
	if err != nil {
		return nil, clierrors.WrapUserError(err, "invalid --jsonpath value", "Example: --jsonpath '$.results[0].id'")
	}
	return v, nil
}

// toGeneric converts data to the map/slice/float64 form jq and JSONPath work on.
func toGeneric(data any) (any, error) {
	switch data.(type) {
	case string, float64, bool, nil:
		return data, nil
	}
	buf, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	var out any
	if err := json.Unmarshal(buf, &out); err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	return out, nil
}
