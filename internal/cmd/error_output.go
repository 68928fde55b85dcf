package cmd

import (
	"errors"
	"fmt"
	"io"

	clierrors "github.com/salmonumbrella/notion-sdk-go/internal/errors"
	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

func printCommandError(w io.Writer, err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)

	var decErr *model.DecodeError
	if errors.As(err, &decErr) && decErr.Path != "" {
		_, _ = fmt.Fprintf(w, "Location: %s\n", decErr.Path)
	}
	if suggestion := clierrors.UserSuggestion(err); suggestion != "" {
		_, _ = fmt.Fprintf(w, "Hint: %s\n", suggestion)
	}
}
