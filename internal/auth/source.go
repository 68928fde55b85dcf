package auth

import (
	"fmt"
	"os"
	"strings"
)

// ResolveToken turns a token_source into a token.
//
//   - "" or "keyring": the keyring entry for workspace
//   - "env:VAR": the value of VAR
//   - anything else: the literal token
func ResolveToken(source, workspace string) (string, error) {
	switch {
	case source == "" || source == "keyring":
		store, err := Open()
		if err != nil {
			return "", err
		}
		rec, err := store.Load(workspace)
		if err != nil {
			return "", err
		}
		return rec.Token, nil
	case strings.HasPrefix(source, "env:"):
		name := strings.TrimPrefix(source, "env:")
		token := os.Getenv(name)
		if token == "" {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
		return token, nil
	default:
		return source, nil
	}
}
