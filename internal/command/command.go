// Package command routes free-text operator commands to a structured intent.
// Two interpreters share the same result contract: a delegated mode backed
// by an OpenAI-compatible model, and a deterministic heuristic used when no
// AI credentials are configured. The mode is chosen once at construction.
package command

import (
	"context"
	"fmt"
	"strings"

	"unidash/internal/models"
	"unidash/internal/store"
)

// Interpreter classifies one command string. Implementations never return an
// error; every failure degrades to a well-defined unknown result.
type Interpreter interface {
	Interpret(ctx context.Context, command string) models.CommandResponse
}

func openingMessage(name string) string {
	return fmt.Sprintf("Opening %s in a new tab...", name)
}

func noURLMessage(name string) string {
	return fmt.Sprintf("%s doesn't have a URL configured.", name)
}

// serviceRoster renders the known services as "id: name (category)" entries
// for the delegated-mode system prompt.
func serviceRoster(st *store.Store) string {
	services := st.ListServices()
	entries := make([]string, 0, len(services))
	for _, svc := range services {
		entries = append(entries, fmt.Sprintf("%s: %s (%s)", svc.ID, svc.Name, svc.Category))
	}
	return strings.Join(entries, ", ")
}
