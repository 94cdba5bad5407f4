package cli

import (
	"context"
	"fmt"
	"strings"
)

// ListCommand handles the list command
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Running bool
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	user := ""
	if len(args) > 0 {
		user = args[0]
	}

	entries, err := c.app.api.List(ctx, user, c.Running)
	if err != nil {
		return c.errorHandler.Handle("list entries", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.app.out, "No entries found")
		return nil
	}

	for _, entry := range entries {
		state := entry.Duration
		if entry.Running {
			state = "running"
		}
		line := fmt.Sprintf("%4d  %-12s %-20s %s  %s",
			entry.ID, entry.User, scopeLabel(entry.Project, entry.Activity), entry.Begin, state)
		if entry.Description != "" {
			line += "  " + entry.Description
		}
		fmt.Fprintln(c.app.out, line)
	}
	return nil
}

func scopeLabel(project, activity string) string {
	parts := make([]string, 0, 2)
	if project != "" {
		parts = append(parts, project)
	}
	if activity != "" {
		parts = append(parts, activity)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "/")
}
