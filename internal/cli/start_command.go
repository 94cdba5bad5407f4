package cli

import (
	"context"
	"fmt"

	"timegate/internal/api"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler

	Activity    string
	Project     string
	Description string
	Tags        []string
	Billable    bool
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the start command
func (c *StartCommand) Execute(ctx context.Context, args []string) error {
	candidate := &api.Candidate{
		User:        args[0],
		Activity:    c.Activity,
		Project:     c.Project,
		Description: c.Description,
		Tags:        c.Tags,
		Billable:    c.Billable,
	}

	outcome, err := c.app.api.Start(ctx, candidate)
	if err != nil {
		return c.errorHandler.Handle("start tracking", err)
	}
	if !outcome.Saved {
		printViolations(c.app.out, outcome.Result)
		return fmt.Errorf("the entry was rejected")
	}

	fmt.Fprintf(c.app.out, "Started entry %d for %s at %s\n",
		outcome.Entry.ID, outcome.Entry.User, outcome.Entry.Begin)
	return nil
}
