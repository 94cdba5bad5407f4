package cli

import (
	"context"
	"fmt"
)

// RestartCommand handles the restart command
type RestartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRestartCommand creates a new restart command handler
func NewRestartCommand(app *App) *RestartCommand {
	return &RestartCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the restart command
func (c *RestartCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	outcome, err := c.app.api.Restart(ctx, id)
	if err != nil {
		return c.errorHandler.Handle("restart tracking", err)
	}
	if !outcome.Saved {
		printViolations(c.app.out, outcome.Result)
		return fmt.Errorf("the entry was rejected")
	}

	fmt.Fprintf(c.app.out, "Started entry %d for %s at %s\n",
		outcome.Entry.ID, outcome.Entry.User, outcome.Entry.Begin)
	return nil
}
