package cli

import (
	"context"
	"fmt"
	"time"
)

// StopCommand handles the stop command
type StopCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStopCommand creates a new stop command handler
func NewStopCommand(app *App) *StopCommand {
	return &StopCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the stop command
func (c *StopCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	outcome, err := c.app.api.Stop(ctx, id, time.Time{})
	if err != nil {
		return c.errorHandler.Handle("stop tracking", err)
	}
	if !outcome.Saved {
		printViolations(c.app.out, outcome.Result)
		return fmt.Errorf("the entry was rejected")
	}

	fmt.Fprintf(c.app.out, "Stopped entry %d after %s\n", outcome.Entry.ID, outcome.Entry.Duration)
	return nil
}
