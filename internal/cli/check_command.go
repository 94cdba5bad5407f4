package cli

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"timegate/internal/api"
	"timegate/internal/errors"
)

// CheckCommand validates a YAML-described candidate entry against the
// database and the configured rules, without saving anything.
type CheckCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewCheckCommand creates a new check command handler
func NewCheckCommand(app *App) *CheckCommand {
	return &CheckCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the check command
func (c *CheckCommand) Execute(ctx context.Context, args []string) error {
	candidate, err := loadCandidateFile(args[0])
	if err != nil {
		return err
	}

	result, err := c.app.api.Check(ctx, candidate)
	if err != nil {
		return c.errorHandler.Handle("check entry", err)
	}

	if result.Valid {
		fmt.Fprintln(c.app.out, "OK: the entry passes all rules")
		return nil
	}

	printViolations(c.app.out, result)
	return fmt.Errorf("%d rule(s) failed", len(result.Violations))
}

func loadCandidateFile(path string) (*api.Candidate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInvalidInputError("file", path, "cannot read the candidate file")
	}

	var candidate api.Candidate
	if err := yaml.Unmarshal(data, &candidate); err != nil {
		return nil, errors.NewInvalidInputError("file", path, "the candidate file is not valid YAML")
	}
	return &candidate, nil
}
