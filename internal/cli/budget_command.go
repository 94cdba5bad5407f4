package cli

import (
	"context"
	"fmt"
)

// BudgetCommand prints the consumption statistic of one scope.
type BudgetCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewBudgetCommand creates a new budget command handler
func NewBudgetCommand(app *App) *BudgetCommand {
	return &BudgetCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the budget command
func (c *BudgetCommand) Execute(ctx context.Context, args []string) error {
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	dto, err := c.app.api.Budget(ctx, args[0], id)
	if err != nil {
		return c.errorHandler.Handle("load budget statistic", err)
	}

	fmt.Fprintf(c.app.out, "%s %q (id %d)\n", dto.Scope, dto.Name, dto.ID)
	if dto.Monthly {
		fmt.Fprintf(c.app.out, "  resets monthly, current window %s to %s\n", dto.WindowStart, dto.WindowEnd)
	}
	if dto.TimeBudget != "" {
		fmt.Fprintf(c.app.out, "  time:  %s used of %s, %s remaining\n", dto.TimeConsumed, dto.TimeBudget, dto.TimeRemaining)
	}
	if dto.MoneyBudget != "" {
		fmt.Fprintf(c.app.out, "  money: %s used of %s, %s remaining\n", dto.MoneyConsumed, dto.MoneyBudget, dto.MoneyRemaining)
	}
	if dto.TimeBudget == "" && dto.MoneyBudget == "" {
		fmt.Fprintln(c.app.out, "  no budget configured")
	}
	return nil
}
