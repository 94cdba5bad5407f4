package api

import (
	"time"

	"timegate/internal/budget"
	"timegate/internal/domain"
	"timegate/internal/timeutil"
	"timegate/internal/validation"
)

// ViolationDTO is the wire form of one rule failure.
type ViolationDTO struct {
	Field   string            `json:"field"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Params  map[string]string `json:"params,omitempty"`
}

// ResultDTO is the wire form of a validation outcome.
type ResultDTO struct {
	Valid      bool           `json:"valid"`
	Violations []ViolationDTO `json:"violations"`
}

// NewResultDTO converts a rule result for transport. The violation
// order of the result is preserved.
func NewResultDTO(res *validation.Result) *ResultDTO {
	dto := &ResultDTO{Valid: res.IsValid(), Violations: []ViolationDTO{}}
	for _, v := range res.Violations() {
		dto.Violations = append(dto.Violations, ViolationDTO{
			Field:   v.Field,
			Code:    v.Code.String(),
			Message: v.Message,
			Params:  v.Params,
		})
	}
	return dto
}

// TimesheetDTO is the wire form of one entry. Times are RFC3339,
// monetary values are decimal strings.
type TimesheetDTO struct {
	ID           int64    `json:"id"`
	User         string   `json:"user"`
	Activity     string   `json:"activity,omitempty"`
	Project      string   `json:"project,omitempty"`
	Customer     string   `json:"customer,omitempty"`
	Begin        string   `json:"begin"`
	End          string   `json:"end,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	BreakSeconds int64    `json:"break,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Billable     bool     `json:"billable"`
	Exported     bool     `json:"exported"`
	Rate         string   `json:"rate"`
	Running      bool     `json:"running"`
}

// NewTimesheetDTO converts an entry for transport.
func NewTimesheetDTO(entry *domain.Timesheet) *TimesheetDTO {
	dto := &TimesheetDTO{
		ID:           entry.ID,
		Begin:        entry.Begin.Format(time.RFC3339),
		BreakSeconds: entry.BreakSeconds,
		Description:  entry.Description,
		Tags:         entry.Tags,
		Billable:     entry.Billable,
		Exported:     entry.Exported,
		Rate:         entry.Rate.String(),
		Running:      entry.IsRunning(),
	}
	if entry.User != nil {
		dto.User = entry.User.Name
	}
	if entry.Activity != nil {
		dto.Activity = entry.Activity.Name
	}
	if entry.Project != nil {
		dto.Project = entry.Project.Name
		if entry.Project.Customer != nil {
			dto.Customer = entry.Project.Customer.Name
		}
	}
	if entry.End != nil {
		dto.End = entry.End.Format(time.RFC3339)
	}
	if entry.Duration != nil {
		dto.Duration = timeutil.FormatHoursMinutes(*entry.Duration)
	}
	return dto
}

// OutcomeDTO reports a mutating operation: either the saved entry or
// the violations that rejected it.
type OutcomeDTO struct {
	Saved  bool          `json:"saved"`
	Entry  *TimesheetDTO `json:"entry,omitempty"`
	Result *ResultDTO    `json:"result"`
}

// BudgetDTO is the wire form of a scope's budget statistic. Durations
// use the H:MM display format, money is formatted with the customer
// currency.
type BudgetDTO struct {
	Scope          string `json:"scope"`
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Monthly        bool   `json:"monthly"`
	WindowStart    string `json:"windowStart,omitempty"`
	WindowEnd      string `json:"windowEnd,omitempty"`
	TimeBudget     string `json:"timeBudget,omitempty"`
	TimeConsumed   string `json:"timeConsumed,omitempty"`
	TimeRemaining  string `json:"timeRemaining,omitempty"`
	MoneyBudget    string `json:"moneyBudget,omitempty"`
	MoneyConsumed  string `json:"moneyConsumed,omitempty"`
	MoneyRemaining string `json:"moneyRemaining,omitempty"`
}

// NewBudgetDTO converts a statistic for transport. Unconfigured budget
// dimensions stay empty.
func NewBudgetDTO(stat *budget.Statistic, name, currency string) *BudgetDTO {
	dto := &BudgetDTO{
		Scope:   string(stat.Scope.Kind),
		ID:      stat.Scope.ID,
		Name:    name,
		Monthly: stat.Window != nil,
	}
	if stat.Window != nil {
		dto.WindowStart = stat.Window.Start.Format(time.RFC3339)
		dto.WindowEnd = stat.Window.End.Format(time.RFC3339)
	}
	if stat.Budgets.HasTimeBudget() {
		dto.TimeBudget = timeutil.FormatHoursMinutes(stat.Budgets.TimeBudgetSeconds)
		dto.TimeConsumed = timeutil.FormatHoursMinutes(stat.Consumed.DurationSeconds)
		dto.TimeRemaining = timeutil.FormatHoursMinutes(stat.TimeRemaining())
	}
	if stat.Budgets.HasMoneyBudget() {
		dto.MoneyBudget = budget.FormatMoney(stat.Budgets.MoneyBudget, currency)
		dto.MoneyConsumed = budget.FormatMoney(stat.Consumed.Amount, currency)
		dto.MoneyRemaining = budget.FormatMoney(stat.MoneyRemaining(), currency)
	}
	return dto
}
