package sqlite

import (
	"database/sql"
	"strings"

	"timegate/internal/domain"
)

// timesheetRow mirrors the timesheets table. Times and decimals travel
// as strings; mapping to the domain model happens in toDomain after the
// referenced scopes were loaded.
type timesheetRow struct {
	ID           int64
	UserID       int64
	ActivityID   sql.NullInt64
	ProjectID    sql.NullInt64
	Begin        string
	End          sql.NullString
	BreakSeconds int64
	Duration     sql.NullInt64
	Description  string
	Tags         string
	Billable     bool
	Exported     bool
	Rate         string
	HourlyRate   sql.NullString
	FixedRate    sql.NullString
}

func (r *timesheetRow) toDomain(user *domain.User, activity *domain.Activity, project *domain.Project) (*domain.Timesheet, error) {
	begin, err := ParseTimeFromDB(r.Begin)
	if err != nil {
		return nil, err
	}

	entry := &domain.Timesheet{
		ID:           r.ID,
		User:         user,
		Activity:     activity,
		Project:      project,
		Begin:        begin,
		BreakSeconds: r.BreakSeconds,
		Description:  r.Description,
		Billable:     r.Billable,
		Exported:     r.Exported,
	}

	if r.End.Valid {
		end, err := ParseTimeFromDB(r.End.String)
		if err != nil {
			return nil, err
		}
		entry.End = &end
	}
	if r.Duration.Valid {
		d := r.Duration.Int64
		entry.Duration = &d
	}
	if r.Tags != "" {
		entry.Tags = strings.Split(r.Tags, ",")
	}

	entry.Rate, err = ParseDecimalFromDB(r.Rate)
	if err != nil {
		return nil, err
	}
	if r.HourlyRate.Valid {
		hr, err := ParseDecimalFromDB(r.HourlyRate.String)
		if err != nil {
			return nil, err
		}
		entry.HourlyRate = &hr
	}
	if r.FixedRate.Valid {
		fr, err := ParseDecimalFromDB(r.FixedRate.String)
		if err != nil {
			return nil, err
		}
		entry.FixedRate = &fr
	}

	return entry, nil
}

// formatTags joins tags for storage; tags never contain commas.
func formatTags(tags []string) string {
	return strings.Join(tags, ",")
}

// budgetColumns is the shared budget column triple of a scope table.
type budgetColumns struct {
	TimeBudget  int64
	MoneyBudget string
	BudgetReset string
}

func (b budgetColumns) toDomain() (domain.Budgets, error) {
	money, err := ParseDecimalFromDB(b.MoneyBudget)
	if err != nil {
		return domain.Budgets{}, err
	}
	return domain.Budgets{
		TimeBudgetSeconds: b.TimeBudget,
		MoneyBudget:       money,
		ResetPolicy:       domain.BudgetResetPolicy(b.BudgetReset),
	}, nil
}

func budgetArgs(b domain.Budgets) []interface{} {
	return []interface{}{
		b.TimeBudgetSeconds,
		FormatDecimalForDB(b.MoneyBudget),
		string(b.ResetPolicy),
	}
}
