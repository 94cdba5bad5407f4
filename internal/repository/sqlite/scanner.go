package sqlite

import (
	"database/sql"

	"timegate/internal/domain"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTimesheetRow scans one timesheets row into its raw form
func ScanTimesheetRow(scanner Scanner) (*timesheetRow, error) {
	row := &timesheetRow{}
	err := scanner.Scan(
		&row.ID,
		&row.UserID,
		&row.ActivityID,
		&row.ProjectID,
		&row.Begin,
		&row.End,
		&row.BreakSeconds,
		&row.Duration,
		&row.Description,
		&row.Tags,
		&row.Billable,
		&row.Exported,
		&row.Rate,
		&row.HourlyRate,
		&row.FixedRate,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ScanTimesheetRows scans multiple timesheets rows
func ScanTimesheetRows(rows Rows) ([]*timesheetRow, error) {
	var entries []*timesheetRow
	for rows.Next() {
		row, err := ScanTimesheetRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanCustomer scans a single customer including its budget columns
func ScanCustomer(scanner Scanner) (*domain.Customer, error) {
	customer := &domain.Customer{}
	var budgets budgetColumns

	err := scanner.Scan(
		&customer.ID,
		&customer.Name,
		&customer.Visible,
		&customer.Currency,
		&customer.Timezone,
		&budgets.TimeBudget,
		&budgets.MoneyBudget,
		&budgets.BudgetReset,
	)
	if err != nil {
		return nil, err
	}

	customer.Budgets, err = budgets.toDomain()
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// projectRow carries the raw project columns before the customer is attached
type projectRow struct {
	ID         int64
	CustomerID int64
	Name       string
	Visible    bool
	Start      sql.NullString
	End        sql.NullString
	Budgets    budgetColumns
}

func (r *projectRow) toDomain(customer *domain.Customer) (*domain.Project, error) {
	project := &domain.Project{
		ID:       r.ID,
		Name:     r.Name,
		Customer: customer,
		Visible:  r.Visible,
	}

	if r.Start.Valid {
		start, err := ParseTimeFromDB(r.Start.String)
		if err != nil {
			return nil, err
		}
		project.Start = &start
	}
	if r.End.Valid {
		end, err := ParseTimeFromDB(r.End.String)
		if err != nil {
			return nil, err
		}
		project.End = &end
	}

	var err error
	project.Budgets, err = r.Budgets.toDomain()
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ScanProjectRow scans a single project in its raw form
func ScanProjectRow(scanner Scanner) (*projectRow, error) {
	row := &projectRow{}
	err := scanner.Scan(
		&row.ID,
		&row.CustomerID,
		&row.Name,
		&row.Visible,
		&row.Start,
		&row.End,
		&row.Budgets.TimeBudget,
		&row.Budgets.MoneyBudget,
		&row.Budgets.BudgetReset,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// activityRow carries the raw activity columns before the project is attached
type activityRow struct {
	ID        int64
	ProjectID sql.NullInt64
	Name      string
	Visible   bool
	Budgets   budgetColumns
}

func (r *activityRow) toDomain(project *domain.Project) (*domain.Activity, error) {
	activity := &domain.Activity{
		ID:      r.ID,
		Name:    r.Name,
		Project: project,
		Visible: r.Visible,
	}

	var err error
	activity.Budgets, err = r.Budgets.toDomain()
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// ScanActivityRow scans a single activity in its raw form
func ScanActivityRow(scanner Scanner) (*activityRow, error) {
	row := &activityRow{}
	err := scanner.Scan(
		&row.ID,
		&row.ProjectID,
		&row.Name,
		&row.Visible,
		&row.Budgets.TimeBudget,
		&row.Budgets.MoneyBudget,
		&row.Budgets.BudgetReset,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ScanUser scans a single user
func ScanUser(scanner Scanner) (*domain.User, error) {
	user := &domain.User{}
	err := scanner.Scan(&user.ID, &user.Name, &user.Timezone)
	if err != nil {
		return nil, err
	}
	return user, nil
}
