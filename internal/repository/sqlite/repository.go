package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"timegate/internal/budget"
	"timegate/internal/domain"
	"timegate/internal/errors"
	"timegate/internal/repository/sqlite/migrations"
	"timegate/internal/timeutil"

	_ "modernc.org/sqlite"
)

// SearchOptions contains all possible timesheet search parameters
type SearchOptions struct {
	UserID     *int64
	ActivityID *int64
	ProjectID  *int64
	Begin      *time.Time
	End        *time.Time
	// Running limits the result to entries without an end time.
	Running bool
}

// Repository defines the interface for database operations. All methods
// honor the context for cancellation; the repository adds no timeouts of
// its own.
type Repository interface {
	// Scope operations
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	CreateProject(ctx context.Context, project *domain.Project) error
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	CreateActivity(ctx context.Context, activity *domain.Activity) error
	GetActivity(ctx context.Context, id int64) (*domain.Activity, error)
	ListActivities(ctx context.Context) ([]*domain.Activity, error)

	// User operations
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByName(ctx context.Context, name string) (*domain.User, error)

	// Timesheet operations
	CreateTimesheet(ctx context.Context, entry *domain.Timesheet) error
	GetTimesheet(ctx context.Context, id int64) (*domain.Timesheet, error)
	UpdateTimesheet(ctx context.Context, entry *domain.Timesheet) error
	DeleteTimesheet(ctx context.Context, id int64) error
	SearchTimesheets(ctx context.Context, opts SearchOptions) ([]*domain.Timesheet, error)
	CountRunning(ctx context.Context, userID int64) (int, error)

	// Validation queries
	HasOverlappingEntry(ctx context.Context, userID int64, begin time.Time, end *time.Time, excludeEntryID int64) (bool, error)
	Consumed(ctx context.Context, scope budget.Scope, window *timeutil.Window, excludeEntryID int64) (budget.Usage, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// SQLite allows a single writer; a second pooled connection would
	// also see a different database entirely for :memory: paths.
	db.SetMaxOpenConns(1)

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const customerColumns = `id, name, visible, currency, timezone, time_budget, money_budget, budget_reset`

// CreateCustomer creates a new customer
func (r *SQLiteRepository) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	query := `
	INSERT INTO customers (name, visible, currency, timezone, time_budget, money_budget, budget_reset)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	args := []interface{}{customer.Name, customer.Visible, customer.Currency, customer.Timezone}
	args = append(args, budgetArgs(customer.Budgets)...)

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, args...)
	if err != nil {
		return err
	}
	customer.ID = id
	return nil
}

// GetCustomer retrieves a customer by ID
func (r *SQLiteRepository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanCustomer, "customer", id, id)
}

// ListCustomers retrieves all customers ordered by name
func (r *SQLiteRepository) ListCustomers(ctx context.Context) ([]*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, scanCustomers, "customers")
}

func scanCustomers(rows Rows) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	for rows.Next() {
		customer, err := ScanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

const projectColumns = `id, customer_id, name, visible, start_time, end_time, time_budget, money_budget, budget_reset`

// CreateProject creates a new project under its customer
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *domain.Project) error {
	if project.Customer == nil {
		return errors.NewInvalidInputError("customer", nil, "a project needs a customer")
	}

	query := `
	INSERT INTO projects (customer_id, name, visible, start_time, end_time, time_budget, money_budget, budget_reset)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	args := []interface{}{
		project.Customer.ID, project.Name, project.Visible,
		FormatTimePtrForDB(project.Start), FormatTimePtrForDB(project.End),
	}
	args = append(args, budgetArgs(project.Budgets)...)

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, args...)
	if err != nil {
		return err
	}
	project.ID = id
	return nil
}

// GetProject retrieves a project by ID with its customer attached
func (r *SQLiteRepository) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row, err := QuerySingle(ctx, r.db, query, ScanProjectRow, "project", id, id)
	if err != nil {
		return nil, err
	}

	customer, err := r.GetCustomer(ctx, row.CustomerID)
	if err != nil {
		return nil, err
	}

	project, err := row.toDomain(customer)
	if err != nil {
		return nil, HandleDatabaseError("map project", err)
	}
	return project, nil
}

// ListProjects retrieves all projects with their customers attached
func (r *SQLiteRepository) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY name ASC`
	rows, err := QueryMultiple(ctx, r.db, query, scanProjectRows, "projects")
	if err != nil {
		return nil, err
	}

	// customers are shared between projects, load each once
	customers := make(map[int64]*domain.Customer)
	var projects []*domain.Project
	for _, row := range rows {
		customer, ok := customers[row.CustomerID]
		if !ok {
			customer, err = r.GetCustomer(ctx, row.CustomerID)
			if err != nil {
				return nil, err
			}
			customers[row.CustomerID] = customer
		}
		project, err := row.toDomain(customer)
		if err != nil {
			return nil, HandleDatabaseError("map project", err)
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func scanProjectRows(rows Rows) ([]*projectRow, error) {
	var result []*projectRow
	for rows.Next() {
		row, err := ScanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

const activityColumns = `id, project_id, name, visible, time_budget, money_budget, budget_reset`

// CreateActivity creates a new activity. An activity without a project
// is global.
func (r *SQLiteRepository) CreateActivity(ctx context.Context, activity *domain.Activity) error {
	query := `
	INSERT INTO activities (project_id, name, visible, time_budget, money_budget, budget_reset)
	VALUES (?, ?, ?, ?, ?, ?)`

	var projectID interface{}
	if activity.Project != nil {
		projectID = activity.Project.ID
	}
	args := []interface{}{projectID, activity.Name, activity.Visible}
	args = append(args, budgetArgs(activity.Budgets)...)

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, args...)
	if err != nil {
		return err
	}
	activity.ID = id
	return nil
}

// GetActivity retrieves an activity by ID with its project attached
func (r *SQLiteRepository) GetActivity(ctx context.Context, id int64) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE id = ?`
	row, err := QuerySingle(ctx, r.db, query, ScanActivityRow, "activity", id, id)
	if err != nil {
		return nil, err
	}

	var project *domain.Project
	if row.ProjectID.Valid {
		project, err = r.GetProject(ctx, row.ProjectID.Int64)
		if err != nil {
			return nil, err
		}
	}

	activity, err := row.toDomain(project)
	if err != nil {
		return nil, HandleDatabaseError("map activity", err)
	}
	return activity, nil
}

// ListActivities retrieves all activities with their projects attached
func (r *SQLiteRepository) ListActivities(ctx context.Context) ([]*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities ORDER BY name ASC`
	rows, err := QueryMultiple(ctx, r.db, query, scanActivityRows, "activities")
	if err != nil {
		return nil, err
	}

	projects := make(map[int64]*domain.Project)
	var activities []*domain.Activity
	for _, row := range rows {
		var project *domain.Project
		if row.ProjectID.Valid {
			var ok bool
			project, ok = projects[row.ProjectID.Int64]
			if !ok {
				project, err = r.GetProject(ctx, row.ProjectID.Int64)
				if err != nil {
					return nil, err
				}
				projects[row.ProjectID.Int64] = project
			}
		}
		activity, err := row.toDomain(project)
		if err != nil {
			return nil, HandleDatabaseError("map activity", err)
		}
		activities = append(activities, activity)
	}
	return activities, nil
}

func scanActivityRows(rows Rows) ([]*activityRow, error) {
	var result []*activityRow
	for rows.Next() {
		row, err := ScanActivityRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateUser creates a new user
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (name, timezone) VALUES (?, ?)`
	id, err := ExecuteWithLastInsertID(ctx, r.db, query, user.Name, user.Timezone)
	if err != nil {
		return err
	}
	user.ID = id
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, name, timezone FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", id, id)
}

// GetUserByName retrieves a user by unique name
func (r *SQLiteRepository) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	query := `SELECT id, name, timezone FROM users WHERE name = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", name, name)
}

const timesheetColumns = `id, user_id, activity_id, project_id, begin_time, end_time, break_seconds,
	duration, description, tags, billable, exported, rate, hourly_rate, fixed_rate`

// CreateTimesheet creates a new timesheet entry
func (r *SQLiteRepository) CreateTimesheet(ctx context.Context, entry *domain.Timesheet) error {
	if entry.User == nil {
		return errors.NewInvalidInputError("user", nil, "a timesheet needs a user")
	}

	query := `
	INSERT INTO timesheets (user_id, activity_id, project_id, begin_time, end_time, break_seconds,
		duration, description, tags, billable, exported, rate, hourly_rate, fixed_rate)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, r.timesheetArgs(entry)...)
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// GetTimesheet retrieves a timesheet entry by ID with its user and
// scope hierarchy attached
func (r *SQLiteRepository) GetTimesheet(ctx context.Context, id int64) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = ?`
	row, err := QuerySingle(ctx, r.db, query, ScanTimesheetRow, "timesheet", id, id)
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, row)
}

// UpdateTimesheet updates an existing timesheet entry
func (r *SQLiteRepository) UpdateTimesheet(ctx context.Context, entry *domain.Timesheet) error {
	query := `
	UPDATE timesheets
	SET user_id = ?, activity_id = ?, project_id = ?, begin_time = ?, end_time = ?, break_seconds = ?,
		duration = ?, description = ?, tags = ?, billable = ?, exported = ?, rate = ?, hourly_rate = ?, fixed_rate = ?
	WHERE id = ?`

	args := append(r.timesheetArgs(entry), entry.ID)
	return ExecuteWithRowsAffected(ctx, r.db, query, "timesheet", entry.ID, args...)
}

// DeleteTimesheet deletes a timesheet entry by ID
func (r *SQLiteRepository) DeleteTimesheet(ctx context.Context, id int64) error {
	query := `DELETE FROM timesheets WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "timesheet", id, id)
}

// SearchTimesheets searches entries based on the provided options,
// ordered by begin time
func (r *SQLiteRepository) SearchTimesheets(ctx context.Context, opts SearchOptions) ([]*domain.Timesheet, error) {
	var conditions []string
	var args []interface{}

	if opts.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *opts.UserID)
	}
	if opts.ActivityID != nil {
		conditions = append(conditions, "activity_id = ?")
		args = append(args, *opts.ActivityID)
	}
	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.Begin != nil {
		conditions = append(conditions, "begin_time >= ?")
		args = append(args, FormatTimeForDB(*opts.Begin))
	}
	if opts.End != nil {
		conditions = append(conditions, "begin_time < ?")
		args = append(args, FormatTimeForDB(*opts.End))
	}
	if opts.Running {
		conditions = append(conditions, "end_time IS NULL")
	}

	query := `SELECT ` + timesheetColumns + ` FROM timesheets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY begin_time ASC"

	rows, err := QueryMultiple(ctx, r.db, query, ScanTimesheetRows, "timesheets", args...)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.Timesheet, 0, len(rows))
	for _, row := range rows {
		entry, err := r.hydrate(ctx, row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CountRunning counts the user's entries without an end time
func (r *SQLiteRepository) CountRunning(ctx context.Context, userID int64) (int, error) {
	query := `SELECT COUNT(*) FROM timesheets WHERE user_id = ? AND end_time IS NULL`

	var count int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, HandleDatabaseError("count running timesheets", err)
	}
	return count, nil
}

// HasOverlappingEntry reports whether another entry of the user
// intersects the closed-open interval [begin, end). A nil end means the
// candidate is still running and extends forever.
func (r *SQLiteRepository) HasOverlappingEntry(ctx context.Context, userID int64, begin time.Time, end *time.Time, excludeEntryID int64) (bool, error) {
	conditions := []string{
		"user_id = ?",
		"id != ?",
		"(end_time IS NULL OR end_time > ?)",
	}
	args := []interface{}{userID, excludeEntryID, FormatTimeForDB(begin)}

	if end != nil {
		conditions = append(conditions, "begin_time < ?")
		args = append(args, FormatTimeForDB(*end))
	}

	query := `SELECT EXISTS(SELECT 1 FROM timesheets WHERE ` + strings.Join(conditions, " AND ") + `)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, HandleDatabaseError("check overlapping timesheets", err)
	}
	return exists, nil
}

// Consumed aggregates the persisted consumption of one budget scope.
// Stored rates are summed as decimals in Go; they never pass through a
// float column.
func (r *SQLiteRepository) Consumed(ctx context.Context, scope budget.Scope, window *timeutil.Window, excludeEntryID int64) (budget.Usage, error) {
	var conditions []string
	var args []interface{}

	switch scope.Kind {
	case budget.ScopeActivity:
		conditions = append(conditions, "activity_id = ?")
	case budget.ScopeProject:
		conditions = append(conditions, "project_id = ?")
	case budget.ScopeCustomer:
		conditions = append(conditions, "project_id IN (SELECT id FROM projects WHERE customer_id = ?)")
	default:
		return budget.Usage{}, errors.NewInvalidInputError("scope", string(scope.Kind), "unknown budget scope kind")
	}
	args = append(args, scope.ID)

	conditions = append(conditions, "id != ?", "end_time IS NOT NULL")
	args = append(args, excludeEntryID)

	if window != nil {
		conditions = append(conditions, "begin_time >= ?", "begin_time < ?")
		args = append(args, FormatTimeForDB(window.Start), FormatTimeForDB(window.End))
	}

	query := `SELECT duration, billable, rate FROM timesheets WHERE ` + strings.Join(conditions, " AND ")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return budget.Usage{}, HandleDatabaseError("query budget consumption", err)
	}
	defer rows.Close()

	var usage budget.Usage
	for rows.Next() {
		var duration sql.NullInt64
		var billable bool
		var rate string
		if err := rows.Scan(&duration, &billable, &rate); err != nil {
			return budget.Usage{}, HandleDatabaseError("scan budget consumption", err)
		}

		amount, err := ParseDecimalFromDB(rate)
		if err != nil {
			return budget.Usage{}, HandleDatabaseError("parse stored rate", err)
		}

		usage.DurationSeconds += duration.Int64
		usage.Amount = usage.Amount.Add(amount)
		if billable {
			usage.BillableDurationSeconds += duration.Int64
			usage.BillableAmount = usage.BillableAmount.Add(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return budget.Usage{}, HandleDatabaseError("scan budget consumption", err)
	}
	return usage, nil
}

func (r *SQLiteRepository) timesheetArgs(entry *domain.Timesheet) []interface{} {
	var activityID, projectID interface{}
	if entry.Activity != nil {
		activityID = entry.Activity.ID
	}
	if entry.Project != nil {
		projectID = entry.Project.ID
	}

	var duration interface{}
	if entry.Duration != nil {
		duration = *entry.Duration
	}

	return []interface{}{
		entry.User.ID,
		activityID,
		projectID,
		FormatTimeForDB(entry.Begin),
		FormatTimePtrForDB(entry.End),
		entry.BreakSeconds,
		duration,
		entry.Description,
		formatTags(entry.Tags),
		entry.Billable,
		entry.Exported,
		FormatDecimalForDB(entry.Rate),
		FormatDecimalPtrForDB(entry.HourlyRate),
		FormatDecimalPtrForDB(entry.FixedRate),
	}
}

func (r *SQLiteRepository) hydrate(ctx context.Context, row *timesheetRow) (*domain.Timesheet, error) {
	user, err := r.GetUser(ctx, row.UserID)
	if err != nil {
		return nil, err
	}

	var activity *domain.Activity
	if row.ActivityID.Valid {
		activity, err = r.GetActivity(ctx, row.ActivityID.Int64)
		if err != nil {
			return nil, err
		}
	}

	var project *domain.Project
	if row.ProjectID.Valid {
		// reuse the project already loaded through the activity
		if activity != nil && activity.Project != nil && activity.Project.ID == row.ProjectID.Int64 {
			project = activity.Project
		} else {
			project, err = r.GetProject(ctx, row.ProjectID.Int64)
			if err != nil {
				return nil, err
			}
		}
	}

	entry, err := row.toDomain(user, activity, project)
	if err != nil {
		return nil, HandleDatabaseError("map timesheet", err)
	}
	return entry, nil
}
