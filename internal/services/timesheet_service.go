package services

import (
	"context"
	"time"

	"timegate/internal/config"
	"timegate/internal/domain"
	"timegate/internal/errors"
	"timegate/internal/logging"
	"timegate/internal/repository/sqlite"
	"timegate/internal/validation"
)

// timesheetServiceImpl implements the TimesheetService interface
type timesheetServiceImpl struct {
	repo   sqlite.Repository
	cfg    *config.Config
	runner *validation.Runner

	// now is swapped out in tests
	now func() time.Time
}

// NewTimesheetService creates a new TimesheetService instance
func NewTimesheetService(repo sqlite.Repository, cfg *config.Config) TimesheetService {
	return &timesheetServiceImpl{
		repo:   repo,
		cfg:    cfg,
		runner: validation.NewTimesheetRunner(),
		now:    time.Now,
	}
}

// Start begins tracking a new running entry. When the user already has
// as many running entries as the configured hard limit allows, the
// oldest ones are stopped first.
func (s *timesheetServiceImpl) Start(ctx context.Context, req StartRequest, perms validation.Permissions) (*SaveOutcome, error) {
	if req.User == nil {
		return nil, errors.NewInvalidInputError("user", nil, "starting requires a user")
	}

	begin := req.Begin
	if begin.IsZero() {
		begin = s.now()
	}

	entry := &domain.Timesheet{
		User:        req.User,
		Activity:    req.Activity,
		Project:     req.Project,
		Begin:       begin,
		Description: req.Description,
		Tags:        req.Tags,
		Billable:    req.Billable,
	}

	result, err := s.Validate(ctx, entry, perms)
	if err != nil {
		return nil, err
	}
	if !result.IsValid() {
		return &SaveOutcome{Result: result}, nil
	}

	if err := s.enforceActiveLimit(ctx, req.User.ID); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTimesheet(ctx, entry); err != nil {
		return nil, err
	}
	return &SaveOutcome{Entry: entry, Result: result}, nil
}

// Stop finishes a running entry and freezes its duration and rate.
func (s *timesheetServiceImpl) Stop(ctx context.Context, id int64, end time.Time, perms validation.Permissions) (*SaveOutcome, error) {
	original, err := s.repo.GetTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}
	if !original.IsRunning() {
		return nil, errors.NewValidationError("timesheet is not running", nil)
	}
	if end.IsZero() {
		end = s.now()
	}

	entry := *original
	entry.Stop(end)

	result, err := s.validateAgainst(ctx, &entry, original, perms)
	if err != nil {
		return nil, err
	}
	if !result.IsValid() {
		return &SaveOutcome{Result: result}, nil
	}

	s.freezeFinancials(&entry)
	if err := s.repo.UpdateTimesheet(ctx, &entry); err != nil {
		return nil, err
	}
	return &SaveOutcome{Entry: &entry, Result: result}, nil
}

// Restart starts a fresh running copy of an existing entry.
func (s *timesheetServiceImpl) Restart(ctx context.Context, id int64, begin time.Time, perms validation.Permissions) (*SaveOutcome, error) {
	original, err := s.repo.GetTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}
	if begin.IsZero() {
		begin = s.now()
	}

	entry := original.Restart(begin)

	result, err := s.Validate(ctx, entry, perms)
	if err != nil {
		return nil, err
	}
	if !result.IsValid() {
		return &SaveOutcome{Result: result}, nil
	}

	if err := s.enforceActiveLimit(ctx, entry.User.ID); err != nil {
		return nil, err
	}

	if err := s.repo.CreateTimesheet(ctx, entry); err != nil {
		return nil, err
	}
	return &SaveOutcome{Entry: entry, Result: result}, nil
}

// Update validates and persists changes to an existing entry.
func (s *timesheetServiceImpl) Update(ctx context.Context, entry *domain.Timesheet, perms validation.Permissions) (*SaveOutcome, error) {
	if entry.IsNew() {
		return nil, errors.NewInvalidInputError("id", entry.ID, "updating requires a persisted entry")
	}

	original, err := s.repo.GetTimesheet(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	result, err := s.validateAgainst(ctx, entry, original, perms)
	if err != nil {
		return nil, err
	}
	if !result.IsValid() {
		return &SaveOutcome{Result: result}, nil
	}

	if !entry.IsRunning() {
		s.freezeFinancials(entry)
	}
	if err := s.repo.UpdateTimesheet(ctx, entry); err != nil {
		return nil, err
	}
	return &SaveOutcome{Entry: entry, Result: result}, nil
}

// Delete removes an entry. Exported entries can only be deleted by
// callers allowed to modify exported records.
func (s *timesheetServiceImpl) Delete(ctx context.Context, id int64, perms validation.Permissions) error {
	entry, err := s.repo.GetTimesheet(ctx, id)
	if err != nil {
		return err
	}
	if entry.Exported && !perms.EditExported {
		return errors.NewPermissionError("delete", "exported timesheet")
	}
	return s.repo.DeleteTimesheet(ctx, id)
}

// Get retrieves one entry with its scope hierarchy.
func (s *timesheetServiceImpl) Get(ctx context.Context, id int64) (*domain.Timesheet, error) {
	return s.repo.GetTimesheet(ctx, id)
}

// Search lists entries matching the options.
func (s *timesheetServiceImpl) Search(ctx context.Context, opts sqlite.SearchOptions) ([]*domain.Timesheet, error) {
	return s.repo.SearchTimesheets(ctx, opts)
}

// Validate runs the rule set against the entry without persisting. For
// persisted entries the stored original is loaded for comparison.
func (s *timesheetServiceImpl) Validate(ctx context.Context, entry *domain.Timesheet, perms validation.Permissions) (*validation.Result, error) {
	var original *domain.Timesheet
	if entry != nil && !entry.IsNew() {
		stored, err := s.repo.GetTimesheet(ctx, entry.ID)
		if err != nil {
			return nil, err
		}
		original = stored
	}
	return s.validateAgainst(ctx, entry, original, perms)
}

func (s *timesheetServiceImpl) validateAgainst(ctx context.Context, entry, original *domain.Timesheet, perms validation.Permissions) (*validation.Result, error) {
	rctx := &validation.Context{
		Config:      s.cfg,
		Permissions: perms,
		Now:         s.now(),
		Original:    original,
		Overlaps:    s.repo,
		Budgets:     s.repo,
	}
	return s.runner.Validate(ctx, entry, rctx)
}

// MultiUpdate applies a batch edit. The DTO is checked for consistency
// first; then every target runs through the full rule set and is only
// saved when it passes.
func (s *timesheetServiceImpl) MultiUpdate(ctx context.Context, dto *domain.MultiUpdate, perms validation.Permissions) (*BatchOutcome, *validation.Result, error) {
	if res := validation.ValidateMultiUpdate(dto); !res.IsValid() {
		return nil, res, nil
	}

	outcome := &BatchOutcome{Rejected: make(map[int64]*validation.Result)}
	for _, target := range dto.Entries {
		entry := *target
		applyMultiUpdate(&entry, dto)

		saved, err := s.Update(ctx, &entry, perms)
		if err != nil {
			return nil, nil, err
		}
		if !saved.Saved() {
			logging.Debugf("batch update rejected entry %d\n", entry.ID)
			outcome.Rejected[entry.ID] = saved.Result
			continue
		}
		outcome.Saved = append(outcome.Saved, saved.Entry)
	}
	return outcome, nil, nil
}

// MultiUser creates one copy of the template per resolved target user.
func (s *timesheetServiceImpl) MultiUser(ctx context.Context, dto *domain.MultiUser, perms validation.Permissions) (*BatchOutcome, *validation.Result, error) {
	if res := validation.ValidateMultiUser(dto); !res.IsValid() {
		return nil, res, nil
	}
	if dto.Template == nil {
		return nil, nil, errors.NewInvalidInputError("template", nil, "a template entry is required")
	}

	outcome := &BatchOutcome{Rejected: make(map[int64]*validation.Result)}
	for _, user := range dto.AllUsers() {
		entry := *dto.Template
		entry.ID = 0
		entry.User = user
		entry.Tags = append([]string(nil), dto.Template.Tags...)

		result, err := s.validateAgainst(ctx, &entry, nil, perms)
		if err != nil {
			return nil, nil, err
		}
		if !result.IsValid() {
			outcome.Rejected[user.ID] = result
			continue
		}

		if !entry.IsRunning() {
			s.freezeFinancials(&entry)
		}
		if err := s.repo.CreateTimesheet(ctx, &entry); err != nil {
			return nil, nil, err
		}
		outcome.Saved = append(outcome.Saved, &entry)
	}
	return outcome, nil, nil
}

// freezeFinancials stores the final duration and monetary value of a
// finished entry. Historical figures never get recomputed afterwards.
func (s *timesheetServiceImpl) freezeFinancials(entry *domain.Timesheet) {
	now := s.now()
	seconds := entry.CalculatedSeconds(now)
	entry.Duration = &seconds
	entry.Rate = entry.CalculatedRate(now)
}

// enforceActiveLimit stops the oldest running entries of the user until
// one slot below the configured hard limit is free.
func (s *timesheetServiceImpl) enforceActiveLimit(ctx context.Context, userID int64) error {
	limit := s.cfg.Timesheet.ActiveEntriesHardLimit
	running, err := s.repo.SearchTimesheets(ctx, sqlite.SearchOptions{UserID: &userID, Running: true})
	if err != nil {
		return err
	}
	if len(running) < limit {
		return nil
	}

	// results are ordered by begin, stop from the front
	excess := len(running) - limit + 1
	for _, entry := range running[:excess] {
		entry.Stop(s.now())
		s.freezeFinancials(entry)
		if err := s.repo.UpdateTimesheet(ctx, entry); err != nil {
			return err
		}
		logging.Debugf("stopped entry %d to honor the active entry limit\n", entry.ID)
	}
	return nil
}

// applyMultiUpdate copies the set fields of the DTO onto the target.
func applyMultiUpdate(entry *domain.Timesheet, dto *domain.MultiUpdate) {
	if dto.Activity != nil {
		entry.Activity = dto.Activity
	}
	if dto.Project != nil {
		entry.Project = dto.Project
	}
	if dto.HourlyRate != nil {
		entry.HourlyRate = dto.HourlyRate
		entry.FixedRate = nil
	}
	if dto.FixedRate != nil {
		entry.FixedRate = dto.FixedRate
		entry.HourlyRate = nil
	}
	if dto.Billable != nil {
		entry.Billable = *dto.Billable
	}
	if len(dto.Tags) > 0 {
		if dto.ReplaceTags {
			entry.Tags = append([]string(nil), dto.Tags...)
		} else {
			entry.Tags = append(append([]string(nil), entry.Tags...), dto.Tags...)
		}
	}
}
