package validation

import (
	"context"

	"timegate/internal/domain"
	"timegate/internal/timeutil"
)

func checkActivityRequired(_ context.Context, entry *domain.Timesheet, rctx *Context, res *Result) error {
	if entry.Activity == nil && rctx.Config.Timesheet.RequireActivity {
		res.Add(FieldActivity, CodeMissingActivity, "An activity needs to be selected.")
	}
	return nil
}

func checkProjectRequired(_ context.Context, entry *domain.Timesheet, _ *Context, res *Result) error {
	if entry.Project == nil {
		res.Add(FieldProject, CodeMissingProject, "A project needs to be selected.")
	}
	return nil
}

func checkActivityProjectMismatch(_ context.Context, entry *domain.Timesheet, _ *Context, res *Result) error {
	if entry.Activity == nil || entry.Project == nil {
		return nil
	}
	// global activities combine with any project
	if entry.Activity.IsGlobal() {
		return nil
	}
	if entry.Activity.Project.ID != entry.Project.ID {
		res.Add(FieldProject, CodeActivityProjectMismatch, "The selected activity does not belong to the selected project.")
	}
	return nil
}

// checkDisabledScopes only blocks starting a fresh running entry on a
// hidden scope. Historical entries referencing disabled scopes stay
// editable.
func checkDisabledScopes(_ context.Context, entry *domain.Timesheet, _ *Context, res *Result) error {
	if !entry.IsNew() || !entry.IsRunning() {
		return nil
	}
	if entry.Activity != nil && !entry.Activity.Visible {
		res.Add(FieldActivity, CodeDisabledActivity, "Cannot start a disabled activity.")
	}
	if entry.Project != nil {
		if !entry.Project.Visible {
			res.Add(FieldProject, CodeDisabledProject, "Cannot start a disabled project.")
		}
		if entry.Project.Customer != nil && !entry.Project.Customer.Visible {
			res.Add(FieldCustomer, CodeDisabledCustomer, "Cannot start a disabled customer.")
		}
	}
	return nil
}

// checkProjectWindow validates begin and end independently against the
// project's configured validity window.
func checkProjectWindow(_ context.Context, entry *domain.Timesheet, _ *Context, res *Result) error {
	project := entry.Project
	if project == nil {
		return nil
	}

	if !entry.Begin.IsZero() {
		if project.Start != nil && timeutil.IsBefore(entry.Begin, *project.Start) {
			res.Add(FieldBeginDate, CodeProjectNotStarted, "The project has not started at that time.")
		}
		if project.End != nil && entry.Begin.After(*project.End) {
			res.Add(FieldBeginDate, CodeProjectAlreadyEnded, "The project is finished at that time.")
		}
	}

	if entry.End != nil {
		if project.Start != nil && timeutil.IsBefore(*entry.End, *project.Start) {
			res.Add(FieldEndDate, CodeProjectNotStarted, "The project has not started at that time.")
		}
		if project.End != nil && entry.End.After(*project.End) {
			res.Add(FieldEndDate, CodeProjectAlreadyEnded, "The project is finished at that time.")
		}
	}
	return nil
}
