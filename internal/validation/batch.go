package validation

import (
	"timegate/internal/domain"
)

// ValidateMultiUpdate checks the cross-field consistency of a batch
// edit before it is applied to any entry. Passing a nil DTO is a caller
// bug and panics.
func ValidateMultiUpdate(dto *domain.MultiUpdate) *Result {
	if dto == nil {
		panic("validation: nil multi-update")
	}
	res := &Result{}

	if dto.Activity != nil && dto.Project == nil {
		res.Add(FieldProject, CodeMissingProject, "Please select a project when changing the activity.")
	}
	if dto.Project != nil && dto.Activity == nil {
		res.Add(FieldActivity, CodeMissingActivity, "Please select an activity when changing the project.")
	}
	if dto.Activity != nil && dto.Project != nil &&
		!dto.Activity.IsGlobal() && dto.Activity.Project.ID != dto.Project.ID {
		res.Add(FieldProject, CodeActivityProjectMismatch, "The selected activity does not belong to the selected project.")
	}

	if dto.HourlyRate != nil && dto.FixedRate != nil {
		res.Add(FieldHourlyRate, CodeHourlyRateFixedRate, "Only one of hourly rate and fixed rate can be set.")
		res.Add(FieldFixedRate, CodeHourlyRateFixedRate, "Only one of hourly rate and fixed rate can be set.")
	}

	return res
}

// ValidateMultiUser checks that a bulk assignment has at least one
// target. Passing a nil DTO is a caller bug and panics.
func ValidateMultiUser(dto *domain.MultiUser) *Result {
	if dto == nil {
		panic("validation: nil multi-user")
	}
	res := &Result{}

	if len(dto.Users) == 0 && len(dto.Teams) == 0 {
		res.Add(FieldUsers, CodeMissingUserOrTeam, "Please select at least one user or team.")
		res.Add(FieldTeams, CodeMissingUserOrTeam, "Please select at least one user or team.")
	}

	return res
}
