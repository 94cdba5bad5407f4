package validation

// Field paths reported on violations. They match the attribute names of
// the candidate entry, not form or column names.
const (
	FieldBeginDate  = "begin_date"
	FieldEndDate    = "end_date"
	FieldDuration   = "duration"
	FieldActivity   = "activity"
	FieldProject    = "project"
	FieldCustomer   = "customer"
	FieldExported   = "exported"
	FieldHourlyRate = "hourlyRate"
	FieldFixedRate  = "fixedRate"
	FieldUsers      = "users"
	FieldTeams      = "teams"
	FieldStart      = "start"
	FieldEnd        = "end"
)

// Code is the stable, machine-readable identifier of a rule failure.
type Code int

const (
	CodeMissingBegin Code = iota + 1
	CodeMissingActivity
	CodeMissingProject
	CodeEndBeforeBegin
	CodeActivityProjectMismatch
	CodeDisabledActivity
	CodeDisabledProject
	CodeDisabledCustomer
	CodeBeginInFuture
	CodeZeroDuration
	CodeNegativeDuration
	CodeMaximumDurationExceeded
	CodeAbsoluteDurationExceeded
	CodeRecordOverlapping
	CodeRestartNotAllowed
	CodeTimesheetExported
	CodePeriodLocked
	CodeBudgetUsed
	CodeProjectNotStarted
	CodeProjectAlreadyEnded
	CodeHourlyRateFixedRate
	CodeMissingUserOrTeam
)

var codeNames = map[Code]string{
	CodeMissingBegin:             "MISSING_BEGIN_ERROR",
	CodeMissingActivity:          "MISSING_ACTIVITY_ERROR",
	CodeMissingProject:           "MISSING_PROJECT_ERROR",
	CodeEndBeforeBegin:           "END_BEFORE_BEGIN_ERROR",
	CodeActivityProjectMismatch:  "ACTIVITY_PROJECT_MISMATCH_ERROR",
	CodeDisabledActivity:         "DISABLED_ACTIVITY_ERROR",
	CodeDisabledProject:          "DISABLED_PROJECT_ERROR",
	CodeDisabledCustomer:         "DISABLED_CUSTOMER_ERROR",
	CodeBeginInFuture:            "BEGIN_IN_FUTURE_ERROR",
	CodeZeroDuration:             "ZERO_DURATION_ERROR",
	CodeNegativeDuration:         "NEGATIVE_DURATION_ERROR",
	CodeMaximumDurationExceeded:  "MAXIMUM_DURATION_EXCEEDED_ERROR",
	CodeAbsoluteDurationExceeded: "ABSOLUTE_DURATION_EXCEEDED_ERROR",
	CodeRecordOverlapping:        "RECORD_OVERLAPPING",
	CodeRestartNotAllowed:        "RESTART_NOT_ALLOWED",
	CodeTimesheetExported:        "TIMESHEET_EXPORTED",
	CodePeriodLocked:             "PERIOD_LOCKED",
	CodeBudgetUsed:               "BUDGET_USED_ERROR",
	CodeProjectNotStarted:        "PROJECT_NOT_STARTED",
	CodeProjectAlreadyEnded:      "PROJECT_ALREADY_ENDED",
	CodeHourlyRateFixedRate:      "HOURLY_RATE_FIXED_RATE_ERROR",
	CodeMissingUserOrTeam:        "MISSING_USER_OR_TEAM",
}

// String returns the stable name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN_ERROR"
}

// Violation is one rule failure: the field it concerns, its stable code
// and pre-formatted message parameters. Localization happens outside
// this package; Params only carries numbers and pre-formatted duration
// or currency strings.
type Violation struct {
	Field   string
	Code    Code
	Message string
	Params  map[string]string
}

// Result is the ordered collection of violations produced by one
// validation call. The zero value is a valid, empty result. Ordering is
// the declared rule order followed by declaration order within a rule;
// it never depends on map iteration.
type Result struct {
	violations []Violation
}

// Add appends a violation without message parameters.
func (r *Result) Add(field string, code Code, message string) {
	r.AddViolation(Violation{Field: field, Code: code, Message: message})
}

// AddViolation appends a fully populated violation.
func (r *Result) AddViolation(v Violation) {
	r.violations = append(r.violations, v)
}

// Violations returns the violations in the order they were added.
func (r *Result) Violations() []Violation {
	return r.violations
}

// IsValid reports whether no rule failed.
func (r *Result) IsValid() bool {
	return len(r.violations) == 0
}

// HasViolations reports whether at least one rule failed.
func (r *Result) HasViolations() bool {
	return len(r.violations) > 0
}

// HasFieldViolation reports whether a violation was already recorded
// for the given field. Rules use this to avoid redundant reporting on
// a field another rule already flagged.
func (r *Result) HasFieldViolation(field string) bool {
	for _, v := range r.violations {
		if v.Field == field {
			return true
		}
	}
	return false
}

// HasCode reports whether a violation with the given code was recorded.
func (r *Result) HasCode(code Code) bool {
	for _, v := range r.violations {
		if v.Code == code {
			return true
		}
	}
	return false
}
