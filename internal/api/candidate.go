package api

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"timegate/internal/domain"
	"timegate/internal/errors"
	"timegate/internal/repository/sqlite"
)

// Candidate describes a timesheet entry by name the way callers submit
// it, over HTTP as JSON or to the check command as YAML. Scope fields
// reference existing records by name; times are RFC3339.
type Candidate struct {
	// ID refers to an existing entry when validating an edit.
	ID          int64    `json:"id,omitempty" yaml:"id,omitempty"`
	User        string   `json:"user" yaml:"user"`
	Activity    string   `json:"activity,omitempty" yaml:"activity,omitempty"`
	Project     string   `json:"project,omitempty" yaml:"project,omitempty"`
	Begin       string   `json:"begin,omitempty" yaml:"begin,omitempty"`
	End         string   `json:"end,omitempty" yaml:"end,omitempty"`
	BreakSecs   int64    `json:"break,omitempty" yaml:"break,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Billable    bool     `json:"billable,omitempty" yaml:"billable,omitempty"`
	HourlyRate  string   `json:"hourlyRate,omitempty" yaml:"hourlyRate,omitempty"`
	FixedRate   string   `json:"fixedRate,omitempty" yaml:"fixedRate,omitempty"`
}

// Resolve turns the candidate into a domain entry backed by persisted
// scopes. Unknown names come back as not-found errors; the rule engine
// never sees an unresolved candidate.
func (c *Candidate) Resolve(ctx context.Context, repo sqlite.Repository) (*domain.Timesheet, error) {
	if c.User == "" {
		return nil, errors.NewInvalidInputError("user", c.User, "a user name is required")
	}
	user, err := repo.GetUserByName(ctx, c.User)
	if err != nil {
		return nil, err
	}

	entry := &domain.Timesheet{
		ID:           c.ID,
		User:         user,
		BreakSeconds: c.BreakSecs,
		Description:  c.Description,
		Tags:         c.Tags,
		Billable:     c.Billable,
	}

	if c.Begin != "" {
		begin, err := time.Parse(time.RFC3339, c.Begin)
		if err != nil {
			return nil, errors.NewInvalidInputError("begin", c.Begin, "begin must be RFC3339")
		}
		entry.Begin = begin
	}
	if c.End != "" {
		end, err := time.Parse(time.RFC3339, c.End)
		if err != nil {
			return nil, errors.NewInvalidInputError("end", c.End, "end must be RFC3339")
		}
		entry.End = &end
	}

	if c.Project != "" {
		project, err := findProject(ctx, repo, c.Project)
		if err != nil {
			return nil, err
		}
		entry.Project = project
	}
	if c.Activity != "" {
		activity, err := findActivity(ctx, repo, c.Activity)
		if err != nil {
			return nil, err
		}
		entry.Activity = activity
	}

	if c.HourlyRate != "" {
		rate, err := decimal.NewFromString(c.HourlyRate)
		if err != nil {
			return nil, errors.NewInvalidInputError("hourlyRate", c.HourlyRate, "not a decimal number")
		}
		entry.HourlyRate = &rate
	}
	if c.FixedRate != "" {
		rate, err := decimal.NewFromString(c.FixedRate)
		if err != nil {
			return nil, errors.NewInvalidInputError("fixedRate", c.FixedRate, "not a decimal number")
		}
		entry.FixedRate = &rate
	}

	return entry, nil
}

func findProject(ctx context.Context, repo sqlite.Repository, name string) (*domain.Project, error) {
	projects, err := repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("project", name)
}

func findActivity(ctx context.Context, repo sqlite.Repository, name string) (*domain.Activity, error) {
	activities, err := repo.ListActivities(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range activities {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, errors.NewNotFoundError("activity", name)
}
