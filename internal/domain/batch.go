package domain

import (
	"github.com/shopspring/decimal"
)

// MultiUpdate describes a batch edit applied to several timesheet
// entries at once. Nil fields are left untouched on the targets.
type MultiUpdate struct {
	Entries []*Timesheet

	Activity   *Activity
	Project    *Project
	HourlyRate *decimal.Decimal
	FixedRate  *decimal.Decimal

	Billable    *bool
	Tags        []string
	ReplaceTags bool
}

// MultiUser describes a bulk assignment of a template entry to several
// users and/or whole teams.
type MultiUser struct {
	Template *Timesheet
	Users    []*User
	Teams    []*Team
}

// AllUsers flattens the explicit users and all team members, preserving
// order and dropping duplicates.
func (m *MultiUser) AllUsers() []*User {
	seen := make(map[int64]bool)
	var users []*User
	add := func(u *User) {
		if u == nil || seen[u.ID] {
			return
		}
		seen[u.ID] = true
		users = append(users, u)
	}
	for _, u := range m.Users {
		add(u)
	}
	for _, team := range m.Teams {
		for _, u := range team.Members {
			add(u)
		}
	}
	return users
}
