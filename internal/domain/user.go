package domain

// User owns timesheet entries. Only the attributes the rule engine and
// repository need are modelled here.
type User struct {
	ID       int64
	Name     string
	Timezone string
}

// Team is a bulk-assignment target for batch operations.
type Team struct {
	ID      int64
	Name    string
	Members []*User
}
