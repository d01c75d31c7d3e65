package store

// collection names as used by the external store
const (
	Tracks     = "tracks"
	Days       = "days"
	TireSets   = "tireSets"
	Tires      = "tires"
	TireEvents = "tireEvents"
	Builds     = "builds"
	Users      = "users"
)
