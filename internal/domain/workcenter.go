package domain

// Workcenter is a physical production location
type Workcenter struct {
	WorkcenterID    string  `bson:"workcenterId"`
	Name            string  `bson:"name"`
	Code            string  `bson:"code"`
	Location        string  `bson:"location,omitempty"`
	CapacityPerHour float64 `bson:"capacityPerHour"`
}

// ResourceType distinguishes people from machines
type ResourceType string

const (
	ResourceTypePerson  ResourceType = "person"
	ResourceTypeMachine ResourceType = "machine"
)

// Resource is an assignable person or machine
type Resource struct {
	ResourceID string       `bson:"resourceId"`
	Name       string       `bson:"name"`
	Type       ResourceType `bson:"type"`
	Skills     []string     `bson:"skills,omitempty"`
	HourlyCost float64      `bson:"hourlyCost"`
}
