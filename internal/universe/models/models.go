package models

// SystemsCollection is the MongoDB collection backing the system partition.
const SystemsCollection = "systems"

// System is a static reference record mapping a solar system's name and
// external id to its region. The name lives in the primary sort key, the
// external id in the secondary index key; both access paths are required.
type System struct {
	PK     string `bson:"pk" json:"-"`
	SK     string `bson:"sk" json:"key"`
	GSI1PK string `bson:"gsi1pk" json:"-"`

	Name       string `bson:"-" json:"name"`
	RegionName string `bson:"region_name" json:"region_name"`
}
