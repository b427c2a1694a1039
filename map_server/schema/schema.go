package schema

import (
	"time"

	"github.com/google/uuid"
)

// Boat is a catalog entry. Boats are seeded out-of-band and edited in bulk
// through the catalog service; placements reference them by id and never
// copy display attributes at write time.
type Boat struct {
	Id int `gorm:"primaryKey"`

	Name     string `gorm:"size:100;not null"`
	Category string `gorm:"size:100;not null"`
	Number   int    `gorm:"not null"`

	Zone                    int
	WaterOrLand             string `gorm:"size:50"`
	Position                string `gorm:"size:100"`
	Assignment              string `gorm:"size:100"`
	MotorPosition           string `gorm:"size:100"`
	AtReadyPosition         string `gorm:"size:100"`
	NearestBiobreakLocation string `gorm:"size:100"`
	LaunchOrigin            string `gorm:"size:100"`
	LaunchType              string `gorm:"size:100"`
	Notes                   string

	Placements []Placement `gorm:"foreignKey:BoatId;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Placement is one boat's position within one named view. The unique index
// on (boat_id, view_name) guarantees at most one row per pair; writes go
// through the upsert in the placement service, never a blind insert.
//
// ViewName is immutable once set. Moving a boat between views is a scoped
// delete followed by an insert into the new view.
type Placement struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	BoatId   int    `gorm:"not null;uniqueIndex:idx_placement_boat_view"`
	ViewName string `gorm:"size:100;not null;uniqueIndex:idx_placement_boat_view"`

	Lat      float64 `gorm:"not null"`
	Lon      float64 `gorm:"not null"`
	Rotation float64 `gorm:"not null;default:0"`

	Boat *Boat

	CreatedAt time.Time
	UpdatedAt time.Time
}

type User struct {
	Id uuid.UUID `gorm:"type:uuid;primaryKey"`

	Email    string `gorm:"unique;size:254;not null"`
	Password []byte

	IsEditor bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
