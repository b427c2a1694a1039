package versions

import (
	"log"

	"hocr_map/map_server/schema"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Migration_0_create_boats_view creates the catalog table and the legacy
// placement table. Placements originally carried an autoincrement integer
// id; the conversion to uuid happens in a later migration, mirroring the
// production schema history.
func Migration_0_create_boats_view(txn *gorm.DB) error {
	log.Println("creating tables 'boats' and 'boats_view'")

	type Boat struct {
		Id       int    `gorm:"primaryKey"`
		Name     string `gorm:"size:100;not null"`
		Category string `gorm:"size:100;not null"`
		Number   int    `gorm:"not null"`
	}

	type Placement struct {
		Id       int    `gorm:"primaryKey;autoIncrement"`
		BoatId   int    `gorm:"not null"`
		ViewName string `gorm:"size:100;not null"`
		Lat      float64
		Lon      float64
	}

	if err := txn.Migrator().CreateTable(&Boat{}); err != nil {
		return err
	}

	return txn.Migrator().CreateTable(&Placement{})
}

func Migration_1_authentication(txn *gorm.DB) error {
	log.Println("creating table 'users'")

	return txn.Migrator().CreateTable(&schema.User{})
}

func Migration_2_add_fields_to_boats(txn *gorm.DB) error {
	log.Println("adding descriptive columns to table 'boats'")

	type Boat struct {
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
	}

	columns := []string{
		"Zone", "WaterOrLand", "Position", "Assignment", "MotorPosition",
		"AtReadyPosition", "NearestBiobreakLocation", "LaunchOrigin",
		"LaunchType", "Notes",
	}

	for _, col := range columns {
		if err := txn.Migrator().AddColumn(&Boat{}, col); err != nil {
			return err
		}
	}

	return nil
}

// Migration_3_placement_uuid_ids replaces the legacy autoincrement id on
// placements with a uuid. Rows keep their (boat_id, view_name) identity;
// the row id itself carries no meaning beyond the delete handle.
func Migration_3_placement_uuid_ids(txn *gorm.DB) error {
	log.Println("migrating table 'placements' to uuid ids")

	type Placement struct {
		Id     int
		TempId uuid.UUID `gorm:"type:uuid"`
	}

	if err := txn.Migrator().AddColumn(&Placement{}, "TempId"); err != nil {
		return err
	}

	var rows []Placement
	if err := txn.Find(&rows).Error; err != nil {
		return err
	}

	for _, row := range rows {
		err := txn.Model(&Placement{}).Where("id = ?", row.Id).Update("temp_id", uuid.New()).Error
		if err != nil {
			return err
		}
	}

	if err := txn.Exec("ALTER TABLE placements DROP CONSTRAINT placements_pkey").Error; err != nil {
		return err
	}

	if err := txn.Migrator().DropColumn(&Placement{}, "id"); err != nil {
		return err
	}

	if err := txn.Migrator().RenameColumn(&Placement{}, "temp_id", "id"); err != nil {
		return err
	}

	if err := txn.Exec("ALTER TABLE placements ADD PRIMARY KEY (id)").Error; err != nil {
		return err
	}

	// Let gorm recreate the rotation column and the unique index on
	// (boat_id, view_name) from the final struct.
	return txn.Migrator().AutoMigrate(&schema.Placement{})
}
