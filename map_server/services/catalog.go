package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"hocr_map/map_server/auth"
	"hocr_map/map_server/schema"
	"hocr_map/utils"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"
)

type CatalogService struct {
	db       *gorm.DB
	userAuth auth.IdentityProvider
}

func (s *CatalogService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", s.List)

	r.Group(func(r chi.Router) {
		r.Use(s.userAuth.AuthMiddleware()...)
		r.Use(auth.EditorOnly())

		r.Put("/", s.BulkUpdate)
	})

	return r
}

type BoatInfo struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Number   int    `json:"number"`

	Zone                    int    `json:"zone"`
	WaterOrLand             string `json:"water_or_land"`
	Position                string `json:"position"`
	Assignment              string `json:"assignment"`
	MotorPosition           string `json:"motor_position"`
	AtReadyPosition         string `json:"at_ready_position"`
	NearestBiobreakLocation string `json:"nearest_biobreak_location"`
	LaunchOrigin            string `json:"launch_origin"`
	LaunchType              string `json:"launch_type"`
	Notes                   string `json:"notes"`
}

func convertToBoatInfo(boat *schema.Boat) BoatInfo {
	return BoatInfo{
		Id:                      boat.Id,
		Name:                    boat.Name,
		Category:                boat.Category,
		Number:                  boat.Number,
		Zone:                    boat.Zone,
		WaterOrLand:             boat.WaterOrLand,
		Position:                boat.Position,
		Assignment:              boat.Assignment,
		MotorPosition:           boat.MotorPosition,
		AtReadyPosition:         boat.AtReadyPosition,
		NearestBiobreakLocation: boat.NearestBiobreakLocation,
		LaunchOrigin:            boat.LaunchOrigin,
		LaunchType:              boat.LaunchType,
		Notes:                   boat.Notes,
	}
}

// List returns the full catalog ordered by category then number so the
// collaborator toolbar renders deterministically. The corpus is bounded, no
// pagination.
func (s *CatalogService) List(w http.ResponseWriter, r *http.Request) {
	var boats []schema.Boat
	result := s.db.Order("category asc, number asc").Find(&boats)
	if result.Error != nil {
		slog.Error("sql error listing boats", "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing boats: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]BoatInfo, 0, len(boats))
	for _, boat := range boats {
		infos = append(infos, convertToBoatInfo(&boat))
	}
	utils.WriteJsonResponse(w, infos)
}

type boatEdit struct {
	Id int `json:"id"`

	Name     *string `json:"name"`
	Category *string `json:"category"`
	Number   *int    `json:"number"`

	Zone                    *int    `json:"zone"`
	WaterOrLand             *string `json:"water_or_land"`
	Position                *string `json:"position"`
	Assignment              *string `json:"assignment"`
	MotorPosition           *string `json:"motor_position"`
	AtReadyPosition         *string `json:"at_ready_position"`
	NearestBiobreakLocation *string `json:"nearest_biobreak_location"`
	LaunchOrigin            *string `json:"launch_origin"`
	LaunchType              *string `json:"launch_type"`
	Notes                   *string `json:"notes"`
}

func (e *boatEdit) updates() map[string]interface{} {
	updates := map[string]interface{}{}

	if e.Name != nil {
		updates["name"] = *e.Name
	}
	if e.Category != nil {
		updates["category"] = *e.Category
	}
	if e.Number != nil {
		updates["number"] = *e.Number
	}
	if e.Zone != nil {
		updates["zone"] = *e.Zone
	}
	if e.WaterOrLand != nil {
		updates["water_or_land"] = *e.WaterOrLand
	}
	if e.Position != nil {
		updates["position"] = *e.Position
	}
	if e.Assignment != nil {
		updates["assignment"] = *e.Assignment
	}
	if e.MotorPosition != nil {
		updates["motor_position"] = *e.MotorPosition
	}
	if e.AtReadyPosition != nil {
		updates["at_ready_position"] = *e.AtReadyPosition
	}
	if e.NearestBiobreakLocation != nil {
		updates["nearest_biobreak_location"] = *e.NearestBiobreakLocation
	}
	if e.LaunchOrigin != nil {
		updates["launch_origin"] = *e.LaunchOrigin
	}
	if e.LaunchType != nil {
		updates["launch_type"] = *e.LaunchType
	}
	if e.Notes != nil {
		updates["notes"] = *e.Notes
	}

	return updates
}

type messageResponse struct {
	Message string `json:"message"`
}

// BulkUpdate applies a batch of partial boat edits as a unit. If any id is
// missing or any row fails the whole batch is rolled back.
func (s *CatalogService) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var edits []boatEdit
	if !utils.ParseRequestBody(w, r, &edits) {
		return
	}

	err := s.db.Transaction(func(txn *gorm.DB) error {
		missing := []int{}
		for _, edit := range edits {
			if _, err := schema.GetBoat(edit.Id, txn); err != nil {
				if errors.Is(err, schema.ErrBoatNotFound) {
					missing = append(missing, edit.Id)
					continue
				}
				return CodedError(err, http.StatusInternalServerError)
			}
		}
		if len(missing) > 0 {
			return CodedError(fmt.Errorf("no boats found for ids %v", missing), http.StatusNotFound)
		}

		for _, edit := range edits {
			updates := edit.updates()
			if len(updates) == 0 {
				continue
			}
			result := txn.Model(&schema.Boat{}).Where("id = ?", edit.Id).Updates(updates)
			if result.Error != nil {
				slog.Error("sql error updating boat", "boat_id", edit.Id, "error", result.Error)
				return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
			}
		}

		return nil
	})

	if err != nil {
		http.Error(w, fmt.Sprintf("error updating boats: %v", err), GetResponseCode(err))
		return
	}

	slog.Info("updated boat catalog", "count", len(edits))

	utils.WriteJsonResponse(w, messageResponse{Message: "boats updated"})
}
