package services

import (
	"fmt"
	"log/slog"
	"net/http"

	"hocr_map/map_server/auth"
	"hocr_map/map_server/schema"
	"hocr_map/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlacementService struct {
	db       *gorm.DB
	userAuth auth.IdentityProvider
}

func (s *PlacementService) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{view}", s.List)
	r.Get("/{view}/{name}", s.Detail)

	r.Group(func(r chi.Router) {
		r.Use(s.userAuth.AuthMiddleware()...)
		r.Use(auth.EditorOnly())

		r.Post("/insert", s.Upsert)
		r.Delete("/{view}/{id}", s.Delete)
	})

	return r
}

// PlacementInfo is a placement enriched with its boat's display attributes.
// The boat fields are joined at read time, never copied into the placement
// row, so catalog edits are reflected immediately.
type PlacementInfo struct {
	Id       uuid.UUID `json:"id"`
	BoatId   int       `json:"boat_id"`
	ViewName string    `json:"view_name"`

	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Rotation float64 `json:"rotation"`

	// Boat display attributes are flattened into the payload the way the
	// map client consumes them. The placement id shadows the boat's own id,
	// which is already exposed as boat_id.
	BoatInfo
}

func convertToPlacementInfo(placement *schema.Placement) PlacementInfo {
	info := PlacementInfo{
		Id:       placement.Id,
		BoatId:   placement.BoatId,
		ViewName: placement.ViewName,
		Lat:      placement.Lat,
		Lon:      placement.Lon,
		Rotation: placement.Rotation,
	}
	if placement.Boat != nil {
		info.BoatInfo = convertToBoatInfo(placement.Boat)
	}
	return info
}

func (s *PlacementService) List(w http.ResponseWriter, r *http.Request) {
	view, err := utils.URLParam(r, "view")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var placements []schema.Placement
	result := s.db.Preload("Boat").Find(&placements, "view_name = ?", view)
	if result.Error != nil {
		slog.Error("sql error listing placements", "view", view, "error", result.Error)
		http.Error(w, fmt.Sprintf("error listing placements: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	infos := make([]PlacementInfo, 0, len(placements))
	for _, placement := range placements {
		infos = append(infos, convertToPlacementInfo(&placement))
	}
	utils.WriteJsonResponse(w, infos)
}

// Detail finds a single placement in a view by boat name, ignoring case and
// spaces so deep links survive sloppy input. The per-view corpus is small,
// so the comparison happens here rather than in sql.
func (s *PlacementService) Detail(w http.ResponseWriter, r *http.Request) {
	view, err := utils.URLParam(r, "view")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name, err := utils.URLParam(r, "name")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var placements []schema.Placement
	result := s.db.Preload("Boat").Find(&placements, "view_name = ?", view)
	if result.Error != nil {
		slog.Error("sql error loading placements for detail lookup", "view", view, "error", result.Error)
		http.Error(w, fmt.Sprintf("error loading placement: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	target := normalizeBoatName(name)
	for _, placement := range placements {
		if placement.Boat != nil && normalizeBoatName(placement.Boat.Name) == target {
			utils.WriteJsonResponse(w, convertToPlacementInfo(&placement))
			return
		}
	}

	http.Error(w, fmt.Sprintf("no boat named '%v' in view '%v'", name, view), http.StatusNotFound)
}

type upsertRequest struct {
	BoatId int     `json:"boat_id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	View   string  `json:"view"`

	// Rotation is optional: absent on insert means 0, absent on update
	// leaves the stored value untouched.
	Rotation *float64 `json:"rotation"`
}

type upsertResponse struct {
	Created bool   `json:"created"`
	Message string `json:"message"`
}

// Upsert reconciles a boat's position within a view: update in place when a
// row for (boat_id, view) exists, insert otherwise. The check and the write
// run in one transaction and the unique index on (boat_id, view_name) backs
// it up, so concurrent calls for the same pair cannot produce two rows.
func (s *PlacementService) Upsert(w http.ResponseWriter, r *http.Request) {
	var params upsertRequest
	if !utils.ParseRequestBody(w, r, &params) {
		return
	}

	if params.View == "" {
		http.Error(w, "view must not be empty", http.StatusUnprocessableEntity)
		return
	}

	var created bool

	err := s.db.Transaction(func(txn *gorm.DB) error {
		if err := checkBoatExists(txn, params.BoatId); err != nil {
			return err
		}

		var existing schema.Placement
		result := txn.Limit(1).Find(&existing, "boat_id = ? AND view_name = ?", params.BoatId, params.View)
		if result.Error != nil {
			slog.Error("sql error checking for existing placement", "boat_id", params.BoatId, "view", params.View, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}

		if result.RowsAffected != 0 {
			updates := map[string]interface{}{"lat": params.Lat, "lon": params.Lon}
			if params.Rotation != nil {
				updates["rotation"] = *params.Rotation
			}

			result := txn.Model(&schema.Placement{}).Where("id = ?", existing.Id).Updates(updates)
			if result.Error != nil {
				slog.Error("sql error updating placement", "placement_id", existing.Id, "error", result.Error)
				return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
			}
			return nil
		}

		placement := schema.Placement{
			Id:       uuid.New(),
			BoatId:   params.BoatId,
			ViewName: params.View,
			Lat:      params.Lat,
			Lon:      params.Lon,
		}
		if params.Rotation != nil {
			placement.Rotation = *params.Rotation
		}

		result = txn.Create(&placement)
		if result.Error != nil {
			slog.Error("sql error inserting placement", "boat_id", params.BoatId, "view", params.View, "error", result.Error)
			return CodedError(schema.ErrDbAccessFailed, http.StatusInternalServerError)
		}

		created = true
		return nil
	})

	if err != nil {
		http.Error(w, fmt.Sprintf("error saving placement: %v", err), GetResponseCode(err))
		return
	}

	slog.Info("saved placement", "boat_id", params.BoatId, "view", params.View, "created", created)

	message := "boat position updated"
	if created {
		message = "boat position inserted"
	}
	utils.WriteJsonResponse(w, upsertResponse{Created: created, Message: message})
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// Delete removes a placement matched by BOTH id and view. Placement ids are
// not guaranteed unique across historical schema variants, so an unscoped
// delete-by-id is not offered.
func (s *PlacementService) Delete(w http.ResponseWriter, r *http.Request) {
	view, err := utils.URLParam(r, "view")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	placementId, err := utils.URLParamUUID(r, "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := s.db.Where("id = ? AND view_name = ?", placementId, view).Delete(&schema.Placement{})
	if result.Error != nil {
		slog.Error("sql error deleting placement", "placement_id", placementId, "view", view, "error", result.Error)
		http.Error(w, fmt.Sprintf("error deleting placement: %v", schema.ErrDbAccessFailed), http.StatusInternalServerError)
		return
	}

	if result.RowsAffected == 0 {
		utils.WriteJsonResponseWithCode(w, http.StatusNotFound, deleteResponse{Success: false})
		return
	}

	slog.Info("deleted placement", "placement_id", placementId, "view", view)

	utils.WriteJsonResponse(w, deleteResponse{Success: true})
}
