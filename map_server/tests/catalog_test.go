package tests

import (
	"errors"
	"testing"

	"hocr_map/map_server/schema"
)

func TestListBoatsOrdering(t *testing.T) {
	env := setupTestEnv(t)
	env.seedBoats(t,
		schema.Boat{Id: 1, Name: "Safety Launch 1", Category: "safety", Number: 1},
		schema.Boat{Id: 2, Name: "Race Committee 2", Category: "race_committee", Number: 2},
		schema.Boat{Id: 3, Name: "Race Committee 1", Category: "race_committee", Number: 1},
	)

	viewer := env.newClient()

	boats, err := viewer.listBoats()
	if err != nil {
		t.Fatal(err)
	}

	if len(boats) != 3 {
		t.Fatalf("expected 3 boats, got %d", len(boats))
	}

	expectedIds := []int{3, 2, 1}
	for i, boat := range boats {
		if boat.Id != expectedIds[i] {
			t.Fatalf("boats not ordered by category then number: %+v", boats)
		}
	}
}

func TestBulkUpdate(t *testing.T) {
	env := setupTestEnv(t)
	seedDefaultBoats(t, env)

	editor, err := env.editorClient()
	if err != nil {
		t.Fatal(err)
	}

	err = editor.updateBoats([]map[string]interface{}{
		{"id": 1, "zone": 3, "notes": "spare motor aboard"},
		{"id": 2, "assignment": "finish line"},
	})
	if err != nil {
		t.Fatal(err)
	}

	boats, err := editor.listBoats()
	if err != nil {
		t.Fatal(err)
	}

	byId := make(map[int]int)
	for i, boat := range boats {
		byId[boat.Id] = i
	}

	station := boats[byId[1]]
	if station.Zone != 3 || station.Notes != "spare motor aboard" {
		t.Fatalf("edits not applied: %+v", station)
	}
	if station.Name != "Station 7" || station.Category != "safety" {
		t.Fatalf("untouched fields must be preserved: %+v", station)
	}

	launch := boats[byId[2]]
	if launch.Assignment != "finish line" {
		t.Fatalf("edits not applied: %+v", launch)
	}
}

func TestBulkUpdateUnknownIdRollsBack(t *testing.T) {
	env := setupTestEnv(t)
	seedDefaultBoats(t, env)

	editor, err := env.editorClient()
	if err != nil {
		t.Fatal(err)
	}

	err = editor.updateBoats([]map[string]interface{}{
		{"id": 1, "zone": 9},
		{"id": 42, "zone": 9},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for batch with unknown id, got %v", err)
	}

	boats, err := editor.listBoats()
	if err != nil {
		t.Fatal(err)
	}
	for _, boat := range boats {
		if boat.Id == 1 && boat.Zone == 9 {
			t.Fatal("batch with an unknown id must not apply any edits")
		}
	}
}

func TestBulkUpdateRequiresEditor(t *testing.T) {
	env := setupTestEnv(t)
	seedDefaultBoats(t, env)

	anonymous := env.newClient()
	err := anonymous.updateBoats([]map[string]interface{}{{"id": 1, "zone": 2}})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("anonymous update should be unauthorized, got %v", err)
	}

	viewer, err := env.newViewer("catalog_viewer@mail.com")
	if err != nil {
		t.Fatal(err)
	}

	err = viewer.updateBoats([]map[string]interface{}{{"id": 1, "zone": 2}})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-editor update should be forbidden, got %v", err)
	}

	// Listing stays open to everyone.
	if _, err := anonymous.listBoats(); err != nil {
		t.Fatal(err)
	}
}

func TestCatalogEditsVisibleInViews(t *testing.T) {
	env := setupTestEnv(t)
	seedDefaultBoats(t, env)

	editor, err := env.editorClient()
	if err != nil {
		t.Fatal(err)
	}

	if _, err := editor.upsert(1, "Parking", 1.0, 2.0, nil); err != nil {
		t.Fatal(err)
	}

	err = editor.updateBoats([]map[string]interface{}{
		{"id": 1, "category": "medical", "notes": "radio channel 5"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Placements join boat attributes at read time, so edits show up in
	// existing placements without touching the placement rows.
	placements, err := editor.listView("Parking")
	if err != nil {
		t.Fatal(err)
	}
	if len(placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(placements))
	}
	if placements[0].Category != "medical" || placements[0].Notes != "radio channel 5" {
		t.Fatalf("catalog edits should be visible in view reads: %+v", placements[0])
	}
}
