package services

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"hocr_map/map_server/schema"

	"gorm.io/gorm"
)

type codedError struct {
	err  error
	code int
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func CodedError(err error, code int) error {
	return &codedError{err: err, code: code}
}

func GetResponseCode(err error) int {
	var cerr *codedError
	if errors.As(err, &cerr) {
		return cerr.code
	}
	slog.Error("non coded error passed to GetResponseCode", "error", err)
	return http.StatusInternalServerError
}

func checkBoatExists(txn *gorm.DB, boatId int) error {
	if _, err := schema.GetBoat(boatId, txn); err != nil {
		if errors.Is(err, schema.ErrBoatNotFound) {
			return CodedError(err, http.StatusNotFound)
		}
		return CodedError(err, http.StatusInternalServerError)
	}
	return nil
}

// normalizeBoatName makes name lookups tolerant of casing and stray spaces,
// so "Station 7" matches "station7" and "Station  7".
func normalizeBoatName(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
