package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBoatName(t *testing.T) {
	assert.Equal(t, "station7", normalizeBoatName("Station 7"))
	assert.Equal(t, "station7", normalizeBoatName("station7"))
	assert.Equal(t, "station7", normalizeBoatName("Station  7"))
	assert.Equal(t, "station7", normalizeBoatName(" STATION 7 "))
	assert.Equal(t, "launcha", normalizeBoatName("Launch A"))
	assert.Equal(t, "", normalizeBoatName("   "))

	assert.NotEqual(t, normalizeBoatName("Station 7"), normalizeBoatName("Station 8"))
}

func TestCodedError(t *testing.T) {
	base := errors.New("boat not found")
	err := CodedError(base, http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, GetResponseCode(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, base.Error(), err.Error())

	wrapped := CodedError(err, http.StatusConflict)
	assert.Equal(t, http.StatusConflict, GetResponseCode(wrapped))

	assert.Equal(t, http.StatusInternalServerError, GetResponseCode(errors.New("plain")))
}
