package services

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/edustream/portal_api/shared"
)

func TestHandleErrorMapsMissingRecordTo404(t *testing.T) {
	ds := &SqliteService{}

	err := ds.HandleError(gorm.ErrRecordNotFound)
	if err == nil {
		t.Fatal("expected an error")
	}

	appErr, ok := shared.GetAppError(err)
	if !ok {
		t.Fatalf("expected an AppError, got %T: %v", err, err)
	}
	if appErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", appErr.StatusCode)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatal("expected the cause to stay reachable via errors.Is")
	}
}

func TestHandleErrorMapsDuplicateKeyTo409(t *testing.T) {
	ds := &SqliteService{}

	appErr, ok := shared.GetAppError(ds.HandleError(gorm.ErrDuplicatedKey))
	if !ok {
		t.Fatal("expected an AppError")
	}
	if appErr.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", appErr.StatusCode)
	}
}

func TestHandleErrorPassesNilThrough(t *testing.T) {
	ds := &SqliteService{}

	if err := ds.HandleError(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
