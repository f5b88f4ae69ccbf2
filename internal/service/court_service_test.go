package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-api/internal/domain"
	"padel-api/internal/geo"
	"padel-api/pkg/errors"
)

func TestCourtServiceCreateValidation(t *testing.T) {
	svc := NewCourtService(newFakeCourtRepo(), testCache(), testLogger())

	_, err := svc.CreateCourt(context.Background(), &domain.CreateCourtRequest{
		Latitude:  120, // out of range
		Longitude: 200, // out of range
	})
	require.Error(t, err)

	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	for _, field := range []string{"partner_id", "location_id", "name", "address", "city", "latitude", "longitude"} {
		assert.Contains(t, appErr.Details, field)
	}
}

func TestCourtServiceCreateAndGet(t *testing.T) {
	svc := NewCourtService(newFakeCourtRepo(), testCache(), testLogger())

	court, err := svc.CreateCourt(context.Background(), &domain.CreateCourtRequest{
		PartnerID:  1,
		LocationID: 1,
		Name:       "Center Court",
		Address:    "1 Main St",
		City:       "Bangkok",
		Latitude:   13.75,
		Longitude:  100.50,
	})
	require.NoError(t, err)
	assert.NotZero(t, court.ID)

	got, err := svc.GetCourt(context.Background(), court.ID)
	require.NoError(t, err)
	assert.Equal(t, "Center Court", got.Name)

	_, err = svc.GetCourt(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestCourtServiceManageAuthorization(t *testing.T) {
	courts := newFakeCourtRepo()
	svc := NewCourtService(courts, testCache(), testLogger())

	adminID := int64(50)
	court, err := svc.CreateCourt(context.Background(), &domain.CreateCourtRequest{
		PartnerID:   1,
		LocationID:  1,
		AdminUserID: &adminID,
		Name:        "Center Court",
		Address:     "1 Main St",
		City:        "Bangkok",
		Latitude:    13.75,
		Longitude:   100.50,
	})
	require.NoError(t, err)

	newName := "Renamed Court"
	req := &domain.UpdateCourtRequest{Name: &newName}

	// A court_admin of a different court is refused.
	otherAdmin := &domain.User{ID: 51, Role: domain.RoleCourtAdmin}
	_, err = svc.UpdateCourt(context.Background(), otherAdmin, court.ID, req)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeAuthorization))

	// The court's own admin may update it.
	ownAdmin := &domain.User{ID: adminID, Role: domain.RoleCourtAdmin}
	updated, err := svc.UpdateCourt(context.Background(), ownAdmin, court.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Court", updated.Name)

	// Super admins may delete any court.
	superAdmin := &domain.User{ID: 1, Role: domain.RoleSuperAdmin}
	require.NoError(t, svc.DeleteCourt(context.Background(), superAdmin, court.ID))

	_, err = svc.GetCourt(context.Background(), court.ID)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestCourtServiceNearby(t *testing.T) {
	courts := newFakeCourtRepo()
	svc := NewCourtService(courts, testCache(), testLogger())

	near := seedCourt(t, courts, 13.7563, 100.5018)
	seedCourt(t, courts, 18.7883, 98.9853)

	center := geo.Point{Latitude: 13.7563, Longitude: 100.5018}
	results, err := svc.Nearby(context.Background(), center, 25)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, near.ID, results[0].Item.ID)
}
