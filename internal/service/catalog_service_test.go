package service

import (
	"context"
	"strings"
	"testing"

	"hospital-management-api/internal/models"
	"hospital-management-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceCatalogLifecycle(t *testing.T) {
	store := newServices()
	store.match = func(s models.Service, term string) bool {
		return strings.Contains(strings.ToLower(s.ServiceName), strings.ToLower(term))
	}
	svc := NewServiceCatalog(store)
	ctx := context.Background()

	xray, err := svc.Create(ctx, 1, ServiceInput{ServiceName: "X-Ray", ServicePrice: 40})
	require.NoError(t, err)
	_, err = svc.Create(ctx, 1, ServiceInput{ServiceName: "Consultation", ServicePrice: 15})
	require.NoError(t, err)

	found, err := svc.Search(ctx, 1, "x-r")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, xray.ID, found[0].ID)

	updated, err := svc.Update(ctx, 1, xray.ID, ServiceInput{ServiceName: "Chest X-Ray", ServicePrice: 55})
	require.NoError(t, err)
	assert.Equal(t, "Chest X-Ray", updated.ServiceName)
	assert.Equal(t, 55.0, updated.ServicePrice)

	// Another hospital cannot see or edit it
	_, err = svc.Update(ctx, 2, xray.ID, ServiceInput{ServiceName: "stolen"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, 1, xray.ID))
	err = svc.Delete(ctx, 1, xray.ID)
	assert.ErrorIs(t, err, repository.ErrServiceNotFound)

	rows, err := svc.List(ctx, 1, "", "")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLabTestLifecycle(t *testing.T) {
	store := newLabTests()
	svc := NewLabTestService(store)
	ctx := context.Background()

	test, err := svc.Create(ctx, 3, LabTestInput{TestName: "CBC", TestDesc: "Full blood count", TestPrice: 12.5})
	require.NoError(t, err)

	got, err := svc.Get(ctx, 3, test.ID)
	require.NoError(t, err)
	assert.Equal(t, "CBC", got.TestName)

	_, err = svc.Get(ctx, 4, test.ID)
	assert.ErrorIs(t, err, repository.ErrLabTestNotFound)

	updated, err := svc.Update(ctx, 3, test.ID, LabTestInput{TestName: "CBC", TestPrice: 14})
	require.NoError(t, err)
	assert.Equal(t, 14.0, updated.TestPrice)
	assert.Empty(t, updated.TestDesc)

	_, err = svc.List(ctx, 3, "test_price", "sideways")
	assert.ErrorIs(t, err, repository.ErrInvalidSort)
}
