package availability

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jwalitptl/salon-api/internal/model"
)

func TestDurationResolverChain(t *testing.T) {
	cut := &model.Service{Duration: 45}
	cut.ID = uuid.New()
	massage := &model.Service{Duration: 60}
	massage.ID = uuid.New()
	zeroLength := &model.Service{Duration: 0}
	zeroLength.ID = uuid.New()

	spa := &model.Package{ServiceIDs: model.UUIDList{cut.ID, massage.ID}}
	spa.ID = uuid.New()
	empty := &model.Package{}
	empty.ID = uuid.New()

	catalog := &fakeCatalogRepo{
		services: map[uuid.UUID]*model.Service{
			cut.ID: cut, massage.ID: massage, zeroLength.ID: zeroLength,
		},
		packages: map[uuid.UUID]*model.Package{spa.ID: spa, empty.ID: empty},
	}
	resolver := NewDurationResolver(catalog, 30)
	missing := uuid.New()

	tests := []struct {
		name    string
		booking *model.Booking
		want    int
	}{
		{"explicit duration wins", &model.Booking{Duration: 90, ServiceID: &cut.ID}, 90},
		{"service duration", &model.Booking{ServiceID: &cut.ID}, 45},
		{"package sums services", &model.Booking{PackageID: &spa.ID}, 105},
		{"missing service falls through", &model.Booking{ServiceID: &missing}, 30},
		{"zero-length service falls through", &model.Booking{ServiceID: &zeroLength.ID}, 30},
		{"empty package falls through", &model.Booking{PackageID: &empty.ID}, 30},
		{"missing package falls through", &model.Booking{PackageID: &missing}, 30},
		{"nothing set uses fallback", &model.Booking{}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolver.Resolve(context.Background(), tt.booking))
		})
	}
}

func TestDurationResolverFallbackFloor(t *testing.T) {
	resolver := NewDurationResolver(&fakeCatalogRepo{}, 0)
	assert.Equal(t, DefaultFallbackDuration, resolver.Resolve(context.Background(), &model.Booking{}))
}
