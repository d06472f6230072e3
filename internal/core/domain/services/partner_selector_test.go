package services_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/partner"
	"shipping/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZip(t *testing.T, value string) kernel.ZipCode {
	t.Helper()
	zip, err := kernel.NewZipCode(value)
	require.NoError(t, err)
	return zip
}

func newVerifiedPartner(t *testing.T, name string, capacity int, zips ...string) *partner.DeliveryPartner {
	t.Helper()
	zipCodes := make([]kernel.ZipCode, 0, len(zips))
	for _, z := range zips {
		zipCodes = append(zipCodes, mustZip(t, z))
	}
	p, err := partner.NewDeliveryPartner(kernel.NewUUID(), name, name+"@partners.example", capacity, zipCodes)
	require.NoError(t, err)
	p.Verify()
	return p
}

func TestPartnerSelector_Select(t *testing.T) {
	selector := services.NewPartnerSelector()
	destination := "90210"

	t.Run("should select least loaded eligible partner", func(t *testing.T) {
		busy := newVerifiedPartner(t, "busy", 5, destination)
		idle := newVerifiedPartner(t, "idle", 5, destination)

		loads := map[kernel.UUID]int{
			busy.ID(): 3,
			idle.ID(): 1,
		}

		result, err := selector.Select(mustZip(t, destination), []*partner.DeliveryPartner{busy, idle}, loads)

		require.NoError(t, err)
		assert.True(t, result.IsEqual(idle))
	})

	t.Run("should treat missing load entries as zero", func(t *testing.T) {
		loaded := newVerifiedPartner(t, "loaded", 5, destination)
		fresh := newVerifiedPartner(t, "fresh", 5, destination)

		loads := map[kernel.UUID]int{loaded.ID(): 2}

		result, err := selector.Select(mustZip(t, destination), []*partner.DeliveryPartner{loaded, fresh}, loads)

		require.NoError(t, err)
		assert.True(t, result.IsEqual(fresh))
	})

	t.Run("should break ties by smallest partner ID", func(t *testing.T) {
		first := newVerifiedPartner(t, "first", 5, destination)
		second := newVerifiedPartner(t, "second", 5, destination)

		expected := first
		if second.ID().String() < first.ID().String() {
			expected = second
		}

		result, err := selector.Select(mustZip(t, destination), []*partner.DeliveryPartner{first, second}, nil)

		require.NoError(t, err)
		assert.True(t, result.IsEqual(expected))

		// Order of candidates must not change the outcome.
		result, err = selector.Select(mustZip(t, destination), []*partner.DeliveryPartner{second, first}, nil)

		require.NoError(t, err)
		assert.True(t, result.IsEqual(expected))
	})

	t.Run("should skip unverified partners", func(t *testing.T) {
		unverified, err := partner.NewDeliveryPartner(
			kernel.NewUUID(), "unverified", "unverified@partners.example", 5,
			[]kernel.ZipCode{mustZip(t, destination)},
		)
		require.NoError(t, err)
		verified := newVerifiedPartner(t, "verified", 5, destination)

		loads := map[kernel.UUID]int{verified.ID(): 4}

		result, err := selector.Select(mustZip(t, destination), []*partner.DeliveryPartner{unverified, verified}, loads)

		require.NoError(t, err)
		assert.True(t, result.IsEqual(verified))
	})

	t.Run("should skip partners that do not service the destination", func(t *testing.T) {
		elsewhere := newVerifiedPartner(t, "elsewhere", 5, "10001")
		local := newVerifiedPartner(t, "local", 5, destination)

		result, err := selector.Select(mustZip(t, destination), []*partner.DeliveryPartner{elsewhere, local}, nil)

		require.NoError(t, err)
		assert.True(t, result.IsEqual(local))
	})

	t.Run("should skip partners at capacity", func(t *testing.T) {
		full := newVerifiedPartner(t, "full", 2, destination)
		open := newVerifiedPartner(t, "open", 2, destination)

		loads := map[kernel.UUID]int{
			full.ID(): 2,
			open.ID(): 1,
		}

		result, err := selector.Select(mustZip(t, destination), []*partner.DeliveryPartner{full, open}, loads)

		require.NoError(t, err)
		assert.True(t, result.IsEqual(open))
	})

	t.Run("should return error when no partners provided", func(t *testing.T) {
		result, err := selector.Select(mustZip(t, destination), nil, nil)

		require.Error(t, err)
		assert.Nil(t, result)
		require.ErrorIs(t, err, services.ErrPartnerNotAvailable)
	})

	t.Run("should return error when all partners are ineligible", func(t *testing.T) {
		full := newVerifiedPartner(t, "full", 1, destination)
		elsewhere := newVerifiedPartner(t, "elsewhere", 5, "10001")

		loads := map[kernel.UUID]int{full.ID(): 1}

		result, err := selector.Select(mustZip(t, destination), []*partner.DeliveryPartner{full, elsewhere}, loads)

		require.Error(t, err)
		assert.Nil(t, result)
		require.ErrorIs(t, err, services.ErrPartnerNotAvailable)
	})

	t.Run("should return error for invalid destination", func(t *testing.T) {
		local := newVerifiedPartner(t, "local", 5, destination)

		var invalidZip kernel.ZipCode
		result, err := selector.Select(invalidZip, []*partner.DeliveryPartner{local}, nil)

		require.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("should return error when candidates contain invalid partner", func(t *testing.T) {
		local := newVerifiedPartner(t, "local", 5, destination)
		var invalidPartner partner.DeliveryPartner

		result, err := selector.Select(
			mustZip(t, destination),
			[]*partner.DeliveryPartner{local, &invalidPartner},
			nil,
		)

		require.Error(t, err)
		assert.Nil(t, result)
		require.ErrorIs(t, err, partner.ErrPartnerIsNotConstructed)
	})

	t.Run("should work with zero value selector", func(t *testing.T) {
		var zeroSelector services.PartnerSelector
		local := newVerifiedPartner(t, "local", 5, destination)

		result, err := zeroSelector.Select(mustZip(t, destination), []*partner.DeliveryPartner{local}, nil)

		require.NoError(t, err)
		assert.True(t, result.IsEqual(local))
	})
}
