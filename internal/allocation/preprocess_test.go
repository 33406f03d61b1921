package allocation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trip-allocation-service/internal/domain"
)

func TestPreprocessRoutesByWeight(t *testing.T) {
	records := []domain.OrderRecord{
		domain.NewOrderRecord(1, 17.1, 78.1, "500001", 12),
		domain.NewOrderRecord(2, 17.2, 78.2, "500002", 0),
		domain.NewOrderRecord(3, 17.3, 78.3, "500003", 101),
		domain.NewOrderRecord(4, 17.4, 78.4, "500004", 100),
		domain.NewOrderRecord(5, 17.5, 78.5, "500005", -1),
	}

	valid, rejected, err := Preprocess(records, 100)
	require.NoError(t, err)

	require.Len(t, valid, 2)
	assert.Equal(t, int64(1), valid[0].OrderID)
	assert.Equal(t, "500001", valid[0].Pincode)
	assert.Equal(t, int64(4), valid[1].OrderID)

	assert.Equal(t, []domain.Rejection{
		{OrderID: 2, Reason: domain.ReasonInvalidWeight},
		{OrderID: 3, Reason: domain.ReasonOverCapacity},
		{OrderID: 5, Reason: domain.ReasonInvalidWeight},
	}, rejected)
}

func TestPreprocessReportsEveryMalformedRecord(t *testing.T) {
	noWeight := domain.NewOrderRecord(2, 17.2, 78.2, "500002", 1)
	noWeight.TotalWeightKg = nil
	nanLon := domain.NewOrderRecord(3, 17.3, math.NaN(), "500003", 1)
	noPincode := domain.NewOrderRecord(4, 17.4, 78.4, "", 1)
	noPincode.Pincode = nil

	records := []domain.OrderRecord{
		domain.NewOrderRecord(1, 17.1, 78.1, "500001", 1),
		noWeight,
		nanLon,
		noPincode,
		domain.NewOrderRecord(1, 17.5, 78.5, "500005", 1),
	}

	_, _, err := Preprocess(records, 100)
	require.Error(t, err)

	var ie *domain.InputError
	require.True(t, errors.As(err, &ie))

	fields := make([]string, 0, len(ie.Fields))
	for _, f := range ie.Fields {
		fields = append(fields, f.Field)
	}
	assert.Equal(t, []string{"total_weight_kg", "coordinates", "pincode", "order_id"}, fields)
	assert.Contains(t, ie.Fields[3].Reason, "duplicates record #0")
	assert.Contains(t, err.Error(), "order_id=3")
}

func TestPreprocessEmptyPincodeIsAllowed(t *testing.T) {
	valid, _, err := Preprocess([]domain.OrderRecord{domain.NewOrderRecord(1, 17, 78, "", 5)}, 10)
	require.NoError(t, err)
	assert.Len(t, valid, 1)
}

func TestPreprocessRejectsBadCapacity(t *testing.T) {
	for _, c := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, _, err := Preprocess(nil, c)
		assert.ErrorIs(t, err, domain.ErrInvalidCapacity, "capacity %v", c)
	}
}
