package get_master_bookings

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		req, err := ToServiceRequest(5, url.Values{})
		require.NoError(t, err)

		assert.Equal(t, int64(5), req.MasterID)
		assert.Nil(t, req.StartDate)
		assert.Nil(t, req.EndDate)
		assert.Nil(t, req.Status)
		assert.False(t, req.IncludeInactive)
		assert.Zero(t, req.Limit)
	})

	t.Run("Single date sets both bounds", func(t *testing.T) {
		req, err := ToServiceRequest(5, url.Values{"date": {"2026-10-15"}, "from": {"2026-10-01"}})
		require.NoError(t, err)

		require.NotNil(t, req.StartDate)
		require.NotNil(t, req.EndDate)
		assert.Equal(t, "2026-10-15", req.StartDate.Format("2006-01-02"))
		assert.Equal(t, *req.StartDate, *req.EndDate)
	})

	t.Run("Range with filters", func(t *testing.T) {
		req, err := ToServiceRequest(5, url.Values{
			"from":            {"2026-10-01"},
			"to":              {"2026-10-31"},
			"status":          {"confirmed"},
			"includeInactive": {"true"},
			"limit":           {"20"},
		})
		require.NoError(t, err)

		assert.Equal(t, "2026-10-01", req.StartDate.Format("2006-01-02"))
		assert.Equal(t, "2026-10-31", req.EndDate.Format("2006-01-02"))
		require.NotNil(t, req.Status)
		assert.Equal(t, "confirmed", *req.Status)
		assert.True(t, req.IncludeInactive)
		assert.Equal(t, uint64(20), req.Limit)
	})

	t.Run("Invalid values", func(t *testing.T) {
		for _, q := range []url.Values{
			{"date": {"15.10.2026"}},
			{"from": {"yesterday"}},
			{"to": {"2026-13-01"}},
			{"includeInactive": {"maybe"}},
			{"limit": {"-1"}},
		} {
			_, err := ToServiceRequest(5, q)
			assert.Error(t, err, q.Encode())
		}
	})
}
