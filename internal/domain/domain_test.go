package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRate_FirstWrite(t *testing.T) {
	now := time.Now()
	r := NextRate(nil, 6300, 80, now)
	assert.Equal(t, RateKey, r.Key)
	assert.Equal(t, 6300.0, r.PreviousGold)
	assert.Equal(t, 80.0, r.PreviousSilver)
	assert.Equal(t, now, r.LastUpdated)
	assert.Zero(t, r.GoldTrend())
}

func TestNextRate_KeepsPriorValues(t *testing.T) {
	cur := &MetalRate{Gold: 6250, Silver: 78}
	r := NextRate(cur, 6300, 75, time.Now())
	assert.Equal(t, 6250.0, r.PreviousGold)
	assert.Equal(t, 78.0, r.PreviousSilver)
	assert.Equal(t, 1, r.GoldTrend())
	assert.Equal(t, -1, r.SilverTrend())
}

func TestErrMissingImage_Matches(t *testing.T) {
	assert.True(t, errors.Is(ErrMissingImage, ErrValidation))
	assert.True(t, errors.Is(ErrMissingImage, ErrMediaResolution))
	assert.True(t, errors.Is(ErrMissingImage, ErrMissingImage))
	assert.False(t, errors.Is(ErrMissingImage, ErrNotFound))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("price", "must be >= 0")
	assert.EqualError(t, err, "price: must be >= 0")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestFields_Only(t *testing.T) {
	f := Fields{"name": "Ring", "bogus": 1, "price": 10.0}
	assert.Equal(t, Fields{"name": "Ring", "price": 10.0}, f.Only(ProductFields))
}
