package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticIsExact(t *testing.T) {
	a := MustParse("0.1")
	b := MustParse("0.2")
	assert.True(t, a.Add(b).Equal(MustParse("0.3")))
	assert.Equal(t, "0.3", a.Add(b).String())

	bal := MustParse("200.00")
	tariff := MustParse("100.00")
	bal = bal.Sub(tariff).Sub(tariff)
	assert.True(t, bal.Equal(Zero))
	assert.True(t, bal.LessThan(tariff))
	assert.False(t, bal.IsNegative())
}

func TestComparisons(t *testing.T) {
	assert.True(t, Zero.LessThanOrEqual(Zero))
	assert.False(t, Zero.IsPositive())
	assert.True(t, FromInt(5).IsPositive())
	assert.True(t, MustParse("-1").IsNegative())
	assert.True(t, MustParse("99.99").LessThan(FromInt(100)))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse("ten")
	require.Error(t, err)
}

func TestJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Balance Money `json:"balance"`
	}{MustParse("1234.56")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"balance":1234.56}`, string(out))

	var in struct {
		Amount Money `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount":50000}`), &in))
	assert.Equal(t, "50000", in.Amount.String())

	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.5"}`), &in))
	assert.Equal(t, 12.5, in.Amount.Float64())

	require.Error(t, json.Unmarshal([]byte(`{"amount":"abc"}`), &in))
}

func TestStorable(t *testing.T) {
	for _, ok := range []string{"0.01", "1000.10", "0.100", "9999999999999.99", "-5.5"} {
		assert.True(t, MustParse(ok).Storable(), ok)
	}
	for _, bad := range []string{"0.001", "0.005", "10000000000000", "1e13", "9999999999999.991"} {
		assert.False(t, MustParse(bad).Storable(), bad)
	}
}
