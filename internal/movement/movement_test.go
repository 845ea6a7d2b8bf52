package movement_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ebenezer-app/ebenezer/internal/movement"
)

func TestLabels(t *testing.T) {
	assert.Equal(t, "Entrata", movement.TypeEntrata.Label())
	assert.Equal(t, "Uscita", movement.TypeUscita.Label())
	assert.Equal(t, "Decima/Offerta", movement.SectorDecimaOfferta.Label())
	assert.Equal(t, "PayPal", movement.PaymentPaypal.Label())
	assert.Equal(t, "Manutenzione", movement.CategoryManutenzione.Label())

	// Unknown values fall back to the raw value instead of failing.
	assert.Equal(t, "xyz", movement.Category("xyz").Label())
	assert.Equal(t, "satispay", movement.PaymentMethod("satispay").Label())
	assert.Equal(t, "", movement.Sector("").Label())
}

func TestLabels_CoverEveryValue(t *testing.T) {
	for _, c := range movement.Categories {
		assert.True(t, c.Valid())
		assert.NotEqual(t, string(c), c.Label(), "category %s has no label", c)
	}

	for _, s := range movement.Sectors {
		assert.True(t, s.Valid())
		assert.Equal(t, s, movement.ParseSector(s.Label()))
	}

	for _, p := range movement.PaymentMethods {
		assert.True(t, p.Valid())
		assert.Equal(t, p, movement.ParsePaymentMethod(p.Label()))
	}

	for _, tp := range movement.Types {
		assert.Equal(t, tp, movement.ParseType(tp.Label()))
		assert.Equal(t, tp, movement.ParseType(string(tp)))
	}
}

func TestParseCategory_Unknown(t *testing.T) {
	assert.Equal(t, movement.Category("Varie"), movement.ParseCategory("Varie"))
	assert.False(t, movement.ParseCategory("Varie").Valid())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "12.34", want: 1234},
		{in: "12,34", want: 1234},
		{in: "€30.50", want: 3050},
		{in: " € 7 ", want: 700},
		{in: "1.234,56", want: 123456},
		{in: "0.01", want: 1},
		{in: "0", wantErr: true},
		{in: "-5.00", wantErr: true},
		{in: "1.005", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "92233720368547758.07", want: math.MaxInt64},
		{in: "92233720368547758.08", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
		{in: "1e30", wantErr: true},
		{in: "1E2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := movement.ParseAmount(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, movement.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "€0.00", movement.FormatAmount(0))
	assert.Equal(t, "€30.50", movement.FormatAmount(3050))
	assert.Equal(t, "€1234.56", movement.FormatAmount(123456))
	assert.Equal(t, "€-10.00", movement.FormatAmount(-1000))
}
