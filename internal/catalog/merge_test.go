package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }
func intp(i int) *int { return &i }
func f64p(f float64) *float64 { return &f }

func TestCarPatchApply_KeepsUnpatchedFields(t *testing.T) {
	current := Car{
		ID: 7, Model: "Audi RS6", Year: 2024, Engine: "4.0L V8 Twin Turbo",
		Price: 108000, Image: "img", Mileage: 1500,
		Transmission: TransmissionAutomatic,
		Description:  "The ultimate estate car.",
		Features:     []string{"Ceramic Brakes", "Pan Roof"},
	}

	patch := CarPatch{Price: f64p(99950), Mileage: intp(2100)}
	out := patch.Apply(current)

	assert.Equal(t, 7, out.ID)
	assert.Equal(t, 99950.0, out.Price)
	assert.Equal(t, 2100, out.Mileage)
	// Everything absent from the patch survives the overlay.
	assert.Equal(t, current.Model, out.Model)
	assert.Equal(t, current.Engine, out.Engine)
	assert.Equal(t, current.Description, out.Description)
	assert.Equal(t, current.Features, out.Features)
	assert.False(t, out.Sold)
}

func TestCarPatchApply_CopiesFeatures(t *testing.T) {
	current := Car{ID: 1, Features: []string{"A"}}
	feats := []string{"A", "B"}
	out := CarPatch{Features: &feats}.Apply(current)

	feats[1] = "mutated"
	assert.Equal(t, []string{"A", "B"}, out.Features)
}

func TestTyrePatchApply_OfferPrice(t *testing.T) {
	current := TyreProduct{ID: 3, Brand: "Michelin", Price: 145, OfferPrice: f64p(135)}

	// Outer nil leaves the offer alone.
	out := TyrePatch{Price: f64p(150)}.Apply(current)
	assert.NotNil(t, out.OfferPrice)
	assert.Equal(t, 135.0, *out.OfferPrice)

	// Inner nil clears it.
	var cleared *float64
	out = TyrePatch{OfferPrice: &cleared}.Apply(current)
	assert.Nil(t, out.OfferPrice)
}

func TestServicePatchApply(t *testing.T) {
	current := ServiceItem{ID: 2, Name: "Servicing", Description: "Full & Interim."}
	out := ServicePatch{Name: strp("Servicing & MOT")}.Apply(current)

	assert.Equal(t, "Servicing & MOT", out.Name)
	assert.Equal(t, "Full & Interim.", out.Description)
}

func TestHasOffer(t *testing.T) {
	tyre := TyreProduct{Price: 145}
	assert.False(t, tyre.HasOffer(), "no offer price set")

	tyre.OfferPrice = f64p(135)
	assert.True(t, tyre.HasOffer())

	// Only strictly-less offers count as a discount.
	tyre.OfferPrice = f64p(145)
	assert.False(t, tyre.HasOffer())
	tyre.OfferPrice = f64p(160)
	assert.False(t, tyre.HasOffer())
}

func TestDemoSnapshot_FreshCopies(t *testing.T) {
	a := DemoSnapshot()
	b := DemoSnapshot()

	a.Cars[0].Model = "changed"
	a.Tyres[0].Quantity = 0

	assert.Equal(t, "Audi RS6", b.Cars[0].Model)
	assert.Equal(t, 12, b.Tyres[0].Quantity)
	assert.NotEmpty(t, b.Services)
	assert.NotEmpty(t, b.Brands)
}
