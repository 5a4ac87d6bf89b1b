package catalog

// The backend update endpoints are full-replace, not true patches. Callers
// supply a sparse patch; the client overlays it onto its last-known copy of
// the record and sends the whole thing. Fields absent from the patch always
// keep their cached value.

// CarPatch is a sparse update for a Car. Nil fields are left untouched.
type CarPatch struct {
	Model        *string
	Year         *int
	Engine       *string
	Price        *float64
	Image        *string
	Sold         *bool
	Mileage      *int
	Transmission *string
	Description  *string
	Features     *[]string
}

// Apply overlays the patch onto a cached record and returns the full record
// to send. The id is taken from the cached record.
func (p CarPatch) Apply(current Car) Car {
	out := current
	if p.Model != nil {
		out.Model = *p.Model
	}
	if p.Year != nil {
		out.Year = *p.Year
	}
	if p.Engine != nil {
		out.Engine = *p.Engine
	}
	if p.Price != nil {
		out.Price = *p.Price
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.Sold != nil {
		out.Sold = *p.Sold
	}
	if p.Mileage != nil {
		out.Mileage = *p.Mileage
	}
	if p.Transmission != nil {
		out.Transmission = *p.Transmission
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Features != nil {
		out.Features = append([]string(nil), (*p.Features)...)
	}
	return out
}

// TyrePatch is a sparse update for a TyreProduct.
type TyrePatch struct {
	Brand      *string
	Model      *string
	Size       *string
	Price      *float64
	OfferPrice **float64 // outer nil: untouched; inner nil: clear the offer
	Quantity   *int
	Category   *string
	Image      *string
	Specs      *TyreSpecs
}

// Apply overlays the patch onto a cached record.
func (p TyrePatch) Apply(current TyreProduct) TyreProduct {
	out := current
	if p.Brand != nil {
		out.Brand = *p.Brand
	}
	if p.Model != nil {
		out.Model = *p.Model
	}
	if p.Size != nil {
		out.Size = *p.Size
	}
	if p.Price != nil {
		out.Price = *p.Price
	}
	if p.OfferPrice != nil {
		out.OfferPrice = *p.OfferPrice
	}
	if p.Quantity != nil {
		out.Quantity = *p.Quantity
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.Specs != nil {
		out.Specs = *p.Specs
	}
	return out
}

// ServicePatch is a sparse update for a ServiceItem.
type ServicePatch struct {
	Name        *string
	Description *string
}

// Apply overlays the patch onto a cached record.
func (p ServicePatch) Apply(current ServiceItem) ServiceItem {
	out := current
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	return out
}
