package catalog

// Snapshot is the complete dataset the store owns: every server-derived
// collection plus the settings aggregates.
type Snapshot struct {
	Cars        []Car
	Services    []ServiceItem
	Tyres       []TyreProduct
	Brands      []TyreBrand
	Bookings    []Booking
	CompanyInfo CompanyInfo
	Banner      Banner
}

func ptr(f float64) *float64 { return &f }

// DemoSnapshot returns a fresh copy of the sample dataset served while demo
// mode is active. Callers may mutate the result freely.
func DemoSnapshot() Snapshot {
	info := CompanyInfo{
		OpeningHours: []OpeningHours{
			{Day: "Mon - Fri", Hours: "09:00 - 18:00"},
			{Day: "Sat", Hours: "09:00 - 16:00"},
		},
		Facilities: []string{"Wifi", "Waiting Area"},
	}
	info.Contact.Email = "alexisautosltd@gmail.com"
	info.Contact.Phone = "+44 7918 479222"
	info.Contact.Whatsapp = "+44 7450 242180"
	info.Address.Lines = []string{"Unit C5 Cumberland Trading Estate", "Loughborough", "LE11 5DF"}

	return Snapshot{
		Cars: []Car{
			{
				ID: 1, Model: "Audi RS6", Year: 2024, Engine: "4.0L V8 Twin Turbo",
				Price: 108000, Image: "https://picsum.photos/seed/audi/800/600",
				Mileage: 1500, Transmission: TransmissionAutomatic,
				Description: "The ultimate estate car.",
				Features:    []string{"Ceramic Brakes", "Pan Roof"},
			},
			{
				ID: 2, Model: "BMW M4", Year: 2023, Engine: "3.0L Twin Turbo",
				Price: 75000, Image: "https://picsum.photos/seed/bmw/800/600",
				Mileage: 5000, Transmission: TransmissionAutomatic,
				Description: "Track ready performance.",
				Features:    []string{"Carbon Pack", "Head-up Display"},
			},
		},
		Services: []ServiceItem{
			{ID: 1, Name: "Car Tyres", Description: "Premium fitting."},
			{ID: 2, Name: "Servicing", Description: "Full & Interim."},
		},
		Tyres: []TyreProduct{
			{
				ID: 1, Brand: "Michelin", Model: "Pilot Sport 5", Size: "225/40 R18",
				Price: 145, OfferPrice: ptr(135), Quantity: 12, Category: CategoryPremium,
				Image: "https://picsum.photos/seed/michelin/300/300",
				Specs: TyreSpecs{Fuel: "C", Wet: "A", Noise: 72},
			},
			{
				ID: 2, Brand: "Pirelli", Model: "P Zero", Size: "255/35 R19",
				Price: 180, OfferPrice: ptr(165), Quantity: 8, Category: CategoryPremium,
				Image: "https://picsum.photos/seed/pirelli/300/300",
				Specs: TyreSpecs{Fuel: "D", Wet: "A", Noise: 71},
			},
			{
				ID: 3, Brand: "Budget", Model: "RoadKing", Size: "205/55 R16",
				Price: 55, Quantity: 20, Category: CategoryBudget,
				Image: "https://picsum.photos/seed/budget/300/300",
				Specs: TyreSpecs{Fuel: "E", Wet: "C", Noise: 74},
			},
		},
		Brands: []TyreBrand{
			{Name: "Michelin"},
			{Name: "Pirelli"},
			{Name: "Continental"},
			{Name: "Goodyear"},
		},
		Bookings:    []Booking{},
		CompanyInfo: info,
		Banner:      Banner{Active: false, Reason: ""},
	}
}
