package models

// Stock represents a single stock record as stored in the "stock" collection.
//
// Field names are shared by the JSON API surface and the BSON/JSONB storage
// representation, so a document read from the store is returned unchanged.
//
// swagger:model Stock
type Stock struct {
	Category    string  `json:"category" bson:"category" example:"Health Care Equipment & Services"`
	Code        string  `json:"code" bson:"code" example:"5168"`
	CountryCode string  `json:"countryCode" bson:"countryCode" example:"MY"`
	DY          float64 `json:"dy" bson:"dy" example:"30.57"`
	Name        string  `json:"name" bson:"name" example:"Hartalega Holdings Berhad"`
	PE          float64 `json:"pe" bson:"pe" example:"5.64"`
	Price       float64 `json:"price" bson:"price" example:"1.75"`
	ROE         float64 `json:"roe" bson:"roe" example:"20.83"`
	Symbol      string  `json:"symbol" bson:"symbol" example:"HARTA"`
	Top         bool    `json:"top" bson:"top" example:"true"`
}

// StockDocument is a handle to a stored stock: the store-assigned ID plus its data.
// The ID is opaque to callers and only meaningful to the repository that issued it.
type StockDocument struct {
	ID    string
	Stock Stock
}

// StockPatch describes a partial update. Only non-nil fields are written.
type StockPatch struct {
	Category    *string
	CountryCode *string
	DY          *float64
	Name        *string
	PE          *float64
	Price       *float64
	ROE         *float64
	Symbol      *string
	Top         *bool
}

// Fields returns the set fields keyed by their stored name.
func (p StockPatch) Fields() map[string]any {
	out := make(map[string]any)
	if p.Category != nil {
		out["category"] = *p.Category
	}
	if p.CountryCode != nil {
		out["countryCode"] = *p.CountryCode
	}
	if p.DY != nil {
		out["dy"] = *p.DY
	}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.PE != nil {
		out["pe"] = *p.PE
	}
	if p.Price != nil {
		out["price"] = *p.Price
	}
	if p.ROE != nil {
		out["roe"] = *p.ROE
	}
	if p.Symbol != nil {
		out["symbol"] = *p.Symbol
	}
	if p.Top != nil {
		out["top"] = *p.Top
	}
	return out
}

// Apply returns a copy of s with the patch applied.
func (p StockPatch) Apply(s Stock) Stock {
	if p.Category != nil {
		s.Category = *p.Category
	}
	if p.CountryCode != nil {
		s.CountryCode = *p.CountryCode
	}
	if p.DY != nil {
		s.DY = *p.DY
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.PE != nil {
		s.PE = *p.PE
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.ROE != nil {
		s.ROE = *p.ROE
	}
	if p.Symbol != nil {
		s.Symbol = *p.Symbol
	}
	if p.Top != nil {
		s.Top = *p.Top
	}
	return s
}
