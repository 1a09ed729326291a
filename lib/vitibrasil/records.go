package vitibrasil

// Quantity and value fields are pointers so a missing cell (the
// portal's "-" sentinel) stays distinguishable from a literal zero.
// JSON names match the payloads the historical API served.

type ProductionRecord struct {
	Year           int      `json:"Year"`
	Category       string   `json:"Category"`
	Product        string   `json:"Product"`
	QuantityLiters *float64 `json:"Quantity_L"`
}

type ProcessingRecord struct {
	Year       int      `json:"Year"`
	GroupName  string   `json:"GroupName"`
	Cultive    string   `json:"Cultive"`
	Product    string   `json:"Product"`
	QuantityKg *float64 `json:"Quantity_Kg"`
}

type CommercializationRecord struct {
	Year           int      `json:"Year"`
	GroupName      string   `json:"GroupName"`
	Product        string   `json:"Product"`
	QuantityLiters *float64 `json:"Quantity_L"`
}

type ImportRecord struct {
	Year       int      `json:"Year"`
	Country    string   `json:"Country"`
	Product    string   `json:"Product"`
	QuantityKg *float64 `json:"Quantity_Kg"`
	ValueUSD   *float64 `json:"Value_US"`
}

type ExportRecord struct {
	Year       int      `json:"Year"`
	Country    string   `json:"Country"`
	Product    string   `json:"Product"`
	QuantityKg *float64 `json:"Quantity_Kg"`
	ValueUSD   *float64 `json:"Value_US"`
}
