package domain

type GeocodeRequest struct {
	Query string `json:"query" validate:"required,min=3"`
}

type GeocodeResult struct {
	Name      string  `json:"name"`
	PlaceName string  `json:"place_name"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

type GeocodeResponse struct {
	Results []GeocodeResult `json:"results"`
}
