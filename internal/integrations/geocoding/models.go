package geocoding

// Place результат геокодирования координат бизнеса
type Place struct {
	Label    string // "{Municipality}, {Subdivision}. {Country}"
	TimeZone string // IANA идентификатор
}

type reverseAddressResponse struct {
	Addresses []struct {
		Address struct {
			Municipality       string `json:"municipality"`
			CountrySubdivision string `json:"countrySubdivision"`
			Country            string `json:"country"`
		} `json:"address"`
	} `json:"addresses"`
}

type timeZoneResponse struct {
	TimeZones []struct {
		ID string `json:"Id"`
	} `json:"TimeZones"`
}
