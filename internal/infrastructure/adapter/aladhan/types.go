package aladhan

// timingsResponse is the subset of the Aladhan /v1/timings response that is consumed
type timingsResponse struct {
	Code   int         `json:"code"`
	Status string      `json:"status"`
	Data   timingsData `json:"data"`
}

type timingsData struct {
	Timings timings  `json:"timings"`
	Date    dateInfo `json:"date"`
	Meta    meta     `json:"meta"`
}

// timings are HH:MM strings, optionally suffixed with a zone abbreviation such as " (BST)"
type timings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

type dateInfo struct {
	Gregorian gregorianDate `json:"gregorian"`
}

type gregorianDate struct {
	Date string `json:"date"` // DD-MM-YYYY
}

type meta struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}
