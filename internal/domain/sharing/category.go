package sharing

import "math"

// Category classifies what a donation or request is about
type Category string

const (
	CategoryFood        Category = "food"
	CategoryClothes     Category = "clothes"
	CategoryBlood       Category = "blood"
	CategoryMedicine    Category = "medicine"
	CategoryBooks       Category = "books"
	CategoryElectronics Category = "electronics"
	CategoryFurniture   Category = "furniture"
	CategoryOther       Category = "other"
)

// IsValid checks if the category is a known Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryClothes, CategoryBlood, CategoryMedicine,
		CategoryBooks, CategoryElectronics, CategoryFurniture, CategoryOther:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Categories lists all valid categories
func Categories() []Category {
	return []Category{
		CategoryFood, CategoryClothes, CategoryBlood, CategoryMedicine,
		CategoryBooks, CategoryElectronics, CategoryFurniture, CategoryOther,
	}
}

// Address is a structured postal address
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// IsZero reports whether no address field is set
func (a Address) IsZero() bool {
	return a == Address{}
}

// GeoPoint is a WGS84 coordinate pair
type GeoPoint struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// IsValid checks the coordinates fall within WGS84 bounds
func (p GeoPoint) IsValid() bool {
	return p.Longitude >= -180 && p.Longitude <= 180 &&
		p.Latitude >= -90 && p.Latitude <= 90
}

const earthRadiusMeters = 6371000

// DistanceMeters returns the haversine distance to another point
func (p GeoPoint) DistanceMeters(other GeoPoint) float64 {
	lat1 := p.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (other.Longitude - p.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
