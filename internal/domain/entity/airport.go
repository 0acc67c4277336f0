package entity

// Airport classifications as stored in the directory, ordered by size.
const (
	ClassificationLarge  = "large"
	ClassificationMedium = "medium"
	ClassificationSmall  = "small"
)

// Airport represents one entry of the airport directory. Reference data,
// never mutated by the service.
type Airport struct {
	Code           string
	DisplayName    string
	Municipality   string
	Region         string
	CountryCode    string
	Classification string
	Latitude       float64
	Longitude      float64
}
