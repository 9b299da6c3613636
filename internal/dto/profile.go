package dto

// ProfileRequest is the payload for the business-profile endpoint. The
// legacy front-end sent name/location, the current one businessName/city;
// both spellings are accepted.
type ProfileRequest struct {
	BusinessName string `json:"businessName"`
	Name         string `json:"name"`
	City         string `json:"city"`
	Location     string `json:"location"`
}

// ResolvedBusinessName returns the business name under either accepted key.
func (r ProfileRequest) ResolvedBusinessName() string {
	if r.BusinessName != "" {
		return r.BusinessName
	}
	return r.Name
}

// ResolvedCity returns the city under either accepted key.
func (r ProfileRequest) ResolvedCity() string {
	if r.City != "" {
		return r.City
	}
	return r.Location
}
