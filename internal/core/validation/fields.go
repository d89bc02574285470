// Package validation holds pure request-field checks shared by the API
// handlers. Each function returns the offending field name and a message,
// or empty strings when the input is acceptable.
package validation

// =============================================================================
// Catalog Validation
// =============================================================================

// ValidateCreateEditionFields validates required fields for edition creation.
func ValidateCreateEditionFields(name string, year int) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	if year < 2000 || year > 2100 {
		return "year", "year is out of range"
	}
	return "", ""
}

// ValidateCreateSchoolFields validates required fields for school creation.
func ValidateCreateSchoolFields(name, schoolType string) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	switch schoolType {
	case "centrale", "from_other", "other":
		return "", ""
	default:
		return "school_type", "school_type must be one of centrale, from_other, other"
	}
}

// ValidateCreateSportFields validates required fields for sport creation.
func ValidateCreateSportFields(name string, teamCapacity int) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	if teamCapacity < 0 {
		return "team_capacity", "team_capacity cannot be negative"
	}
	return "", ""
}

// ValidateCreateLocationFields validates required fields for location creation.
func ValidateCreateLocationFields(name string, lat, lng float64) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	if lat < -90 || lat > 90 {
		return "latitude", "latitude must be between -90 and 90"
	}
	if lng < -180 || lng > 180 {
		return "longitude", "longitude must be between -180 and 180"
	}
	return "", ""
}

// ValidateCreateTeamFields validates required fields for team creation.
func ValidateCreateTeamFields(name, schoolID, sportID string) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	if schoolID == "" {
		return "school_id", "school_id is required"
	}
	if sportID == "" {
		return "sport_id", "sport_id is required"
	}
	return "", ""
}

// ValidateCreateMatchFields validates required fields for match creation.
// A match needs two distinct teams of the same sport.
func ValidateCreateMatchFields(sportID, team1ID, team2ID string) (field, message string) {
	if sportID == "" {
		return "sport_id", "sport_id is required"
	}
	if team1ID == "" {
		return "team1_id", "team1_id is required"
	}
	if team2ID == "" {
		return "team2_id", "team2_id is required"
	}
	if team1ID == team2ID {
		return "team2_id", "a team cannot play against itself"
	}
	return "", ""
}

// =============================================================================
// Product Validation
// =============================================================================

// ValidateCreateProductFields validates required fields for product creation.
func ValidateCreateProductFields(name string) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	return "", ""
}

// ValidateCreateVariantFields validates required fields for variant creation.
func ValidateCreateVariantFields(name string, priceCents int64) (field, message string) {
	if name == "" {
		return "name", "name is required"
	}
	if priceCents < 0 {
		return "price_cents", "price_cents cannot be negative"
	}
	return "", ""
}

// ValidateCreatePurchaseFields validates required fields for purchase creation.
func ValidateCreatePurchaseFields(userID, variantID string, quantity int) (field, message string) {
	if userID == "" {
		return "user_id", "user_id is required"
	}
	if variantID == "" {
		return "product_variant_id", "product_variant_id is required"
	}
	if quantity <= 0 {
		return "quantity", "quantity must be positive"
	}
	return "", ""
}

// =============================================================================
// Auth Validation
// =============================================================================

// ValidateLoginFields validates required fields for an admin login.
func ValidateLoginFields(email, password string) (field, message string) {
	if email == "" {
		return "email", "email is required"
	}
	if password == "" {
		return "password", "password is required"
	}
	return "", ""
}
