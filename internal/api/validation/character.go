package validation

import "strings"

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// requiredMessage is the per-field message for a missing required field.
const requiredMessage = "This field is required."

// CreateCharacterRequest mirrors the fields needed for create character validation.
type CreateCharacterRequest struct {
	AvatarURL   string
	LodestoneID string
	Name        string
	World       string
}

// ValidateCreateCharacterRequest validates the fields of a create character
// request. Every missing required field gets its own entry.
func ValidateCreateCharacterRequest(req CreateCharacterRequest) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(req.AvatarURL) == "" {
		errs = append(errs, FieldError{Field: "avatar_url", Message: requiredMessage})
	}
	if strings.TrimSpace(req.LodestoneID) == "" {
		errs = append(errs, FieldError{Field: "lodestone_id", Message: requiredMessage})
	}
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: requiredMessage})
	} else if len(req.Name) > 60 {
		errs = append(errs, FieldError{Field: "name", Message: "name must be at most 60 characters"})
	}
	if strings.TrimSpace(req.World) == "" {
		errs = append(errs, FieldError{Field: "world", Message: requiredMessage})
	} else if len(req.World) > 60 {
		errs = append(errs, FieldError{Field: "world", Message: "world must be at most 60 characters"})
	}

	return errs
}
