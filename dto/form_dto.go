package dto

import "github.com/linskybing/hr-console-go/models"

type FormDetailsInput struct {
	FormName        string `json:"form_name" example:"Employee Form"`
	FormDescription string `json:"form_description" example:"Onboarding data"`
}

// UpdateFieldInput is a partial field mutation; absent members leave
// the descriptor untouched.
type UpdateFieldInput struct {
	Name       *string           `json:"name,omitempty" example:"shirt_size"`
	Label      *string           `json:"label,omitempty" example:"Shirt Size"`
	Type       *models.FieldType `json:"type,omitempty" example:"SELECT"`
	Required   *bool             `json:"required,omitempty" example:"true"`
	Validation *string           `json:"validation,omitempty"`
}

type ReorderInput struct {
	DraggedID string `json:"dragged_id" binding:"required" example:"field_3f2a"`
	TargetID  string `json:"target_id" binding:"required" example:"fixed_email"`
}

// OptionsInput carries the raw comma separated option string the
// inline editor collects.
type OptionsInput struct {
	Options string `json:"options" example:"Small, Medium, Large"`
}

type ExpandInput struct {
	ID string `json:"id" example:"field_3f2a"`
}
