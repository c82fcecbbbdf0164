package models

// FormConfiguration is the single form definition the console manages.
// Fields holds custom fields only; the fixed set is appended by
// MergedFields on every load and render. The configuration is saved
// back to the HR service in full, never incrementally.
type FormConfiguration struct {
	FormName        string            `json:"form_name"`
	FormDescription string            `json:"form_description"`
	Fields          []FieldDescriptor `json:"fields"`
	IsActive        bool              `json:"is_active"`
}

// FormID is the identifier of the one form the console manages on the
// HR service.
const FormID = 1
