package response

import (
	"github.com/linskybing/hr-console-go/models"
	"github.com/linskybing/hr-console-go/render"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// EmployeeListResponse flags degraded mode so the shell can show the
// sample dataset behind a visible error banner.
type EmployeeListResponse struct {
	Employees []models.Employee `json:"employees"`
	Degraded  bool              `json:"degraded"`
	Error     string            `json:"error,omitempty"`
}

type EditorResponse struct {
	Generation int64            `json:"generation"`
	Editing    models.Employee  `json:"editing,omitempty"`
	Controls   []render.Control `json:"controls"`
}

// FormField decorates a descriptor with its origin for the editor UI,
// which greys out fixed fields and hides their delete button.
type FormField struct {
	models.FieldDescriptor
	Fixed bool `json:"fixed"`
}

type FormResponse struct {
	FormName        string      `json:"form_name"`
	FormDescription string      `json:"form_description"`
	Fields          []FormField `json:"fields"`
	ExpandedID      string      `json:"expanded_id,omitempty"`
}
