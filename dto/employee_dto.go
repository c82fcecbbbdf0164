package dto

type OpenEditorInput struct {
	EmployeeID *int64 `json:"employee_id,omitempty" example:"7"`
}

type SetValueInput struct {
	Name  string      `json:"name" binding:"required" example:"department"`
	Value interface{} `json:"value"`
}

// SubmitInput carries the editor generation the shell was handed on
// open, plus any final values to fold into the record before
// validation.
type SubmitInput struct {
	Generation int64                  `json:"generation" binding:"required" example:"3"`
	Record     map[string]interface{} `json:"record,omitempty"`
}
