package models

import "sort"

type FieldType string

const (
	FieldTypeText     FieldType = "TEXT"
	FieldTypeEmail    FieldType = "EMAIL"
	FieldTypePhone    FieldType = "PHONE"
	FieldTypeURL      FieldType = "URL"
	FieldTypeNumber   FieldType = "NUMBER"
	FieldTypeDecimal  FieldType = "DECIMAL"
	FieldTypeDate     FieldType = "DATE"
	FieldTypeTextarea FieldType = "TEXTAREA"
	FieldTypeSelect   FieldType = "SELECT"
	FieldTypeCheckbox FieldType = "CHECKBOX"
	FieldTypeRadio    FieldType = "RADIO"
	FieldTypeFile     FieldType = "FILE"
)

// FieldTypes lists every supported type in the order the field editor
// offers them.
var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeEmail,
	FieldTypeNumber,
	FieldTypeDate,
	FieldTypeTextarea,
	FieldTypeSelect,
	FieldTypeCheckbox,
	FieldTypeRadio,
	FieldTypeFile,
	FieldTypePhone,
	FieldTypeURL,
	FieldTypeDecimal,
}

func (t FieldType) Valid() bool {
	for _, ft := range FieldTypes {
		if t == ft {
			return true
		}
	}
	return false
}

// HasOptions reports whether the type renders from an option list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio || t == FieldTypeCheckbox
}

type FieldOrigin int

const (
	OriginFixed FieldOrigin = iota
	OriginCustom
)

// FixedIDPrefix is kept on the wire for backend compatibility; origin
// decisions inside the console use the Origin tag, never the prefix.
const FixedIDPrefix = "fixed_"

// FieldDescriptor defines one input of the employee form. Fixed fields
// are built into the console; custom fields come from the form
// configuration stored on the HR service.
type FieldDescriptor struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Label      string      `json:"label"`
	Type       FieldType   `json:"type"`
	Required   bool        `json:"required"`
	Order      int         `json:"order"`
	Options    []string    `json:"options,omitempty"`
	Validation string      `json:"validation,omitempty"`
	Origin     FieldOrigin `json:"-"`
}

func (f FieldDescriptor) IsFixed() bool {
	return f.Origin == OriginFixed
}

// FixedFields returns a fresh copy of the built-in field set. The six
// descriptors are always present in every rendered form and are never
// persisted to the HR service.
func FixedFields() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "fixed_name", Name: "name", Label: "Full Name", Type: FieldTypeText, Required: true, Order: 1, Origin: OriginFixed},
		{ID: "fixed_email", Name: "email", Label: "Email", Type: FieldTypeEmail, Required: true, Order: 2, Origin: OriginFixed},
		{ID: "fixed_department", Name: "department", Label: "Department", Type: FieldTypeSelect, Required: true, Order: 3,
			Options: []string{"HR", "IT", "SALES", "MARKETING", "FINANCE", "OPERATIONS", "OTHER"}, Origin: OriginFixed},
		{ID: "fixed_role", Name: "role", Label: "Role", Type: FieldTypeText, Required: true, Order: 4, Origin: OriginFixed},
		{ID: "fixed_hire_date", Name: "hire_date", Label: "Hire Date", Type: FieldTypeDate, Required: false, Order: 5, Origin: OriginFixed},
		{ID: "fixed_status", Name: "status", Label: "Status", Type: FieldTypeSelect, Required: false, Order: 6,
			Options: []string{"ACTIVE", "INACTIVE", "LEAVE"}, Origin: OriginFixed},
	}
}

// FieldDefinition is the HR service's own custom-field row. It is a
// separate resource from the form configuration fields: the backend
// assigns numeric ids and uses the field_type key.
type FieldDefinition struct {
	ID       int64     `json:"id,omitempty"`
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Type     FieldType `json:"field_type"`
	Required bool      `json:"required"`
	Order    int       `json:"order"`
	Options  []string  `json:"options,omitempty"`
}

// MergedFields returns the fixed set plus the given custom fields,
// sorted ascending by order. Ordering is global across both sets so
// custom fields can sit between fixed ones.
func MergedFields(custom []FieldDescriptor) []FieldDescriptor {
	merged := FixedFields()
	for _, f := range custom {
		f.Origin = OriginCustom
		merged = append(merged, f)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Order < merged[j].Order
	})
	return merged
}
