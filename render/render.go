// Package render turns the merged field list into control descriptors
// the browser shell can draw without any type knowledge of its own.
// Control construction is a capability lookup keyed by the closed
// field type enumeration, so adding a field type means registering one
// builder instead of branching at every call site.
package render

import (
	"strings"

	"github.com/linskybing/hr-console-go/models"
)

type ControlKind string

const (
	KindText     ControlKind = "text"
	KindNumber   ControlKind = "number"
	KindDate     ControlKind = "date"
	KindTextarea ControlKind = "textarea"
	KindSelect   ControlKind = "select"
	KindCheckbox ControlKind = "checkbox"
	KindRadio    ControlKind = "radio"
	KindFile     ControlKind = "file"
)

// Control is one bound input of the rendered form, keyed by the
// field's name.
type Control struct {
	Kind        ControlKind `json:"kind"`
	InputType   string      `json:"input_type,omitempty"`
	Step        string      `json:"step,omitempty"`
	Name        string      `json:"name"`
	Label       string      `json:"label"`
	Required    bool        `json:"required"`
	Placeholder string      `json:"placeholder,omitempty"`
	Options     []string    `json:"options,omitempty"`
	Value       interface{} `json:"value"`
}

type builder func(f models.FieldDescriptor) Control

func textControl(inputType string) builder {
	return func(f models.FieldDescriptor) Control {
		return Control{
			Kind:        KindText,
			InputType:   inputType,
			Placeholder: "Enter " + strings.ToLower(f.Label),
		}
	}
}

func numberControl(step string) builder {
	return func(f models.FieldDescriptor) Control {
		return Control{
			Kind:        KindNumber,
			Step:        step,
			Placeholder: "Enter " + strings.ToLower(f.Label),
		}
	}
}

var builders = map[models.FieldType]builder{
	models.FieldTypeText:    textControl("text"),
	models.FieldTypeEmail:   textControl("email"),
	models.FieldTypePhone:   textControl("tel"),
	models.FieldTypeURL:     textControl("url"),
	models.FieldTypeNumber:  numberControl("1"),
	models.FieldTypeDecimal: numberControl("0.01"),
	models.FieldTypeDate: func(f models.FieldDescriptor) Control {
		return Control{Kind: KindDate}
	},
	models.FieldTypeTextarea: func(f models.FieldDescriptor) Control {
		return Control{
			Kind:        KindTextarea,
			Placeholder: "Enter " + strings.ToLower(f.Label),
		}
	},
	models.FieldTypeSelect: func(f models.FieldDescriptor) Control {
		return Control{
			Kind:        KindSelect,
			Options:     f.Options,
			Placeholder: "Select " + f.Label,
		}
	},
	models.FieldTypeCheckbox: func(f models.FieldDescriptor) Control {
		return Control{Kind: KindCheckbox}
	},
	models.FieldTypeRadio: func(f models.FieldDescriptor) Control {
		return Control{Kind: KindRadio, Options: f.Options}
	},
	models.FieldTypeFile: func(f models.FieldDescriptor) Control {
		return Control{Kind: KindFile}
	},
}

// Field builds the control for one descriptor, bound to the record's
// current value. Unknown types fall back to a plain text input.
func Field(f models.FieldDescriptor, record models.FormDataRecord) Control {
	build, ok := builders[f.Type]
	if !ok {
		build = textControl("text")
	}

	control := build(f)
	control.Name = f.Name
	control.Label = f.Label
	control.Required = f.Required
	control.Value = record[f.Name]
	return control
}

// Form renders one control per field in merged-list order.
func Form(fields []models.FieldDescriptor, record models.FormDataRecord) []Control {
	controls := make([]Control, 0, len(fields))
	for _, f := range fields {
		controls = append(controls, Field(f, record))
	}
	return controls
}
