package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linskybing/hr-console-go/models"
)

func TestTextInputSubtypes(t *testing.T) {
	cases := []struct {
		fieldType models.FieldType
		inputType string
	}{
		{models.FieldTypeText, "text"},
		{models.FieldTypeEmail, "email"},
		{models.FieldTypePhone, "tel"},
		{models.FieldTypeURL, "url"},
	}
	for _, tc := range cases {
		control := Field(models.FieldDescriptor{Name: "f", Label: "Work Phone", Type: tc.fieldType}, models.FormDataRecord{})
		assert.Equal(t, KindText, control.Kind)
		assert.Equal(t, tc.inputType, control.InputType)
		assert.Equal(t, "Enter work phone", control.Placeholder)
	}
}

func TestNumericSteps(t *testing.T) {
	whole := Field(models.FieldDescriptor{Name: "n", Label: "Count", Type: models.FieldTypeNumber}, models.FormDataRecord{})
	assert.Equal(t, KindNumber, whole.Kind)
	assert.Equal(t, "1", whole.Step)

	fractional := Field(models.FieldDescriptor{Name: "d", Label: "Rate", Type: models.FieldTypeDecimal}, models.FormDataRecord{})
	assert.Equal(t, KindNumber, fractional.Kind)
	assert.Equal(t, "0.01", fractional.Step)
}

func TestSelectCarriesOptionsAndPlaceholder(t *testing.T) {
	f := models.FieldDescriptor{
		Name: "department", Label: "Department", Type: models.FieldTypeSelect,
		Options: []string{"HR", "IT"}, Required: true,
	}
	control := Field(f, models.FormDataRecord{"department": "IT"})

	assert.Equal(t, KindSelect, control.Kind)
	assert.Equal(t, []string{"HR", "IT"}, control.Options)
	assert.Equal(t, "Select Department", control.Placeholder)
	assert.Equal(t, "IT", control.Value)
	assert.True(t, control.Required)
}

func TestRadioCheckboxDateFileKinds(t *testing.T) {
	radio := Field(models.FieldDescriptor{Name: "r", Label: "Shift", Type: models.FieldTypeRadio, Options: []string{"Day", "Night"}}, models.FormDataRecord{})
	assert.Equal(t, KindRadio, radio.Kind)
	assert.Equal(t, []string{"Day", "Night"}, radio.Options)

	checkbox := Field(models.FieldDescriptor{Name: "c", Label: "Remote", Type: models.FieldTypeCheckbox}, models.FormDataRecord{"c": true})
	assert.Equal(t, KindCheckbox, checkbox.Kind)
	assert.Equal(t, true, checkbox.Value)

	date := Field(models.FieldDescriptor{Name: "d", Label: "Hire Date", Type: models.FieldTypeDate}, models.FormDataRecord{})
	assert.Equal(t, KindDate, date.Kind)

	file := Field(models.FieldDescriptor{Name: "f", Label: "Contract", Type: models.FieldTypeFile}, models.FormDataRecord{})
	assert.Equal(t, KindFile, file.Kind)
}

func TestUnknownTypeFallsBackToText(t *testing.T) {
	control := Field(models.FieldDescriptor{Name: "x", Label: "X", Type: "MYSTERY"}, models.FormDataRecord{})
	assert.Equal(t, KindText, control.Kind)
	assert.Equal(t, "text", control.InputType)
}

func TestFormRendersOneControlPerField(t *testing.T) {
	record := models.FormDataRecord{"name": "Ada", "email": ""}
	controls := Form(models.MergedFields(nil), record)

	assert.Len(t, controls, 6)
	assert.Equal(t, "name", controls[0].Name)
	assert.Equal(t, "Ada", controls[0].Value)
	assert.Equal(t, "email", controls[1].Name)
	assert.Equal(t, "", controls[1].Value)
}
