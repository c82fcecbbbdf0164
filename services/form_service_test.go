package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linskybing/hr-console-go/models"
)

type fakeFormAPI struct {
	stored models.FormConfiguration
	getErr error
	putErr error
	saves  int
}

func (f *fakeFormAPI) GetForm(ctx context.Context) (models.FormConfiguration, error) {
	return f.stored, f.getErr
}

func (f *fakeFormAPI) SaveForm(ctx context.Context, cfg models.FormConfiguration) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.stored = cfg
	f.saves++
	return nil
}

func assertContiguousOrders(t *testing.T, fields []models.FieldDescriptor) {
	t.Helper()
	orders := make([]int, 0, len(fields))
	for _, f := range fields {
		orders = append(orders, f.Order)
	}
	sort.Ints(orders)
	for i, o := range orders {
		assert.Equal(t, i+1, o, "orders must be a contiguous permutation of 1..count")
	}
}

func TestAddFieldAppendsAtEnd(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})

	field := svc.AddField()

	assert.Equal(t, "field_1", field.Name)
	assert.Equal(t, "New Field", field.Label)
	assert.Equal(t, models.FieldTypeText, field.Type)
	assert.False(t, field.Required)
	assert.Equal(t, 7, field.Order)
	assert.Equal(t, field.ID, svc.ExpandedID())

	merged := svc.MergedFields()
	assert.Len(t, merged, 7)
	assert.Equal(t, field.ID, merged[6].ID)
	assertContiguousOrders(t, merged)
}

func TestRemoveFixedFieldRejected(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})
	svc.AddField()
	before := svc.MergedFields()

	err := svc.RemoveField("fixed_email")

	assert.ErrorIs(t, err, ErrFixedField)
	assert.Equal(t, before, svc.MergedFields())
}

func TestRemoveFieldCollapsesEditor(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})
	field := svc.AddField()
	assert.Equal(t, field.ID, svc.ExpandedID())

	assert.NoError(t, svc.RemoveField(field.ID))
	assert.Empty(t, svc.ExpandedID())
	assert.Len(t, svc.MergedFields(), 6)
}

func TestRemoveUnknownFieldIsNoop(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})
	svc.AddField()
	before := svc.MergedFields()

	assert.NoError(t, svc.RemoveField("field_nope"))
	assert.Equal(t, before, svc.MergedFields())
}

func TestUpdateFieldIgnoresFixed(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})
	label := "Hacked"
	svc.UpdateField("fixed_name", FieldUpdate{Label: &label})

	merged := svc.MergedFields()
	assert.Equal(t, "Full Name", merged[0].Label)
}

func TestUpdateFieldTypeSwitchKeepsOptions(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})
	field := svc.AddField()

	selectType := models.FieldTypeSelect
	svc.UpdateField(field.ID, FieldUpdate{Type: &selectType})
	svc.SetOptions(field.ID, "Small, Medium , Large")

	cfg := svc.Configuration()
	assert.Equal(t, []string{"Small", "Medium", "Large"}, cfg.Fields[0].Options)

	// Away from SELECT the options stay stored, just unused.
	textType := models.FieldTypeText
	svc.UpdateField(field.ID, FieldUpdate{Type: &textType})
	cfg = svc.Configuration()
	assert.Equal(t, []string{"Small", "Medium", "Large"}, cfg.Fields[0].Options)

	// Into RADIO with nothing stored starts an empty list.
	second := svc.AddField()
	radioType := models.FieldTypeRadio
	svc.UpdateField(second.ID, FieldUpdate{Type: &radioType})
	cfg = svc.Configuration()
	assert.NotNil(t, cfg.Fields[1].Options)
	assert.Empty(t, cfg.Fields[1].Options)
}

func TestReorderSwapsAndRenumbers(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})
	field := svc.AddField() // order 7

	svc.Reorder(field.ID, "fixed_email")

	merged := svc.MergedFields()
	assertContiguousOrders(t, merged)
	assert.Equal(t, field.ID, merged[1].ID, "custom field took the email slot")
	assert.Equal(t, "fixed_email", merged[6].ID, "email moved to the end")

	// Fixed fields stay immutable even after moving.
	assert.ErrorIs(t, svc.RemoveField("fixed_email"), ErrFixedField)
}

func TestReorderNoopCases(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})
	field := svc.AddField()
	before := svc.MergedFields()

	svc.Reorder(field.ID, field.ID)
	assert.Equal(t, before, svc.MergedFields())

	svc.Reorder(field.ID, "missing")
	assert.Equal(t, before, svc.MergedFields())

	svc.Reorder("missing", field.ID)
	assert.Equal(t, before, svc.MergedFields())
}

func TestOrderInvariantUnderEditSequences(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})

	a := svc.AddField()
	b := svc.AddField()
	c := svc.AddField()
	assertContiguousOrders(t, svc.MergedFields())

	svc.Reorder(b.ID, "fixed_name")
	assertContiguousOrders(t, svc.MergedFields())

	assert.NoError(t, svc.RemoveField(a.ID))
	svc.Reorder(c.ID, b.ID)
	assertContiguousOrders(t, svc.MergedFields())

	d := svc.AddField()
	svc.Reorder(d.ID, "fixed_status")
	assert.NoError(t, svc.RemoveField(c.ID))
	assertContiguousOrders(t, svc.MergedFields())
}

func TestSetOptionsIgnoresFixedAndUnknown(t *testing.T) {
	svc := NewFormService(&fakeFormAPI{})
	svc.SetOptions("fixed_department", "A,B")
	svc.SetOptions("field_ghost", "A,B")

	merged := svc.MergedFields()
	assert.Equal(t, []string{"HR", "IT", "SALES", "MARKETING", "FINANCE", "OPERATIONS", "OTHER"}, merged[2].Options)
}

func TestSaveNormalizesAndLoadRoundTrips(t *testing.T) {
	api := &fakeFormAPI{}
	svc := NewFormService(api)
	svc.SetDetails("Employee Form", "onboarding")
	field := svc.AddField()
	name := "shirt_size"
	svc.UpdateField(field.ID, FieldUpdate{Name: &name})

	assert.NoError(t, svc.Save(context.Background()))
	assert.True(t, api.stored.IsActive)
	assert.NotNil(t, api.stored.Fields[0].Options, "options normalized to an empty list")

	reloaded := NewFormService(api)
	assert.NoError(t, reloaded.Load(context.Background()))

	merged := reloaded.MergedFields()
	assert.Len(t, merged, 7)
	assert.Equal(t, "shirt_size", merged[6].Name)
	assertContiguousOrders(t, merged)

	// Reload resets fixed fields to their built-in slots.
	assert.Equal(t, "fixed_name", merged[0].ID)
}

func TestLoadDefaultsFormName(t *testing.T) {
	api := &fakeFormAPI{stored: models.FormConfiguration{}}
	svc := NewFormService(api)

	assert.NoError(t, svc.Load(context.Background()))
	assert.Equal(t, "Employee Form", svc.Configuration().FormName)
}
