package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/linskybing/hr-console-go/models"
)

var ErrFixedField = errors.New("cannot delete fixed fields")

// FormAPI is the slice of the HR client the form editor needs.
type FormAPI interface {
	GetForm(ctx context.Context) (models.FormConfiguration, error)
	SaveForm(ctx context.Context, cfg models.FormConfiguration) error
}

const defaultFormName = "Employee Form"

// FormService owns the in-memory form configuration and implements the
// field editor. All editor operations are local and synchronous; the
// configuration only touches the HR service on Load and Save, and is
// always persisted in full. There is no local undo.
//
// The fixed field set lives here as session state because reordering
// is global: a reorder can move a fixed field and renumber its order,
// but only the custom fields are ever persisted, so fixed positions
// reset to their built-in slots on the next Load.
type FormService struct {
	mu         sync.Mutex
	api        FormAPI
	cfg        models.FormConfiguration
	fixed      []models.FieldDescriptor
	expandedID string
}

func NewFormService(api FormAPI) *FormService {
	return &FormService{
		api:   api,
		cfg:   models.FormConfiguration{FormName: defaultFormName},
		fixed: models.FixedFields(),
	}
}

// Load fetches the stored configuration, replacing any unsaved local
// edits.
func (s *FormService) Load(ctx context.Context) error {
	cfg, err := s.api.GetForm(ctx)
	if err != nil {
		return err
	}
	if cfg.FormName == "" {
		cfg.FormName = defaultFormName
	}
	for i := range cfg.Fields {
		cfg.Fields[i].Origin = models.OriginCustom
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.fixed = models.FixedFields()
	s.expandedID = ""
	return nil
}

// Save persists the whole configuration. Options are normalized to
// empty lists so the backend never sees nulls.
func (s *FormService) Save(ctx context.Context) error {
	s.mu.Lock()
	cfg := s.snapshotLocked()
	s.mu.Unlock()

	cfg.IsActive = true
	for i := range cfg.Fields {
		if cfg.Fields[i].Options == nil {
			cfg.Fields[i].Options = []string{}
		}
	}
	return s.api.SaveForm(ctx, cfg)
}

func (s *FormService) snapshotLocked() models.FormConfiguration {
	cfg := s.cfg
	cfg.Fields = append([]models.FieldDescriptor(nil), s.cfg.Fields...)
	return cfg
}

func (s *FormService) mergedLocked() []models.FieldDescriptor {
	merged := append([]models.FieldDescriptor(nil), s.fixed...)
	merged = append(merged, s.cfg.Fields...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Order < merged[j].Order
	})
	return merged
}

// Configuration returns a copy of the current editor state.
func (s *FormService) Configuration() models.FormConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *FormService) SetDetails(name, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.FormName = name
	s.cfg.FormDescription = description
}

// MergedFields returns the fixed set plus the current custom fields
// sorted by order, recomputed on every call.
func (s *FormService) MergedFields() []models.FieldDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mergedLocked()
}

func (s *FormService) ExpandedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expandedID
}

func (s *FormService) SetExpanded(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expandedID = id
}

// AddField appends a new custom field at the end of the merged list
// and opens it for inline editing.
func (s *FormService) AddField() models.FieldDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	field := models.FieldDescriptor{
		ID:       "field_" + uuid.NewString(),
		Name:     fmt.Sprintf("field_%d", len(s.cfg.Fields)+1),
		Label:    "New Field",
		Type:     models.FieldTypeText,
		Required: false,
		Order:    len(s.fixed) + len(s.cfg.Fields) + 1,
		Origin:   models.OriginCustom,
	}
	s.cfg.Fields = append(s.cfg.Fields, field)
	s.expandedID = field.ID
	return field
}

// FieldUpdate is a partial mutation of one custom field; nil members
// are left untouched.
type FieldUpdate struct {
	Name       *string
	Label      *string
	Type       *models.FieldType
	Required   *bool
	Validation *string
}

// UpdateField merges the update into the matching custom field. Fixed
// fields are silently ignored, as are unknown ids.
func (s *FormService) UpdateField(id string, update FieldUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cfg.Fields {
		f := &s.cfg.Fields[i]
		if f.ID != id {
			continue
		}
		if update.Name != nil {
			f.Name = *update.Name
		}
		if update.Label != nil {
			f.Label = *update.Label
		}
		if update.Type != nil {
			f.Type = *update.Type
			// Switching away from an option type keeps the list around
			// unused; switching into one starts empty.
			if f.Type.HasOptions() && f.Options == nil {
				f.Options = []string{}
			}
		}
		if update.Required != nil {
			f.Required = *update.Required
		}
		if update.Validation != nil {
			f.Validation = *update.Validation
		}
		return
	}
}

// RemoveField deletes a custom field and collapses its inline editor.
// Deleting a fixed field is rejected with no state change; an unknown
// custom id is a no-op.
func (s *FormService) RemoveField(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.fixed {
		if f.ID == id {
			return ErrFixedField
		}
	}
	if strings.HasPrefix(id, models.FixedIDPrefix) {
		return ErrFixedField
	}

	kept := s.cfg.Fields[:0]
	for _, f := range s.cfg.Fields {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.cfg.Fields = kept
	s.renumberLocked()
	if s.expandedID == id {
		s.expandedID = ""
	}
	return nil
}

// renumberLocked closes the order gap a removal leaves, keeping the
// merged list a dense 1..count sequence.
func (s *FormService) renumberLocked() {
	merged := s.mergedLocked()
	for i := range merged {
		merged[i].Order = i + 1
	}
	fixed := make([]models.FieldDescriptor, 0, len(s.fixed))
	custom := make([]models.FieldDescriptor, 0, len(s.cfg.Fields))
	for _, f := range merged {
		if f.IsFixed() {
			fixed = append(fixed, f)
		} else {
			custom = append(custom, f)
		}
	}
	s.fixed = fixed
	s.cfg.Fields = custom
}

// Reorder swaps the positions of two fields in the merged list and
// renumbers the whole list densely from 1. A position swap, not an
// insert: adjacent or distant fields simply exchange slots. Fixed
// fields move like any other but stay immutable and non-deletable.
// Equal or unknown ids make it a no-op.
func (s *FormService) Reorder(draggedID, targetID string) {
	if draggedID == targetID {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.mergedLocked()
	draggedIdx, targetIdx := -1, -1
	for i, f := range merged {
		switch f.ID {
		case draggedID:
			draggedIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if draggedIdx < 0 || targetIdx < 0 {
		return
	}

	merged[draggedIdx], merged[targetIdx] = merged[targetIdx], merged[draggedIdx]
	for i := range merged {
		merged[i].Order = i + 1
	}

	fixed := make([]models.FieldDescriptor, 0, len(s.fixed))
	custom := make([]models.FieldDescriptor, 0, len(s.cfg.Fields))
	for _, f := range merged {
		if f.IsFixed() {
			fixed = append(fixed, f)
		} else {
			custom = append(custom, f)
		}
	}
	s.fixed = fixed
	s.cfg.Fields = custom
}

// SetOptions replaces a custom field's option list from a comma
// separated string, trimming each entry.
func (s *FormService) SetOptions(id, rawCsv string) {
	options := strings.Split(rawCsv, ",")
	for i := range options {
		options[i] = strings.TrimSpace(options[i])
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cfg.Fields {
		if s.cfg.Fields[i].ID == id {
			s.cfg.Fields[i].Options = options
			return
		}
	}
}
