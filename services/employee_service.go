package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/linskybing/hr-console-go/models"
)

var (
	ErrEditorClosed = errors.New("no employee editor is open")
	ErrStaleEditor  = errors.New("editor was closed before the request settled")
)

// EmployeeAPI is the slice of the HR client the employee screen needs.
type EmployeeAPI interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	CreateEmployee(ctx context.Context, record models.FormDataRecord) (models.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, record models.FormDataRecord) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// ValidationError lists the required fields left empty on submit.
type ValidationError struct {
	Labels []string
}

func (e *ValidationError) Error() string {
	return "Required fields: " + strings.Join(e.Labels, ", ")
}

// SubmitResult is returned on a successful create or update. The shell
// keeps the success message visible for CloseAfterMS before closing
// the editor.
type SubmitResult struct {
	Employee     models.Employee `json:"employee"`
	Message      string          `json:"message"`
	CloseAfterMS int             `json:"close_after_ms"`
}

const successCloseDelayMS = 1200

// EmployeeService owns the employee list and the create/edit editor
// state. One editor is open at a time; each open bumps a generation
// counter so a completion handler can detect that its editor was
// dismissed while the request was in flight and discard the stale
// result instead of mutating current state.
type EmployeeService struct {
	mu        sync.Mutex
	api       EmployeeAPI
	forms     *FormService
	employees []models.Employee
	loaded    bool
	degraded  bool
	sample    []models.Employee

	editorGen  int64
	editorOpen bool
	editing    models.Employee
	record     models.FormDataRecord
}

func NewEmployeeService(api EmployeeAPI, forms *FormService, sample []models.Employee) *EmployeeService {
	if sample == nil {
		sample = models.SampleEmployees()
	}
	return &EmployeeService{api: api, forms: forms, sample: sample}
}

// Load fetches the employee list. On failure it falls back to the
// sample dataset so the screen stays usable, flags degraded mode, and
// returns the error for the caller to surface as a banner.
func (s *EmployeeService) Load(ctx context.Context) error {
	list, err := s.api.ListEmployees(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	if err != nil {
		s.employees = append([]models.Employee(nil), s.sample...)
		s.degraded = true
		return err
	}
	s.employees = list
	s.degraded = false
	return nil
}

func (s *EmployeeService) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Find returns the employee with the given id from the in-memory
// list, or nil.
func (s *EmployeeService) Find(id int64) models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.employees {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

func (s *EmployeeService) Employees() []models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Employee(nil), s.employees...)
}

func (s *EmployeeService) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// FilterEmployees applies the screen's three criteria: the search term
// matches name or email case-insensitively, department and status
// match exactly, and empty criteria pass everything.
func FilterEmployees(list []models.Employee, search, department, status string) []models.Employee {
	search = strings.ToLower(search)
	filtered := make([]models.Employee, 0, len(list))
	for _, e := range list {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(e.Name()), search) ||
			strings.Contains(strings.ToLower(e.Email()), search)
		matchesDepartment := department == "" || e.Department() == department
		matchesStatus := status == "" || e.Status() == status
		if matchesSearch && matchesDepartment && matchesStatus {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Filter runs the predicate over the full in-memory list; nothing is
// re-fetched.
func (s *EmployeeService) Filter(search, department, status string) []models.Employee {
	return FilterEmployees(s.Employees(), search, department, status)
}

// OpenEditor starts a create interaction (editing == nil) or an edit
// of the given record, initializing the form-data record for every
// merged field. It returns the editor generation that Submit must
// present.
func (s *EmployeeService) OpenEditor(editing models.Employee) (int64, models.FormDataRecord) {
	fields := s.forms.MergedFields()

	s.mu.Lock()
	defer s.mu.Unlock()

	record := models.FormDataRecord{}
	for _, f := range fields {
		record[f.Name] = ""
		if editing != nil {
			if v, ok := editing[f.Name]; ok && v != nil {
				record[f.Name] = v
			}
		}
	}

	s.editorGen++
	s.editorOpen = true
	s.editing = editing
	s.record = record
	return s.editorGen, s.recordCopyLocked()
}

// CloseEditor discards the open interaction; any in-flight submit for
// it will be dropped on completion.
func (s *EmployeeService) CloseEditor() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editorGen++
	s.editorOpen = false
	s.editing = nil
	s.record = nil
}

// SetValue replaces one field's value in the open record.
func (s *EmployeeService) SetValue(name string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editorOpen {
		return ErrEditorClosed
	}
	s.record[name] = value
	return nil
}

func (s *EmployeeService) Record() (models.FormDataRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editorOpen {
		return nil, false
	}
	return s.recordCopyLocked(), true
}

func (s *EmployeeService) Editing() models.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// EditorState exposes the open interaction for re-rendering.
func (s *EmployeeService) EditorState() (gen int64, editing models.Employee, record models.FormDataRecord, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.editorOpen {
		return 0, nil, nil, false
	}
	return s.editorGen, s.editing, s.recordCopyLocked(), true
}

func (s *EmployeeService) recordCopyLocked() models.FormDataRecord {
	copied := models.FormDataRecord{}
	for k, v := range s.record {
		copied[k] = v
	}
	return copied
}

// Submit folds the final values into the open record, validates it
// against the merged field list and dispatches a create or update. The
// values are applied only after the generation check, so a stale
// submission cannot leak values into an editor that was reopened in
// the meantime. Validation failures never reach the network. The
// network call runs without the lock held; on completion the
// generation is checked again and a stale result is discarded without
// touching the list.
func (s *EmployeeService) Submit(ctx context.Context, gen int64, values models.FormDataRecord) (SubmitResult, error) {
	fields := s.forms.MergedFields()

	s.mu.Lock()
	if !s.editorOpen || gen != s.editorGen {
		s.mu.Unlock()
		return SubmitResult{}, ErrStaleEditor
	}

	for name, value := range values {
		s.record[name] = value
	}

	var missing []string
	for _, f := range fields {
		if f.Required && models.EmptyRequired(s.record[f.Name]) {
			missing = append(missing, f.Label)
		}
	}
	if len(missing) > 0 {
		s.mu.Unlock()
		return SubmitResult{}, &ValidationError{Labels: missing}
	}

	record := s.recordCopyLocked()
	editing := s.editing
	s.mu.Unlock()

	var (
		saved   models.Employee
		message string
		err     error
	)
	if editing != nil {
		saved, err = s.api.UpdateEmployee(ctx, editing.ID(), record)
		message = "Employee updated successfully!"
	} else {
		saved, err = s.api.CreateEmployee(ctx, record)
		message = "Employee added successfully!"
	}
	if err != nil {
		return SubmitResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.editorGen {
		return SubmitResult{}, ErrStaleEditor
	}

	if editing != nil {
		for i, e := range s.employees {
			if e.ID() == editing.ID() {
				s.employees[i] = saved
				break
			}
		}
	} else {
		s.employees = append(s.employees, saved)
	}

	return SubmitResult{
		Employee:     saved,
		Message:      message,
		CloseAfterMS: successCloseDelayMS,
	}, nil
}

// Delete removes the employee on the HR service, then from the
// in-memory list.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteEmployee(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.employees[:0]
	for _, e := range s.employees {
		if e.ID() != id {
			kept = append(kept, e)
		}
	}
	s.employees = kept
	return nil
}
