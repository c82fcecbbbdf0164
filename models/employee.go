package models

// Employee is owned by the HR service; the console treats it as an
// opaque record keyed by whatever names the merged field list defines.
type Employee map[string]interface{}

func (e Employee) stringAt(key string) string {
	if v, ok := e[key].(string); ok {
		return v
	}
	return ""
}

// ID tolerates the numeric shapes JSON decoding produces.
func (e Employee) ID() int64 {
	switch v := e["id"].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func (e Employee) Name() string       { return e.stringAt("name") }
func (e Employee) Email() string      { return e.stringAt("email") }
func (e Employee) Department() string { return e.stringAt("department") }
func (e Employee) Role() string       { return e.stringAt("role") }
func (e Employee) Status() string     { return e.stringAt("status") }

// FormDataRecord maps field names to the values of one open
// create/edit interaction. Values are replaced whole on every change
// and the record is discarded when the editor closes.
type FormDataRecord map[string]interface{}

// EmptyRequired reports whether the value counts as missing for
// required-field validation. Empty string, false and nil reject; the
// number zero is a legitimate value and passes.
func EmptyRequired(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	}
	return false
}

// SampleEmployees is the degraded-mode dataset shown when the HR
// service cannot be reached, so the screen stays usable offline.
func SampleEmployees() []Employee {
	return []Employee{
		{"id": float64(1), "name": "John Doe", "email": "john@example.com", "department": "Engineering", "role": "Developer", "status": "ACTIVE"},
		{"id": float64(2), "name": "Jane Smith", "email": "jane@example.com", "department": "HR", "role": "Manager", "status": "ACTIVE"},
		{"id": float64(3), "name": "Mike Johnson", "email": "mike@example.com", "department": "Sales", "role": "Sales Rep", "status": "INACTIVE"},
		{"id": float64(4), "name": "Sarah Williams", "email": "sarah@example.com", "department": "Engineering", "role": "Senior Developer", "status": "ACTIVE"},
	}
}
