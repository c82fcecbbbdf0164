package handlers

import (
	"github.com/linskybing/hr-console-go/hrapi"
	"github.com/linskybing/hr-console-go/services"
	"github.com/linskybing/hr-console-go/session"
)

type Handlers struct {
	Auth     *AuthHandler
	Employee *EmployeeHandler
	Form     *FormHandler
	Hub      *Hub
}

func New(client *hrapi.Client, store session.Store, forms *services.FormService, employees *services.EmployeeService) *Handlers {
	hub := NewHub()
	return &Handlers{
		Auth:     &AuthHandler{client: client, store: store},
		Employee: &EmployeeHandler{employees: employees, forms: forms, hub: hub},
		Form:     &FormHandler{forms: forms, client: client, hub: hub},
		Hub:      hub,
	}
}
