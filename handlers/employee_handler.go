package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/hr-console-go/dto"
	"github.com/linskybing/hr-console-go/models"
	"github.com/linskybing/hr-console-go/render"
	"github.com/linskybing/hr-console-go/response"
	"github.com/linskybing/hr-console-go/services"
)

type EmployeeHandler struct {
	employees *services.EmployeeService
	forms     *services.FormService
	hub       *Hub
}

// List godoc
// @Summary List employees, filtered client-side from the in-memory set
// @Tags employees
// @Produce json
// @Param search query string false "Name or email substring, case-insensitive"
// @Param department query string false "Exact department"
// @Param status query string false "Exact status"
// @Param reload query string false "Set to 1 to re-fetch from the HR service"
// @Success 200 {object} response.EmployeeListResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	resp := response.EmployeeListResponse{}

	if c.Query("reload") == "1" || !h.employees.Loaded() {
		if err := h.employees.Load(c.Request.Context()); err != nil {
			// Degraded mode: the sample dataset is served behind a
			// visible error banner rather than a blank page.
			resp.Error = "Failed to load employees"
		}
	}

	resp.Employees = h.employees.Filter(c.Query("search"), c.Query("department"), c.Query("status"))
	resp.Degraded = h.employees.Degraded()
	c.JSON(http.StatusOK, resp)
}

// OpenEditor godoc
// @Summary Open the create/edit modal and render its form
// @Tags employees
// @Accept json
// @Produce json
// @Param input body dto.OpenEditorInput true "Employee id to edit, absent for create"
// @Success 200 {object} response.EditorResponse
// @Failure 404 {object} response.ErrorResponse "Unknown employee"
// @Router /employees/editor [post]
func (h *EmployeeHandler) OpenEditor(c *gin.Context) {
	var input dto.OpenEditorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	var editing models.Employee
	if input.EmployeeID != nil {
		found := h.employees.Find(*input.EmployeeID)
		if found == nil {
			c.JSON(http.StatusNotFound, response.ErrorResponse{Error: "employee not found"})
			return
		}
		editing = found
	}

	gen, record := h.employees.OpenEditor(editing)
	c.JSON(http.StatusOK, response.EditorResponse{
		Generation: gen,
		Editing:    editing,
		Controls:   render.Form(h.forms.MergedFields(), record),
	})
}

// GetEditor godoc
// @Summary Re-render the open editor from the current field list
// @Tags employees
// @Produce json
// @Success 200 {object} response.EditorResponse
// @Failure 404 {object} response.ErrorResponse "No editor open"
// @Router /employees/editor [get]
func (h *EmployeeHandler) GetEditor(c *gin.Context) {
	gen, editing, record, open := h.employees.EditorState()
	if !open {
		c.JSON(http.StatusNotFound, response.ErrorResponse{Error: services.ErrEditorClosed.Error()})
		return
	}
	c.JSON(http.StatusOK, response.EditorResponse{
		Generation: gen,
		Editing:    editing,
		Controls:   render.Form(h.forms.MergedFields(), record),
	})
}

// CloseEditor godoc
// @Summary Dismiss the open editor, discarding its record
// @Tags employees
// @Produce json
// @Success 200 {object} response.MessageResponse
// @Router /employees/editor [delete]
func (h *EmployeeHandler) CloseEditor(c *gin.Context) {
	h.employees.CloseEditor()
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Editor closed"})
}

// SetValue godoc
// @Summary Replace one field value in the open record
// @Tags employees
// @Accept json
// @Produce json
// @Param input body dto.SetValueInput true "Field name and value"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "No editor open"
// @Router /employees/editor/value [put]
func (h *EmployeeHandler) SetValue(c *gin.Context) {
	var input dto.SetValueInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}
	if err := h.employees.SetValue(input.Name, input.Value); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}

// Submit godoc
// @Summary Validate the open record and create or update the employee
// @Tags employees
// @Accept json
// @Produce json
// @Param input body dto.SubmitInput true "Editor generation and final values"
// @Success 200 {object} services.SubmitResult
// @Failure 400 {object} response.ErrorResponse "Missing required fields"
// @Failure 409 {object} response.ErrorResponse "Editor was dismissed mid-flight"
// @Router /employees/editor/submit [post]
func (h *EmployeeHandler) Submit(c *gin.Context) {
	var input dto.SubmitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	result, err := h.employees.Submit(c.Request.Context(), input.Generation, input.Record)
	if err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast("employees")
	c.JSON(http.StatusOK, result)
}

// Delete godoc
// @Summary Delete an employee
// @Tags employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "Bad id"
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid employee id"})
		return
	}

	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast("employees")
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Employee deleted"})
}
