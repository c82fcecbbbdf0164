package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/hr-console-go/dto"
	"github.com/linskybing/hr-console-go/hrapi"
	"github.com/linskybing/hr-console-go/models"
	"github.com/linskybing/hr-console-go/response"
	"github.com/linskybing/hr-console-go/services"
)

type FormHandler struct {
	forms  *services.FormService
	client *hrapi.Client
	hub    *Hub
}

func (h *FormHandler) formResponse() response.FormResponse {
	cfg := h.forms.Configuration()
	merged := h.forms.MergedFields()

	fields := make([]response.FormField, 0, len(merged))
	for _, f := range merged {
		fields = append(fields, response.FormField{FieldDescriptor: f, Fixed: f.IsFixed()})
	}
	return response.FormResponse{
		FormName:        cfg.FormName,
		FormDescription: cfg.FormDescription,
		Fields:          fields,
		ExpandedID:      h.forms.ExpandedID(),
	}
}

// Get godoc
// @Summary Current form configuration with the merged field list
// @Tags form
// @Produce json
// @Success 200 {object} response.FormResponse
// @Router /form [get]
func (h *FormHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.formResponse())
}

// Load godoc
// @Summary Re-fetch the stored configuration, discarding local edits
// @Tags form
// @Produce json
// @Success 200 {object} response.FormResponse
// @Router /form/load [post]
func (h *FormHandler) Load(c *gin.Context) {
	if err := h.forms.Load(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.formResponse())
}

// Save godoc
// @Summary Persist the whole configuration to the HR service
// @Tags form
// @Accept json
// @Produce json
// @Param input body dto.FormDetailsInput true "Form name and description"
// @Success 200 {object} response.MessageResponse
// @Router /form [put]
func (h *FormHandler) Save(c *gin.Context) {
	var input dto.FormDetailsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}

	if input.FormName != "" || input.FormDescription != "" {
		name := input.FormName
		if name == "" {
			name = h.forms.Configuration().FormName
		}
		h.forms.SetDetails(name, input.FormDescription)
	}

	if err := h.forms.Save(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	h.hub.Broadcast("form")
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Form updated successfully!"})
}

// AddField godoc
// @Summary Append a new custom field and open it for editing
// @Tags form
// @Produce json
// @Success 201 {object} models.FieldDescriptor
// @Router /form/fields [post]
func (h *FormHandler) AddField(c *gin.Context) {
	field := h.forms.AddField()
	c.JSON(http.StatusCreated, field)
}

// UpdateField godoc
// @Summary Merge a partial update into a custom field
// @Tags form
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param input body dto.UpdateFieldInput true "Fields to change"
// @Success 200 {object} response.FormResponse
// @Router /form/fields/{id} [patch]
func (h *FormHandler) UpdateField(c *gin.Context) {
	var input dto.UpdateFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}
	if input.Type != nil && !input.Type.Valid() {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "unknown field type"})
		return
	}

	// Fixed fields are silently ignored, matching the editor contract.
	h.forms.UpdateField(c.Param("id"), services.FieldUpdate{
		Name:       input.Name,
		Label:      input.Label,
		Type:       input.Type,
		Required:   input.Required,
		Validation: input.Validation,
	})
	c.JSON(http.StatusOK, h.formResponse())
}

// RemoveField godoc
// @Summary Delete a custom field
// @Tags form
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} response.FormResponse
// @Failure 400 {object} response.ErrorResponse "Cannot delete fixed fields"
// @Router /form/fields/{id} [delete]
func (h *FormHandler) RemoveField(c *gin.Context) {
	if err := h.forms.RemoveField(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.formResponse())
}

// Reorder godoc
// @Summary Swap two fields in the merged list and renumber it
// @Tags form
// @Accept json
// @Produce json
// @Param input body dto.ReorderInput true "Dragged and target field ids"
// @Success 200 {object} response.FormResponse
// @Router /form/reorder [post]
func (h *FormHandler) Reorder(c *gin.Context) {
	var input dto.ReorderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}
	h.forms.Reorder(input.DraggedID, input.TargetID)
	c.JSON(http.StatusOK, h.formResponse())
}

// SetOptions godoc
// @Summary Replace a custom field's options from a comma separated string
// @Tags form
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param input body dto.OptionsInput true "Comma separated options"
// @Success 200 {object} response.FormResponse
// @Router /form/fields/{id}/options [put]
func (h *FormHandler) SetOptions(c *gin.Context) {
	var input dto.OptionsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}
	h.forms.SetOptions(c.Param("id"), input.Options)
	c.JSON(http.StatusOK, h.formResponse())
}

// ListDefinitions godoc
// @Summary List the field definitions stored on the HR service
// @Tags form
// @Produce json
// @Success 200 {array} models.FieldDefinition
// @Router /form/definitions [get]
func (h *FormHandler) ListDefinitions(c *gin.Context) {
	defs, err := h.client.ListFieldDefinitions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, defs)
}

// CreateDefinition godoc
// @Summary Create a field definition on the HR service
// @Tags form
// @Accept json
// @Produce json
// @Param input body models.FieldDefinition true "Definition"
// @Success 201 {object} models.FieldDefinition
// @Router /form/definitions [post]
func (h *FormHandler) CreateDefinition(c *gin.Context) {
	var def models.FieldDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}
	created, err := h.client.CreateFieldDefinition(c.Request.Context(), def)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateDefinition godoc
// @Summary Replace a field definition on the HR service
// @Tags form
// @Accept json
// @Produce json
// @Param id path int true "Definition ID"
// @Param input body models.FieldDefinition true "Definition"
// @Success 200 {object} models.FieldDefinition
// @Router /form/definitions/{id} [put]
func (h *FormHandler) UpdateDefinition(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid definition id"})
		return
	}
	var def models.FieldDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}
	updated, err := h.client.UpdateFieldDefinition(c.Request.Context(), id, def)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteDefinition godoc
// @Summary Delete a field definition on the HR service
// @Tags form
// @Produce json
// @Param id path int true "Definition ID"
// @Success 200 {object} response.MessageResponse
// @Router /form/definitions/{id} [delete]
func (h *FormHandler) DeleteDefinition(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid definition id"})
		return
	}
	if err := h.client.DeleteFieldDefinition(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Definition deleted"})
}

// Expand godoc
// @Summary Toggle which field's inline editor is open
// @Tags form
// @Accept json
// @Produce json
// @Param input body dto.ExpandInput true "Field id, empty to collapse"
// @Success 200 {object} response.MessageResponse
// @Router /form/expand [post]
func (h *FormHandler) Expand(c *gin.Context) {
	var input dto.ExpandInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input"})
		return
	}
	h.forms.SetExpanded(input.ID)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "ok"})
}
