package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"

	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/middleware"
	"github.com/post4contenthub-svg/enatalk-web-sub000/internal/models"
)

// CreateContact adds a contact to the tenant's directory.
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	var req CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid request body")
		return
	}

	contact, err := h.service.Directory.CreateContact(&models.Contact{
		TenantID:     tenantID,
		Name:         req.Name,
		Phone:        req.Phone,
		CustomFields: req.CustomFields,
		IsOptedOut:   req.IsOptedOut,
	})
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, contact)
}

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())
	page, limit := parsePagination(r)

	contacts, total, err := h.service.Directory.ListContacts(tenantID, page, limit)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.JSON(w, r, ContactListResponse{
		Contacts: contacts,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// CreateTemplate adds a message template with {{token}} placeholders.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "invalid request body")
		return
	}

	template, err := h.service.Directory.CreateTemplate(&models.Template{
		TenantID: tenantID,
		Name:     req.Name,
		Body:     req.Body,
	})
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, template)
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())
	page, limit := parsePagination(r)

	templates, total, err := h.service.Directory.ListTemplates(tenantID, page, limit)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.JSON(w, r, TemplateListResponse{
		Templates: templates,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// ListMessages returns the tenant's outbound message log, newest first.
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())
	page, limit := parsePagination(r)

	messages, total, err := h.service.Directory.ListMessageLog(tenantID, page, limit)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	render.JSON(w, r, MessageLogListResponse{
		Messages: messages,
		Pagination: Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}
