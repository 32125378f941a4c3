package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Donelpee/travelcover-insurance/internal/domain/entity"
	"github.com/Donelpee/travelcover-insurance/internal/domain/repository"
)

// CatalogHandler serves the reference-data CRUD screens: companies,
// routes, schedule rules and message templates.
type CatalogHandler struct {
	companies repository.CompanyRepository
	routes    repository.RouteRepository
	rules     repository.RuleRepository
	smsTpls   repository.SMSTemplateRepository
	emailTpls repository.EmailTemplateRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	companies repository.CompanyRepository,
	routes repository.RouteRepository,
	rules repository.RuleRepository,
	smsTpls repository.SMSTemplateRepository,
	emailTpls repository.EmailTemplateRepository,
) *CatalogHandler {
	return &CatalogHandler{
		companies: companies,
		routes:    routes,
		rules:     rules,
		smsTpls:   smsTpls,
		emailTpls: emailTpls,
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// Companies

type companyRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Active        *bool  `json:"active"`
}

func (h *CatalogHandler) CreateCompany(c *gin.Context) {
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	company := &entity.Company{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Active:        req.Active == nil || *req.Active,
	}
	if err := h.companies.Create(c.Request.Context(), company); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CatalogHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companies.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, companies)
}

func (h *CatalogHandler) UpdateCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	company, err := h.companies.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}
	var req companyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	company.Name = req.Name
	company.ContactPerson = req.ContactPerson
	company.Phone = req.Phone
	company.Email = req.Email
	if req.Active != nil {
		company.Active = *req.Active
	}
	if err := h.companies.Update(c.Request.Context(), company); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CatalogHandler) DeleteCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.companies.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Routes

type routeRequest struct {
	CompanyID         uint    `json:"company_id" binding:"required"`
	DepartureLocation string  `json:"departure_location" binding:"required"`
	Destination       string  `json:"destination" binding:"required"`
	DurationHours     float64 `json:"duration_hours"`
	TypicalDeparture  string  `json:"typical_departure"`
	Active            *bool   `json:"active"`
}

func (h *CatalogHandler) CreateRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DurationHours < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "duration_hours must not be negative"})
		return
	}
	route := &entity.Route{
		CompanyID:         req.CompanyID,
		DepartureLocation: req.DepartureLocation,
		Destination:       req.Destination,
		DurationHours:     req.DurationHours,
		TypicalDeparture:  req.TypicalDeparture,
		Active:            req.Active == nil || *req.Active,
	}
	if err := h.routes.Create(c.Request.Context(), route); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, route)
}

func (h *CatalogHandler) ListRoutes(c *gin.Context) {
	companyID, _ := strconv.ParseUint(c.Query("company_id"), 10, 32)
	if companyID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id is required"})
		return
	}
	routes, err := h.routes.ListByCompany(c.Request.Context(), uint(companyID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, routes)
}

func (h *CatalogHandler) DeleteRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.routes.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Schedule rules

type ruleRequest struct {
	Name             string               `json:"name" binding:"required"`
	Trigger          entity.TriggerType   `json:"trigger" binding:"required"`
	OffsetMinutes    int                  `json:"offset_minutes"`
	Recipient        entity.RecipientType `json:"recipient" binding:"required"`
	Scope            entity.RuleScope     `json:"scope"`
	TargetManifestID uint                 `json:"target_manifest_id"`
	Channel          entity.Channel       `json:"channel"`
	SMSTemplateID    *uint                `json:"sms_template_id"`
	EmailTemplateID  *uint                `json:"email_template_id"`
	Active           *bool                `json:"active"`
}

func (r *ruleRequest) validate() string {
	if !r.Trigger.Valid() {
		return "unknown trigger type"
	}
	if r.OffsetMinutes < 0 {
		return "offset_minutes must not be negative"
	}
	if r.Recipient != entity.RecipientPassenger && r.Recipient != entity.RecipientNextOfKin {
		return "recipient must be passenger or next_of_kin"
	}
	if r.Scope == entity.ScopeSpecificTrip && r.TargetManifestID == 0 {
		return "target_manifest_id is required for specific scope"
	}
	return ""
}

func (h *CatalogHandler) CreateRule(c *gin.Context) {
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	if req.Scope == "" {
		req.Scope = entity.ScopeAllTrips
	}
	if req.Channel == "" {
		req.Channel = entity.ChannelSMS
	}
	rule := &entity.ScheduleRule{
		Name:             req.Name,
		Trigger:          req.Trigger,
		OffsetMinutes:    req.OffsetMinutes,
		Recipient:        req.Recipient,
		Scope:            req.Scope,
		TargetManifestID: req.TargetManifestID,
		Channel:          req.Channel,
		SMSTemplateID:    req.SMSTemplateID,
		EmailTemplateID:  req.EmailTemplateID,
		Active:           req.Active == nil || *req.Active,
	}
	if err := h.rules.Create(c.Request.Context(), rule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (h *CatalogHandler) ListRules(c *gin.Context) {
	rules, err := h.rules.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rules)
}

func (h *CatalogHandler) UpdateRule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rule, err := h.rules.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
		return
	}
	var req ruleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if msg := req.validate(); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	rule.Name = req.Name
	rule.Trigger = req.Trigger
	rule.OffsetMinutes = req.OffsetMinutes
	rule.Recipient = req.Recipient
	if req.Scope != "" {
		rule.Scope = req.Scope
	}
	rule.TargetManifestID = req.TargetManifestID
	if req.Channel != "" {
		rule.Channel = req.Channel
	}
	rule.SMSTemplateID = req.SMSTemplateID
	rule.EmailTemplateID = req.EmailTemplateID
	if req.Active != nil {
		rule.Active = *req.Active
	}
	if err := h.rules.Update(c.Request.Context(), rule); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *CatalogHandler) DeleteRule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.rules.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Templates

type smsTemplateRequest struct {
	Name   string              `json:"name" binding:"required"`
	Type   entity.TemplateType `json:"type" binding:"required"`
	Body   string              `json:"body" binding:"required"`
	Active *bool               `json:"active"`
}

func (h *CatalogHandler) CreateSMSTemplate(c *gin.Context) {
	var req smsTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl := &entity.SMSTemplate{
		Name:   req.Name,
		Type:   req.Type,
		Body:   req.Body,
		Active: req.Active == nil || *req.Active,
	}
	if err := h.smsTpls.Create(c.Request.Context(), tpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *CatalogHandler) ListSMSTemplates(c *gin.Context) {
	tpls, err := h.smsTpls.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tpls)
}

type emailTemplateRequest struct {
	Name     string              `json:"name" binding:"required"`
	Type     entity.TemplateType `json:"type" binding:"required"`
	Subject  string              `json:"subject" binding:"required"`
	BodyHTML string              `json:"body_html" binding:"required"`
	Active   *bool               `json:"active"`
}

func (h *CatalogHandler) CreateEmailTemplate(c *gin.Context) {
	var req emailTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tpl := &entity.EmailTemplate{
		Name:     req.Name,
		Type:     req.Type,
		Subject:  req.Subject,
		BodyHTML: req.BodyHTML,
		Active:   req.Active == nil || *req.Active,
	}
	if err := h.emailTpls.Create(c.Request.Context(), tpl); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *CatalogHandler) ListEmailTemplates(c *gin.Context) {
	tpls, err := h.emailTpls.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tpls)
}
