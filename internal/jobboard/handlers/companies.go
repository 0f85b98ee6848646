package handlers

import (
	"net/http"

	"github.com/gartstein/jobboard/internal/jobboard/controller"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateCompany(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	var req companyRequest
	if err := bindForRole(c, identity, &req, controller.MsgCreateCompanyRole, models.RoleEmployer); err != nil {
		h.writeError(c, err)
		return
	}

	company, err := h.companies.Create(c.Request.Context(), identity, req.toModel())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Company profile created successfully",
		"company": toCompanyView(company),
	})
}

func (h *Handler) GetMyCompany(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	company, err := h.companies.GetMine(c.Request.Context(), identity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"company": toCompanyView(company)})
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	var req companyUpdateRequest
	if err := bindForRole(c, identity, &req, controller.MsgUpdateCompanyRole, models.RoleEmployer); err != nil {
		h.writeError(c, err)
		return
	}

	company, err := h.companies.Update(c.Request.Context(), identity, req.toModel())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Company profile updated successfully",
		"company": toCompanyView(company),
	})
}

func (h *Handler) DeactivateCompany(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	company, err := h.companies.Deactivate(c.Request.Context(), identity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Company profile deactivated successfully",
		"company": toCompanyStateView(company),
	})
}

func (h *Handler) ReactivateCompany(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	company, err := h.companies.Reactivate(c.Request.Context(), identity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Company profile reactivated successfully",
		"company": toCompanyView(company),
	})
}
