package handlers

import (
	"net/http"

	"github.com/gartstein/jobboard/internal/jobboard/controller"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gin-gonic/gin"
)

// Apply handles POST /applications/jobs/:id/apply.
func (h *Handler) Apply(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	var req applyRequest
	if err := bindForRole(c, identity, &req, controller.MsgApplyRole, models.RoleApplicant); err != nil {
		h.writeError(c, err)
		return
	}

	app, err := h.applications.Apply(c.Request.Context(), identity, parseID(c), &models.ApplicationInput{
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Application submitted successfully",
		"application": toApplicationView(app),
	})
}

// MyApplications handles GET /applications/my-applications.
func (h *Handler) MyApplications(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	apps, err := h.applications.ListMine(c.Request.Context(), identity)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": toApplicationViews(apps)})
}

// JobApplicants handles GET /applications/job/:id/applicants.
func (h *Handler) JobApplicants(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	apps, err := h.applications.ListForJob(c.Request.Context(), identity, parseID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applicants": toApplicationViews(apps)})
}

// UpdateApplicationStatus handles PATCH /applications/:id/status.
func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	var req statusRequest
	if err := bindForRole(c, identity, &req, controller.MsgUpdateStatusRole, models.RoleEmployer); err != nil {
		h.writeError(c, err)
		return
	}

	app, err := h.applications.UpdateStatus(c.Request.Context(), identity, parseID(c), req.Status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Application status updated successfully",
		"application": toApplicationView(app),
	})
}
