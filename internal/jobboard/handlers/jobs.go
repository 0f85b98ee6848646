package handlers

import (
	"net/http"

	"github.com/gartstein/jobboard/internal/jobboard/controller"
	"github.com/gartstein/jobboard/internal/jobboard/models"
	"github.com/gin-gonic/gin"
)

// SearchJobs handles the public GET /jobs search. Unknown query parameters
// are ignored; a malformed page or limit falls back to the default.
func (h *Handler) SearchJobs(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeError(c, err)
		return
	}

	page, err := h.jobs.Search(c.Request.Context(), q.filter(), q.page())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"jobs": toJobViews(page.Jobs, jobDetailSearch),
		"meta": pageMeta{
			Page:       page.Page,
			Limit:      page.Limit,
			TotalPages: page.TotalPages,
			TotalJobs:  page.TotalJobs,
		},
	})
}

// ListJobs handles GET /jobs/all.
func (h *Handler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": toJobViews(jobs, jobDetailList)})
}

// GetJob handles GET /jobs/:id.
func (h *Handler) GetJob(c *gin.Context) {
	job, err := h.jobs.Get(c.Request.Context(), parseID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": toJobView(job, jobDetailFull)})
}

func (h *Handler) CreateJob(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	var req jobRequest
	if err := bindForRole(c, identity, &req, controller.MsgPostJobRole, models.RoleEmployer); err != nil {
		h.writeError(c, err)
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), identity, req.toModel())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Job posted successfully",
		"job":     toJobView(job, jobDetailNone),
	})
}

func (h *Handler) UpdateJob(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	var req jobUpdateRequest
	if err := bindForRole(c, identity, &req, controller.MsgUpdateJobRole, models.RoleEmployer); err != nil {
		h.writeError(c, err)
		return
	}

	job, err := h.jobs.Update(c.Request.Context(), identity, parseID(c), req.toModel())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Job updated successfully",
		"job":     toJobView(job, jobDetailNone),
	})
}

func (h *Handler) DeactivateJob(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	job, err := h.jobs.Deactivate(c.Request.Context(), identity, parseID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Job deactivated successfully",
		"job":     toJobView(job, jobDetailNone),
	})
}

func (h *Handler) ReactivateJob(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	job, err := h.jobs.Reactivate(c.Request.Context(), identity, parseID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Job reactivated successfully",
		"job":     toJobView(job, jobDetailNone),
	})
}
