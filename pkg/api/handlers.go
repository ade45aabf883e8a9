package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rohitg00/manim-video-generator/pkg/bus"
	"github.com/rohitg00/manim-video-generator/pkg/config"
	"github.com/rohitg00/manim-video-generator/pkg/models"
	"github.com/rohitg00/manim-video-generator/pkg/providers"
)

// generateRequest is the job submission body.
type generateRequest struct {
	Concept string `json:"concept"`
	Style   string `json:"style"`
	Quality string `json:"quality"`
	UseNLU  bool   `json:"useNLU"`
}

// handleGenerate validates the submission, assigns a job ID, and publishes
// concept.submitted. 503 means no provider could serve the job at all.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	if len(req.Concept) == 0 || len(req.Concept) > s.cfg.Server.MaxConceptLen {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "concept must be 1-" + strconv.Itoa(s.cfg.Server.MaxConceptLen) + " characters",
		})
		return
	}

	style := req.Style
	if _, err := config.StyleByName(style); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if style == "" {
		style = config.DefaultStyle
	}

	quality := models.Quality(req.Quality)
	if req.Quality == "" {
		quality = models.QualityLow
	} else if !quality.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quality must be low, medium, or high"})
		return
	}

	if s.router.GetProvider(providers.TaskCodeGeneration) == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no provider available"})
		return
	}

	jobID := uuid.NewString()
	payload := bus.ConceptSubmitted{
		JobID:        jobID,
		Concept:      req.Concept,
		Quality:      quality,
		Style:        style,
		UseSmartMode: req.UseNLU,
		SubmittedAt:  time.Now(),
	}
	if err := s.bus.Publish(bus.TopicConceptSubmitted, jobID, payload); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pipeline unavailable"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"jobId": jobID})
}

// handleJobStatus reports generating until a terminal result exists, then the
// result. The status never regresses.
func (s *Server) handleJobStatus(c *gin.Context) {
	result, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": models.JobStatusGenerating})
		return
	}

	switch result.Status {
	case models.JobStatusCompleted:
		c.JSON(http.StatusOK, gin.H{
			"status":         result.Status,
			"videoUrl":       result.Completed.VideoURL,
			"code":           result.Completed.Code,
			"usedAI":         result.Completed.UsedAI,
			"quality":        result.Completed.Quality,
			"generationType": result.Completed.GenerationType,
		})
	case models.JobStatusFailed:
		resp := gin.H{
			"status":   result.Status,
			"error":    result.Failed.Error,
			"category": result.Failed.Category,
		}
		if result.Failed.Details != "" {
			resp["details"] = result.Failed.Details
		}
		c.JSON(http.StatusOK, resp)
	default:
		c.JSON(http.StatusOK, gin.H{"status": models.JobStatusGenerating})
	}
}

// handleProviders lists registered providers with availability and failure
// accounting. Diagnostics only.
func (s *Server) handleProviders(c *gin.Context) {
	list := make([]gin.H, 0)
	for _, p := range s.registry.All() {
		list = append(list, gin.H{
			"name":         p.Name(),
			"displayName":  p.DisplayName(),
			"available":    p.IsAvailable(),
			"capabilities": p.Capabilities(),
			"failures":     s.chain.FailureCount(p.Name()),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"providers":     list,
		"fallbackChain": s.chain.Names(),
	})
}

// handleHealth reports process liveness plus subsystem diagnostics.
func (s *Server) handleHealth(c *gin.Context) {
	available := 0
	for _, p := range s.registry.All() {
		if p.IsAvailable() {
			available++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"busQueueDepth":      s.bus.QueueDepth(),
		"providersAvailable": available,
		"storedResults":      s.store.Len(),
		"environment":        s.env,
	})
}

// sessionStartRequest carries the scene code for an interactive session.
type sessionStartRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleSessionStart(c *gin.Context) {
	var req sessionStartRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}
	if !s.env.HasGL || !s.env.HasDisplay {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "interactive sessions need the GL renderer and a display"})
		return
	}

	sess, err := s.sessions.Start(c.Request.Context(), req.Code)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": sess.ID,
		"wsPort":    sess.Port,
	})
}

func (s *Server) handleSessionList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sessions": s.sessions.List()})
}

func (s *Server) handleSessionStop(c *gin.Context) {
	if err := s.sessions.Stop(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": true})
}

