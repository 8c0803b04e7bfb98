package apihandlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"contentai/internal/app"
	"contentai/internal/models"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(app *app.App) *APIHandler {
	return &APIHandler{App: app}
}

// clientKey identifies the caller for rate limiting and quota. Clients
// are keyed by IP; there is no account system.
func clientKey(c *gin.Context) string {
	return c.ClientIP()
}

// GenerateHandler runs one request through the full pipeline.
func (h *APIHandler) GenerateHandler(c *gin.Context) {
	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.App.ContentService.Generate(c.Request.Context(), clientKey(c), &req)
	if err != nil {
		log.Warnf("Generate failed for %s: %v", clientKey(c), err)
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// StreamHandler serves generation as server-sent events. The request is
// passed JSON-encoded in the "data" query parameter since EventSource
// cannot send a body. Each event is a JSON object with a content field;
// the stream ends with a [DONE] sentinel.
func (h *APIHandler) StreamHandler(c *gin.Context) {
	raw := c.Query("data")
	if raw == "" {
		BadRequest(c, "Missing required 'data' query parameter")
		return
	}
	var req models.GenerateRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		BadRequest(c, "Invalid request data: "+err.Error())
		return
	}

	chunks, err := h.App.ContentService.GenerateStream(c.Request.Context(), clientKey(c), &req)
	if err != nil {
		log.Warnf("Stream failed for %s: %v", clientKey(c), err)
		RespondError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		Internal(c, "Streaming not supported")
		return
	}

	for chunk := range chunks {
		if chunk.Err != nil {
			writeSSE(c, flusher, map[string]string{"error": chunk.Err.Error()})
			return
		}
		writeSSE(c, flusher, map[string]string{"content": chunk.Text})
	}
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	flusher.Flush()
}

func writeSSE(c *gin.Context, flusher http.Flusher, payload map[string]string) {
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(c.Writer, "data: %s\n\n", b)
	flusher.Flush()
}

// ExportPDFHandler renders previously generated content as a PDF
// attachment.
func (h *APIHandler) ExportPDFHandler(c *gin.Context) {
	var req models.ExportPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if req.Content == "" {
		BadRequest(c, "Missing required field: content")
		return
	}
	if req.ContentType != "" && !req.ContentType.Valid() {
		BadRequest(c, fmt.Sprintf("Unsupported content type: %s", req.ContentType))
		return
	}

	data, err := h.App.PDFRenderer.Render(req)
	if err != nil {
		log.Errorf("PDF export failed: %v", err)
		Internal(c, "PDF export failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="content.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// UsageHandler reports the caller's consumption against the daily
// quotas.
func (h *APIHandler) UsageHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.App.ContentService.Usage(clientKey(c))})
}

// HealthHandler reports liveness and the active provider.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": h.App.Provider.Name(),
		"model":    h.App.Provider.ModelName(),
	})
}
