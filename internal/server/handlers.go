package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ppiankov/verdict/internal/extract/adapters"
	"github.com/ppiankov/verdict/internal/ingest"
	"github.com/ppiankov/verdict/internal/model"
	"github.com/ppiankov/verdict/internal/pipeline"
)

type extractRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	HTML string `json:"html"`
}

type documentError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type uploadResponse struct {
	Records []*model.CaseRecord `json:"records"`
	Errors  []documentError     `json:"errors,omitempty"`
	Skipped int                 `json:"skipped"`
}

func (s *Server) health(c *gin.Context) {
	enabled := s.pipeline.Registry().Enabled()
	if enabled == nil {
		enabled = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "annotators": enabled})
}

// extract processes one document given as plain text or as markup
func (s *Server) extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}

	text := req.Text
	if text == "" && req.HTML != "" {
		reduced, err := ingest.ReduceMarkup(req.HTML)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		text = reduced
	}
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text or html is required"})
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.New().String()
	}

	record, err := s.pipeline.Process(c.Request.Context(), model.Document{ID: id, Text: text})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.PureJSON(http.StatusOK, record)
}

// upload accepts a record file (.txt) to process, or a previously produced
// JSON result (.json) to validate and echo back. ?format=yaml|xlsx renders
// the records instead of the JSON envelope.
func (s *Server) upload(c *gin.Context) {
	if s.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload exceeds size limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}
	defer func() { _ = file.Close() }()

	format := c.DefaultQuery("format", pipeline.FormatJSON)
	renderer, err := pipeline.NewRenderer(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var resp uploadResponse
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".txt":
		docs, stats, err := ingest.ReadRecords(file, header.Filename)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp.Skipped = stats.Skipped
		resp.Records = make([]*model.CaseRecord, 0, len(docs))
		for _, res := range s.batch.Process(c.Request.Context(), docs) {
			if res.Error != nil {
				resp.Errors = append(resp.Errors, documentError{ID: res.ID, Error: res.Error.Error()})
				continue
			}
			resp.Records = append(resp.Records, res.Record)
		}
	case ".json":
		if err := json.NewDecoder(file).Decode(&resp.Records); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid records JSON: " + err.Error()})
			return
		}
		if resp.Records == nil {
			resp.Records = []*model.CaseRecord{}
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .txt and .json files are accepted"})
		return
	}

	if renderer.Format() == pipeline.FormatJSON {
		c.PureJSON(http.StatusOK, resp)
		return
	}

	var buf bytes.Buffer
	if err := renderer.RenderRecords(&buf, resp.Records); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentType(renderer.Format()), buf.Bytes())
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, adapters.ErrContractViolation) {
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error(), "request_id": getRequestID(c)})
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatYAML:
		return "application/yaml"
	case pipeline.FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}
