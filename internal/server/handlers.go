package server

import (
	"fmt"
	"image"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/framepack/promptgen/internal/pipeline"
	"github.com/framepack/promptgen/internal/system"
)

type generateResponse struct {
	TimestampPrompt string      `json:"timestamp_prompt"`
	HunyuanPrompt   string      `json:"hunyuan_prompt"`
	Analysis        interface{} `json:"analysis"`
	ExportPaths     []string    `json:"export_paths,omitempty"`
}

// handleGenerate accepts a multipart upload with an "image" file plus
// optional "duration", "custom_action" and "format" fields.
func (s *Server) handleGenerate(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	img, format, err := decodeUpload(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("decode image: %v", err)})
		return
	}

	duration := 0
	if v := c.PostForm("duration"); v != "" {
		duration, err = strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be an integer"})
			return
		}
	}

	opts := pipeline.Options{
		Duration:     duration,
		CustomAction: c.PostForm("custom_action"),
		Format:       c.DefaultPostForm("format", s.cfg.Output.DefaultFormat),
	}

	gen, err := s.pipe.Generate(c.Request.Context(), img, format, opts)
	if err != nil {
		s.log.Error().Err(err).Msg("generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed"})
		return
	}

	c.JSON(http.StatusOK, generateResponse{
		TimestampPrompt: gen.TimestampPrompt,
		HunyuanPrompt:   gen.HunyuanPrompt,
		Analysis:        gen.Analysis,
		ExportPaths:     gen.ExportPaths,
	})
}

// handleBatch accepts multiple "images" files and returns one result row per
// file plus the CSV export path.
func (s *Server) handleBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one image is required"})
		return
	}

	rows, csvPath, err := s.pipe.ProcessBatch(c.Request.Context(), &uploadSource{files: files})
	if err != nil {
		s.log.Error().Err(err).Msg("batch failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "batch processing failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"processed": len(rows),
		"results":   rows,
		"csv_path":  csvPath,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"memory": system.MemorySnapshot(),
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	entries, err := s.history.Entries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "entries": entries})
}

// handleSettings returns the effective settings with API keys masked.
func (s *Server) handleSettings(c *gin.Context) {
	masked := *s.cfg
	masked.API.OpenAIAPIKey = maskKey(masked.API.OpenAIAPIKey)
	masked.API.GoogleAPIKey = maskKey(masked.API.GoogleAPIKey)
	masked.API.HuggingFaceAPIKey = maskKey(masked.API.HuggingFaceAPIKey)
	c.JSON(http.StatusOK, masked)
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	return "configured"
}

func decodeUpload(fh *multipart.FileHeader) (image.Image, string, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return image.Decode(f)
}
