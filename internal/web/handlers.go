// ABOUTME: HTTP handlers for the summarizer form, JSON API, and health check
// ABOUTME: Maps typed stage results onto success and error banners
package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harper/tubesum/internal/core"
	"github.com/harper/tubesum/internal/models"
)

const (
	msgMissingInput  = "Please provide all required inputs."
	msgTranscriptOK  = "Transcript extracted successfully!"
	msgTranslationOK = "Translation completed!"
	msgSummaryOK     = "Summary generated!"
)

type banner struct {
	Kind string
	Text string
}

type section struct {
	Banners []banner
	Label   string
	Text    string
}

type pageData struct {
	VideoURL      string
	HasDefaultKey bool
	Sections      []section
	Result        *models.Result
}

type summarizeForm struct {
	VideoURL string `form:"video_url" json:"video_url"`
	APIKey   string `form:"api_key" json:"api_key"`
}

func (s *Server) request(f summarizeForm) core.Request {
	req := core.Request{
		VideoURL: strings.TrimSpace(f.VideoURL),
		APIKey:   strings.TrimSpace(f.APIKey),
	}
	if req.APIKey == "" {
		req.APIKey = s.defaultAPIKey
	}
	return req
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{HasDefaultKey: s.defaultAPIKey != ""})
}

func (s *Server) handleSummarizeForm(c *gin.Context) {
	var form summarizeForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(err)
	}
	req := s.request(form)

	page := pageData{VideoURL: req.VideoURL, HasDefaultKey: s.defaultAPIKey != ""}

	result, err := s.runner.Run(c.Request.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "Error: " + err.Error()
		if errors.Is(err, models.ErrMissingInput) {
			status = http.StatusBadRequest
			msg = msgMissingInput
		}
		_ = c.Error(err)
		page.Sections = []section{{Banners: []banner{{Kind: "error", Text: msg}}}}
		c.HTML(status, "index.html", page)
		return
	}

	page.Result = result
	page.Sections = sections(result)
	c.HTML(http.StatusOK, "index.html", page)
}

// sections renders stages in order and stops at the first failed or skipped stage
func sections(r *models.Result) []section {
	stages := []struct {
		result models.StageResult
		okMsg  string
		label  string
	}{
		{r.Transcript, msgTranscriptOK, "Transcript:"},
		{r.Translation, msgTranslationOK, "Translated Text:"},
		{r.Summary, msgSummaryOK, "Summary:"},
	}

	var out []section
	for _, st := range stages {
		if st.result.Skipped {
			break
		}
		if st.result.Err != nil {
			out = append(out, section{Banners: []banner{{Kind: "error", Text: "Error: " + st.result.Err.Error()}}})
			break
		}
		out = append(out, section{
			Banners: []banner{{Kind: "success", Text: st.okMsg}},
			Label:   st.label,
			Text:    st.result.Text,
		})
	}
	return out
}

func (s *Server) handleSummarizeAPI(c *gin.Context) {
	var form summarizeForm
	if err := c.ShouldBindJSON(&form); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	result, err := s.runner.Run(c.Request.Context(), s.request(form))
	if err != nil {
		if errors.Is(err, models.ErrMissingInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingInput})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
