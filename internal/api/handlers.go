package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dooze/internal/brief"
	"dooze/internal/narration"
	"dooze/internal/services"
	"dooze/internal/textutil"
)

const defaultListLimit = 50

// BriefRequest is the JSON form of a brief. Enum fields accept the same
// spellings as the CLI flags.
type BriefRequest struct {
	ContentType    string `json:"contentType"`
	ProductName    string `json:"productName"`
	Description    string `json:"description"`
	TargetAudience string `json:"targetAudience"`
	Platform       string `json:"platform"`
	Tone           string `json:"tone"`
	Language       string `json:"language"`
}

// Brief parses the request into a normalized brief.
func (r BriefRequest) Brief() (brief.Brief, error) {
	b := brief.Brief{
		ProductName:    r.ProductName,
		Description:    r.Description,
		TargetAudience: r.TargetAudience,
		Tone:           r.Tone,
	}
	if strings.TrimSpace(r.ContentType) != "" {
		ct, err := narration.ParseContentType(r.ContentType)
		if err != nil {
			return b, invalid("contentType", err)
		}
		b.ContentType = ct
	}
	if strings.TrimSpace(r.Platform) != "" {
		platform, err := brief.ParsePlatform(r.Platform)
		if err != nil {
			return b, invalid("platform", err)
		}
		b.Platform = platform
	}
	if strings.TrimSpace(r.Language) != "" {
		lang, err := brief.ParseLanguage(r.Language)
		if err != nil {
			return b, invalid("language", err)
		}
		b.Language = lang
	}
	return b.Normalize(), nil
}

type narrationRequest struct {
	Script      string `json:"script"`
	ContentType string `json:"contentType"`
}

type scriptRequest struct {
	Script *string `json:"script"`
}

type speechRequest struct {
	Voice string `json:"voice"`
}

func invalid(field string, err error) error {
	return services.Wrap(services.ErrValidation, "api", field, "", err)
}

func bindJSON(c *gin.Context, target any) error {
	if err := c.ShouldBindJSON(target); err != nil {
		return services.Wrap(services.ErrValidation, "api", "decode body", "", err)
	}
	return nil
}

func parseContentType(value string) (narration.ContentType, error) {
	if strings.TrimSpace(value) == "" {
		return narration.Promotion, nil
	}
	ct, err := narration.ParseContentType(value)
	if err != nil {
		return "", invalid("contentType", err)
	}
	return ct, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleNarration(c *gin.Context) {
	var req narrationRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	ct, err := parseContentType(req.ContentType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, narration.Process(req.Script, ct))
}

func (s *Server) handleRules(c *gin.Context) {
	ct, err := parseContentType(c.Query("type"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, RulesResponse{
		ContentType: ct,
		Display:     toRuleSetJSON(narration.DisplayRules(ct)),
		Speech:      toRuleSetJSON(narration.SpeechRules()),
	})
}

func (s *Server) handleAnalyze(c *gin.Context) {
	if s.maxVideo > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxVideo+(1<<20))
	}
	file, header, err := c.Request.FormFile("video")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(c, services.Wrap(services.ErrValidation, "api", "analyze", fmt.Sprintf("video exceeds %d MB", s.maxVideo>>20), nil))
			return
		}
		writeError(c, services.Wrap(services.ErrValidation, "api", "analyze", "multipart field \"video\" required", err))
		return
	}
	defer file.Close()
	if s.maxVideo > 0 && header.Size > s.maxVideo {
		writeError(c, services.Wrap(services.ErrValidation, "api", "analyze", fmt.Sprintf("video exceeds %d MB", s.maxVideo>>20), nil))
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(c, services.Wrap(services.ErrValidation, "api", "analyze", "read upload", err))
		return
	}
	mimeType := header.Header.Get("Content-Type")
	if parsed, _, perr := mime.ParseMediaType(mimeType); perr == nil {
		mimeType = parsed
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}
	lang := brief.Indonesian
	if value := c.PostForm("language"); strings.TrimSpace(value) != "" {
		parsed, err := brief.ParseLanguage(value)
		if err != nil {
			writeError(c, invalid("language", err))
			return
		}
		lang = parsed
	}
	analysis, err := s.studio.Analyze(c.Request.Context(), data, mimeType, lang)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req BriefRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}
	}
	b, err := req.Brief()
	if err != nil {
		writeError(c, err)
		return
	}
	created, err := s.studio.Create(c.Request.Context(), b)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newSessionResponse(created))
}

func (s *Server) handleListSessions(c *gin.Context) {
	limit := defaultListLimit
	if value := c.Query("limit"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < 0 {
			writeError(c, services.Wrap(services.ErrValidation, "api", "list sessions", "limit must be a non-negative integer", nil))
			return
		}
		limit = parsed
	}
	sessions, err := s.studio.List(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, SessionListResponse{Sessions: sessions})
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, err := s.studio.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.studio.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleGenerate uses the request body as the brief when present and the
// session's stored brief otherwise.
func (s *Server) handleGenerate(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	var b brief.Brief
	if c.Request.ContentLength != 0 {
		var req BriefRequest
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}
		parsed, err := req.Brief()
		if err != nil {
			writeError(c, err)
			return
		}
		b = parsed
	} else {
		sess, err := s.studio.Get(ctx, id)
		if err != nil {
			writeError(c, err)
			return
		}
		b = sess.Brief
	}
	updated, err := s.studio.Generate(ctx, id, b)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(updated))
}

func (s *Server) handleUpdateScript(c *gin.Context) {
	var req scriptRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, err)
		return
	}
	if req.Script == nil {
		writeError(c, services.Wrap(services.ErrValidation, "api", "update script", "script field required", nil))
		return
	}
	updated, err := s.studio.UpdateScript(c.Request.Context(), c.Param("id"), *req.Script)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(updated))
}

func (s *Server) handleSessionNarration(c *gin.Context) {
	result, err := s.studio.Narration(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSpeech(c *gin.Context) {
	var req speechRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			writeError(c, err)
			return
		}
	}
	updated, err := s.studio.Speak(c.Request.Context(), c.Param("id"), brief.Voice(req.Voice))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(updated))
}

func (s *Server) handleAudio(c *gin.Context) {
	sess, path, err := s.studio.Audio(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Type", "audio/wav")
	c.FileAttachment(path, textutil.AudioDownloadName(string(sess.Voice)))
}
