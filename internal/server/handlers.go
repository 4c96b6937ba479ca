package server

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/edunova/internal/content"
	"github.com/abhisek/edunova/internal/generation"
	"github.com/abhisek/edunova/internal/study"
)

type contentTypeInfo struct {
	ID          content.ContentType `json:"id"`
	Label       string              `json:"label"`
	Emoji       string              `json:"emoji"`
	Description string              `json:"description"`
	Interactive bool                `json:"interactive"`
}

type generateRequest struct {
	AgeGroup    string `json:"ageGroup"`
	ContentType string `json:"contentType"`
	Topic       string `json:"topic"`
}

type generateResponse struct {
	ID         string                 `json:"id"`
	Text       string                 `json:"text"`
	Failed     bool                   `json:"failed"`
	ErrorKind  string                 `json:"errorKind,omitempty"`
	Filename   string                 `json:"filename"`
	Flashcards []content.Flashcard    `json:"flashcards,omitempty"`
	Quiz       []content.QuizQuestion `json:"quiz,omitempty"`
}

type downloadRequest struct {
	generateRequest
	Text string `json:"text"`
}

func (s *Server) healthz(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}

func (s *Server) contentTypes(c *gin.Context) {
	out := make([]contentTypeInfo, 0, len(content.Types))
	for _, ti := range content.Types {
		out = append(out, contentTypeInfo{
			ID:          ti.Type,
			Label:       ti.Label,
			Emoji:       ti.Emoji,
			Description: ti.Description,
			Interactive: ti.Type.Interactive(),
		})
	}
	respondOK(c, gin.H{"contentTypes": out, "ageGroups": content.AgeGroups})
}

// toRequest normalizes the loose JSON fields into a content.Request.
func (r generateRequest) toRequest() (content.Request, error) {
	ag, err := content.ParseAgeGroup(r.AgeGroup)
	if err != nil {
		return content.Request{}, &content.ValidationError{Field: "ageGroup", Message: err.Error()}
	}
	ct, err := content.ParseContentType(r.ContentType)
	if err != nil {
		return content.Request{}, &content.ValidationError{Field: "contentType", Message: err.Error()}
	}
	req := content.Request{AgeGroup: ag, ContentType: ct, Topic: strings.TrimSpace(r.Topic)}
	return req, req.Validate()
}

func (s *Server) generate(c *gin.Context) {
	var body generateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	req, err := body.toRequest()
	if err != nil {
		s.validationError(c, err)
		return
	}

	res, err := s.runner.Run(c.Request.Context(), req)
	if err != nil {
		s.validationError(c, err)
		return
	}

	out := generateResponse{
		ID:       res.ID,
		Text:     res.Text,
		Failed:   res.Failed(),
		Filename: req.Filename(),
	}
	if res.Failed() {
		out.ErrorKind = generation.KindOf(res.Err).String()
	}
	switch v := study.ViewFor(req.ContentType, res.Text, res.Failed()).(type) {
	case *study.FlashcardSession:
		out.Flashcards = v.Cards()
	case *study.QuizSession:
		out.Quiz = v.Questions()
	}
	respondOK(c, out)
}

func (s *Server) download(c *gin.Context) {
	var body downloadRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	req, err := body.toRequest()
	if err != nil {
		s.validationError(c, err)
		return
	}
	if body.Text == "" {
		respondError(c, http.StatusBadRequest, "empty_text", errors.New("nothing to download"))
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": req.Filename()}))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body.Text))
}

func (s *Server) validationError(c *gin.Context, err error) {
	var ve *content.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, errorEnvelope{Error: APIError{
			Message: ve.Message,
			Code:    "validation",
			Field:   ve.Field,
		}})
		return
	}
	respondError(c, http.StatusInternalServerError, "internal", err)
}
