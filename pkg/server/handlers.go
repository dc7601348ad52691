package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coolbeans/numbering/pkg/numbering"
	"github.com/coolbeans/numbering/pkg/outline"
	"github.com/coolbeans/numbering/pkg/profile"
	"github.com/coolbeans/numbering/pkg/token"
)

type parseRequest struct {
	Text         string `json:"text" binding:"required"`
	Force        bool   `json:"force"`
	Disambiguate bool   `json:"disambiguate"`
	Profile      string `json:"profile"`
}

type parsedNumber struct {
	Line       int               `json:"line"`
	Raw        string            `json:"raw"`
	Normalized string            `json:"normalized"`
	Prefix     string            `json:"prefix,omitempty"`
	Suffix     string            `json:"suffix,omitempty"`
	Levels     []numbering.Level `json:"levels"`
}

type parseResponse struct {
	Numbers []parsedNumber `json:"numbers"`
	Pruned  int            `json:"pruned"`
}

type compareRequest struct {
	Left    string `json:"left" binding:"required"`
	Right   string `json:"right" binding:"required"`
	Profile string `json:"profile"`
}

type compareResponse struct {
	Left    string            `json:"left"`
	Right   string            `json:"right"`
	Outcome numbering.Outcome `json:"outcome"`
}

type outlineRequest struct {
	Text    string `json:"text" binding:"required"`
	Profile string `json:"profile"`
}

type outlineResponse struct {
	*outline.Outline
	Issues int `json:"issues"`
}

type profileSummary struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleProfiles(c *gin.Context) {
	list := s.profiles.List()
	out := make([]profileSummary, 0, len(list))
	for _, p := range list {
		out = append(out, profileSummary{Name: p.Name, Version: p.Version, Description: p.Description})
	}
	c.JSON(http.StatusOK, gin.H{"profiles": out})
}

// handleParse returns the numbers found at line starts.
func (s *Server) handleParse(c *gin.Context) {
	var req parseRequest
	if !s.bind(c, &req) {
		return
	}
	rec, ok := s.recognizer(c, req.Profile)
	if !ok {
		return
	}

	ts := token.Tokenize(req.Text)
	found := outline.Scan(ts, rec, req.Force)

	resp := parseResponse{Numbers: make([]parsedNumber, 0, len(found))}
	if req.Disambiguate {
		resp.Pruned = rec.Disambiguate(found)
	}
	for _, n := range found {
		resp.Numbers = append(resp.Numbers, parsedNumber{
			Line:       ts[n.BeginToken()].Line + 1,
			Raw:        n.String(),
			Normalized: n.NormalizedText(),
			Prefix:     n.Prefix(),
			Suffix:     n.Suffix(),
			Levels:     n.Levels,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// handleCompare parses both sides as whole numbers and compares them.
func (s *Server) handleCompare(c *gin.Context) {
	var req compareRequest
	if !s.bind(c, &req) {
		return
	}
	rec, ok := s.recognizer(c, req.Profile)
	if !ok {
		return
	}

	left, err := outline.ParseNumber(req.Left, rec)
	if err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "left: "+err.Error())
		return
	}
	right, err := outline.ParseNumber(req.Right, rec)
	if err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, "right: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, compareResponse{
		Left:    left.NormalizedText(),
		Right:   right.NormalizedText(),
		Outcome: rec.CompareComposites(left, right),
	})
}

func (s *Server) handleOutline(c *gin.Context) {
	var req outlineRequest
	if !s.bind(c, &req) {
		return
	}
	rec, ok := s.recognizer(c, req.Profile)
	if !ok {
		return
	}

	o := outline.Extract(req.Text, rec)
	c.JSON(http.StatusOK, outlineResponse{Outline: o, Issues: len(o.Issues())})
}

func (s *Server) bind(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		abortWithError(c, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	_ = c.Error(err)
	abortWithError(c, http.StatusBadRequest, "invalid request: "+err.Error())
	return false
}

func (s *Server) recognizer(c *gin.Context, name string) (*numbering.Recognizer, bool) {
	rec, err := s.profiles.Recognizer(name)
	if err == nil {
		return rec, true
	}
	if errors.Is(err, profile.ErrNotFound) {
		abortWithError(c, http.StatusNotFound, err.Error())
		return nil, false
	}
	_ = c.Error(err)
	abortWithError(c, http.StatusInternalServerError, "resolving profile")
	return nil, false
}
