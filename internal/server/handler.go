package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/ppiankov/factcheck/internal/analyze"
	"github.com/ppiankov/factcheck/internal/cache"
	"github.com/ppiankov/factcheck/internal/model"
)

// Messages returned by the API for caller errors
const (
	MsgBlankClaim = "Please enter a claim to analyze."
	MsgInFlight   = "An analysis is already running for this client. Please wait for it to finish."
	MsgBadRequest = "Request body must be JSON with a \"claim\" field."
)

// ClaimAnalyzer is the core analysis operation
type ClaimAnalyzer interface {
	Analyze(ctx context.Context, claim string) (*model.AnalysisResult, error)
	ProviderName() string
	Model() string
	WebSearch() bool
}

// SourceChecker probes the sources of a finished analysis
type SourceChecker interface {
	Check(ctx context.Context, sources []model.Source) []model.SourceCheck
}

type AnalyzeRequest struct {
	Claim string `json:"claim"`
}

type AnalyzeResponse struct {
	*model.AnalysisResult
	Label        string              `json:"label"`
	Tone         string              `json:"tone"`
	SourceChecks []model.SourceCheck `json:"source_checks,omitempty"`
}

type ErrorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Provider  string `json:"provider"`
	Model     string `json:"model"`
	WebSearch bool   `json:"web_search"`
}

type VerdictResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// Handler serves the claim analysis API
type Handler struct {
	analyzer ClaimAnalyzer
	checker  SourceChecker
	guard    cache.Guard
	timeout  time.Duration
	logger   *log.Logger
}

// NewHandler creates a handler. checker may be nil to skip source checks.
func NewHandler(analyzer ClaimAnalyzer, checker SourceChecker, guard cache.Guard, timeout time.Duration, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		analyzer: analyzer,
		checker:  checker,
		guard:    guard,
		timeout:  timeout,
		logger:   logger,
	}
}

// statusFor maps an error category to an HTTP status
func statusFor(cat analyze.Category) int {
	switch cat {
	case analyze.CategoryRateLimit:
		return http.StatusTooManyRequests
	case analyze.CategoryAuthentication,
		analyze.CategoryAuthorization,
		analyze.CategoryTransport,
		analyze.CategoryMalformedResponse,
		analyze.CategoryInvalidVerdict:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgBadRequest, Category: "validation"})
		return
	}

	claim := strings.TrimSpace(req.Claim)
	if claim == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: MsgBlankClaim, Category: "validation"})
		return
	}

	release, ok := h.guard.Acquire(cache.Key(c.ClientIP()))
	if !ok {
		c.JSON(http.StatusConflict, ErrorResponse{Error: MsgInFlight, Category: "conflict"})
		return
	}
	defer release()

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.analyzer.Analyze(ctx, claim)
	if err != nil {
		aerr := analyze.Classify(err)
		h.logger.Warn("analysis failed", "category", aerr.Category, "client", c.ClientIP(), "err", errors.Unwrap(aerr))
		c.JSON(statusFor(aerr.Category), ErrorResponse{Error: aerr.Message, Category: string(aerr.Category)})
		return
	}

	res := AnalyzeResponse{
		AnalysisResult: result,
		Label:          result.Verdict.Label(),
		Tone:           result.Verdict.Tone(),
	}
	if h.checker != nil && len(result.Sources) > 0 {
		res.SourceChecks = h.checker.Check(ctx, result.Sources)
	}

	c.JSON(http.StatusOK, res)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Provider:  h.analyzer.ProviderName(),
		Model:     h.analyzer.Model(),
		WebSearch: h.analyzer.WebSearch(),
	})
}

func (h *Handler) Verdicts(c *gin.Context) {
	verdicts := model.AllVerdicts()
	res := make([]VerdictResponse, len(verdicts))
	for i, v := range verdicts {
		res[i] = VerdictResponse{Value: string(v), Label: v.Label(), Tone: v.Tone()}
	}
	c.JSON(http.StatusOK, res)
}
