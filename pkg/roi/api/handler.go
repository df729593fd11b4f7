// Package api serves projections over HTTP for a web front end.
package api

import (
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/komsit37/roi/pkg/roi/animate"
	"github.com/komsit37/roi/pkg/roi/calc"
	"github.com/komsit37/roi/pkg/roi/format"
)

// projectionRequest carries optional inputs; anything missing takes the
// default. A slider position overrides job_value.
type projectionRequest struct {
	Appointments *int     `form:"appointments" json:"appointments"`
	ClosingRate  *float64 `form:"closing_rate" json:"closing_rate"`
	JobValue     *float64 `form:"job_value" json:"job_value"`
	Slider       *float64 `form:"slider" json:"slider"`
}

func (r projectionRequest) inputs(m calc.Model, def calc.Inputs) calc.Inputs {
	in := def
	if r.Appointments != nil {
		in.Appointments = *r.Appointments
	}
	if r.ClosingRate != nil {
		in.ClosingRate = *r.ClosingRate
	}
	if r.JobValue != nil {
		in.JobValue = *r.JobValue
	}
	if r.Slider != nil {
		in.JobValue = m.FromSlider(*r.Slider)
	}
	return m.Clamp(in)
}

type streamRequest struct {
	projectionRequest
	FromRevenue float64 `form:"from_revenue"`
	FromProfit  float64 `form:"from_profit"`
	FromROI     float64 `form:"from_roi"`
}

type sliderRequest struct {
	Pos   *float64 `form:"pos"`
	Value *float64 `form:"value"`
}

// SliderResponse maps between a slider position and a job value.
type SliderResponse struct {
	Slider   float64 `json:"slider"`
	JobValue float64 `json:"job_value"`
	Label    string  `json:"label"`
}

// ModelResponse describes the constants, bounds and defaults in effect.
type ModelResponse struct {
	Model    calc.Model  `json:"model"`
	Defaults calc.Inputs `json:"defaults"`
	Steps    steps       `json:"steps"`
}

type steps struct {
	Appointments int     `json:"appointments"`
	ClosingRate  float64 `json:"closing_rate"`
	Slider       float64 `json:"slider"`
}

type Handler struct {
	svc      *ProjectionService
	defaults calc.Inputs
	anim     animate.Config
	logger   *zap.Logger
}

func NewHandler(svc *ProjectionService, defaults calc.Inputs, anim animate.Config, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, defaults: defaults, anim: anim, logger: logger}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *Handler) Model(c *gin.Context) {
	m := h.svc.Model()
	c.JSON(http.StatusOK, ModelResponse{
		Model:    m,
		Defaults: m.Clamp(h.defaults),
		Steps: steps{
			Appointments: calc.AppointmentStep,
			ClosingRate:  calc.ClosingRateStep,
			Slider:       calc.SliderStep,
		},
	})
}

// Projection answers both GET (query inputs) and POST (JSON inputs).
func (h *Handler) Projection(c *gin.Context) {
	var req projectionRequest
	var err error
	if c.Request.Method == http.MethodPost {
		err = c.ShouldBindJSON(&req)
		if errors.Is(err, io.EOF) {
			// Empty body means all defaults.
			err = nil
		}
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		h.badRequest(c, err)
		return
	}

	in := req.inputs(h.svc.Model(), h.defaults)
	c.JSON(http.StatusOK, h.svc.Project(c.Request.Context(), in))
}

func (h *Handler) Slider(c *gin.Context) {
	var req sliderRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	m := h.svc.Model()
	var resp SliderResponse
	switch {
	case req.Pos != nil:
		resp.JobValue = m.FromSlider(*req.Pos)
		resp.Slider = m.ToSlider(resp.JobValue)
	case req.Value != nil:
		resp.JobValue = m.ClampJobValue(*req.Value)
		resp.Slider = m.ToSlider(resp.JobValue)
	default:
		h.badRequest(c, errors.New("pos or value is required"))
		return
	}
	resp.Label = format.JobValue(resp.JobValue, m.MaxJobValue)
	c.JSON(http.StatusOK, resp)
}

// Stream sends the animation from the caller's displayed values to the new
// target as server-sent events: "frame" per tick, then one "done".
func (h *Handler) Stream(c *gin.Context) {
	var req streamRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	from := animate.Metrics{Revenue: req.FromRevenue, Profit: req.FromProfit, ROI: req.FromROI}
	if !finite(from.Revenue, from.Profit, from.ROI) {
		h.badRequest(c, errors.New("from_revenue, from_profit and from_roi must be finite"))
		return
	}

	m := h.svc.Model()
	target := animate.Target(m.Project(req.inputs(m, h.defaults)))

	// One run never produces more than Frames frames, so sends never block.
	frames := make(chan animate.Frame, h.anim.Frames+1)
	d := animate.NewDriver(h.anim, from, func(f animate.Frame) {
		select {
		case frames <- f:
		default:
		}
	}, h.logger)
	defer d.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	d.Retarget(target)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("stream client gone", zap.Error(ctx.Err()))
			return
		case f := <-frames:
			if f.Final {
				c.SSEvent("done", f)
				c.Writer.Flush()
				return
			}
			c.SSEvent("frame", f)
			c.Writer.Flush()
		}
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// NewRouter wires the handler behind request-id, logging and, when limiter is
// non-nil, per-client rate limiting on the /api routes.
func NewRouter(h *Handler, logger *zap.Logger, limiter *RateLimiter) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	r.GET("/health", h.Health)

	v1 := r.Group("/api/v1")
	if limiter != nil {
		v1.Use(limiter.Middleware())
	}
	v1.GET("/model", h.Model)
	v1.GET("/projection", h.Projection)
	v1.POST("/projection", h.Projection)
	v1.GET("/projection/stream", h.Stream)
	v1.GET("/slider", h.Slider)
	return r
}
