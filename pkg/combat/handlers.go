package combat

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"duel-service/pkg/battle"
	"duel-service/pkg/config"
	"duel-service/pkg/playstyle"
	"duel-service/pkg/timeline"
)

// Handler serves duels over HTTP. Every request plays a fresh match.
type Handler struct {
	renderer *Renderer
	log      *zap.Logger
	maxTurns int
}

func NewHandler(r *Renderer, log *zap.Logger, maxTurns int) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{renderer: r, log: log, maxTurns: maxTurns}
}

// Register mounts the duel routes on g.
func (h *Handler) Register(g gin.IRoutes) {
	g.POST("/battle/simulate", h.Simulate)
	g.POST("/combat", h.RenderCombat)
	g.POST("/battle/timeline", h.RenderTimeline)
}

// Simulate plays the requested duel and returns every turn as JSON.
func (h *Handler) Simulate(c *gin.Context) {
	d, err := h.play(c)
	if d == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := DuelResponse{
		Scene: Snapshot(d.driver.Match(), d.stage),
		Seed:  d.seed,
		Turns: d.driver.Match().Turns(),
	}
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "result": resp})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RenderCombat plays the requested duel and returns its last frame as a PNG.
// A duel cut short by the turn limit or missing input is drawn as it stands.
func (h *Handler) RenderCombat(c *gin.Context) {
	d, err := h.play(c)
	if d == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil && statusFor(err) == http.StatusInternalServerError {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sc := Snapshot(d.driver.Match(), d.stage)
	buf, err := h.renderer.RenderPNG(sc)
	if err != nil {
		h.log.Error("encode frame", zap.String("match_id", sc.MatchID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode image"})
		return
	}
	c.Header("X-Match-State", sc.State)
	c.Data(http.StatusOK, "image/png", buf)
}

// RenderTimeline plays the requested duel and returns its turn log as a
// PNG grid.
func (h *Handler) RenderTimeline(c *gin.Context) {
	d, err := h.play(c)
	if d == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil && statusFor(err) == http.StatusInternalServerError {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	m := d.driver.Match()
	buf, err := timeline.RenderPNG(m.Turns(), timeline.DefaultColumns)
	if err != nil {
		h.log.Error("encode timeline", zap.String("match_id", m.ID()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode image"})
		return
	}
	c.Header("X-Match-State", m.State())
	c.Data(http.StatusOK, "image/png", buf)
}

type duel struct {
	driver *playstyle.Driver
	stage  *Stage
	seed   int64
}

// play binds the request and runs the duel. A nil duel means the request
// itself was bad; otherwise err is whatever stopped the match early.
func (h *Handler) play(c *gin.Context) (*duel, error) {
	var req DuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	sc := config.Scenario{Seed: req.Seed, MaxTurns: req.MaxTurns, Fighters: req.Fighters}
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	one, err := req.Fighters[0].Entrant(nil)
	if err != nil {
		return nil, err
	}
	two, err := req.Fighters[1].Entrant(nil)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	driver, err := playstyle.NewDuel(one, two, rand.New(rand.NewSource(seed)), battle.WithLogger(h.log))
	if err != nil {
		return nil, err
	}

	d := &duel{driver: driver, stage: NewStage(driver.Match()), seed: seed}
	driver.OnTurn = d.stage.Observe

	limit := h.maxTurns
	if req.MaxTurns > 0 && (limit <= 0 || req.MaxTurns < limit) {
		limit = req.MaxTurns
	}
	return d, driver.Run(c.Request.Context(), limit)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, playstyle.ErrTurnLimit), errors.Is(err, playstyle.ErrInputExhausted):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
