package api

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"fete/internal/advisor"
	"fete/internal/analysis"
	"fete/internal/csvio"
	"fete/internal/generator"
	"fete/internal/models"
	"fete/internal/monitoring"
	"fete/internal/optimizer"
	"fete/internal/repository"
)

// defaultOptimizeTimeout bounds a single optimization run; the subset
// space is exponential in pool size, so every run carries a deadline.
const defaultOptimizeTimeout = 60 * time.Second

// PlannerAPI is the HTTP surface of the party planner.
type PlannerAPI struct {
	Router  *gin.Engine
	Guests  *repository.GuestRepository
	Items   *repository.ItemRepository
	Metrics *monitoring.Collector
	Advisor *advisor.Advisor

	// MaxPoolSize caps the guest pool an optimize call will accept; the
	// subset space doubles with every guest. Zero disables the guard.
	MaxPoolSize int

	mu      sync.Mutex
	lastRun []models.Recommendation
}

// New creates the API with all routes registered. secret enables JWT
// auth on the v1 group when non-empty; adv may be nil.
func New(guests *repository.GuestRepository, items *repository.ItemRepository, metrics *monitoring.Collector, adv *advisor.Advisor, secret string) *PlannerAPI {
	api := &PlannerAPI{
		Router:  gin.Default(),
		Guests:  guests,
		Items:   items,
		Metrics: metrics,
		Advisor: adv,
	}
	api.setupRoutes(secret)
	return api
}

func (p *PlannerAPI) setupRoutes(secret string) {
	p.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "party planner API is running"})
	})

	v1 := p.Router.Group("/api/v1")
	if secret != "" {
		v1.Use(AuthMiddleware(secret))
	}
	{
		// Guest management
		v1.GET("/guests", p.ListGuests)
		v1.POST("/guests", p.CreateGuest)
		v1.GET("/guests/:name", p.GetGuest)
		v1.PUT("/guests/:name", p.UpdateGuest)
		v1.DELETE("/guests/:name", p.DeleteGuest)
		v1.POST("/guests/import", p.ImportGuests)
		v1.GET("/guests/export", p.ExportGuests)
		v1.POST("/guests/generate", p.GenerateGuests)

		// Catalog management
		v1.GET("/items", p.ListItems)
		v1.POST("/items", p.CreateItem)
		v1.PUT("/items/:name", p.UpdateItem)
		v1.DELETE("/items/:name", p.DeleteItem)

		// Optimization
		v1.POST("/optimize", p.Optimize)
		v1.GET("/recommendations", p.GetRecommendations)
		v1.GET("/recommendations/stats", p.GetRecommendationStats)
		v1.GET("/ws/optimize", p.OptimizeStream)

		// Analysis
		v1.GET("/analysis/guests", p.AnalyzeGuests)
		v1.GET("/analysis/items", p.AnalyzeItems)
		v1.GET("/analysis/matrix", p.PreferenceMatrix)

		// Invitations
		v1.POST("/invitations", p.DraftInvitation)
	}
}

// Guest handlers

type guestRequest struct {
	Name        string         `json:"name" binding:"required"`
	Preferences map[string]int `json:"preferences"`
	Intimacy    int            `json:"intimacy" binding:"required"`
	DietaryTags []string       `json:"dietary_tags"`
}

func (p *PlannerAPI) ListGuests(c *gin.Context) {
	guests, err := p.Guests.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, guests)
}

func (p *PlannerAPI) CreateGuest(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	guest, err := models.NewGuest(req.Name, req.Preferences, req.Intimacy, req.DietaryTags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.Guests.Add(guest); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	p.refreshPoolSizes()
	c.JSON(http.StatusCreated, guest)
}

func (p *PlannerAPI) GetGuest(c *gin.Context) {
	guest, err := p.Guests.GetByName(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (p *PlannerAPI) UpdateGuest(c *gin.Context) {
	var req guestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	guest, err := models.NewGuest(c.Param("name"), req.Preferences, req.Intimacy, req.DietaryTags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.Guests.Update(guest); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, guest)
}

func (p *PlannerAPI) DeleteGuest(c *gin.Context) {
	deleted, err := p.Guests.Delete(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "guest not found"})
		return
	}
	p.refreshPoolSizes()
	c.JSON(http.StatusOK, gin.H{"message": "guest deleted"})
}

func (p *PlannerAPI) ImportGuests(c *gin.Context) {
	updateExisting := c.Query("update") != "false"

	guests, stats, err := csvio.Import(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imported, updated := 0, 0
	for _, guest := range guests {
		if _, err := p.Guests.GetByName(guest.Name); err == nil {
			if updateExisting {
				if err := p.Guests.Update(guest); err == nil {
					updated++
				}
			}
			continue
		}
		if err := p.Guests.Add(guest); err == nil {
			imported++
		}
	}
	p.refreshPoolSizes()
	c.JSON(http.StatusOK, gin.H{"imported": imported, "updated": updated, "stats": stats})
}

func (p *PlannerAPI) ExportGuests(c *gin.Context) {
	guests, err := p.Guests.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	catalog, err := p.Items.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	foods := make([]string, len(catalog))
	for i, item := range catalog {
		foods[i] = item.Name
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="guests.csv"`)
	if err := csvio.Export(c.Writer, guests, foods); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

type generateRequest struct {
	Count        int    `json:"count" binding:"required"`
	Seed         int64  `json:"seed"`
	Diversity    string `json:"diversity"`
	IntimacyDist string `json:"intimacy_distribution"`
}

func (p *PlannerAPI) GenerateGuests(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	diversity := generator.Diversity(req.Diversity)
	if diversity == "" {
		diversity = generator.DiversityRealistic
	}
	dist := generator.IntimacyDistribution(req.IntimacyDist)
	if dist == "" {
		dist = generator.IntimacyNormal
	}

	catalog, err := p.Items.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	foods := make([]string, len(catalog))
	for i, item := range catalog {
		foods[i] = item.Name
	}

	gen := generator.New(rand.New(rand.NewSource(seed)))
	guests, err := gen.GenerateGuests(req.Count, foods, diversity, dist)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added := 0
	for _, guest := range guests {
		if err := p.Guests.Add(guest); err == nil {
			added++
		}
	}
	p.refreshPoolSizes()
	c.JSON(http.StatusOK, gin.H{"generated": added, "seed": seed})
}

// Catalog handlers

type itemRequest struct {
	Name     string   `json:"name" binding:"required"`
	UnitCost float64  `json:"unit_cost"`
	Category string   `json:"category" binding:"required"`
	Tags     []string `json:"tags"`
}

func (p *PlannerAPI) ListItems(c *gin.Context) {
	items, err := p.Items.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func (p *PlannerAPI) CreateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := models.NewMenuItem(req.Name, req.UnitCost, models.Category(req.Category), req.Tags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.Items.Add(item); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	p.refreshPoolSizes()
	c.JSON(http.StatusCreated, item)
}

func (p *PlannerAPI) UpdateItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := models.NewMenuItem(c.Param("name"), req.UnitCost, models.Category(req.Category), req.Tags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := p.Items.Update(item); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (p *PlannerAPI) DeleteItem(c *gin.Context) {
	deleted, err := p.Items.Delete(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}
	p.refreshPoolSizes()
	c.JSON(http.StatusOK, gin.H{"message": "menu item deleted"})
}

// Optimization handlers

// OptimizeRequest carries the optimization parameters; omitted fields
// fall back to the documented defaults.
type OptimizeRequest struct {
	Budget             float64            `json:"budget" binding:"required"`
	MinGuests          *int               `json:"min_guests"`
	MaxGuests          *int               `json:"max_guests"`
	SatisfactionWeight *float64           `json:"satisfaction_weight"`
	SavingsWeight      *float64           `json:"savings_weight"`
	IntimacyWeight     *float64           `json:"intimacy_weight"`
	Bounds             *models.MenuBounds `json:"bounds"`
	TimeoutSeconds     int                `json:"timeout_seconds"`
	TopN               int                `json:"top_n"`
}

func (r OptimizeRequest) toConfig() models.OptimizationConfig {
	config := models.NewOptimizationConfig(r.Budget)
	if r.MinGuests != nil {
		config.MinGuests = *r.MinGuests
	}
	if r.MaxGuests != nil {
		config.MaxGuests = *r.MaxGuests
	}
	if r.SatisfactionWeight != nil {
		config.SatisfactionWeight = *r.SatisfactionWeight
	}
	if r.SavingsWeight != nil {
		config.SavingsWeight = *r.SavingsWeight
	}
	if r.IntimacyWeight != nil {
		config.IntimacyWeight = *r.IntimacyWeight
	}
	if r.Bounds != nil {
		config.Bounds = *r.Bounds
	}
	return config
}

func (p *PlannerAPI) Optimize(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config := req.toConfig()
	if err := config.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guests, err := p.Guests.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p.MaxPoolSize > 0 && len(guests) > p.MaxPoolSize {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fmt.Sprintf("guest pool size %d exceeds the configured limit of %d", len(guests), p.MaxPoolSize),
		})
		return
	}
	catalog, err := p.Items.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	timeout := defaultOptimizeTimeout
	if req.TimeoutSeconds > 0 {
		timeout = time.Duration(req.TimeoutSeconds) * time.Second
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	opt := optimizer.New(guests, catalog)
	var subsets int64
	opt.Progress = func(done, total int64) {
		atomic.StoreInt64(&subsets, done)
	}

	start := time.Now()
	ranked, err := opt.OptimizeRanked(ctx, config)
	if p.Metrics != nil {
		p.Metrics.RecordOptimizeRun(time.Since(start), atomic.LoadInt64(&subsets), len(ranked), err)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	p.mu.Lock()
	p.lastRun = ranked
	p.mu.Unlock()

	result := ranked
	if req.TopN > 0 {
		result = optimizer.TopN(ranked, req.TopN)
	}
	c.JSON(http.StatusOK, gin.H{
		"recommendations": result,
		"total":           len(ranked),
		"stats":           optimizer.Statistics(ranked),
	})
}

func (p *PlannerAPI) GetRecommendations(c *gin.Context) {
	p.mu.Lock()
	recs := p.lastRun
	p.mu.Unlock()
	if recs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no optimization has run yet"})
		return
	}

	if topParam := c.Query("top"); topParam != "" {
		n, err := strconv.Atoi(topParam)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top must be a positive integer"})
			return
		}
		recs = optimizer.TopN(recs, n)
	}
	c.JSON(http.StatusOK, recs)
}

func (p *PlannerAPI) GetRecommendationStats(c *gin.Context) {
	p.mu.Lock()
	recs := p.lastRun
	p.mu.Unlock()
	if recs == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no optimization has run yet"})
		return
	}
	stats := optimizer.Statistics(recs)
	if stats == nil {
		c.JSON(http.StatusOK, gin.H{"total": 0})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Analysis handlers

func (p *PlannerAPI) AnalyzeGuests(c *gin.Context) {
	guests, err := p.Guests.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis.SummarizeGuests(guests))
}

func (p *PlannerAPI) AnalyzeItems(c *gin.Context) {
	guests, err := p.Guests.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	catalog, err := p.Items.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis.AnalyzeItems(guests, catalog))
}

func (p *PlannerAPI) PreferenceMatrix(c *gin.Context) {
	guests, err := p.Guests.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis.BuildPreferenceMatrix(guests))
}

// Invitation handler

type invitationRequest struct {
	Rank int `json:"rank"`
}

func (p *PlannerAPI) DraftInvitation(c *gin.Context) {
	if p.Advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no language model configured"})
		return
	}

	var req invitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Rank < 1 {
		req.Rank = 1
	}

	p.mu.Lock()
	recs := p.lastRun
	p.mu.Unlock()
	if req.Rank > len(recs) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no recommendation at that rank"})
		return
	}

	text, err := p.Advisor.DraftInvitation(c.Request.Context(), recs[req.Rank-1])
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitation": text})
}

func (p *PlannerAPI) refreshPoolSizes() {
	if p.Metrics == nil {
		return
	}
	guests, err1 := p.Guests.Count()
	items, err2 := p.Items.Count()
	if err1 == nil && err2 == nil {
		p.Metrics.SetPoolSizes(guests, items)
	}
}
