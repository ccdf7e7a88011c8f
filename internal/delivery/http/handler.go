package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/seefood/backend/internal/domain"
	"github.com/seefood/backend/internal/pkg/logger"
	"github.com/seefood/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog  *usecase.CatalogView
	scanner  *usecase.Scanner
	profiles *usecase.ProfileService
	reviews  *usecase.ReviewService
	identity *usecase.IdentityService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *usecase.CatalogView,
	scanner *usecase.Scanner,
	profiles *usecase.ProfileService,
	reviews *usecase.ReviewService,
	identity *usecase.IdentityService,
) *Handler {
	return &Handler{
		catalog:  catalog,
		scanner:  scanner,
		profiles: profiles,
		reviews:  reviews,
		identity: identity,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "seefood-backend",
		"version": "1.0.0",
	})
}

// ListProducts returns one page of the catalog, filtered by the optional
// query and annotated with the caller's safety verdicts. A catalog fetch
// failure degrades to an empty listing rather than an error page.
func (h *Handler) ListProducts(c *gin.Context) {
	if _, err := h.catalog.Products(c.Request.Context()); err != nil {
		logger.L.Error("catalog load failed, serving empty listing", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{
			"products":   []domain.AnnotatedProduct{},
			"page":       1,
			"totalPages": 1,
			"total":      0,
			"query":      c.Query("query"),
		})
		return
	}

	page := 1
	if pageParam := c.Query("page"); pageParam != "" {
		if n, err := strconv.Atoi(pageParam); err == nil {
			page = n
		}
	}

	// Request-local view: the shared snapshot is read under one lock, so
	// concurrent requests never see each other's query or page.
	result := h.catalog.ViewPage(c.Query("query"), page)
	prefs := h.preferencesFor(c)

	c.JSON(http.StatusOK, gin.H{
		"products":   annotate(result.Products, prefs),
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"total":      result.Total,
		"query":      result.Query,
	})
}

// RefreshCatalog re-fetches the full snapshot on demand.
func (h *Handler) RefreshCatalog(c *gin.Context) {
	if err := h.catalog.Load(c.Request.Context()); err != nil {
		logger.L.Error("catalog refresh failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":      h.catalog.FilteredCount(),
		"totalPages": h.catalog.TotalPages(),
	})
}

// GetProduct returns the detail view for one product: the verdict for the
// caller, safe alternatives, comments, and the rating aggregate. Review
// store failures degrade to empty sections so the detail view still renders.
func (h *Handler) GetProduct(c *gin.Context) {
	barcode := c.Param("barcode")

	products, err := h.catalog.Products(c.Request.Context())
	if err != nil {
		logger.L.Error("catalog load failed for product detail", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}

	product, ok := usecase.FindByBarcode(products, barcode)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	session := sessionFrom(c)
	prefs := h.preferencesFor(c)

	comments, err := h.reviews.ListComments(c.Request.Context(), barcode)
	if err != nil {
		logger.L.Warn("comment fetch failed, serving empty list",
			zap.String("barcode", barcode),
			zap.Error(err),
		)
		comments = nil
	}
	if comments == nil {
		comments = []domain.Comment{}
	}

	summary, err := h.reviews.RatingSummary(c.Request.Context(), barcode, session.UserID)
	if err != nil {
		logger.L.Warn("rating fetch failed, serving empty summary",
			zap.String("barcode", barcode),
			zap.Error(err),
		)
		summary = &domain.RatingSummary{}
	}

	c.JSON(http.StatusOK, gin.H{
		"product": domain.AnnotatedProduct{
			Product: *product,
			Verdict: usecase.VerdictFor(*product, prefs),
		},
		"recommendations": annotate(usecase.Recommend(products, *product, prefs), prefs),
		"comments":        comments,
		"rating":          summary,
	})
}

type scanRequest struct {
	Code string `json:"code"`
}

// ScanCode resolves a scanned or typed barcode against the catalog.
func (h *Handler) ScanCode(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	product, err := h.scanner.Lookup(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrScanCooldown):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "scan ignored, try again shortly"})
		case errors.Is(err, domain.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		default:
			logger.L.Error("scan lookup failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		}
		return
	}

	prefs := h.preferencesFor(c)
	c.JSON(http.StatusOK, gin.H{
		"product": domain.AnnotatedProduct{
			Product: *product,
			Verdict: usecase.VerdictFor(*product, prefs),
		},
	})
}

// GetProfile returns the caller's preference document.
func (h *Handler) GetProfile(c *gin.Context) {
	prefs, err := h.profiles.Get(c.Request.Context(), sessionFrom(c))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		logger.L.Error("profile fetch failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "profile store unavailable"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// PutProfile overwrites the caller's preference document.
func (h *Handler) PutProfile(c *gin.Context) {
	var prefs domain.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.profiles.Save(c.Request.Context(), sessionFrom(c), &prefs); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		logger.L.Error("profile save failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "profile store unavailable"})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// PostComment adds a comment to a product and returns the refreshed list.
func (h *Handler) PostComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comments, err := h.reviews.PostComment(c.Request.Context(), sessionFrom(c), c.Param("barcode"), req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.L.Error("comment post failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "comment store unavailable"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comments": comments})
}

type ratingRequest struct {
	Rating int `json:"rating"`
}

// PutRating records or replaces the caller's rating and returns the
// recomputed aggregate.
func (h *Handler) PutRating(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.reviews.SubmitRating(c.Request.Context(), sessionFrom(c), c.Param("barcode"), req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.L.Error("rating submit failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rating store unavailable"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"rating": summary})
}

// Register validates a sign-up payload and forwards it to the auth provider.
func (h *Handler) Register(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	userID, err := h.identity.Register(c.Request.Context(), &reg)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			logger.L.Error("registration failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "registration unavailable"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"userId": userID})
}

// preferencesFor loads the caller's preferences for verdict computation.
// Anonymous callers and profile fetch failures both classify with no
// keyword sets, so every product reads Safe.
func (h *Handler) preferencesFor(c *gin.Context) *domain.Preferences {
	session := sessionFrom(c)
	if !session.Authenticated() {
		return nil
	}
	prefs, err := h.profiles.Get(c.Request.Context(), session)
	if err != nil {
		logger.L.Warn("preferences fetch failed, classifying without keywords",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
		return nil
	}
	return prefs
}

func annotate(products []domain.Product, prefs *domain.Preferences) []domain.AnnotatedProduct {
	annotated := make([]domain.AnnotatedProduct, 0, len(products))
	for _, product := range products {
		annotated = append(annotated, domain.AnnotatedProduct{
			Product: product,
			Verdict: usecase.VerdictFor(product, prefs),
		})
	}
	return annotated
}
