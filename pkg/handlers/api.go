package handlers

import (
	"errors"
	"net/http"

	"campaign-site/pkg/models"
	"campaign-site/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ListArticles filters statelessly: category defaults to "all", q to "".
// Bodies are left out of the list.
func (h *Handler) ListArticles(c *gin.Context) {
	articles := h.Catalog.Filter(c.DefaultQuery("category", models.CategoryAll), c.Query("q"))
	for i := range articles {
		articles[i].Body = ""
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles, "count": len(articles)})
}

func (h *Handler) GetFeatured(c *gin.Context) {
	article, ok := h.Catalog.Featured()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No featured article"})
		return
	}
	article.Body = ""
	c.JSON(http.StatusOK, article)
}

func (h *Handler) GetArticle(c *gin.Context) {
	article, err := h.Catalog.ByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"article": article,
		"nodes":   services.ParseBody(article.Body),
		"html":    string(services.RenderBody(article.Body)),
	})
}

func (h *Handler) ListCategories(c *gin.Context) {
	type category struct {
		Value string `json:"value"`
		Label string `json:"label"`
	}
	out := []category{{Value: models.CategoryAll, Label: "All"}}
	for _, cat := range h.Catalog.Categories() {
		out = append(out, category{Value: string(cat), Label: cat.Label()})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) SubscribeJSON(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	err := services.Subscribe(c.Request.Context(), h.Subscriber, req.Email, "api")
	if errors.Is(err, services.ErrEmptyEmail) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter your email address."})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("Subscription failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Subscription failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "subscribed", "message": "Thanks for subscribing!"})
}
