package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"campaign-site/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BlogPage renders the list view, or the detail view when an article is
// selected. The category and q query parameters update the stored filters.
func (h *Handler) BlogPage(c *gin.Context) {
	state := loadViewState(c)
	before := state

	if v, ok := c.GetQuery("category"); ok {
		state.SetCategory(v)
	}
	if v, ok := c.GetQuery("q"); ok {
		state.SetSearchQuery(v)
	}

	page := services.BuildBlogPage(h.Catalog, state)
	if page.State != before {
		saveViewState(c, page.State)
	}

	data := gin.H{
		"SiteTitle": siteTitle(),
		"Page":      page,
	}
	if page.Mode == services.ModeDetail {
		data["Body"] = services.RenderBody(page.Selected.Body)
	} else {
		data["Body"] = template.HTML("")
		data["Flashes"] = takeFlashes(c)
	}
	c.HTML(http.StatusOK, "blog.html", data)
}

func (h *Handler) SelectArticle(c *gin.Context) {
	article, err := h.Catalog.ByID(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{
			"SiteTitle": siteTitle(),
			"Message":   "The article you are looking for does not exist.",
		})
		return
	}

	state := loadViewState(c)
	state.Select(article)
	saveViewState(c, state)
	c.Redirect(http.StatusFound, "/blog")
}

func (h *Handler) ClearSelection(c *gin.Context) {
	state := loadViewState(c)
	state.ClearSelection()
	saveViewState(c, state)
	c.Redirect(http.StatusSeeOther, "/blog")
}

func (h *Handler) SubscribeForm(c *gin.Context) {
	email := c.PostForm("email")
	switch err := services.Subscribe(c.Request.Context(), h.Subscriber, email, "blog-form"); {
	case errors.Is(err, services.ErrEmptyEmail):
		addFlash(c, "Please enter your email address.")
	case err != nil:
		logrus.WithError(err).Error("Subscription failed")
		addFlash(c, "We could not subscribe you right now. Please try again later.")
	default:
		addFlash(c, "Thanks for subscribing!")
	}
	c.Redirect(http.StatusSeeOther, "/blog")
}

func (h *Handler) Feed(c *gin.Context) {
	body, contentType, err := services.CatalogFeed(h.Catalog)
	if err != nil {
		logrus.WithError(err).Error("Failed to render feed")
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Data(http.StatusOK, contentType, []byte(body))
}
