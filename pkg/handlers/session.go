package handlers

import (
	"campaign-site/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	sessionName = "blogsession"

	keyCategory = "category"
	keyQuery    = "query"
	keySelected = "selected"

	flashSubscribe = "subscribe"
)

// loadViewState reads the viewer's blog state from the session, starting
// from the defaults for a new visitor.
func loadViewState(c *gin.Context) services.ViewState {
	session := sessions.Default(c)
	state := services.NewViewState()
	if v, ok := session.Get(keyCategory).(string); ok {
		state.Category = v
	}
	if v, ok := session.Get(keyQuery).(string); ok {
		state.Query = v
	}
	if v, ok := session.Get(keySelected).(string); ok {
		state.SelectedID = v
	}
	return state
}

func saveViewState(c *gin.Context, state services.ViewState) {
	session := sessions.Default(c)
	session.Set(keyCategory, state.Category)
	session.Set(keyQuery, state.Query)
	if state.SelectedID == "" {
		session.Delete(keySelected)
	} else {
		session.Set(keySelected, state.SelectedID)
	}
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("Failed to save session")
	}
}

func addFlash(c *gin.Context, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg, flashSubscribe)
	if err := session.Save(); err != nil {
		logrus.WithError(err).Error("Failed to save session")
	}
}

// takeFlashes returns and clears pending flash messages.
func takeFlashes(c *gin.Context) []interface{} {
	session := sessions.Default(c)
	flashes := session.Flashes(flashSubscribe)
	if len(flashes) > 0 {
		if err := session.Save(); err != nil {
			logrus.WithError(err).Error("Failed to save session")
		}
	}
	return flashes
}
