package services

import "campaign-site/pkg/models"

type ViewMode string

const (
	ModeList   ViewMode = "list"
	ModeDetail ViewMode = "detail"
)

// ViewState is one viewer's state of the blog page. Selection and the
// filters are independent: selecting or clearing never touches the filters.
type ViewState struct {
	Category   string `json:"category"`
	Query      string `json:"query"`
	SelectedID string `json:"selected_id,omitempty"`
}

func NewViewState() ViewState {
	return ViewState{Category: models.CategoryAll}
}

// SetCategory accepts any value; unknown categories just filter everything out.
func (v *ViewState) SetCategory(value string) {
	v.Category = value
}

// SetSearchQuery stores text verbatim. Case folding happens when filtering.
func (v *ViewState) SetSearchQuery(text string) {
	v.Query = text
}

func (v *ViewState) Select(article models.Article) {
	v.SelectedID = article.ID
}

func (v *ViewState) ClearSelection() {
	v.SelectedID = ""
}

func (v ViewState) Mode() ViewMode {
	if v.SelectedID != "" {
		return ModeDetail
	}
	return ModeList
}

// BlogPage is the data for one render of the blog page. In detail mode only
// Selected is set; in list mode everything except Selected is.
type BlogPage struct {
	Mode       ViewMode
	State      ViewState
	Featured   *models.Article
	Categories []models.Category
	Articles   []models.Article
	Selected   *models.Article
}

// NoResults reports the empty-search state of the list view.
func (p BlogPage) NoResults() bool {
	return p.Mode == ModeList && len(p.Articles) == 0
}

// BuildBlogPage resolves the view state against the catalog. A selection
// that no longer resolves falls back to the list view.
func BuildBlogPage(c *Catalog, state ViewState) BlogPage {
	if state.Mode() == ModeDetail {
		if a, err := c.ByID(state.SelectedID); err == nil {
			return BlogPage{Mode: ModeDetail, State: state, Selected: &a}
		}
		state.ClearSelection()
	}

	page := BlogPage{
		Mode:       ModeList,
		State:      state,
		Categories: c.Categories(),
		Articles:   c.Filter(state.Category, state.Query),
	}
	if f, ok := c.Featured(); ok {
		page.Featured = &f
	}
	return page
}
