package services

import "testing"

func TestSelectionKeepsFilters(t *testing.T) {
	c := newTestCatalog(t)

	state := NewViewState()
	state.SetCategory("product-updates")
	state.SetSearchQuery("Exports")

	article, err := c.ByID("exports")
	if err != nil {
		t.Fatal(err)
	}
	state.Select(article)
	if state.Mode() != ModeDetail {
		t.Fatalf("Mode() = %q after Select, want detail", state.Mode())
	}

	state.ClearSelection()
	if state.Mode() != ModeList {
		t.Fatalf("Mode() = %q after ClearSelection, want list", state.Mode())
	}
	if state.Category != "product-updates" || state.Query != "Exports" {
		t.Errorf("filters = (%q, %q), want (product-updates, Exports)", state.Category, state.Query)
	}

	page := BuildBlogPage(c, state)
	if len(page.Articles) != 1 || page.Articles[0].ID != "exports" {
		t.Errorf("page articles = %v, want [exports]", ids(page.Articles))
	}
}

func TestBuildBlogPageDetailIsExclusive(t *testing.T) {
	c := newTestCatalog(t)
	state := NewViewState()
	state.SelectedID = "offline"

	page := BuildBlogPage(c, state)
	if page.Mode != ModeDetail {
		t.Fatalf("Mode = %q, want detail", page.Mode)
	}
	if page.Selected == nil || page.Selected.ID != "offline" {
		t.Fatalf("Selected = %+v, want offline", page.Selected)
	}
	if page.Featured != nil || page.Articles != nil || page.Categories != nil {
		t.Error("detail page also carries list, filters or featured banner")
	}
	if page.NoResults() {
		t.Error("detail page reports no results")
	}
}

func TestBuildBlogPageList(t *testing.T) {
	c := newTestCatalog(t)

	page := BuildBlogPage(c, NewViewState())
	if page.Mode != ModeList {
		t.Fatalf("Mode = %q, want list", page.Mode)
	}
	if page.Featured == nil || page.Featured.ID != "blur" {
		t.Errorf("Featured = %+v, want blur", page.Featured)
	}
	if len(page.Articles) != 4 {
		t.Errorf("got %d articles, want 4", len(page.Articles))
	}

	state := NewViewState()
	state.SetSearchQuery("nothing matches this")
	if !BuildBlogPage(c, state).NoResults() {
		t.Error("NoResults() = false for a query with no matches")
	}
}

func TestBuildBlogPageStaleSelection(t *testing.T) {
	c := newTestCatalog(t)
	state := NewViewState()
	state.SelectedID = "deleted-article"

	page := BuildBlogPage(c, state)
	if page.Mode != ModeList {
		t.Errorf("Mode = %q, want list", page.Mode)
	}
	if page.State.SelectedID != "" {
		t.Errorf("SelectedID = %q, want cleared", page.State.SelectedID)
	}
}
