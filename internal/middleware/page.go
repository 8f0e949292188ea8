package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harentsoaR/sewa-finder/internal/pagestate"
)

const (
	PageCookie   = "sewa_page"
	pageStateKey = "pageState"
)

// PageState attaches the tab's map/form state, issuing a page cookie on
// first visit or after the state expired.
func PageState(store *pagestate.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		prev, _ := c.Cookie(PageCookie)
		id, st := store.Load(prev)
		if id != prev {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(PageCookie, id, 0, "/", "", secure, true)
		}
		c.Set(pageStateKey, st)
		c.Next()
	}
}

// CurrentPage returns the state attached by PageState.
func CurrentPage(c *gin.Context) *pagestate.ViewState {
	return c.MustGet(pageStateKey).(*pagestate.ViewState)
}
