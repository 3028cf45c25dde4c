package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"myblog"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

func (h *Handler) home(c *gin.Context) {
	c.Redirect(http.StatusFound, routePosts)
}

// @Summary      Landing page
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string
// @Router       /posts [get]
func (h *Handler) posts(c *gin.Context) {
	sess := sessionFrom(c)
	flash, err := h.services.Sessions.TakeFlash(c.Request.Context(), sess)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var body strings.Builder
	if sess.LoggedIn() {
		fmt.Fprintf(&body, `<p>signed in as <strong>%s</strong> · <a href="/signout">sign out</a></p>`,
			template.HTMLEscapeString(sess.User.Name))
	} else {
		body.WriteString(`<p><a href="/signup">sign up</a></p>`)
	}
	body.WriteString(`<h2>posts</h2><p>nothing here yet.</p>`)

	renderPage(c, "posts", flash, body.String())
}

// @Summary      Registration form
// @Tags         pages
// @Produce      html
// @Success      200  {string}  string
// @Router       /signup [get]
func (h *Handler) signupForm(c *gin.Context) {
	sess := sessionFrom(c)
	flash, err := h.services.Sessions.TakeFlash(c.Request.Context(), sess)
	if err != nil {
		_ = c.Error(err)
		return
	}

	renderPage(c, "sign up", flash, signupFormHTML)
}

const signupFormHTML = `<h2>sign up</h2>
<form method="post" action="/signup" enctype="multipart/form-data">
  <p><label>name <input name="name" maxlength="10"></label></p>
  <p><label>gender
    <select name="gender">
      <option value="male">male</option>
      <option value="female">female</option>
      <option value="unspecified" selected>unspecified</option>
    </select>
  </label></p>
  <p><label>bio <input name="bio" maxlength="30"></label></p>
  <p><label>avatar <input type="file" name="avatar"></label></p>
  <p><label>password <input type="password" name="password"></label></p>
  <p><label>repeat password <input type="password" name="repassword"></label></p>
  <p><button type="submit">sign up</button></p>
</form>`

// renderPage writes a minimal HTML page with the consumed flash messages.
// There is intentionally no template engine behind this.
func renderPage(c *gin.Context, title string, flash myblog.Flash, body string) {
	var b strings.Builder
	fmt.Fprintf(&b, `<!doctype html><html><head><meta charset="utf-8"><title>myblog · %s</title></head><body>`,
		template.HTMLEscapeString(title))
	if flash.Success != "" {
		fmt.Fprintf(&b, `<p class="flash success">%s</p>`, template.HTMLEscapeString(flash.Success))
	}
	if flash.Error != "" {
		fmt.Fprintf(&b, `<p class="flash error">%s</p>`, template.HTMLEscapeString(flash.Error))
	}
	b.WriteString(body)
	b.WriteString(`</body></html>`)

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}
