package handlers

import (
	"errors"
	"net/http"

	"myblog/internal/repository"
	"myblog/internal/service"

	"github.com/gin-gonic/gin"
)

// Routes the flow redirects to.
const (
	routeSignup = "/signup"
	routePosts  = "/posts"
)

// Form field names.
const (
	fieldName       = "name"
	fieldGender     = "gender"
	fieldBio        = "bio"
	fieldPassword   = "password"
	fieldRepassword = "repassword"
	fieldAvatar     = "avatar"
)

const msgRegistered = "registration succeeded"

// @Summary      Register a new account
// @Description  Multipart form: name, gender, bio, password, repassword and an avatar file. Every outcome answers with a redirect; messages travel as flash.
// @Tags         auth
// @Accept       mpfd
// @Param        name        formData  string  true   "Account name (1-10 characters, unique)"
// @Param        gender      formData  string  true   "male, female or unspecified"
// @Param        bio         formData  string  true   "Biography (1-30 characters)"
// @Param        password    formData  string  true   "Password (at least 6 characters)"
// @Param        repassword  formData  string  true   "Password confirmation"
// @Param        avatar      formData  file    true   "Avatar image"
// @Success      302  "Redirect: /posts on success, /signup on validation failure or name conflict"
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	ctx := c.Request.Context()
	sess := sessionFrom(c)

	in := service.RegisterInput{
		Name:       c.PostForm(fieldName),
		Gender:     c.PostForm(fieldGender),
		Bio:        c.PostForm(fieldBio),
		Password:   c.PostForm(fieldPassword),
		Repassword: c.PostForm(fieldRepassword),
		Avatar:     uploadFrom(c),
	}

	account, err := h.services.Registration.Register(ctx, in)

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		// User-correctable: back to the form with the first violation.
		h.flashErrorAndRedirect(c, verr.Message, routeSignup)

	case errors.Is(err, repository.ErrNameTaken):
		// Also user-correctable; the name conflict goes back to the form,
		// not to the fault path.
		h.flashErrorAndRedirect(c, repository.ErrNameTaken.Error(), routeSignup)

	case err != nil:
		// Storage fault. The avatar is already scheduled for cleanup; the
		// fault middleware owns the response.
		_ = c.Error(err)

	default:
		if err := h.services.Sessions.Bind(ctx, sess, account); err != nil {
			// The account exists; do not touch its avatar. Generic fault path.
			_ = c.Error(err)
			return
		}
		if err := h.services.Sessions.FlashSuccess(ctx, sess, msgRegistered); err != nil && h.log != nil {
			h.log.Errorw("flash_write_failed", "err", err)
		}
		if h.log != nil {
			h.log.Infow("user_registered", "name", account.Name, "id", account.ID)
		}
		c.Redirect(http.StatusFound, routePosts)
	}
}

// @Summary      Sign out
// @Tags         auth
// @Success      302  "Redirect to /posts"
// @Router       /signout [get]
func (h *Handler) signOut(c *gin.Context) {
	sess := sessionFrom(c)
	if sess.LoggedIn() {
		if err := h.services.Sessions.Destroy(c.Request.Context(), sess); err != nil {
			_ = c.Error(err)
			return
		}
		c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	}
	c.Redirect(http.StatusFound, routePosts)
}

// flashErrorAndRedirect records the user-facing message and answers with the
// redirect; a failed flash write escalates to the fault path instead.
func (h *Handler) flashErrorAndRedirect(c *gin.Context, message, target string) {
	sess := sessionFrom(c)
	if err := h.services.Sessions.FlashError(c.Request.Context(), sess, message); err != nil {
		_ = c.Error(err)
		return
	}
	c.Redirect(http.StatusFound, target)
}
