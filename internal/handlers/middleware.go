package handlers

import (
	"net/http"

	"myblog"

	"github.com/gin-gonic/gin"
)

// Gin context keys.
const (
	ctxSessionKey = "session"
	ctxUploadKey  = "upload"
)

const (
	msgAlreadySignedIn = "already signed in"
	msgGenericFailure  = "something went wrong, please try again later"
)

// sessionMiddleware resumes the client's session from the signed cookie (or
// starts a fresh one) and attaches it to the context. The cookie is set only
// when the token changed.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	var cookieValue string
	if v, err := c.Cookie(h.cfg.CookieName); err == nil {
		cookieValue = v
	}

	sess, err := h.services.Sessions.Resume(c.Request.Context(), cookieValue)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("session_resume_failed", "err", err)
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	if sess.IsNew {
		value, err := h.services.Sessions.Cookie(sess)
		if err != nil {
			if h.log != nil {
				h.log.Errorw("session_cookie_sign_failed", "err", err)
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.SetCookie(h.cfg.CookieName, value, h.cfg.CookieMaxAge, "/", "", h.cfg.CookieSecure, true)
	}

	c.Set(ctxSessionKey, sess)
	c.Next()
}

// sessionFrom returns the session attached by sessionMiddleware.
func sessionFrom(c *gin.Context) *myblog.Session {
	if v, ok := c.Get(ctxSessionKey); ok {
		if s, ok := v.(*myblog.Session); ok {
			return s
		}
	}
	return nil
}

// checkNotLogin bounces signed-in clients off the signup pages.
func (h *Handler) checkNotLogin(c *gin.Context) {
	sess := sessionFrom(c)
	if sess.LoggedIn() {
		if err := h.services.Sessions.FlashError(c.Request.Context(), sess, msgAlreadySignedIn); err != nil && h.log != nil {
			h.log.Errorw("flash_write_failed", "err", err)
		}
		c.Redirect(http.StatusFound, routePosts)
		c.Abort()
		return
	}
	c.Next()
}

// faultMiddleware is the generic fault path. Failures that are not the user's
// fault are logged, replaced by a generic flash message (storage details are
// never explained to the end user) and answered with a redirect to the
// landing page.
func (h *Handler) faultMiddleware(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	if h.log != nil {
		h.log.Errorw("request_failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", c.Errors.Last().Err,
		)
	}
	if sess := sessionFrom(c); sess != nil {
		if err := h.services.Sessions.FlashError(c.Request.Context(), sess, msgGenericFailure); err != nil && h.log != nil {
			h.log.Errorw("flash_write_failed", "err", err)
		}
	}
	if !c.Writer.Written() {
		c.Redirect(http.StatusFound, routePosts)
	}
}
