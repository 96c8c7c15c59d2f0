package sessiontransport

import (
	"errors"
	"time"

	"github.com/dmitrymomot/portfolio/core/cookie"
	"github.com/dmitrymomot/portfolio/core/handler"
	"github.com/dmitrymomot/portfolio/core/session"
	"github.com/dmitrymomot/portfolio/pkg/clientip"
)

// Cookie carries the session token in a signed HTTP cookie. It
// implements the Load/Store contract the session middleware expects.
type Cookie[Data any] struct {
	manager   *session.Manager[Data]
	cookieMgr *cookie.Manager
	name      string
}

// NewCookie creates a cookie-based session transport.
func NewCookie[Data any](mgr *session.Manager[Data], cookieMgr *cookie.Manager, name string) *Cookie[Data] {
	return &Cookie[Data]{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
	}
}

// Load resolves the request's session from the signed cookie. A missing
// cookie, a bad signature, or an expired session all degrade to a fresh
// anonymous session rather than an error, so every request handles with
// a usable session.
func (c *Cookie[Data]) Load(ctx handler.Context) (session.Session[Data], error) {
	token, err := c.cookieMgr.GetSigned(ctx.Request(), c.name)
	if err != nil {
		return c.newSession(ctx)
	}

	sess, err := c.manager.GetByToken(ctx, token)
	if err != nil {
		return c.newSession(ctx)
	}

	return sess, nil
}

// Store persists the session and keeps the client cookie in sync. A
// session marked deleted is removed from both the store and the
// browser. Otherwise the cookie is rewritten whenever the session was
// saved or its idle window slid, so the cookie's MaxAge tracks the
// server-side expiry.
func (c *Cookie[Data]) Store(ctx handler.Context, sess session.Session[Data]) error {
	if sess.IsDeleted() {
		if err := c.manager.Delete(ctx, sess.ID); err != nil {
			return err
		}
		c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
		return nil
	}

	wasModified := sess.IsModified()
	expiryBefore := sess.ExpiresAt

	if err := c.manager.Save(ctx, &sess); err != nil {
		return err
	}

	if wasModified || !sess.ExpiresAt.Equal(expiryBefore) {
		return c.writeCookie(ctx, sess)
	}
	return nil
}

func (c *Cookie[Data]) newSession(ctx handler.Context) (session.Session[Data], error) {
	sess, err := c.manager.New(session.NewSessionParams{
		IP:        clientip.GetIP(ctx.Request()),
		UserAgent: ctx.Request().Header.Get("User-Agent"),
	})
	if err != nil {
		return session.Session[Data]{}, errors.Join(ErrFailedToCreateSession, err)
	}
	return sess, nil
}

func (c *Cookie[Data]) writeCookie(ctx handler.Context, sess session.Session[Data]) error {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge <= 0 {
		return ErrSessionExpired
	}

	return c.cookieMgr.SetSigned(ctx.ResponseWriter(), c.name, sess.Token,
		cookie.WithMaxAge(maxAge),
	)
}
