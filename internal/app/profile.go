package app

import (
	"context"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"bookshelf/internal/route"
	"bookshelf/pkg/domain"
)

// Profile is what the profile view shows. Token details are informational
// only: tokens are opaque to the client and never validated.
type Profile struct {
	User      *domain.User
	Subject   string
	ExpiresAt *time.Time
}

// Expired reports whether the token carries an expiry in the past.
func (p Profile) Expired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// Profile guards the profile view and returns the cached profile.
func (a *App) Profile(ctx context.Context) (Profile, error) {
	if err := a.Require(route.PathProfile); err != nil {
		return Profile{}, err
	}
	var p Profile
	if a.profiles != nil {
		user, err := a.profiles.User(ctx)
		if err != nil {
			a.logger.Warn("read cached profile failed", "err", err)
		}
		p.User = user
	}
	p.Subject, p.ExpiresAt = tokenClaims(a.session.Token())
	return p, nil
}

// tokenClaims reads sub and exp from a JWT without verifying it. Anything
// that is not a JWT yields zero values.
func tokenClaims(token string) (string, *time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", nil
	}
	sub, _ := claims.GetSubject()
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return sub, nil
	}
	t := exp.Time
	return sub, &t
}
