package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// adminUserID is the only account allowed to author posts.
const adminUserID = 1

const (
	sessionKeyUserID = "user_id"
	sessionKeyFlash  = "flash"
	sessionDuration  = 24 * time.Hour
)

type contextKey string

const contextKeyUser contextKey = "user"

// bcrypt.GenerateFromPassword rejects passwords longer than this.
const maxPasswordBytes = 72

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// newSessionManager stores sessions in the blog database. A zero
// cleanupInterval disables the background expiry sweep.
func newSessionManager(db *sql.DB, secure bool, cleanupInterval time.Duration) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.NewWithCleanupInterval(db, cleanupInterval)
	sm.Lifetime = sessionDuration
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = secure
	return sm
}

// logIn rotates the session token before binding it to the user.
func (b *Blog) logIn(ctx context.Context, user *User) error {
	if err := b.sessions.RenewToken(ctx); err != nil {
		return err
	}
	b.sessions.Put(ctx, sessionKeyUserID, user.ID)
	return nil
}

func (b *Blog) logOut(ctx context.Context) error {
	if err := b.sessions.RenewToken(ctx); err != nil {
		return err
	}
	b.sessions.Remove(ctx, sessionKeyUserID)
	return nil
}

func (b *Blog) flash(ctx context.Context, msg string) {
	b.sessions.Put(ctx, sessionKeyFlash, msg)
}

// loadUser resolves the session's user id to a User in the request
// context. A session pointing at a missing user is destroyed and the
// request answered with 404.
func (b *Blog) loadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := b.sessions.GetInt(r.Context(), sessionKeyUserID)
		if userID == 0 {
			next.ServeHTTP(w, r)
			return
		}

		user, err := getUserByID(b.db, userID)
		if err != nil {
			b.serverError(w, r, err)
			return
		}
		if user == nil {
			b.log.Warn("session user not found", zap.Int("user_id", userID))
			_ = b.sessions.Destroy(r.Context())
			http.NotFound(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUser, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the logged-in user, or nil for anonymous visitors.
func currentUser(r *http.Request) *User {
	user, _ := r.Context().Value(contextKeyUser).(*User)
	return user
}

func isAdmin(user *User) bool {
	return user != nil && user.ID == adminUserID
}

// requireAdmin rejects everyone but the administrator with 403.
func (b *Blog) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		if !isAdmin(user) {
			fields := []zap.Field{zap.String("path", r.URL.Path)}
			if user != nil {
				fields = append(fields, zap.Int("user_id", user.ID))
			}
			b.log.Warn("admin route refused", fields...)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
