package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"example.com/storefront/app/internal/domain/backend"
	"example.com/storefront/app/internal/domain/notice"
	domsession "example.com/storefront/app/internal/domain/session"
)

type Claims struct {
	Username  string
	ExpiresAt time.Time
}

// TokenInspector reads claims out of a bearer token without verifying it;
// only the backend can do that.
type TokenInspector interface {
	Inspect(token string) (*Claims, error)
}

type Service struct {
	gateway  domsession.Gateway
	store    domsession.Store
	tokens   TokenInspector
	notifier notice.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(
	gateway domsession.Gateway,
	store domsession.Store,
	tokens TokenInspector,
	notifier notice.Notifier,
	logger *zap.Logger,
) *Service {
	if notifier == nil {
		notifier = notice.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gateway:  gateway,
		store:    store,
		tokens:   tokens,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

type LoginInput struct {
	Username string
	Password string
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*domsession.Session, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		s.notifier.Notify(notice.Notice{Level: notice.LevelWarning, Message: notice.MsgCredentials})
		return nil, notice.Shown(domsession.ErrInvalidCredential)
	}

	sess, err := s.gateway.Login(ctx, username, in.Password)
	if err != nil {
		s.logger.Warn("login failed", zap.String("username", username), zap.Error(err))
		if se, ok := backend.AsServerError(err, http.StatusBadRequest); ok {
			s.notifier.Notify(notice.Notice{Level: notice.LevelError, Message: se.Message})
			return nil, notice.Shown(errors.Join(domsession.ErrInvalidCredential, err))
		}
		if se, ok := backend.AsServerError(err, http.StatusUnauthorized); ok {
			s.notifier.Notify(notice.Notice{Level: notice.LevelError, Message: se.Message})
			return nil, notice.Shown(errors.Join(domsession.ErrInvalidCredential, err))
		}
		s.notifier.Notify(notice.Notice{Level: notice.LevelError, Message: notice.MsgBackendProblem})
		return nil, notice.Shown(err)
	}

	if claims, err := s.tokens.Inspect(sess.Token); err == nil {
		sess.ExpiresAt = claims.ExpiresAt
		if sess.Username == "" {
			sess.Username = claims.Username
		}
	} else {
		s.logger.Debug("token carries no readable claims", zap.Error(err))
	}
	if sess.Username == "" {
		sess.Username = username
	}

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("logged in", zap.String("username", sess.Username))
	s.notifier.Notify(notice.Notice{Level: notice.LevelSuccess, Message: notice.MsgLoggedIn})
	return sess, nil
}

// Logout forgets the token, the username and the balance together.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.notifier.Notify(notice.Notice{Level: notice.LevelInfo, Message: notice.MsgLoggedOut})
	return nil
}

// Current returns the stored session, or nil when nobody is logged in.
// An expired session is cleared and reported as nil.
func (s *Service) Current(ctx context.Context) (*domsession.Session, error) {
	sess, err := s.store.Load(ctx)
	if errors.Is(err, domsession.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !sess.LoggedIn() {
		return nil, nil
	}
	if sess.Expired(s.now()) {
		s.logger.Info("session expired", zap.String("username", sess.Username), zap.Time("expires_at", sess.ExpiresAt))
		s.notifier.Notify(notice.Notice{Level: notice.LevelWarning, Message: notice.MsgSessionExpired})
		if err := s.store.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return sess, nil
}

// Token is a convenience for callers that only need the bearer token.
func (s *Service) Token(ctx context.Context) string {
	sess, err := s.Current(ctx)
	if err != nil {
		s.logger.Warn("reading session", zap.Error(err))
		return ""
	}
	if sess == nil {
		return ""
	}
	return sess.Token
}
