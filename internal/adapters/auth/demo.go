package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"kingrun/internal/domain/user"
)

// DefaultLatency is the simulated round trip of the demo backend.
const DefaultLatency = time.Second

// ProfileSource supplies the canned profile returned on login.
type ProfileSource interface {
	DemoUser(ctx context.Context) user.User
}

// DemoBackend accepts any well-formed credentials and synthesizes users locally.
// It stands in for a real authentication service.
type DemoBackend struct {
	profiles ProfileSource
	latency  time.Duration
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// NewDemoBackend creates a DemoBackend. A negative latency is treated as zero.
// PRE: profiles is non-nil
// POST: Returns a backend that sleeps latency on every call
func NewDemoBackend(profiles ProfileSource, latency time.Duration) *DemoBackend {
	if latency < 0 {
		latency = 0
	}
	return &DemoBackend{
		profiles: profiles,
		latency:  latency,
		validate: validator.New(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Login returns the demo profile carrying the supplied email.
// PRE: none
// POST: Returns user.ErrInvalidCredentials when email is blank or password is short
func (b *DemoBackend) Login(ctx context.Context, c Credentials) (user.User, error) {
	if err := b.wait(ctx); err != nil {
		return user.User{}, err
	}
	if err := b.validate.Struct(c); err != nil {
		slog.Debug("auth_validation_failed", "op", "login", "error", err)
		return user.User{}, user.ErrInvalidCredentials
	}
	u := b.profiles.DemoUser(ctx)
	u.Email = c.Email
	return u, nil
}

// Register creates a fresh runner with zero counters.
// PRE: none
// POST: Returns user.ErrInvalidRegistration when any field is blank or password is short
func (b *DemoBackend) Register(ctx context.Context, r Registration) (user.User, error) {
	if err := b.wait(ctx); err != nil {
		return user.User{}, err
	}
	if err := b.validate.Struct(r); err != nil {
		slog.Debug("auth_validation_failed", "op", "register", "error", err)
		return user.User{}, user.ErrInvalidRegistration
	}
	return user.User{
		ID:        b.newID(),
		Name:      r.Name,
		Email:     r.Email,
		Avatar:    user.AvatarFor(r.Name),
		CreatedAt: b.now().UTC(),
	}, nil
}

func (b *DemoBackend) wait(ctx context.Context) error {
	if b.latency == 0 {
		return nil
	}
	t := time.NewTimer(b.latency)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("auth backend: %w", ctx.Err())
	}
}
