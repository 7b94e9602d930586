package api

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/scheduler"
	"github.com/phrazzld/scry-study/internal/service"
	"github.com/phrazzld/scry-study/internal/service/auth"
	"github.com/phrazzld/scry-study/internal/service/study"
)

type MockStudyService struct {
	mock.Mock
}

var _ study.Service = (*MockStudyService)(nil)

func (m *MockStudyService) Decks() []study.DeckInfo {
	args := m.Called()
	return args.Get(0).([]study.DeckInfo)
}

func (m *MockStudyService) Start(ctx context.Context, userID uuid.UUID, req study.StartRequest) (*study.SessionView, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*study.SessionView), args.Error(1)
}

func (m *MockStudyService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*study.SessionView, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*study.SessionView), args.Error(1)
}

func (m *MockStudyService) Answer(ctx context.Context, userID, sessionID uuid.UUID, grade domain.Grade) (*study.AnswerResult, error) {
	args := m.Called(ctx, userID, sessionID, grade)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*study.AnswerResult), args.Error(1)
}

func (m *MockStudyService) Intervals(ctx context.Context, userID, sessionID uuid.UUID) (*study.Intervals, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*study.Intervals), args.Error(1)
}

func (m *MockStudyService) End(ctx context.Context, userID, sessionID uuid.UUID) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *MockStudyService) Summary(
	ctx context.Context,
	userID uuid.UUID,
	deck, direction string,
	filters url.Values,
) (*scheduler.Summary, error) {
	args := m.Called(ctx, userID, deck, direction, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduler.Summary), args.Error(1)
}

func (m *MockStudyService) GetSettings(ctx context.Context, userID uuid.UUID, deck string) (domain.Settings, error) {
	args := m.Called(ctx, userID, deck)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockStudyService) PutSettings(
	ctx context.Context,
	userID uuid.UUID,
	deck string,
	settings domain.Settings,
) (domain.Settings, error) {
	args := m.Called(ctx, userID, deck, settings)
	return args.Get(0).(domain.Settings), args.Error(1)
}

func (m *MockStudyService) SweepIdle(ctx context.Context) int {
	return m.Called(ctx).Int(0)
}

type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// stubJWT accepts "token-<uuid>" and issues the same form.
type stubJWT struct{}

var _ auth.JWTService = stubJWT{}

func (stubJWT) GenerateToken(_ context.Context, userID uuid.UUID) (string, error) {
	return "token-" + userID.String(), nil
}

func (stubJWT) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return nil, auth.ErrInvalidToken
	}
	id, err := uuid.Parse(token[len(prefix):])
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{UserID: id, TokenType: "access", ExpiresAt: time.Now().Add(time.Hour)}, nil
}
