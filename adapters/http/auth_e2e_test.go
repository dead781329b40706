package http

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/devlink/devlink/adapters/persistence"
	authUC "github.com/devlink/devlink/internal/application/usecase/auth"
	profileUC "github.com/devlink/devlink/internal/application/usecase/profile"
	"github.com/devlink/devlink/internal/config"
	"github.com/devlink/devlink/pkg/auth"
	"github.com/devlink/devlink/pkg/logger"
)

type AuthE2ETestSuite struct {
	suite.Suite
	Router    *gin.Engine
	dbPool    *pgxpool.Pool
	testEmail string
	testPass  string
}

func (s *AuthE2ETestSuite) SetupSuite() {

	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.dbPool = dbPool

	appLogger := logger.NewNop()

	s.testEmail = "e2e_" + uuid.NewString()[:8] + "@example.com"
	s.testPass = "e2e_test_password_123"

	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)
	accounts := persistence.NewAccountRemover(dbPool)

	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, accounts, nil, nil, appLogger)

	gin.SetMode(gin.TestMode)
	s.Router = NewRouter(
		NewAuthHandler(registerUseCase, loginUseCase),
		NewProfileHandler(profileUseCase),
		AuthMiddleware(jwtSvc),
		appLogger,
	)
}

func (s *AuthE2ETestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}

func TestAuthE2E(t *testing.T) {

	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) Test_Register_Login_Profile_Flow() {
	srv := &testServer{router: s.Router}
	t := s.T()

	token := srv.register(t, "E2E User", s.testEmail, s.testPass)
	assert.NotEmpty(t, token)

	rrBad := srv.do(t, "POST", "/api/users/login", "", gin.H{
		"email": s.testEmail, "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, rrBad.Code)

	rrGood := srv.do(t, "POST", "/api/users/login", "", gin.H{
		"email": s.testEmail, "password": s.testPass,
	})
	assert.Equal(t, http.StatusOK, rrGood.Code)

	rrProfile := srv.do(t, "POST", "/api/profile", token, gin.H{
		"status": "Developer", "skills": "js,node",
	})
	assert.Equal(t, http.StatusOK, rrProfile.Code)

	rrNoAuth := srv.do(t, "GET", "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rrNoAuth.Code)

	// leave no residue behind
	rrDel := srv.do(t, "DELETE", "/api/profile", token, nil)
	assert.Equal(t, http.StatusOK, rrDel.Code)
}
