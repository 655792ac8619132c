package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/smartbrain/smartbrain-api/pkg/account"
	accountapi "github.com/smartbrain/smartbrain-api/pkg/account/api"
	"github.com/smartbrain/smartbrain-api/pkg/config"
	"github.com/smartbrain/smartbrain-api/pkg/detect"
	detectapi "github.com/smartbrain/smartbrain-api/pkg/detect/api"
	"github.com/smartbrain/smartbrain-api/pkg/login"
	loginapi "github.com/smartbrain/smartbrain-api/pkg/login/api"
	"github.com/smartbrain/smartbrain-api/pkg/router"
	"github.com/smartbrain/smartbrain-api/pkg/signup"
	signupapi "github.com/smartbrain/smartbrain-api/pkg/signup/api"
	"github.com/smartbrain/smartbrain-api/pkg/twofa"
	twofaapi "github.com/smartbrain/smartbrain-api/pkg/twofa/api"
)

// Config aggregates all service configuration, read from the environment
type Config struct {
	App      config.AppConfig
	Database config.DatabaseConfig
	Password config.PasswordComplexityConfig
	Clarifai config.ClarifaiConfig
	TwoFa    config.TwoFaConfig
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
	}))
	slog.SetDefault(logger)

	// Load .env file when present; real environments set variables directly
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env file")
	}

	cfg := Config{}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to read configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.ToDatabaseURL())
	if err != nil {
		slog.Error("Failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("Failed to connect to database", "host", cfg.Database.Host, "database", cfg.Database.Database, "error", err)
		os.Exit(1)
	}

	repository := account.NewPostgresAccountRepository(pool)

	hasher := &login.BcryptHasher{}
	policyChecker := login.NewDefaultPasswordPolicyChecker(cfg.Password.ToPasswordPolicy(), nil)

	accountService := account.NewAccountService(repository)
	loginService := login.NewLoginService(repository, hasher)
	signupService := signup.NewSignupService(repository,
		signup.WithPasswordHasher(hasher),
		signup.WithPolicyChecker(policyChecker),
	)
	twoFaService := twofa.NewTwoFaService(repository, cfg.TwoFa.Issuer, cfg.TwoFa.QRCodeSize)
	detectService := detect.NewDetectService(repository, detect.NewClarifaiClient(cfg.Clarifai, nil))

	accountHandle := accountapi.NewHandle(accountService)
	loginHandle := loginapi.NewHandle(loginService)
	signupHandle := signupapi.NewHandle(signupService)
	twoFaHandle := twofaapi.NewHandle(twoFaService)
	detectHandle := detectapi.NewHandle(detectService)

	r := router.SetupRoutes(router.Handlers{
		Signin:       loginHandle.Signin,
		Register:     signupHandle.Register,
		GetProfile:   accountHandle.GetProfile,
		UpdateImage:  detectHandle.UpdateImage,
		DetectFaces:  detectHandle.DetectFaces,
		Enable2FA:    twoFaHandle.Enable2FA,
		VerifySetup:  twoFaHandle.VerifySetup,
		VerifySignin: twoFaHandle.VerifySignin,
	})

	addr := cfg.App.Addr()
	slog.Info("Starting Smart Brain backend", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
