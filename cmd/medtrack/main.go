package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	adapthttp "medtrack/internal/adapter/http"
	"medtrack/internal/adapter/memory"
	"medtrack/internal/adapter/postgres"
	"medtrack/internal/app"
	"medtrack/internal/domain"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	addr := env("ADDR", ":8080")
	webDir := env("WEB_DIR", "web")

	var (
		medRepo     domain.MedicationRepository
		remRepo     domain.ReminderRepository
		vitRepo     domain.VitalRepository
		apptRepo    domain.AppointmentRepository
		userRepo    domain.UserRepository
		sessionRepo domain.SessionRepository
	)

	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		db, err := postgres.Open(connStr)
		if err != nil {
			log.Fatalf("db open: %v", err)
		}
		defer func() { _ = db.Close() }()

		medRepo, remRepo, vitRepo, apptRepo, userRepo = db, db, db, db, db
		sessionRepo = postgres.NewSessionRepo(db)
	} else {
		log.Println("DATABASE_URL not set; using in-memory store")
		db := memory.New()
		medRepo, remRepo, vitRepo, apptRepo, userRepo = db, db, db, db, db
		sessionRepo = db.NewSessionRepo()
	}

	medSvc := app.NewMedicationService(medRepo)
	remSvc := app.NewReminderService(remRepo)
	vitSvc := app.NewVitalService(vitRepo)
	apptSvc := app.NewAppointmentService(apptRepo)
	authSvc := app.NewAuthService(userRepo, sessionRepo)

	srv := adapthttp.New(medSvc, remSvc, vitSvc, apptSvc, authSvc, webDir)

	if os.Getenv("DISABLE_AUTH") == "1" {
		log.Println("auth disabled")
		srv = srv.WithoutAuth()
	}

	if issuer := os.Getenv("OIDC_ISSUER"); issuer != "" {
		provider, err := oidc.NewProvider(context.Background(), issuer)
		if err != nil {
			log.Fatalf("oidc provider: %v", err)
		}
		srv = srv.WithOIDC(adapthttp.OIDCConfig{
			Enabled:  true,
			Provider: provider,
			OAuth2Config: &oauth2.Config{
				ClientID:     os.Getenv("OIDC_CLIENT_ID"),
				ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
				RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
				Endpoint:     provider.Endpoint(),
				Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
			},
		})
	}

	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
