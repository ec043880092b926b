package main

// @title           Society Core API
// @version         1.0
// @description     Backend for residential-society management: Google account linking, Drive document workflows and society/unit administration.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Format: "Bearer {token}"

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"

	authadapter "github.com/harshal-solutionplanets/society-core/internal/adapters/driven/auth"
	"github.com/harshal-solutionplanets/society-core/internal/adapters/driven/firebase"
	"github.com/harshal-solutionplanets/society-core/internal/adapters/driven/google"
	"github.com/harshal-solutionplanets/society-core/internal/adapters/driven/mail"
	"github.com/harshal-solutionplanets/society-core/internal/adapters/driven/postgres"
	redisadapter "github.com/harshal-solutionplanets/society-core/internal/adapters/driven/redis"
	httpserver "github.com/harshal-solutionplanets/society-core/internal/adapters/driving/http"
	"github.com/harshal-solutionplanets/society-core/internal/config"
	"github.com/harshal-solutionplanets/society-core/internal/core/services"
)

var version = "dev"

func main() {
	log.Printf("society-core %s starting", version)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	// ===== PostgreSQL =====
	log.Println("Connecting to PostgreSQL...")
	db, err := postgres.Connect(ctx, postgres.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize schema (idempotent)
	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	log.Println("PostgreSQL connected and schema initialized")

	// ===== Redis =====
	log.Println("Connecting to Redis...")
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	// ===== Driven adapters =====
	authAdapter := authadapter.NewAdapter(cfg.JWTSecret)

	cipher, err := postgres.NewTokenCipher([]byte(cfg.TokenEncryptionKey))
	if err != nil {
		log.Fatalf("Failed to initialize token cipher: %v", err)
	}

	societyStore := postgres.NewSocietyStore(db)
	secureTokenStore := postgres.NewSecureTokenStore(db, cipher)
	unitStore := postgres.NewUnitStore(db)
	staffStore := postgres.NewStaffStore(db)

	oauthStateStore := redisadapter.NewOAuthStateStore(redisClient)
	pendingSetupStore := redisadapter.NewPendingSetupStore(redisClient)
	otpStore := redisadapter.NewOTPStore(redisClient)

	brokerConfig := google.OAuthBrokerConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.RedirectURL(),
	}
	oauthBroker := google.NewOAuthBroker(brokerConfig)
	driveFactory := google.NewDriveClientFactory(brokerConfig)

	identityProvider, err := firebase.NewIdentityProvider(ctx, firebase.IdentityProviderConfig{
		ProjectID:       cfg.FirebaseProjectID,
		CredentialsFile: cfg.FirebaseCredentialsFile,
	})
	if err != nil {
		log.Fatalf("Failed to initialize identity provider: %v", err)
	}

	mailer := mail.NewSendGridMailer(mail.SendGridMailerConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromName:  cfg.MailFromName,
		FromEmail: cfg.MailFromEmail,
	})

	// ===== Core services =====
	authService := services.NewAuthService(authAdapter)

	oauthService := services.NewOAuthService(services.OAuthServiceConfig{
		OAuthStateStore:    oauthStateStore,
		PendingSetupStore:  pendingSetupStore,
		SocietyStore:       societyStore,
		SecureTokenStore:   secureTokenStore,
		Broker:             oauthBroker,
		Auth:               authAdapter,
		AllowedEmailDomain: cfg.AllowedEmailDomain,
	})

	setupService := services.NewSetupService(services.SetupServiceConfig{
		PendingSetupStore: pendingSetupStore,
		SocietyStore:      societyStore,
		SecureTokenStore:  secureTokenStore,
		Identity:          identityProvider,
		DriveFactory:      driveFactory,
		Auth:              authAdapter,
	})

	driveService := services.NewDriveService(services.DriveServiceConfig{
		SecureTokenStore: secureTokenStore,
		DriveFactory:     driveFactory,
		StaffStore:       staffStore,
	})

	passwordService := services.NewPasswordService(services.PasswordServiceConfig{
		SocietyStore: societyStore,
		OTPStore:     otpStore,
		Identity:     identityProvider,
		Mailer:       mailer,
	})

	societyService := services.NewSocietyService(services.SocietyServiceConfig{
		SocietyStore: societyStore,
		UnitStore:    unitStore,
		StaffStore:   staffStore,
		Auth:         authAdapter,
	})

	// ===== HTTP server =====
	server := httpserver.NewServer(
		httpserver.Config{
			Host:           cfg.Host,
			Port:           cfg.Port,
			Version:        version,
			AllowedOrigins: cfg.AllowedOrigins,
		},
		authService,
		oauthService,
		setupService,
		driveService,
		passwordService,
		societyService,
		db,
		redisPinger{redisClient},
	)

	log.Printf("API server starting on :%d", cfg.Port)
	if err := server.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// redisPinger adapts the go-redis client to the server's health interface.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
