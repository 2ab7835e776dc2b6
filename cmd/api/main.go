package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/vasapolrittideah/hostel-management-api/internal/config"
	"github.com/vasapolrittideah/hostel-management-api/internal/handler"
	"github.com/vasapolrittideah/hostel-management-api/internal/middleware"
	"github.com/vasapolrittideah/hostel-management-api/internal/repository"
	"github.com/vasapolrittideah/hostel-management-api/internal/usecase"
	"github.com/vasapolrittideah/hostel-management-api/shared/auth"
	"github.com/vasapolrittideah/hostel-management-api/shared/mailer"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.New(&logger)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping mongodb")
	}

	db := client.Database(cfg.MongoDatabase)

	accountRepo := repository.NewAccountMongoRepository(ctx, &logger, db)
	adminRepo := repository.NewAdminMongoRepository(db)
	staffRepo := repository.NewStaffMongoRepository(db)
	studentRepo := repository.NewStudentMongoRepository(db)
	otpRepo := repository.NewOTPMongoRepository(ctx, &logger, db, cfg.OTPExpiresIn)
	resetRepo := repository.NewPasswordResetMongoRepository(ctx, &logger, db)
	roomRepo := repository.NewRoomMongoRepository(ctx, &logger, db)
	complaintRepo := repository.NewComplaintMongoRepository(db)
	visitorRepo := repository.NewVisitorMongoRepository(db)

	mail := mailer.NewMailer(&logger)
	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTIssuer, cfg.JWTIssuer)

	authUsecase := usecase.NewAuthUsecase(accountRepo, otpRepo, jwtAuth, mail, cfg)
	resetUsecase := usecase.NewPasswordResetUsecase(accountRepo, resetRepo, mail, cfg)
	registration := usecase.NewRegistrationUsecase(adminRepo, staffRepo, studentRepo, mail, &logger)
	roomUsecase := usecase.NewRoomUsecase(roomRepo, studentRepo)
	feeUsecase := usecase.NewFeeUsecase(studentRepo, roomRepo)
	visitorUsecase := usecase.NewVisitorUsecase(visitorRepo, studentRepo)

	authenticator := middleware.NewAuthenticator(jwtAuth, cfg.JWTSecret, accountRepo)

	router := handler.NewRouter(handler.RouterConfig{
		Authenticator: authenticator,
		Auth:          handler.NewAuthHandler(authUsecase, &logger),
		PasswordReset: handler.NewPasswordResetHandler(resetUsecase, &logger),
		Admin:         handler.NewAdminHandler(registration, authUsecase, adminRepo, staffRepo, studentRepo, roomRepo, &logger),
		Warden:        handler.NewWardenHandler(registration, authUsecase, roomUsecase, studentRepo, roomRepo, complaintRepo, &logger),
		Security:      handler.NewSecurityHandler(registration, authUsecase, visitorUsecase, visitorRepo, studentRepo, &logger),
		Student:       handler.NewStudentHandler(registration, authUsecase, feeUsecase, studentRepo, roomRepo, complaintRepo, visitorRepo, &logger),
		Room:          handler.NewRoomHandler(roomRepo),
	})

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepExpired(sweepCtx, &logger, cfg.SweepInterval, otpRepo, resetRepo)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	logger.Info().Msg("server stopped")
}

// sweepExpired periodically removes logically expired OTP and reset
// records. The TTL indexes do the same work eventually; the sweep keeps
// the collections tight between TTL monitor passes.
func sweepExpired(
	ctx context.Context,
	logger *zerolog.Logger,
	interval time.Duration,
	otpRepo repository.OTPRepository,
	resetRepo repository.PasswordResetRepository,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if deleted, err := otpRepo.DeleteExpired(ctx); err != nil {
				logger.Error().Err(err).Msg("failed to sweep expired otp records")
			} else if deleted > 0 {
				logger.Debug().Int64("deleted", deleted).Msg("swept expired otp records")
			}

			if deleted, err := resetRepo.DeleteExpired(ctx); err != nil {
				logger.Error().Err(err).Msg("failed to sweep expired password reset records")
			} else if deleted > 0 {
				logger.Debug().Int64("deleted", deleted).Msg("swept expired password reset records")
			}
		}
	}
}
