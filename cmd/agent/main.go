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
	"github.com/rs/zerolog/log"

	router "github.com/spherecorp-kr/drcall-callcore/internal/adapters/http"
	"github.com/spherecorp-kr/drcall-callcore/internal/adapters/media"
	"github.com/spherecorp-kr/drcall-callcore/internal/adapters/room"
	"github.com/spherecorp-kr/drcall-callcore/internal/adapters/session"
	"github.com/spherecorp-kr/drcall-callcore/internal/app/orch"
	"github.com/spherecorp-kr/drcall-callcore/internal/config"
	"github.com/spherecorp-kr/drcall-callcore/internal/domain"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	ctrl := orch.New(
		session.NewClient(cfg.SessionAPIURL),
		room.NewProvider(cfg.SignalingURL),
		media.NewDevice(),
		orch.Config{
			Identity: domain.Identity{
				UserID:   cfg.UserID,
				UserType: domain.ParseUserType(cfg.UserID),
			},
			AppointmentID: cfg.AppointmentID,
			PatientID:     cfg.PatientID,
			DoctorID:      cfg.DoctorID,
			OnRoomError: func(err error) {
				// The call stays up; the operator decides whether to end it.
				log.Warn().Err(err).Msg("room reported an error")
			},
		},
	)

	r := router.SetupRouter(ctx, cfg, ctrl)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("call agent started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	// An in-flight call must not leak its camera or room on shutdown.
	ctrl.EndCall(shutdownCtx)

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
