package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/MikeMC777/mealmoment/internal/config"
	"github.com/MikeMC777/mealmoment/internal/logging"
	"github.com/MikeMC777/mealmoment/internal/payment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("payment-service", "info", "console")
		log.Fatal().Err(err).Msg("config")
	}
	logging.Setup("payment-service", cfg.LogLevel, cfg.LogFormat)

	lis, err := net.Listen("tcp", cfg.PaymentSvcAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.PaymentSvcAddr).Msg("listen")
	}

	srv := grpc.NewServer(grpc.UnaryInterceptor(accessLog))
	payment.RegisterServer(srv, payment.Simulated{})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(cfg.ShutdownTimeout):
			srv.Stop()
		}
	}()

	log.Info().Str("addr", cfg.PaymentSvcAddr).Msg("payment-service listening")
	if err := srv.Serve(lis); err != nil {
		log.Fatal().Err(err).Msg("serve")
	}
}

func accessLog(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("dur", time.Since(start)).
		Msg("grpc")
	return resp, err
}
