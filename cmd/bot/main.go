package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Cratosart/Badzi/internal/adapter/httpapi"
	telegramAdapter "github.com/Cratosart/Badzi/internal/adapter/telegram"
	"github.com/Cratosart/Badzi/internal/config"
	"github.com/Cratosart/Badzi/internal/infra/memory"
	"github.com/Cratosart/Badzi/internal/logger"
	"github.com/Cratosart/Badzi/internal/usecase"
)

type liveStats struct {
	leads     *memory.LeadStore
	scheduler *usecase.AbandonScheduler
}

func (s liveStats) PendingLeads() int { return s.leads.Len() }
func (s liveStats) ArmedTimers() int  { return s.scheduler.Pending() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	lg := logger.New(cfg.LogFilePath, cfg.IsProduction())
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Ошибка создания бота: %v", err)
	}
	bot.Debug = cfg.BotDebug
	lg.Info("authorized", zap.String("bot", bot.Self.UserName))

	leads := memory.NewLeadStore()
	sessions := memory.NewSessionRepo(cfg.SessionTTL)
	sender := telegramAdapter.NewSender(bot)
	notifier := usecase.NewNotifier(sender, cfg.AdminChatID, lg.Named("notifier"))
	scheduler := usecase.NewAbandonScheduler(leads, notifier, cfg.AbandonTimeout, lg.Named("abandon"))
	defer scheduler.Stop()

	signup := usecase.NewSignup(leads, sessions, scheduler, notifier, lg.Named("signup"))
	handler := telegramAdapter.NewHandler(bot, usecase.NewRouter(signup), cfg.UpdateWorkers, lg.Named("telegram"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(liveStats{leads: leads, scheduler: scheduler}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		// health-эндпоинт не должен ронять бота
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("health server failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		defer stop()
		return handler.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		lg.Error("bot stopped with error", zap.Error(err))
	}
	lg.Info("bot stopped")
}
