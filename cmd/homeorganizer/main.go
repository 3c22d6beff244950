package main

import (
	"context"
	"errors"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"home-organizer/internal/api"
	"home-organizer/internal/bot"
	"home-organizer/internal/config"
	"home-organizer/internal/repository"
	"home-organizer/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	personRepo := repository.NewPersonRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	instanceRepo := repository.NewInstanceRepository(db)

	plannerSvc := service.NewPlannerService(taskRepo, personRepo, instanceRepo)
	taskSvc := service.NewTaskService(taskRepo, personRepo, instanceRepo)
	reminderSvc := service.NewReminderService(plannerSvc)

	handlers := api.NewHandlers(plannerSvc, taskSvc, personRepo, cfg.WebhookSecret)
	server := api.NewServer(net.JoinHostPort("", cfg.Port), handlers)

	if cfg.TelegramToken != "" {
		telegramBot, err := bot.New(cfg.TelegramToken, personRepo, taskSvc, reminderSvc)
		if err != nil {
			log.Fatalf("bot: %v", err)
		}
		go func() {
			if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("bot stopped with error: %v", err)
			}
		}()

		if cfg.DigestChatID != 0 {
			scheduler := service.NewSchedulerService(time.Local)
			if _, err := scheduler.ScheduleDaily(cfg.DigestTime, func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := telegramBot.SendDigest(jobCtx, cfg.DigestChatID); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("digest: %v", err)
				}
			}); err != nil {
				log.Fatalf("schedule digest: %v", err)
			}
			scheduler.Start()
			defer scheduler.Stop()
		}
	}

	log.Println("Home organizer started.")
	if err := server.Start(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
