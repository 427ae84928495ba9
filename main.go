package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"medcenter/config"
	_ "medcenter/docs"
	"medcenter/internal/cache"
	"medcenter/internal/repository"
	"medcenter/internal/service"
	"medcenter/internal/storage"
	"medcenter/internal/transport/rest"
	"medcenter/pkg/database"
	"medcenter/pkg/email"
	"medcenter/pkg/logger"
)

// @title Medcenter API
// @version 1.0
// @description API регистратуры: больницы, врачи, пациенты, расписания и запись на прием

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.Name)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, загрузка фото будет недоступна")
	}

	var slotCache *cache.SlotCache
	if cfg.Redis.Addr != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
		}
		defer redisClient.Close()
		slotCache = cache.NewSlotCache(redisClient, cfg.Redis.SlotTTL, log)
		log.Info("Кэш слотов инициализирован", zap.String("addr", cfg.Redis.Addr))
	} else {
		log.Warn("Redis не настроен, кэширование слотов отключено")
	}

	mailer := email.NewSender(cfg.SMTP)
	if !mailer.Enabled() {
		log.Warn("SMTP не настроен, письма отправляться не будут")
	}

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		SlotCache:   slotCache,
		Mailer:      mailer,
	})

	var scheduler *cron.Cron
	if cfg.Reminder.Enabled && mailer.Enabled() {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Reminder.Schedule, func() {
			services.Reminder.SendReminders(context.Background())
		})
		if err != nil {
			log.Fatal("Некорректное расписание напоминаний", zap.Error(err))
		}
		scheduler.Start()
		log.Info("Планировщик напоминаний запущен", zap.String("schedule", cfg.Reminder.Schedule))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := rest.NewHandler(services, log, cfg)

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Выключение сервера...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Ошибка при остановке сервера", zap.Error(err))
	}

	log.Info("Сервер успешно остановлен")
}
