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

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/coworkly/booking-core/internal/clock"
	"github.com/coworkly/booking-core/internal/config"
	"github.com/coworkly/booking-core/internal/db"
	"github.com/coworkly/booking-core/internal/model"
	"github.com/coworkly/booking-core/internal/notify"
	"github.com/coworkly/booking-core/internal/repository"
	"github.com/coworkly/booking-core/internal/service"
	transporthttp "github.com/coworkly/booking-core/internal/transport/http"
)

func main() {
	// 1. .env подхватывается, если есть; иначе работаем с окружением.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("load db config: %v", err)
	}
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	// 2. Подключаемся к БД через GORM.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	// 3. Миграции моделей.
	if err := model.AutoMigrate(gormDB); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("sql DB: %v", err)
	}
	defer sqlDB.Close()

	// 4. Репозитории (реализации на GORM).
	zoneRepo := repository.NewGormZoneRepository(gormDB)
	placeRepo := repository.NewGormPlaceRepository(gormDB)
	slotRepo := repository.NewGormSlotRepository(gormDB)
	bookingRepo := repository.NewGormBookingRepository(gormDB)

	// 5. Нотификатор: без AMQP_URL события остаются только в outbox.
	var notifier notify.Notifier = notify.NopNotifier{}
	if appCfg.AMQPURL != "" {
		notifier = notify.NewAMQPNotifier(appCfg.AMQPURL)
	}

	clk := clock.NewSystem()
	bookingSvc := service.NewBookingService(gormDB, appCfg, clk, notifier, bookingRepo)
	zoneSvc := service.NewZoneService(gormDB, clk, notifier, zoneRepo, placeRepo, slotRepo)

	// 6. HTTP-адаптер для гейтвея.
	e := echo.New()
	e.HideBanner = true
	transporthttp.RegisterRoutes(
		e,
		transporthttp.NewBookingHandler(bookingSvc),
		transporthttp.NewZoneHandler(zoneSvc),
	)

	log.Printf("booking core listening on %s", appCfg.HTTPAddr)

	// 7. Запускаем сервер в горутине.
	go func() {
		if err := e.Start(appCfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	// 8. Грейсфул-шатдаун по сигналу.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down http server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
