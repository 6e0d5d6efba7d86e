package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "medmatch-backend/internal/adapter/http"
	mw "medmatch-backend/internal/adapter/middleware"
	"medmatch-backend/internal/adapter/notifier"
	"medmatch-backend/internal/adapter/repository/mysql"
	"medmatch-backend/internal/config"
	"medmatch-backend/internal/infrastructure/cache"
	"medmatch-backend/internal/infrastructure/db"
	appuc "medmatch-backend/internal/usecase/application"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	apps := mysql.NewApplicationRepository(gdb)
	jobs := mysql.NewJobRepository(gdb)
	hospitals := mysql.NewHospitalRepository(gdb)
	tx := mysql.NewGormUoW(gdb)
	dispatcher := notifier.NewRedisDispatcher(rdb, cfg.NotifyChannel)

	uc := appuc.NewUsecase(tx, apps, jobs, hospitals, dispatcher)

	h := httpadp.NewHandler()
	ah := httpadp.NewApplicationHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idempTTL := time.Duration(cfg.IdempTTLSecs) * time.Second
	doctorIdemp := mw.Idempotency(rdb, "X-Doctor-Id", idempTTL)
	hospitalIdemp := mw.Idempotency(rdb, "X-Hospital-Id", idempTTL)

	e.GET("/health", h.Health)
	e.POST("/jobs/:job_id/applications", ah.Create, doctorIdemp)
	e.POST("/applications/:application_id/withdraw", ah.Withdraw, doctorIdemp)
	e.PATCH("/applications/:application_id/status", ah.Review, hospitalIdemp)
	e.GET("/applications/:application_id", ah.Get)
	e.GET("/applications", ah.List)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
