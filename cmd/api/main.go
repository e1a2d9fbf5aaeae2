package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/coffeetree-vn/attendance-sync-go/internal/config"
	appHTTP "github.com/coffeetree-vn/attendance-sync-go/internal/handler/http"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/cron"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/database"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/jwt"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/metrics"
	"github.com/coffeetree-vn/attendance-sync-go/internal/pkg/zkteco"
	"github.com/coffeetree-vn/attendance-sync-go/internal/repository/postgresql"
	attendanceService "github.com/coffeetree-vn/attendance-sync-go/internal/service/attendance"
	deviceService "github.com/coffeetree-vn/attendance-sync-go/internal/service/device"
	"github.com/coffeetree-vn/attendance-sync-go/internal/service/punchsync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	deviceRepo := postgresql.NewDeviceRepository(db)
	syncRunRepo := postgresql.NewSyncRunRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	dialer := zkteco.NewDialer()
	m := metrics.New()

	deviceSvc := deviceService.NewDeviceService(
		deviceRepo,
		syncRunRepo,
		dialer,
		cfg.Sync.Timezone,
		cfg.Device.DialTimeout,
	)
	syncSvc := punchsync.NewSyncService(
		deviceRepo,
		syncRunRepo,
		employeeRepo,
		attendanceRepo,
		deviceSvc,
		dialer,
		m,
		cfg.Sync,
		cfg.Device.DialTimeout,
	)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo)

	authHandler := appHTTP.NewAuthHandler(cfg.Admin, jwtService)
	deviceHandler := appHTTP.NewDeviceHandler(deviceSvc)
	syncHandler := appHTTP.NewSyncHandler(syncSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		jwtService,
		m,
		authHandler,
		deviceHandler,
		syncHandler,
		attendanceHandler,
	)

	scheduler := cron.NewScheduler()
	if cfg.Sync.AutoEnabled {
		syncJobs := cron.NewSyncJobs(deviceRepo, syncSvc, cfg.Sync)
		syncJobs.RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
			stop <- syscall.SIGTERM
		}
	}()

	<-stop
	_ = server.Close()
}
