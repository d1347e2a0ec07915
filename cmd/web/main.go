package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/config"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	appHTTP "github.com/cmlabs-hris/hrms-lite/internal/handler/http"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/cron"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/datetime"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/logger"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite/internal/repository/restapi"
	attendanceService "github.com/cmlabs-hris/hrms-lite/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hrms-lite/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/hrms-lite/internal/service/employee"
	notificationService "github.com/cmlabs-hris/hrms-lite/internal/service/notification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	client := apiclient.NewClient(cfg.API, log)
	probe := cron.NewBackendProbe(client, log)
	probeCtx, cancelProbe := context.WithTimeout(ctx, 3*time.Second)
	_ = probe.Run(probeCtx)
	cancelProbe()

	employeeRepo := restapi.NewEmployeeRepository(client)
	attendanceRepo := restapi.NewAttendanceRepository(client)

	hub := sse.NewHub(16)
	notifSvc := notificationService.NewNotificationService(hub, log, notificationService.Config{})

	dashboardSvc := dashboardService.NewDashboardService(employeeRepo, attendanceRepo, datetime.SystemClock, log)
	attendanceSvc := attendanceService.NewPageService(employeeRepo, attendanceRepo, notifSvc, datetime.SystemClock, log,
		attendanceService.OnMarked(func(attendance.Attendance) {
			dashboardSvc.Invalidate()
		}),
	)
	employeeListSvc := employeeService.NewListPageService(employeeRepo, notifSvc, log,
		employeeService.OnDeleted(func(employee.Employee) {
			dashboardSvc.Invalidate()
			attendanceSvc.Invalidate()
		}),
	)
	employeeAddSvc := employeeService.NewAddPageService(employeeRepo, notifSvc, log,
		employeeService.OnCreated(func(employee.Employee) {
			employeeListSvc.Invalidate()
			dashboardSvc.Invalidate()
			attendanceSvc.Invalidate()
		}),
	)

	scheduler := cron.NewScheduler(log)
	scheduler.AddJob("day-rollover", time.Minute, cron.NewDayRollover(datetime.SystemClock, dashboardSvc, attendanceSvc).Run)
	scheduler.AddJob("backend-health", cfg.API.HealthInterval, probe.Run)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc, log)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeListSvc, employeeAddSvc, log)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, log)
	notificationHandler := appHTTP.NewNotificationHandler(notifSvc, log)

	router := appHTTP.NewRouter(cfg, log, dashboardHandler, employeeHandler, attendanceHandler, notificationHandler)

	// WriteTimeout stays zero so the notification stream is not cut off.
	// Request contexts derive from ctx, which ends open streams on shutdown.
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			slog.String("addr", cfg.Addr()),
			slog.String("api_base_url", client.BaseURL()),
		)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
