// hospital/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"hospital/hospital/config"
	"hospital/hospital/controllers"
	"hospital/hospital/realtime"
	"hospital/hospital/routes"
	"hospital/hospital/scheduler"
	"hospital/hospital/sources/mail"
	"hospital/hospital/sources/psql"
	"hospital/hospital/sources/psql/dao"
	"hospital/hospital/sources/storage"
	"hospital/hospital/utils/logging"

	"go.uber.org/zap"
	"golang.org/x/net/netutil"
)

func fatal(msg string, err error) {
	logging.ErrorLogger.Error(msg, zap.Error(err))
	logging.Sync()
	os.Exit(1)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		os.Exit(1)
	}
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
		os.Exit(1)
	}
	defer logging.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := psql.MigrateUp(cfg.MigrationURL()); err != nil {
		fatal("migration error", err)
	}
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		fatal("database connection error", err)
	}
	defer db.Close()

	minioClient, err := storage.NewMinIOClient(ctx, cfg)
	if err != nil {
		fatal("minio connection error", err)
	}
	templates, err := mail.LoadTemplates()
	if err != nil {
		fatal("mail templates error", err)
	}
	notifier := mail.NewNotifier(mail.NewSender(cfg), templates)

	doctorDAO := dao.NewDoctorDAO(db.DB)
	patientDAO := dao.NewPatientDAO(db.DB)
	slotDAO := dao.NewSlotDAO(db.DB)
	consultationDAO := dao.NewConsultationDAO(db.DB)
	chatDAO := dao.NewChatDAO(db.DB)
	messageDAO := dao.NewMessageDAO(db.DB)

	chatCtrl := controllers.NewChatController(chatDAO, messageDAO, consultationDAO)
	gateway := realtime.NewGateway(chatCtrl, cfg.JWTSecret)

	deps := routes.Deps{
		Config:        cfg,
		Health:        controllers.NewHealthController(db.DB),
		Auth:          controllers.NewAuthController(doctorDAO, patientDAO, cfg),
		Doctors:       controllers.NewDoctorController(db.DB, doctorDAO, slotDAO, consultationDAO, minioClient),
		Patients:      controllers.NewPatientController(db.DB, doctorDAO, slotDAO, consultationDAO, minioClient, cfg.ImageMaxBytes, cfg.ImageMaxCount),
		Consultations: controllers.NewConsultationController(db.DB, consultationDAO, slotDAO, notifier),
		Chats:         chatCtrl,
		Gateway:       gateway,
	}
	if cfg.SocketIOEnabled {
		sio := gateway.NewSocketIOServer()
		defer sio.Close(nil)
		deps.SocketIO = sio.ServeHandler(nil)
	}

	if cfg.SlotSweepSchedule != "" {
		loc, err := cfg.SlotLocation()
		if err != nil {
			fatal("slot sweeper error", err)
		}
		sweeper := scheduler.NewSlotSweeper(slotDAO, loc)
		if err := sweeper.Start(cfg.SlotSweepSchedule); err != nil {
			fatal("slot sweeper error", err)
		}
		defer sweeper.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	l, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		fatal("listen error", err)
	}
	l = netutil.LimitListener(l, cfg.MaxConnections)

	go func() {
		logging.AppLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorLogger.Error("server listen error", zap.Error(err))
		}
	}()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	// sockets are hijacked, so Shutdown does not wait for them
	gateway.Close()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.ErrorLogger.Error("server shutdown error", zap.Error(err))
	}
	logging.AppLogger.Info("server shutdown complete")
}
