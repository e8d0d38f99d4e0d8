package main

import (
	"context"
	"fmt"

	"movie_backend/internal/global"
	"movie_backend/internal/logger"
	"movie_backend/internal/worker"

	"github.com/gofiber/fiber/v3"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	address := global.ServerConfig.Address

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Khởi tạo dữ liệu mặc định
	InitDefaultData()

	// Dựng engine đồng bộ và runner
	runner := InitSyncRunner()

	log := logger.GetAppLogger()

	// Chạy scheduler worker trong goroutine riêng với recover
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler := worker.NewSyncSchedulerWorker(global.ServerConfig, runner)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("⏰ [SCHEDULER] Scheduler goroutine panic")
			}
		}()

		if err := scheduler.Start(ctx); err != nil {
			log.WithError(err).Error("⏰ [SCHEDULER] Scheduler worker dừng vì lỗi")
		}
	}()

	// Chạy Fiber server trên main thread
	app := InitFiberApp(runner)
	main_thread(app)
}
