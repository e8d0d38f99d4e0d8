package main

import (
	"context"

	"movie_backend/config"
	"movie_backend/internal/database"
	"movie_backend/internal/global"

	"github.com/sirupsen/logrus"
)

// InitGlobal khởi tạo các biến toàn cục theo thứ tự phụ thuộc
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database và index
}

// initColNames khởi tạo tên các collection trong database
func initColNames() {
	global.InitColNames()
	logrus.Info("Initialized collection names")
}

// initValidator khởi tạo validator (đăng ký custom validators: no_xss, media_type, language_tag, exists)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB khởi tạo kết nối database và tạo index cho các collection catalog
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateCatalogIndexes(context.TODO(), db); err != nil {
		logrus.Fatalf("Failed to create catalog indexes: %v", err)
	}
	logrus.Info("Created catalog indexes")
}
