package main

import (
	"context"
	"crypto/tls"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v3"

	"portfolio_api/internal/global"
	"portfolio_api/internal/logger"
	"portfolio_api/internal/worker"
)

// initLogger khởi tạo hệ thống logging tập trung
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic("Không thể khởi tạo hệ thống logging: " + err.Error())
	}

	log := logger.GetAppLogger()
	log.Info("Hệ thống logging đã được khởi tạo thành công")
}

// main là hàm chính của ứng dụng
func main() {
	initLogger()
	log := logger.GetAppLogger()

	InitGlobal()      // các thành phần toàn cục (validator, config, storage)
	InitDefaultData() // file sections.json + các thư mục asset

	// Khởi động worker dọn asset mồ côi (chạy ngầm, không chặn main thread)
	if global.ServerConfig.OrphanSweep_Enabled {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("🔄 [ORPHAN_CLEANUP] Worker panic: %v", r)
				}
			}()

			interval := time.Duration(global.ServerConfig.OrphanSweep_Interval) * time.Second
			minAge := time.Duration(global.ServerConfig.OrphanSweep_MinAge) * time.Second
			w, err := worker.NewOrphanCleanupWorker(interval, minAge)
			if err != nil {
				log.Errorf("🔄 [ORPHAN_CLEANUP] Không thể khởi tạo worker: %v", err)
				return
			}

			log.Info("🔄 [ORPHAN_CLEANUP] Worker started")
			w.Start(context.Background())
		}()
	} else {
		log.Info("🔄 [ORPHAN_CLEANUP] Worker disabled")
	}

	main_thread()
}

// main_thread khởi tạo Fiber app và lắng nghe kết nối
func main_thread() {
	log := logger.GetAppLogger()

	app := InitFiberApp()
	address := ":" + global.ServerConfig.Address

	// Kiểm tra cấu hình TLS/HTTPS
	if global.ServerConfig.EnableTLS {
		certFile := resolvePath(global.ServerConfig.TLSCertFile)
		keyFile := resolvePath(global.ServerConfig.TLSKeyFile)

		if certFile == "" || keyFile == "" {
			log.Fatal("ENABLE_TLS=true nhưng thiếu TLS_CERT_FILE hoặc TLS_KEY_FILE")
		}

		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			log.Fatalf("Không thể load TLS certificate: %v", err)
		}

		tlsConfig := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}

		ln, err := net.Listen("tcp", address)
		if err != nil {
			log.Fatalf("Không thể listen trên %s: %v", address, err)
		}

		log.Infof("Server đang chạy với HTTPS tại https://localhost%s", address)
		if err := app.Listener(tls.NewListener(ln, tlsConfig)); err != nil {
			log.Fatalf("Lỗi khi chạy server HTTPS: %v", err)
		}
		return
	}

	log.Infof("Server đang chạy tại http://localhost%s", address)
	if err := app.Listen(address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Lỗi khi chạy server: %v", err)
	}
}

// resolvePath tìm file theo đường dẫn tuyệt đối hoặc đi lên từ thư mục hiện tại
func resolvePath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(currentDir, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}
