package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Nó chứa đường dẫn kho dữ liệu (file sections.json + thư mục asset) và cấu hình server.
type Configuration struct {
	Address       string `env:"ADDRESS" envDefault:"8080"`       // Cổng server
	JwtSecret     string `env:"JWT_SECRET,required"`             // Bí mật JWT
	AdminPassword string `env:"ADMIN_PASSWORD,required"`         // Mật khẩu đăng nhập admin
	DataDir       string `env:"DATA_DIR" envDefault:"data"`      // Thư mục chứa sections.json
	PublicDir     string `env:"PUBLIC_DIR" envDefault:"public"`  // Thư mục public chứa videos/, images/, profile/
	BodyLimitMB   int    `env:"BODY_LIMIT_MB" envDefault:"512"`  // Max size của request body (MB) - phải đủ lớn cho upload video
	UploadTimeout int    `env:"UPLOAD_TIMEOUT" envDefault:"300"` // Thời gian tối đa cho một lần upload (giây)

	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable rate limit)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Dọn dẹp asset mồ côi (file còn trên đĩa nhưng không còn trong sections.json)
	OrphanSweep_Enabled  bool `env:"ORPHAN_SWEEP_ENABLED" envDefault:"true"` // Bật/tắt worker dọn asset mồ côi
	OrphanSweep_Interval int  `env:"ORPHAN_SWEEP_INTERVAL" envDefault:"3600"` // Khoảng thời gian giữa các lần quét (giây)
	OrphanSweep_MinAge   int  `env:"ORPHAN_SWEEP_MIN_AGE" envDefault:"86400"` // Tuổi tối thiểu của file trước khi bị coi là mồ côi (giây)

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Tìm thư mục config
	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			// Tìm thấy thư mục config/env
			envPath := filepath.Join(envDir, fmt.Sprintf("%s.env", env))
			return envPath
		}

		// Đi lên thư mục cha
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig sẽ đọc dữ liệu cấu hình từ file env được cung cấp
func NewConfig(files ...string) *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	err := godotenv.Load(envPath)
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	err = env.Parse(&cfg)
	if err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
