package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// GetAuditLogger trả về logger cho audit trail của các thao tác quản trị
func GetAuditLogger() *logrus.Logger {
	return GetLogger("audit")
}

// LogAdminAction log một thao tác ghi của quản trị viên (tạo/xóa section,
// upload/xóa item, thay ảnh profile) vào audit trail riêng.
func LogAdminAction(c fiber.Ctx, action string, resourceType string, resourceID string, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		details["request_id"] = requestID
	}

	fields := logrus.Fields{
		"action":        action,
		"resource_type": resourceType,
		"resource_id":   resourceID,
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"details":       details,
		"timestamp":     time.Now(),
	}
	if role := c.Locals("admin_role"); role != nil {
		fields["role"] = role
	}

	GetAuditLogger().WithFields(fields).Info("Audit log")
}

// LogAuth log các sự kiện đăng nhập (thành công lẫn thất bại)
func LogAuth(c fiber.Ctx, action string, success bool) {
	GetAuditLogger().WithFields(logrus.Fields{
		"action":     "auth_" + action,
		"success":    success,
		"ip":         c.IP(),
		"user_agent": c.Get("User-Agent"),
		"timestamp":  time.Now(),
	}).Info("Audit log")
}
