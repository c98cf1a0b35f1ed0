package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// EventType represents the type of security event
type EventType string

const (
	EventHoneypotTriggered  EventType = "honeypot_triggered"
	EventValidationFailed   EventType = "validation_failed"
	EventVerificationFailed EventType = "verification_failed"
	EventDeliveryFailed     EventType = "delivery_failed"
	EventSubmissionAccepted EventType = "submission_accepted"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Severity     Severity               `json:"severity"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked or hashed for PII
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// Options controls where security events are written
type Options struct {
	ServiceName string
	Environment string
	// File additionally receives events, rotated by size. Empty means stdout only.
	File string
}

// SecurityLogger provides structured logging for security events
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// NewSecurityLogger builds a JSON zap logger writing to stdout and, optionally, a rotated file.
func NewSecurityLogger(opts Options) *SecurityLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.LevelKey = "level"
	encoderCfg.MessageKey = "message"

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if opts.File != "" {
		sinks = append(sinks, zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(sinks...),
		zapcore.InfoLevel,
	)

	return &SecurityLogger{
		zapLogger:   zap.New(core, zap.AddCaller()),
		serviceName: opts.ServiceName,
		environment: opts.Environment,
	}
}

// NewNopLogger discards every event.
func NewNopLogger() *SecurityLogger {
	return &SecurityLogger{zapLogger: zap.NewNop()}
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = sl.serviceName
	event.Environment = sl.environment

	event.Severity = GetSeverity(event.Event)
	level := event.Severity.zapLevel()
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(event.Severity)),
	}
	if IsHighOrAbove(event.Event) {
		fields = append(fields, zap.Bool("alert", true))
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
}

// Subject identifies who a form event is about
type Subject struct {
	Email     string
	IP        string
	UserAgent string
	RequestID string
}

func (sl *SecurityLogger) logFormEvent(ctx context.Context, event EventType, s Subject, details map[string]interface{}) {
	e := SecurityEvent{
		Event:     event,
		IP:        s.IP,
		UserAgent: s.UserAgent,
		RequestID: s.RequestID,
		Details:   details,
	}
	if s.Email != "" {
		e.SubjectType = "email"
		e.SubjectValue = MaskEmail(s.Email)
	}
	sl.Log(ctx, e)
}

// LogHoneypotTriggered logs a submission absorbed by the honeypot
func (sl *SecurityLogger) LogHoneypotTriggered(ctx context.Context, s Subject) {
	sl.logFormEvent(ctx, EventHoneypotTriggered, s, nil)
}

// LogValidationFailed logs the rules a submission violated
func (sl *SecurityLogger) LogValidationFailed(ctx context.Context, s Subject, violations []string) {
	sl.logFormEvent(ctx, EventValidationFailed, s, map[string]interface{}{"violations": violations})
}

// LogVerificationFailed logs a rejected bot-verification token
func (sl *SecurityLogger) LogVerificationFailed(ctx context.Context, s Subject, reason string) {
	sl.logFormEvent(ctx, EventVerificationFailed, s, map[string]interface{}{"reason": reason})
}

// LogDeliveryFailed logs a provider failure; reason never reaches the client
func (sl *SecurityLogger) LogDeliveryFailed(ctx context.Context, s Subject, provider, reason string) {
	sl.logFormEvent(ctx, EventDeliveryFailed, s, map[string]interface{}{
		"provider": provider,
		"reason":   reason,
	})
}

// LogSubmissionAccepted logs a dispatched notification
func (sl *SecurityLogger) LogSubmissionAccepted(ctx context.Context, s Subject, template string) {
	sl.logFormEvent(ctx, EventSubmissionAccepted, s, map[string]interface{}{"template": template})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex <= 1 {
		return "***" + HashValue(email)
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8]) // First 16 chars of hex
}
