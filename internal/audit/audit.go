package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// Action represents the authentication action being recorded
type Action string

const (
	ActionSignup    Action = "signup"
	ActionSignin    Action = "signin"
	ActionRoleGrant Action = "role_grant"
	ActionInfoRead  Action = "info_read"
)

// Status represents the outcome of an action
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusDenied  Status = "denied"
)

const logTimeout = 2 * time.Second

// Event is one recorded authentication event.
type Event struct {
	ID        uuid.UUID
	Action    Action
	Status    Status
	ActorID   *int64
	SubjectID *int64
	Email     string
	IPAddress string
	UserAgent string
	RequestID string
	Metadata  map[string]any
	CreatedAt time.Time
}

// Logger persists audit events
type Logger struct {
	pool *pgxpool.Pool
}

func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

// Log records an audit event
func (l *Logger) Log(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	var metadataJSON []byte
	var err error
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_events (
			id, action, status, actor_id, subject_id, email,
			ip_address, user_agent, request_id, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = l.pool.Exec(ctx, query,
		event.ID,
		event.Action,
		event.Status,
		event.ActorID,
		event.SubjectID,
		event.Email,
		event.IPAddress,
		event.UserAgent,
		event.RequestID,
		metadataJSON,
		event.CreatedAt,
	)

	return err
}

// Record fills in request context and writes the event asynchronously so
// the response is never blocked on the audit store.
func (l *Logger) Record(c echo.Context, event *Event) {
	event.IPAddress = c.RealIP()
	event.UserAgent = c.Request().UserAgent()
	event.RequestID = c.Response().Header().Get(echo.HeaderXRequestID)

	// The echo context is pooled, so nothing from it may be touched after
	// the handler returns. Everything the write needs is copied above.
	logger := c.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), logTimeout)
	go func() {
		defer cancel()
		if err := l.Log(ctx, event); err != nil {
			logger.Errorf("audit log failed: %v", err)
		}
	}()
}
