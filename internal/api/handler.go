package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/authgate/auth"
	"github.com/kbukum/authgate/auth/authctx"
	"github.com/kbukum/authgate/errors"
	"github.com/kbukum/authgate/server"
)

// timestampLayout is RFC 3339 in UTC with milliseconds.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// LoginService authenticates credentials and issues a session.
type LoginService interface {
	Login(ctx context.Context, creds auth.Credentials) (*auth.Session, error)
}

// Item is one entry of the /data payload.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var sampleItems = []Item{
	{ID: 1, Name: "Item 1", Description: "First item"},
	{ID: 2, Name: "Item 2", Description: "Second item"},
	{ID: 3, Name: "Item 3", Description: "Third item"},
}

// UserSummary is the user section of a login response.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// RootResponse is returned by GET /.
type RootResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// LoginResponse is returned by a successful POST /login.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

// ProfileResponse is returned by GET /profile. User is the token's claims
// as they were signed.
type ProfileResponse struct {
	Message   string       `json:"message"`
	User      *auth.Claims `json:"user"`
	Timestamp string       `json:"timestamp"`
}

// DataResponse is returned by GET /data.
type DataResponse struct {
	Message   string `json:"message"`
	Data      []Item `json:"data"`
	User      string `json:"user"`
	Timestamp string `json:"timestamp"`
}

// Handler serves the API routes.
type Handler struct {
	logins      LoginService
	serviceName string
	now         func() time.Time
}

// Option configures a Handler.
type Option func(*Handler)

// WithClock sets the time source for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// NewHandler creates the API handler. serviceName is used in the root message.
func NewHandler(logins LoginService, serviceName string, opts ...Option) *Handler {
	h := &Handler{logins: logins, serviceName: serviceName, now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the routes on r. gate guards /profile and /data.
func (h *Handler) Register(r gin.IRouter, gate gin.HandlerFunc) {
	r.GET("/", h.Root)
	r.POST("/login", h.Login)

	protected := r.Group("/", gate)
	protected.GET("/profile", h.Profile)
	protected.GET("/data", h.Data)
}

// Root reports that the service is running.
func (h *Handler) Root(c *gin.Context) {
	server.RespondOK(c, RootResponse{
		Message:   h.serviceName + " API",
		Status:    "running",
		Timestamp: h.timestamp(),
	})
}

// Login exchanges a username and password for an access token.
func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.Validation(auth.MissingCredentialsMessage).WithCause(err))
		return
	}
	creds, err := req.Credentials()
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	session, err := h.logins.Login(c.Request.Context(), creds)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	server.RespondOK(c, LoginResponse{
		Message: "Login successful",
		Token:   session.Token,
		User:    UserSummary{ID: session.Claims.UserID, Username: session.Claims.Username},
	})
}

// Profile returns the caller's identity claim.
func (h *Handler) Profile(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	server.RespondOK(c, ProfileResponse{
		Message:   "Protected route accessed successfully",
		User:      claims,
		Timestamp: h.timestamp(),
	})
}

// Data returns the fixed sample items.
func (h *Handler) Data(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}
	server.RespondOK(c, DataResponse{
		Message:   "Data retrieved successfully",
		Data:      sampleItems,
		User:      claims.Username,
		Timestamp: h.timestamp(),
	})
}

// claims reads the identity placed by the gate. Its absence means the route
// was registered without the gate.
func (h *Handler) claims(c *gin.Context) (*auth.Claims, bool) {
	claims, ok := authctx.From(c)
	if !ok {
		server.RespondWithError(c, errors.Internal(authctx.ErrNoClaims))
		return nil, false
	}
	return claims, true
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(timestampLayout)
}
