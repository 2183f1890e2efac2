package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/totegamma/plura/internal/domain"
	"github.com/totegamma/plura/internal/present/rest/presenter"
	"github.com/totegamma/plura/internal/service"
	"github.com/totegamma/plura/internal/usecase"
)

type Handler struct {
	config       domain.Config
	agency       *usecase.AgencyUsecase
	user         *usecase.UserUsecase
	invitation   *usecase.InvitationUsecase
	notification *usecase.NotificationUsecase
	upload       *usecase.UploadUsecase
	signal       *service.SignalService
}

func NewHandler(
	config domain.Config,
	agency *usecase.AgencyUsecase,
	user *usecase.UserUsecase,
	invitation *usecase.InvitationUsecase,
	notification *usecase.NotificationUsecase,
	upload *usecase.UploadUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		config:       config,
		agency:       agency,
		user:         user,
		invitation:   invitation,
		notification: notification,
		upload:       upload,
		signal:       signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET(domain.DefaultSitePath, h.handleSite)
	e.GET(domain.SignInPath, h.handleSignIn)

	api := e.Group("/api/v1")
	api.GET("/me", h.handleMe)
	api.POST("/users/init", h.handleInitUser)
	api.POST("/agencies", h.handleUpsertAgency)
	api.GET("/agencies/:id", h.handleGetAgency)
	api.PATCH("/agencies/:id", h.handleUpdateAgency)
	api.DELETE("/agencies/:id", h.handleDeleteAgency)
	api.GET("/agencies/:id/notifications", h.handleNotifications)
	api.GET("/agencies/:id/realtime", h.handleRealtime)
	api.POST("/invitations/accept", h.handleAcceptInvitation)
	api.POST("/uploads/:target", h.handleUpload)
	api.GET("/icons", h.handleIcons)
	api.GET("/plans", h.handlePlans)

	// tenant pages, reached through the tenant router rewrite
	e.GET("/:domain", h.handleTenantPage)
	e.GET("/:domain/*", h.handleTenantPage)
}

func (h *Handler) handleSite(c echo.Context) error {
	return presenter.OK(c, echo.Map{
		"page":  "site",
		"plans": domain.Plans,
	})
}

func (h *Handler) handleSignIn(c echo.Context) error {
	return presenter.OK(c, echo.Map{"page": "sign-in"})
}

func (h *Handler) handleTenantPage(c echo.Context) error {
	return presenter.OK(c, echo.Map{
		"page":   "tenant",
		"domain": c.Param("domain"),
		"path":   "/" + c.Param("*"),
	})
}

func (h *Handler) handleIcons(c echo.Context) error {
	return presenter.OK(c, domain.Icons)
}

func (h *Handler) handlePlans(c echo.Context) error {
	return presenter.OK(c, domain.Plans)
}

func (h *Handler) handleMe(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := domain.CallerFromContext(ctx); !ok {
		return presenter.Unauthorized(c)
	}

	user, ok, err := h.user.Details(ctx)
	if err != nil {
		return presenter.Error(c, err, "failed to load user")
	}
	if !ok {
		return presenter.NotFound(c, "user not initialized")
	}
	return presenter.OK(c, user)
}

func (h *Handler) handleInitUser(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.InitUserInput
	if err := c.Bind(&input); err != nil {
		return presenter.BadRequest(c, err)
	}

	result, ok, err := h.user.Init(ctx, input)
	if err != nil {
		return presenter.Error(c, err, "failed to initialize user")
	}
	if !ok {
		return presenter.Unauthorized(c)
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleUpsertAgency(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := domain.CallerFromContext(ctx); !ok {
		return presenter.Unauthorized(c)
	}

	var agency domain.Agency
	if err := c.Bind(&agency); err != nil {
		return presenter.BadRequest(c, err)
	}

	result, err := h.agency.Upsert(ctx, agency)
	if err != nil {
		return presenter.Error(c, err, "failed to save agency")
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleGetAgency(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := domain.CallerFromContext(ctx); !ok {
		return presenter.Unauthorized(c)
	}

	agency, err := h.agency.Get(ctx, c.Param("id"))
	if err != nil {
		return presenter.Error(c, err, "failed to load agency")
	}
	return presenter.OK(c, agency)
}

func (h *Handler) handleUpdateAgency(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := domain.CallerFromContext(ctx); !ok {
		return presenter.Unauthorized(c)
	}

	var update domain.AgencyUpdate
	if err := c.Bind(&update); err != nil {
		return presenter.BadRequest(c, err)
	}

	agency, err := h.agency.UpdateDetails(ctx, c.Param("id"), update)
	if err != nil {
		return presenter.Error(c, err, "failed to update agency")
	}
	return presenter.OK(c, agency)
}

func (h *Handler) handleDeleteAgency(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := domain.CallerFromContext(ctx); !ok {
		return presenter.Unauthorized(c)
	}

	if err := h.agency.Delete(ctx, c.Param("id")); err != nil {
		return presenter.Error(c, err, "failed to delete agency")
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleNotifications(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := domain.CallerFromContext(ctx); !ok {
		return presenter.Unauthorized(c)
	}

	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limitInt, err := strconv.Atoi(limitStr)
		if err != nil {
			return presenter.BadRequestMessage(c, "invalid limit parameter")
		}
		limit = limitInt
	}

	notifications, err := h.notification.List(ctx, c.Param("id"), limit)
	if err != nil {
		return presenter.Error(c, err, "failed to list notifications")
	}
	return presenter.OK(c, notifications)
}

func (h *Handler) handleAcceptInvitation(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := domain.CallerFromContext(ctx); !ok {
		return presenter.Unauthorized(c)
	}

	result, ok, err := h.invitation.Accept(ctx)
	if err != nil {
		return presenter.Error(c, err, "failed to accept invitation")
	}
	if !ok {
		return presenter.NotFound(c, "no pending invitation")
	}
	return presenter.OK(c, result)
}

func (h *Handler) handleUpload(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := domain.CallerFromContext(ctx); !ok {
		return presenter.Unauthorized(c)
	}

	target := c.Param("target")
	if !domain.IsUploadTarget(target) {
		return presenter.NotFound(c, "unknown upload target")
	}

	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, domain.MaxUploadSize+(1<<20))
	form, err := c.MultipartForm()
	if err != nil {
		return presenter.BadRequestMessage(c, "invalid multipart form")
	}
	files := form.File["file"]
	if len(files) != 1 {
		return presenter.BadRequestMessage(c, "exactly one file is required")
	}
	header := files[0]

	file, err := header.Open()
	if err != nil {
		return presenter.BadRequestMessage(c, "failed to read file")
	}
	defer file.Close()

	result, ok, err := h.upload.Upload(ctx, usecase.UploadInput{
		Target:      target,
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return presenter.Error(c, err, "failed to upload file")
	}
	if !ok {
		return presenter.Unauthorized(c)
	}
	return presenter.OK(c, result)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Request struct {
	Type string `json:"type"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	if _, ok := domain.CallerFromContext(c.Request().Context()); !ok {
		return presenter.Unauthorized(c)
	}
	agencyID := c.Param("id")
	if err := h.notification.Authorize(c.Request().Context(), agencyID); err != nil {
		return presenter.Error(c, err, "failed to open feed")
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	output := make(chan domain.Notification)
	go func() {
		err := h.signal.Subscribe(ctx, agencyID, output)
		if err != nil {
			slog.ErrorContext(
				ctx, "Subscription failed",
				slog.String("error", err.Error()),
				slog.String("module", "socket"),
			)
			cancel()
		}
	}()

	go func() {
		defer cancel()
		for {
			var req Request
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}

			switch req.Type {
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case notification, ok := <-output:
			if !ok {
				return nil
			}
			ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			err := ws.WriteJSON(notification)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
