package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventorypro-api/internal/application/dto"
	"github.com/jhoicas/inventorypro-api/internal/application/notification"
)

// browserFeed lo implementa *notify.BrowserChannel.
type browserFeed interface {
	notification.Permission
	Pending() bool
	Feed() []notification.Notification
}

// NotificationHandler preferencias de canales, feed del navegador y prueba.
type NotificationHandler struct {
	settings   *notification.SettingsUseCase
	dispatcher *notification.Dispatcher
	browser    browserFeed
}

func NewNotificationHandler(settings *notification.SettingsUseCase, dispatcher *notification.Dispatcher, browser browserFeed) *NotificationHandler {
	return &NotificationHandler{settings: settings, dispatcher: dispatcher, browser: browser}
}

// GetSettings godoc
// @Summary      Preferencias de notificación
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.NotificationSettings
// @Router       /api/notifications/settings [get]
func (h *NotificationHandler) GetSettings(c *fiber.Ctx) error {
	s, err := h.settings.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

// UpdateSetting godoc
// @Summary      Activar o desactivar un canal
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateNotificationSettingRequest  true  "key y value"
// @Success      200   {object}  entity.NotificationSettings
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications/settings [put]
func (h *NotificationHandler) UpdateSetting(c *fiber.Ctx) error {
	var in dto.UpdateNotificationSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	s, err := h.settings.Update(c.UserContext(), in.Key, in.Value)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

// ResetSettings godoc
// @Summary      Restaurar preferencias por defecto
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.NotificationSettings
// @Router       /api/notifications/settings/reset [post]
func (h *NotificationHandler) ResetSettings(c *fiber.Ctx) error {
	s, err := h.settings.Reset(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(s)
}

// BrowserFeed godoc
// @Summary      Estado del permiso y notificaciones del navegador
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BrowserFeedResponse
// @Router       /api/notifications/browser [get]
func (h *NotificationHandler) BrowserFeed(c *fiber.Ctx) error {
	return c.JSON(dto.BrowserFeedFrom(h.browser.State(), h.browser.Pending(), h.browser.Feed()))
}

// ResolvePermission godoc
// @Summary      Responder la solicitud de permiso del navegador
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PermissionRequest  true  "granted"
// @Success      200   {object}  dto.BrowserFeedResponse
// @Router       /api/notifications/browser/permission [post]
func (h *NotificationHandler) ResolvePermission(c *fiber.Ctx) error {
	var in dto.PermissionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.browser.Resolve(in.Granted); err != nil {
		return writeError(c, err)
	}
	return h.BrowserFeed(c)
}

// SendTest godoc
// @Summary      Enviar notificación de prueba al navegador
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/notifications/test [post]
func (h *NotificationHandler) SendTest(c *fiber.Ctx) error {
	if err := h.dispatcher.SendTest(c.UserContext(), GetUser(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "notificación de prueba enviada"})
}
