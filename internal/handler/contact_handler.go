package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pustaka-market/internal/domain"
	"pustaka-market/internal/middleware"
	"pustaka-market/internal/service/contact"
	"pustaka-market/internal/service/request"
)

type ContactHandler struct {
	requestService request.Service
	contactService contact.Service
}

func NewContactHandler(requestService request.Service, contactService contact.Service) *ContactHandler {
	return &ContactHandler{requestService: requestService, contactService: contactService}
}

// Preview builds the outreach message and channel link the admin opens.
// An over-limit message fails here, before any outbound action.
func (h *ContactHandler) Preview(c *fiber.Ctx) error {
	req, channel, to, err := h.resolve(c)
	if err != nil {
		return err
	}

	link, err := h.contactService.BuildLink(req, channel, to)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": h.contactService.BuildMessage(req, channel),
		"channel": channel,
		"to":      to,
		"url":     link,
	})
}

// SendEmail delivers the message directly instead of handing out a link.
func (h *ContactHandler) SendEmail(c *fiber.Ctx) error {
	req, _, to, err := h.resolve(c)
	if err != nil {
		return err
	}

	if err := h.contactService.SendEmail(c.Context(), req, to); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Contact email sent"})
}

func (h *ContactHandler) resolve(c *fiber.Ctx) (*domain.PurchaseRequest, domain.ContactChannel, string, error) {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return nil, "", "", middleware.BadRequest("Invalid request ID")
	}

	req, err := h.requestService.GetByID(c.Context(), requestID)
	if err != nil {
		return nil, "", "", err
	}

	channel := domain.ContactChannel(c.Query("channel"))
	if channel == "" && req.PreferredContactMethod != nil {
		channel = *req.PreferredContactMethod
	}
	if !channel.Valid() {
		return nil, "", "", middleware.BadRequest("Channel must be email, telegram or whatsapp")
	}

	to := c.Query("to")
	if to == "" && req.ContactDetail != nil {
		to = *req.ContactDetail
	}
	if to == "" {
		return nil, "", "", middleware.BadRequest("No contact address on the request; pass ?to=")
	}

	return req, channel, to, nil
}
