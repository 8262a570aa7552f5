package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pustaka-market/internal/domain"
	"pustaka-market/internal/middleware"
	"pustaka-market/internal/service/approval"
	"pustaka-market/internal/service/request"
)

type RequestHandler struct {
	requestService  request.Service
	approvalService approval.Service
}

func NewRequestHandler(requestService request.Service, approvalService approval.Service) *RequestHandler {
	return &RequestHandler{requestService: requestService, approvalService: approvalService}
}

// Create is the sole entry point for new requests; they always start pending.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var input domain.CreatePurchaseRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	input.UserID = middleware.GetCurrentUserID(c)

	req, err := h.requestService.Create(c.Context(), input)
	if err != nil {
		return middleware.BadRequest(err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *RequestHandler) List(c *fiber.Ctx) error {
	filter := domain.RequestFilter{PaginationParams: getPaginationParams(c)}

	if s := c.Query("status"); s != "" {
		status := domain.RequestStatus(s)
		if !status.Valid() {
			return middleware.BadRequest("Unknown status filter")
		}
		filter.Status = &status
	}

	result, err := h.requestService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// ListMine returns the caller's own requests, with the same status filter
// and pagination as the admin listing.
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	filter := domain.RequestFilter{
		UserID:           &userID,
		PaginationParams: getPaginationParams(c),
	}

	if s := c.Query("status"); s != "" {
		status := domain.RequestStatus(s)
		if !status.Valid() {
			return middleware.BadRequest("Unknown status filter")
		}
		filter.Status = &status
	}

	result, err := h.requestService.List(c.Context(), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *RequestHandler) Get(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.requestService.GetByID(c.Context(), requestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

// Update applies one status transition with an optimistic version check. A
// stale version comes back as 409; the admin refetches and decides.
func (h *RequestHandler) Update(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.TransitionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if !input.Status.Valid() {
		return middleware.BadRequest("Unknown target status")
	}

	updated, err := h.approvalService.Transition(c.Context(), requestID, input.Status, input.AdminNotes, input.ExpectedVersion)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

// Bulk applies approve/reject to many requests. Partial failure is a 200
// with per-id outcomes; clients re-render from the result.
func (h *RequestHandler) Bulk(c *fiber.Ctx) error {
	var input domain.BulkInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if !input.Action.Valid() {
		return middleware.BadRequest("Action must be approve or reject")
	}
	if len(input.IDs) == 0 {
		return middleware.BadRequest("At least one request ID is required")
	}

	result, err := h.approvalService.Bulk(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
