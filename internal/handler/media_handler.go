package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"threadnest/internal/middleware"
	"threadnest/internal/service/media"
)

const maxUploadSize = 10 << 20 // 10 MiB

type MediaHandler struct {
	mediaService media.Service
}

func NewMediaHandler(mediaService media.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("Missing file")
	}
	if fileHeader.Size > maxUploadSize {
		return middleware.BadRequest("File too large")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Cannot read file")
	}
	defer file.Close()

	uploaded, err := h.mediaService.Upload(c.Context(), userID, fileHeader.Filename, fileHeader.Size, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return err
	}

	if c.FormValue("avatar") == "true" {
		if err := h.mediaService.SetAvatar(c.Context(), userID, uploaded); err != nil {
			return err
		}
	}

	return c.Status(fiber.StatusCreated).JSON(uploaded)
}

func (h *MediaHandler) Get(c *fiber.Ctx) error {
	mediaID, err := uuid.Parse(c.Params("mediaId"))
	if err != nil {
		return middleware.BadRequest("Invalid media ID")
	}

	found, err := h.mediaService.GetByID(c.Context(), mediaID)
	if err != nil {
		return err
	}
	if found == nil {
		return middleware.NotFound("Media not found")
	}

	return c.Status(fiber.StatusOK).JSON(found)
}

func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	mediaID, err := uuid.Parse(c.Params("mediaId"))
	if err != nil {
		return middleware.BadRequest("Invalid media ID")
	}

	if err := h.mediaService.Delete(c.Context(), userID, mediaID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
