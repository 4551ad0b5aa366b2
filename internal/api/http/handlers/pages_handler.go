package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gigit/web/internal/content"
)

// PagesHandler serves the FAQ and the terms and conditions.
type PagesHandler struct {
	pages *content.Pages
}

// NewPagesHandler constructs handler.
func NewPagesHandler(pages *content.Pages) *PagesHandler {
	return &PagesHandler{pages: pages}
}

// FAQ handles GET /faq?q=.
func (h *PagesHandler) FAQ(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"items": h.pages.SearchFAQ(c.Query("q")),
	}})
}

// Terms handles GET /terms?q=.
func (h *PagesHandler) Terms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"last_updated": h.pages.LastUpdated,
		"sections":     h.pages.SearchTerms(c.Query("q")),
	}})
}

// TermsText handles GET /terms.txt, the downloadable copy.
func (h *PagesHandler) TermsText(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="gigit_terms_and_conditions.txt"`)
	c.Type("txt", "utf-8")
	return c.SendString(h.pages.TermsText())
}
