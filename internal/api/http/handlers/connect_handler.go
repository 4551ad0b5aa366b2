package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gigit/web/internal/api/dto"
	"github.com/gigit/web/internal/search"
	"github.com/gigit/web/internal/service"
	apperrors "github.com/gigit/web/pkg/util/errorutil"
)

// ConnectHandler serves the landing page and developer search.
type ConnectHandler struct {
	search    *service.SearchService
	directory *service.DirectoryService
}

// NewConnectHandler constructs handler.
func NewConnectHandler(searchService *service.SearchService, directory *service.DirectoryService) *ConnectHandler {
	return &ConnectHandler{search: searchService, directory: directory}
}

// Landing handles GET /.
func (h *ConnectHandler) Landing(c *fiber.Ctx) error {
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}
	landing, err := h.directory.Landing(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"session":         dto.NewSessionResponse(mgr.State()),
		"specializations": landing.Specializations,
		"featured":        dto.NewDeveloperSummaries(landing.Featured),
	}})
}

// Search handles GET /connect?q=&job=&category=.
func (h *ConnectHandler) Search(c *fiber.Ctx) error {
	mgr, err := managerFrom(c)
	if err != nil {
		return err
	}
	q := search.Query{
		Term:     c.Query("q"),
		JobTitle: c.Query("job"),
		Category: c.Query("category"),
	}

	res, err := h.search.Search(c.UserContext(), mgr.SessionID(), q)
	if err != nil {
		if errors.Is(err, search.ErrSuperseded) {
			return apperrors.NewConflict("SUPERSEDED", "a newer search replaced this one")
		}
		return err
	}

	return c.JSON(fiber.Map{"data": dto.SearchResponse{
		Seq:        res.Seq,
		Total:      res.Total,
		Matched:    res.Matched,
		Developers: dto.NewDeveloperSummaries(res.Developers),
	}})
}

// Specializations handles GET /connect/specializations.
func (h *ConnectHandler) Specializations(c *fiber.Ctx) error {
	specs, err := h.directory.Specializations(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": specs})
}
