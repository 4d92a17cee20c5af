// Package api exposes the script-graph persistence and editing endpoints
// consumed by the visual scripting editor. The canvas owns the interactive
// graph; this API is its save target and runs the same connection
// validation server-side before an edge is stored.
package api

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"github.com/flowlua/scriptgraph"
	"github.com/flowlua/scriptgraph/nodetype"
)

type handlers struct {
	store    scriptgraph.Store
	reg      *nodetype.Registry
	log      *slog.Logger
	validate *validator.Validate
}

// New builds the Fiber app with all routes registered.
func New(store scriptgraph.Store, reg *nodetype.Registry, log *slog.Logger) *fiber.App {
	if log == nil {
		log = slog.Default()
	}
	h := &handlers{store: store, reg: reg, log: log, validate: validator.New()}

	app := fiber.New()

	app.Get("/nodetypes", h.listNodeTypes)

	app.Put("/scripts/:id/graph", h.putGraph)
	app.Get("/scripts/:id/graph", h.getGraph)
	app.Delete("/scripts/:id/graph", h.deleteGraph)

	app.Post("/scripts/:id/nodes", h.createNode)
	app.Put("/nodes/:id", h.updateNode)
	app.Delete("/nodes/:id", h.deleteNode)
	app.Post("/nodes/:id/clone", h.cloneNode)

	app.Post("/scripts/:id/edges", h.createEdge)
	app.Delete("/edges/:id", h.deleteEdge)

	return app
}

func (h *handlers) bind(c fiber.Ctx, v any) error {
	if err := c.Bind().JSON(v); err != nil {
		return err
	}
	return h.validate.Struct(v)
}

func (h *handlers) internal(c fiber.Ctx, op string, err error) error {
	h.log.Error(op, "err", err)
	return c.Status(500).JSON(fiber.Map{"error": err.Error()})
}
