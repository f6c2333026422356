package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "floorplan-service/internal/common/errors"
	"floorplan-service/internal/floorplan/commit"
	"floorplan-service/internal/floorplan/geometry"
	"floorplan-service/internal/floorplan/group"
	"floorplan-service/internal/floorplan/interaction"
	"floorplan-service/internal/floorplan/render"
	"floorplan-service/internal/floorplan/service"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Floor Plan Handler
// ============================================================

// DefaultCanvas is used when a request names no canvas size.
var DefaultCanvas = geometry.Canvas{Width: 1000, Height: 800}

type FloorplanHandler struct {
	editor   *service.Editor
	renderer *render.Renderer
	logger   *log.Logger
}

func NewFloorplanHandler(editor *service.Editor, logger *log.Logger) *FloorplanHandler {
	return &FloorplanHandler{
		editor:   editor,
		renderer: render.NewRenderer(),
		logger:   logger,
	}
}

// Register mounts every floor-plan route on r.
func (h *FloorplanHandler) Register(r fiber.Router) {
	r.Get("/tables", h.ListTables)
	r.Post("/tables", h.CreateTable)
	r.Delete("/tables/:id", h.DeleteTable)
	r.Put("/tables/:id/position", h.CommitPosition)

	r.Post("/edit/start", h.StartEdit)
	r.Post("/edit/end", h.EndEdit)

	r.Post("/drag/start", h.StartDrag)
	r.Post("/drag/move", h.DragMove)
	r.Post("/drag/end", h.EndDrag)

	r.Post("/selection", h.Select)
	r.Post("/align", h.Align)
	r.Post("/distribute", h.Distribute)

	r.Get("/floorplan.svg", h.RenderSVG)
}

// ------------------------------------------------------------
// Payloads
// ------------------------------------------------------------

type createTableRequest struct {
	Number   int `json:"number"`
	Capacity int `json:"capacity"`
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type dragStartRequest struct {
	ID string `json:"id"`
}

type dragMoveRequest struct {
	X      float64          `json:"x"`
	Y      float64          `json:"y"`
	Canvas *geometry.Canvas `json:"canvas"`
	Free   bool             `json:"free"`
}

type selectionRequest struct {
	IDs []string `json:"ids"`
}

type alignRequest struct {
	Mode string `json:"mode"`
}

type distributeRequest struct {
	Direction string `json:"direction"`
}

type outcomePayload struct {
	ID       string         `json:"id"`
	Position geometry.Point `json:"position"`
	Error    string         `json:"error,omitempty"`
}

type groupResponse struct {
	Outcomes []outcomePayload `json:"outcomes"`
	Failed   int              `json:"failed"`
}

func decode(c fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "body required")
	}
	if err := json.Unmarshal(c.Body(), dst); err != nil {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid JSON payload")
	}
	return nil
}

func groupPayload(outcomes []commit.Outcome) groupResponse {
	resp := groupResponse{Outcomes: make([]outcomePayload, 0, len(outcomes))}
	for _, o := range outcomes {
		p := outcomePayload{ID: o.ID, Position: o.Position}
		if o.Error != nil {
			p.Error = apperrors.UserMessage(o.Error)
			resp.Failed++
		}
		resp.Outcomes = append(resp.Outcomes, p)
	}
	return resp
}

// ------------------------------------------------------------
// Tables
// ------------------------------------------------------------

func (h *FloorplanHandler) ListTables(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"tables":  h.editor.Tables(),
		"state":   h.editor.State(),
		"editing": h.editor.Editing(),
	})
}

func (h *FloorplanHandler) CreateTable(c fiber.Ctx) error {
	var req createTableRequest
	if err := decode(c, &req); err != nil {
		return respondError(c, err)
	}

	t, err := h.editor.CreateTable(c.Context(), req.Number, req.Capacity)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(t)
}

func (h *FloorplanHandler) DeleteTable(c fiber.Ctx) error {
	if err := h.editor.DeleteTable(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// CommitPosition сохраняет позицию стола напрямую, без перетаскивания.
func (h *FloorplanHandler) CommitPosition(c fiber.Ctx) error {
	var req positionRequest
	if err := decode(c, &req); err != nil {
		return respondError(c, err)
	}

	pos, err := h.editor.CommitPosition(c.Context(), c.Params("id"), geometry.Point{X: req.X, Y: req.Y})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": c.Params("id"), "position": pos})
}

// ------------------------------------------------------------
// Edit mode
// ------------------------------------------------------------

func (h *FloorplanHandler) StartEdit(c fiber.Ctx) error {
	h.editor.StartEdit()
	return c.JSON(fiber.Map{"editing": true})
}

func (h *FloorplanHandler) EndEdit(c fiber.Ctx) error {
	if err := h.editor.EndEdit(c.Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"editing": false})
}

// ------------------------------------------------------------
// Drag
// ------------------------------------------------------------

func (h *FloorplanHandler) StartDrag(c fiber.Ctx) error {
	var req dragStartRequest
	if err := decode(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.ID == "" {
		return badRequest(c, "id required")
	}

	if err := h.editor.StartDrag(req.ID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"state": h.editor.State(), "active": req.ID})
}

// DragMove прогоняет привязку и проверку пересечений для одного кадра.
func (h *FloorplanHandler) DragMove(c fiber.Ctx) error {
	var req dragMoveRequest
	if err := decode(c, &req); err != nil {
		return respondError(c, err)
	}

	canvas := DefaultCanvas
	if req.Canvas != nil {
		canvas = *req.Canvas
	}

	frame, err := h.editor.Drag(interaction.Move{
		Position: geometry.Point{X: req.X, Y: req.Y},
		Canvas:   canvas,
		Free:     req.Free,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(frame)
}

func (h *FloorplanHandler) EndDrag(c fiber.Ctx) error {
	item, err := h.editor.EndDrag(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id": item.ID, "position": item.Position, "state": h.editor.State()})
}

// ------------------------------------------------------------
// Group transforms
// ------------------------------------------------------------

func (h *FloorplanHandler) Select(c fiber.Ctx) error {
	var req selectionRequest
	if err := decode(c, &req); err != nil {
		return respondError(c, err)
	}

	ids, err := h.editor.Select(req.IDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"selection": ids, "state": h.editor.State()})
}

func (h *FloorplanHandler) Align(c fiber.Ctx) error {
	var req alignRequest
	if err := decode(c, &req); err != nil {
		return respondError(c, err)
	}
	mode, err := group.ParseAlignMode(req.Mode)
	if err != nil {
		return respondError(c, err)
	}

	outcomes, err := h.editor.Align(c.Context(), mode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(groupPayload(outcomes))
}

func (h *FloorplanHandler) Distribute(c fiber.Ctx) error {
	var req distributeRequest
	if err := decode(c, &req); err != nil {
		return respondError(c, err)
	}
	dir, err := group.ParseDirection(req.Direction)
	if err != nil {
		return respondError(c, err)
	}

	outcomes, err := h.editor.Distribute(c.Context(), dir)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(groupPayload(outcomes))
}

// ------------------------------------------------------------
// Render
// ------------------------------------------------------------

// RenderSVG отдаёт текущий план зала в SVG.
func (h *FloorplanHandler) RenderSVG(c fiber.Ctx) error {
	canvas := DefaultCanvas
	if w := c.Query("width"); w != "" {
		v, err := strconv.ParseFloat(w, 64)
		if err != nil {
			return badRequest(c, "width must be a number")
		}
		canvas.Width = v
	}
	if hq := c.Query("height"); hq != "" {
		v, err := strconv.ParseFloat(hq, 64)
		if err != nil {
			return badRequest(c, "height must be a number")
		}
		canvas.Height = v
	}
	if canvas.Degenerate() {
		return badRequest(c, "canvas must have positive width and height")
	}

	svg, err := h.renderer.Render(h.editor.Scene(canvas))
	if err != nil {
		h.logger.Error("render failed", "err", err)
		return respondError(c, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render floor plan"))
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}
