// Package api exposes the registry over HTTP: upload, lookup, export,
// statistics and webhook endpoints. All handlers are thin adapters over
// the store, parsers and export generator.
package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/insightdelivered/client-registry/internal/bank"
	"github.com/insightdelivered/client-registry/internal/export"
	"github.com/insightdelivered/client-registry/internal/models"
	"github.com/insightdelivered/client-registry/internal/notify"
	"github.com/insightdelivered/client-registry/internal/parser"
	"github.com/insightdelivered/client-registry/internal/store"
)

const version = "2.0.0"

// Handler holds the HTTP handlers and their collaborators.
type Handler struct {
	Store      *store.ClientStore
	Table      *bank.RoutingTable
	Exports    *export.Generator
	Notifier   *notify.Telegram
	Log        *slog.Logger
	LineNumber string
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.Health)
	app.Get("/ping", h.Ping)
	app.Post("/upload", h.Upload)
	app.Get("/download/all/:format", h.DownloadAll)
	app.Get("/download/bank/:code/:format", h.DownloadBank)
	app.Get("/search/:phone", h.Search)
	app.Get("/banks", h.Banks)
	app.Get("/clients", h.Clients)
	app.Get("/stats", h.Stats)
	app.Get("/clear", h.Clear)
	app.Get("/webhook/call", h.WebhookCall)
	app.Post("/webhook/call", h.WebhookCall)
	app.Post("/webhook/telegram", h.WebhookTelegram)
}

// UploadResponse reports one accepted ingestion batch.
type UploadResponse struct {
	Success    bool   `json:"success"`
	UploadID   string `json:"uploadId"`
	Filename   string `json:"filename"`
	Format     string `json:"format"`
	Loaded     int    `json:"loaded"`
	Identified int    `json:"identified"`
	Skipped    int    `json:"skipped"`
	BankGroups int    `json:"bankGroups"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorResponse{Error: msg})
}

// Upload ingests one file and replaces the dataset wholesale. A batch
// failure leaves the prior dataset untouched.
func (h *Handler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "no file uploaded; use form field 'file'")
	}

	format, err := parser.DetectFormat(fileHeader.Filename)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fail(c, fiber.StatusBadRequest, fmt.Sprintf("reading upload: %v", err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, fmt.Sprintf("reading upload: %v", err))
	}

	p, err := parser.New(format, h.Table)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}

	uploadID := uuid.NewString()
	log := h.Log.With("upload_id", uploadID, "filename", fileHeader.Filename, "format", string(format))

	res, err := p.Parse(data)
	if err != nil {
		log.Error("ingestion failed, prior dataset kept", "error", err)
		return fail(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("ingestion failed: %v", err))
	}

	loaded := h.Store.ReplaceAll(res.Records)
	h.Store.NoteUpload(fileHeader.Filename, res.Identified)
	groups := h.Store.Stats().BankGroups
	log.Info("clients loaded",
		"loaded", loaded,
		"identified", res.Identified,
		"skipped", res.Skipped,
		"bank_groups", groups)

	return c.JSON(UploadResponse{
		Success:    true,
		UploadID:   uploadID,
		Filename:   fileHeader.Filename,
		Format:     string(format),
		Loaded:     loaded,
		Identified: res.Identified,
		Skipped:    res.Skipped,
		BankGroups: groups,
	})
}

// DownloadAll exports every record in the requested format.
func (h *Handler) DownloadAll(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	file, err := h.Exports.AllClients(format)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return sendFile(c, file)
}

// DownloadBank exports one bank group in the requested format.
func (h *Handler) DownloadBank(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Params("format"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	file, err := h.Exports.BankClients(c.Params("code"), format)
	if errors.Is(err, export.ErrEmptyGroup) {
		return fail(c, fiber.StatusNotFound, err.Error())
	}
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, err.Error())
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *export.File) error {
	c.Set(fiber.HeaderContentType, file.MIMEType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(file.Content)
}

// Search looks up a raw phone string. Always 200: misses return the
// NotOnFile placeholder.
func (h *Handler) Search(c *fiber.Ctx) error {
	raw, err := url.PathUnescape(c.Params("phone"))
	if err != nil {
		raw = c.Params("phone")
	}
	rec := h.Store.Get(raw)
	return c.JSON(fiber.Map{
		"success": true,
		"found":   rec.Status != models.StatusNotOnFile,
		"client":  rec,
	})
}

// bankGroup is one entry of the /banks listing.
type bankGroup struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
	DownloadTXT string `json:"downloadTxt"`
	DownloadCSV string `json:"downloadCsv"`
}

// Banks lists the grouping index with per-bank download links.
func (h *Handler) Banks(c *fiber.Ctx) error {
	groups := h.Store.Groups()
	out := make([]bankGroup, 0, len(groups))
	for _, g := range groups {
		name, ok := h.Table.Name(g.Code)
		if !ok {
			name = fmt.Sprintf("Bank %s", g.Code)
		}
		out = append(out, bankGroup{
			Code:        g.Code,
			Name:        name,
			Count:       g.Count,
			DownloadTXT: fmt.Sprintf("/download/bank/%s/txt", g.Code),
			DownloadCSV: fmt.Sprintf("/download/bank/%s/csv", g.Code),
		})
	}
	return c.JSON(fiber.Map{"success": true, "banks": out})
}

// clientSummary is one entry of the /clients listing.
type clientSummary struct {
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Bank      string `json:"bank"`
	CallCount int    `json:"callCount"`
}

// Clients returns a summary listing in insertion order.
func (h *Handler) Clients(c *fiber.Ctx) error {
	records := h.Store.All()
	out := make([]clientSummary, 0, len(records))
	for _, rec := range records {
		out = append(out, clientSummary{
			Phone:     rec.Phone,
			Name:      rec.FullName(),
			City:      rec.City,
			Bank:      rec.BankName,
			CallCount: rec.CallCount,
		})
	}
	return c.JSON(fiber.Map{"success": true, "total": len(out), "clients": out})
}

// Stats reports aggregate counters without mutating state.
func (h *Handler) Stats(c *fiber.Ctx) error {
	st := h.Store.Stats()
	return c.JSON(fiber.Map{
		"success":          true,
		"stats":            st,
		"knownBanks":       h.Table.Size(),
		"regionalBranches": h.Table.RegionalSize(),
		"supportedFormats": []string{"txt (pipe)", "xls", "xlsx"},
	})
}

// Clear resets the dataset and returns the prior record count.
func (h *Handler) Clear(c *fiber.Ctx) error {
	prior := h.Store.Clear()
	h.Log.Info("dataset cleared", "prior_count", prior)
	return c.JSON(fiber.Map{"success": true, "cleared": prior})
}

// Health reports service liveness and version.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

// Ping is the keep-alive endpoint with store counters.
func (h *Handler) Ping(c *fiber.Ctx) error {
	st := h.Store.Stats()
	return c.JSON(fiber.Map{
		"status":     "alive",
		"clients":    st.TotalClients,
		"identified": st.Identified,
		"bankGroups": st.BankGroups,
	})
}
