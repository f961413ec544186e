package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/client-registry/internal/notify"
)

// WebhookCall handles telephony provider callbacks for incoming calls:
// the caller is looked up (counting the call) and forwarded to the
// notification chat.
func (h *Handler) WebhookCall(c *fiber.Ctx) error {
	caller := c.Query("caller")
	if c.Method() == fiber.MethodPost {
		var body struct {
			CallerIDNumber string `json:"callerIdNumber"`
		}
		if err := c.BodyParser(&body); err == nil && body.CallerIDNumber != "" {
			caller = body.CallerIDNumber
		}
	}
	if caller == "" {
		caller = "unknown"
	}

	rec := h.Store.Get(caller)

	if h.Notifier.Enabled() {
		msg := notify.FormatClientMessage(rec, notify.ContextCall, h.LineNumber)
		if err := h.Notifier.SendMessage(c.UserContext(), msg); err != nil {
			h.Log.Warn("call notification not delivered", "error", err)
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"caller":  caller,
		"client":  rec.FullName(),
	})
}

// telegramUpdate is the subset of the Bot API update payload we use.
type telegramUpdate struct {
	Message struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// WebhookTelegram handles chat commands: /numero, /iban and /stats.
func (h *Handler) WebhookTelegram(c *fiber.Ctx) error {
	if !h.Notifier.Enabled() {
		return fail(c, fiber.StatusBadRequest, "telegram is not configured")
	}

	var update telegramUpdate
	if err := c.BodyParser(&update); err != nil {
		return fail(c, fiber.StatusBadRequest, fmt.Sprintf("decoding update: %v", err))
	}
	if update.Message.Text == "" {
		return c.JSON(fiber.Map{"status": "no_text"})
	}

	result := h.runCommand(c.UserContext(), update.Message.Text)
	return c.JSON(fiber.Map{"status": "success", "result": result})
}

// runCommand executes one chat command and reports the outcome.
func (h *Handler) runCommand(ctx context.Context, text string) fiber.Map {
	switch {
	case strings.HasPrefix(text, "/numero "):
		raw := strings.TrimSpace(strings.TrimPrefix(text, "/numero "))
		rec := h.Store.Get(raw)
		msg := notify.FormatClientMessage(rec, notify.ContextSearch, h.LineNumber)
		if err := h.Notifier.SendMessage(ctx, msg); err != nil {
			return fiber.Map{"command": "numero", "error": err.Error()}
		}
		return fiber.Map{"command": "numero", "status": "ok"}

	case strings.HasPrefix(text, "/iban "):
		raw := strings.TrimSpace(strings.TrimPrefix(text, "/iban "))
		cls := h.Table.Classify(raw)
		if err := h.Notifier.SendMessage(ctx, notify.FormatClassification(raw, cls)); err != nil {
			return fiber.Map{"command": "iban", "error": err.Error()}
		}
		return fiber.Map{"command": "iban", "status": "ok"}

	case strings.HasPrefix(text, "/stats"):
		st := h.Store.Stats()
		msg := fmt.Sprintf(
			"<b>STATS</b>\nClients: %d\nBanks identified: %d\nBank groups: %d\nKnown prefixes: %d",
			st.TotalClients, st.Identified, st.BankGroups, h.Table.Size())
		if err := h.Notifier.SendMessage(ctx, msg); err != nil {
			return fiber.Map{"command": "stats", "error": err.Error()}
		}
		return fiber.Map{"command": "stats", "status": "ok"}
	}

	return fiber.Map{"status": "unknown"}
}
