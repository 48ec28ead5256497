package api

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"sololevel/internal/engine"
)

// statusFor maps an engine outcome to an HTTP status.
func statusFor(out engine.Outcome) int {
	switch out.Kind {
	case engine.OutcomeOK:
		return fiber.StatusOK
	case engine.OutcomeValidation:
		return fiber.StatusBadRequest
	case engine.OutcomePrecondition:
		if out.Reason == engine.ReasonNotFound {
			return fiber.StatusNotFound
		}
		return fiber.StatusConflict
	case engine.OutcomeInsufficient:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes {ok:false, message} for err. Internal errors are logged and masked.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	out := engine.OutcomeOf(err)
	status := statusFor(out)
	msg := out.Message
	if out.Kind == engine.OutcomeInternal {
		s.logger.Printf("request %s %s: %v", c.Method(), c.Path(), err)
		msg = "internal error"
	}
	body := fiber.Map{"ok": false, "kind": out.Kind, "message": msg}
	if out.Reason != "" {
		body["reason"] = out.Reason
	}
	return c.Status(status).JSON(body)
}

func ok(c *fiber.Ctx, status int, body fiber.Map) error {
	body["ok"] = true
	return c.Status(status).JSON(body)
}

func (s *Server) handleFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"ok": false, "message": fe.Message})
	}
	return s.fail(c, err)
}

// parseBody decodes a JSON body. An empty body decodes to the zero value.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		return engine.ValidationError{Field: "body", Message: "invalid JSON body"}
	}
	return nil
}

// looseString accepts a JSON string, number, or null. Clients send minutes both ways.
type looseString string

func (l *looseString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = looseString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*l = looseString(n.String())
	return nil
}

func (l looseString) String() string { return string(l) }

func parseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > 100 {
		return 100
	}
	return n
}
