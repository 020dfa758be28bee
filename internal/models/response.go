package models

import "github.com/gofiber/fiber/v2"

// Envelope is the uniform response wrapper for every endpoint:
// {ok:true, data:...} on success, {ok:false, error:..., code:...} on failure.
type Envelope struct {
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// RespondOK writes a 200 success envelope.
func RespondOK(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{OK: true, Data: data})
}

// RespondCreated writes a 201 success envelope.
func RespondCreated(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{OK: true, Data: data})
}

// RespondWithError writes an error envelope with the status carried by the
// AppError. Unknown errors become a generic 500; the cause never reaches
// the client.
func RespondWithError(c *fiber.Ctx, err error) error {
	appErr := AsAppError(err)
	return c.Status(appErr.Status).JSON(Envelope{
		OK:    false,
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}
