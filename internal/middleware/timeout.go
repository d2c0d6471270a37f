package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/gemstonesdb/internal/types"
)

// DBTimeout bounds the user context handed to database calls for the rest of the chain.
// When the deadline passes the response is replaced by a 504 CustomError.
func DBTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()

		c.SetUserContext(ctx)

		err := c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return &types.CustomError{
				Code:    fiber.StatusGatewayTimeout,
				Message: "database did not answer within " + d.String(),
				Type:    "timeout",
			}
		}
		return err
	}
}
