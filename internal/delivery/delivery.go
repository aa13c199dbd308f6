// Package delivery holds the long-running entry points started by the fx app.
package delivery

import "context"

// Delivery is a long-running component started once the fx graph is built.
// Serve blocks until the component stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
