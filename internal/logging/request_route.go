package logging

import "context"

type routeKey struct{}

type routeHolder struct {
	name string
}

// WithRouteSlot returns a context in which SetRoute can record the matched
// route, and a function reading it back. The route reads "unmatched" until set.
func WithRouteSlot(ctx context.Context) (context.Context, func() string) {
	h := &routeHolder{name: "unmatched"}
	return context.WithValue(ctx, routeKey{}, h), func() string { return h.name }
}

// SetRoute records the matched route name. It is a no-op without a slot.
func SetRoute(ctx context.Context, name string) {
	if h, ok := ctx.Value(routeKey{}).(*routeHolder); ok {
		h.name = name
	}
}
