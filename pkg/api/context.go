package api

import "context"

type contextKey string

const cookieKey contextKey = "forwardCookies"

// WithCookies attaches a raw Cookie header to ctx. Handlers in the notes app
// use this to relay the browser's session cookies to the backend without the
// repositories having to know about HTTP requests.
func WithCookies(ctx context.Context, header string) context.Context {
	if header == "" {
		return ctx
	}
	return context.WithValue(ctx, cookieKey, header)
}

func cookiesFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(cookieKey).(string); ok {
		return v
	}
	return ""
}
