package ctxutil

import "context"

type requestMetaKey struct{}

// RequestMeta correlates one HTTP request across logs, spans and responses.
type RequestMeta struct {
	TraceID   string
	RequestID string
}

func WithRequestMeta(ctx context.Context, m RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, m)
}

func GetRequestMeta(ctx context.Context) (RequestMeta, bool) {
	if ctx == nil {
		return RequestMeta{}, false
	}
	m, ok := ctx.Value(requestMetaKey{}).(RequestMeta)
	return m, ok
}

// RequestID is "" outside an HTTP request.
func RequestID(ctx context.Context) string {
	m, _ := GetRequestMeta(ctx)
	return m.RequestID
}
