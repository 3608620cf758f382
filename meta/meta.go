// Package meta carries request metadata through context.Context.
package meta

import "context"

// ContextKey is the type of keys used for metadata context values.
type ContextKey string

const (
	// TraceID correlates logs and spans of one request.
	TraceID ContextKey = "trace_id"
	// RequestID is the client supplied X-Request-ID header, if any.
	RequestID ContextKey = "request_id"
	// OperationID is the identifier of the use case handling the request.
	OperationID ContextKey = "operation_id"

	IPAddress      ContextKey = "ip_address"
	UserAgent      ContextKey = "user_agent"
	AcceptLanguage ContextKey = "accept-language"

	ServiceName    ContextKey = "service_name"
	ServiceVersion ContextKey = "service_version"
)

//nolint:gochecknoglobals // fixed key order keeps log output stable
var allKeys = []ContextKey{
	TraceID,
	RequestID,
	OperationID,
	IPAddress,
	UserAgent,
	AcceptLanguage,
	ServiceName,
	ServiceVersion,
}

// InjectMetaToContext returns a context carrying every non-empty value of data.
func InjectMetaToContext(ctx context.Context, data map[ContextKey]string) context.Context {
	for k, v := range data {
		if v != "" {
			ctx = context.WithValue(ctx, k, v) //nolint:fatcontext // finite number of keys
		}
	}
	return ctx
}

// ExtractMetaFromContext returns all known non-empty metadata values of ctx.
func ExtractMetaFromContext(ctx context.Context) map[ContextKey]string {
	data := make(map[ContextKey]string)
	for _, k := range allKeys {
		if v := Find(ctx, k); v != "" {
			data[k] = v
		}
	}
	return data
}

// Find returns the metadata value stored under key, or an empty string.
func Find(ctx context.Context, key ContextKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}
