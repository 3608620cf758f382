// Package forward provides helper functions for forwarding HTTP requests to use cases.
package forward

const (
	codeInvalidContentType = "INVALID_CONTENT_TYPE"
	codeInvalidJSONBody    = "INVALID_JSON_BODY"
	codeInvalidQueryParams = "INVALID_QUERY_PARAMS"
	codeInvalidPathParams  = "INVALID_PATH_PARAMS"
	codeInvalidHTTPMethod  = "INVALID_HTTP_METHOD"
)
