package forward

// Error codes returned for undecodable requests.
const (
	codeInvalidContentType = "INVALID_CONTENT_TYPE"
	codeInvalidJSONBody    = "INVALID_JSON_BODY"
	codeInvalidQueryParams = "INVALID_QUERY_PARAMS"
	codeInvalidHTTPMethod  = "INVALID_HTTP_METHOD"
)
