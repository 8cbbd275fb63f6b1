package handler

const (
	pingPath        = "/ping"
	invocationsPath = "/invocations"

	// pingBody is the liveness answer the hosting platform expects.
	pingBody        = "\n"
	pingContentType = "application/json"

	defaultContentType = "application/octet-stream"

	pingMethods        = "GET, HEAD, OPTIONS"
	invocationsMethods = "OPTIONS, POST"

	// statusClientClosedRequest is nginx's code for a client that went away
	// before the answer was ready. It only reaches logs and metrics.
	statusClientClosedRequest = 499
)
