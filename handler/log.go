package handler

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// accessLog writes one line per request once the response is complete.
func (h *HTTPHandler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)
		h.logRequest(r, rw.statusCode, time.Since(start))
	})
}

func (h *HTTPHandler) logRequest(req *http.Request, status int, elapsed time.Duration) {
	h.log.WithFields(logrus.Fields{
		"request_id": chimiddleware.GetReqID(req.Context()),
		"elapsed":    elapsed.String(),
	}).Infof("%s -- %s -- %s -- %d", req.RemoteAddr, req.Method, req.URL.Path, status)
}

func (h *HTTPHandler) logAndReturnError(w http.ResponseWriter, req *http.Request, httpResponseStr string, code int, consoleStr ...string) {
	entry := h.log.WithField("request_id", chimiddleware.GetReqID(req.Context()))
	// consoleStr is optional.
	if len(consoleStr) > 0 {
		entry.Errorln(consoleStr[0])
	} else {
		entry.Errorln(httpResponseStr)
	}
	http.Error(w, httpResponseStr, code)
}
