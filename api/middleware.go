package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/israelmw/QuickAudit/sanitize"
	"go.uber.org/zap"
)

// loggerMiddleware logs the end of each request, along with what was requested,
// the response status and how long it took to return.
func loggerMiddleware(l *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			defer func() {
				path := sanitize.NoControl(r.URL.Path)
				l.Info(fmt.Sprintf("[%s] %s", r.Method, path),
					zap.String("proto", r.Proto),
					zap.String("path", path),
					zap.Duration("latency", time.Since(t1)),
					zap.Int("status", ww.Status()),
					zap.Int("size", ww.BytesWritten()),
					zap.String("requestID", middleware.GetReqID(r.Context())))
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
