package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/ukaji3/xlsxcsv-go/pkg/xlsxcsv"
	"go.uber.org/zap"
)

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))

	opts, err := s.requestOptions(r)
	if err != nil {
		s.metrics.conversions.WithLabelValues(resultInvalid).Inc()
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts.Logger = logger

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes))
	if err != nil {
		s.metrics.conversions.WithLabelValues(resultInvalid).Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "workbook too large")
			return
		}
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	logger.Debug("convert request", zap.Int("bytes", len(data)))

	start := time.Now()
	out, err := xlsxcsv.ConvertToCSV(bytes.NewReader(data), opts)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		var openErr *xlsxcsv.OpenError
		if errors.As(err, &openErr) {
			s.metrics.conversions.WithLabelValues(resultInvalid).Inc()
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("conversion failed", zap.Error(err))
		s.metrics.conversions.WithLabelValues(resultError).Inc()
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.conversions.WithLabelValues(resultOK).Inc()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		logger.Warn("write response failed", zap.Error(err))
	}
}

// requestOptions applies query overrides to the server's baseline options.
func (s *Server) requestOptions(r *http.Request) (xlsxcsv.Options, error) {
	opts := s.opts
	q := r.URL.Query()
	if v := q.Get("separator"); v != "" {
		opts.Separator = v
	}
	if v := q.Get("escape"); v != "" {
		opts.Escape = xlsxcsv.EscapeStyle(v)
	}
	if v := q.Get("bounds"); v != "" {
		opts.Bounds = xlsxcsv.BoundsMode(v)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
