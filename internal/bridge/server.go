// Package bridge exposes the spreadsheet, QR and image commands over HTTP so
// a front end can call them as POST /invoke/<command> with a JSON body.
package bridge

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/sheetqr/sheetqr-go/pkg/imagestore"
	"github.com/sheetqr/sheetqr-go/pkg/qrcode"
	"github.com/sheetqr/sheetqr-go/pkg/sheetqr"
)

// Server handles command invocations.
type Server struct {
	log      *zap.Logger
	opts     sheetqr.Options
	qrSize   int
	validate *validator.Validate
}

// NewServer returns a Server using opts for every extraction.
func NewServer(log *zap.Logger, opts sheetqr.Options, qrSize int) *Server {
	return &Server{
		log:      log,
		opts:     opts,
		qrSize:   qrSize,
		validate: validator.New(),
	}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, response{Data: "ok"})
	})

	r.Route("/invoke", func(r chi.Router) {
		r.Post("/get_sheet_names", s.getSheetNames)
		r.Post("/get_sheet_data", s.getSheetData)
		r.Post("/get_sheet_summary", s.getSheetSummary)
		r.Post("/generate_qrcode", s.generateQRCode)
		r.Post("/save_image", s.saveImage)
	})
	return r
}

type response struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type fileArgs struct {
	FilePath string `json:"filePath" validate:"required"`
}

type sheetArgs struct {
	FilePath  string `json:"filePath" validate:"required"`
	SheetName string `json:"sheetName" validate:"required"`
}

type qrArgs struct {
	Value string `json:"value" validate:"required"`
	Size  int    `json:"size" validate:"gte=0"`
}

type saveImageArgs struct {
	Request imagestore.SaveImageRequest `json:"request"`
}

func (s *Server) getSheetNames(w http.ResponseWriter, r *http.Request) {
	var args fileArgs
	if !s.decode(w, r, &args) {
		return
	}
	names, err := sheetqr.ListSheetNames(args.FilePath, s.opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: names})
}

// getSheetData returns the records as a JSON string, the shape the front
// end parses itself.
func (s *Server) getSheetData(w http.ResponseWriter, r *http.Request) {
	var args sheetArgs
	if !s.decode(w, r, &args) {
		return
	}
	out, err := sheetqr.ExtractSheetJSON(args.FilePath, args.SheetName, s.opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: out})
}

func (s *Server) getSheetSummary(w http.ResponseWriter, r *http.Request) {
	var args fileArgs
	if !s.decode(w, r, &args) {
		return
	}
	wb, err := sheetqr.SummarizeSheets(args.FilePath, s.opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: wb})
}

func (s *Server) generateQRCode(w http.ResponseWriter, r *http.Request) {
	var args qrArgs
	if !s.decode(w, r, &args) {
		return
	}
	size := args.Size
	if size == 0 {
		size = s.qrSize
	}
	svg, err := qrcode.SVG(args.Value, size)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: svg})
}

func (s *Server) saveImage(w http.ResponseWriter, r *http.Request) {
	var args saveImageArgs
	if !s.decode(w, r, &args) {
		return
	}
	msg, err := imagestore.Save(args.Request)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: msg})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.fail(w, r, &invalidArgsError{err})
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		s.fail(w, r, &invalidArgsError{err})
		return false
	}
	return true
}

type invalidArgsError struct{ err error }

func (e *invalidArgsError) Error() string { return "invalid arguments: " + e.err.Error() }
func (e *invalidArgsError) Unwrap() error { return e.err }

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := classify(err)
	s.log.Warn("command failed",
		zap.String("path", r.URL.Path),
		zap.String("kind", kind),
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.Error(err),
	)
	writeJSON(w, status, response{Error: &errorDetail{Kind: kind, Message: err.Error()}})
}

func classify(err error) (int, string) {
	var invalid *invalidArgsError
	var verrs validator.ValidationErrors
	var corrupt base64.CorruptInputError
	switch {
	case errors.As(err, &invalid), errors.As(err, &verrs), errors.Is(err, qrcode.ErrEmptyValue):
		return http.StatusBadRequest, "invalid_arguments"
	case errors.Is(err, imagestore.ErrOutsideDirectory), errors.As(err, &corrupt):
		return http.StatusBadRequest, "invalid_arguments"
	}

	switch kind := sheetqr.KindOf(err); kind {
	case sheetqr.KindOpen, sheetqr.KindSheetNotFound:
		return http.StatusNotFound, string(kind)
	case sheetqr.KindEmptyHeader, sheetqr.KindRead:
		return http.StatusUnprocessableEntity, string(kind)
	case sheetqr.KindSerialization:
		return http.StatusInternalServerError, string(kind)
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
