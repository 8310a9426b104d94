package server

import (
	"bytes"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"github.com/matzehuels/waterfall/pkg/buildinfo"
	"github.com/matzehuels/waterfall/pkg/errors"
	pkgio "github.com/matzehuels/waterfall/pkg/io"
	"github.com/matzehuels/waterfall/pkg/pipeline"
	"github.com/matzehuels/waterfall/pkg/render/sink"
)

// Table formats served by /table.
const (
	tableFormatJSON = "json"
	tableFormatXLSX = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// definitionTypes maps request media types to definition file extensions.
var definitionTypes = map[string]string{
	"":                   ".json",
	"application/json":   ".json",
	"application/toml":   ".toml",
	"application/yaml":   ".yaml",
	"application/x-yaml": ".yaml",
	"text/yaml":          ".yaml",
	xlsxContentType:      ".xlsx",
}

type healthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthResponse{Status: "ok", Info: buildinfo.Current()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Formats:    []string{queryOr(q.Get("format"), sink.FormatSVG)},
		Background: q.Get("background"),
	}
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v))
			return
		}
		opts.Scale = scale
	}
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		s.writeError(w, r, err)
		return
	}

	def, err := s.decodeDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), def, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", sink.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

type tableResponse struct {
	Title  string      `json:"title,omitempty"`
	Metric string      `json:"metric"`
	Rows   []pkgio.Row `json:"rows"`
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	format := queryOr(r.URL.Query().Get("format"), tableFormatJSON)
	if format != tableFormatJSON && format != tableFormatXLSX {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat,
			"invalid table format: %q (must be one of: json, xlsx)", format))
		return
	}

	def, err := s.decodeDefinition(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	chart, err := def.Chart()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := def.PlotOptions()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rows, err := pkgio.BuildTable(chart, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == tableFormatXLSX {
		var buf bytes.Buffer
		if err := pkgio.WriteTableXLSX(&buf, rows, chart.MetricName()); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="waterfall.xlsx"`)
		_, _ = w.Write(buf.Bytes())
		return
	}
	render.JSON(w, r, tableResponse{Title: def.Title, Metric: chart.MetricName(), Rows: rows})
}

// decodeDefinition reads a size-limited definition in the request's format.
func (s *Server) decodeDefinition(w http.ResponseWriter, r *http.Request) (*pkgio.Definition, error) {
	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid Content-Type")
		}
		mediaType = mt
	}
	ext, ok := definitionTypes[mediaType]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported Content-Type %q", mediaType)
	}

	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	// Read the body before decoding: some decoders flatten read errors into
	// strings, which would hide a *http.MaxBytesError.
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.Wrap(errors.ErrCodeTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	return pkgio.Read(bytes.NewReader(data), ext)
}

func queryOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`

	status int
}

// Render implements render.Renderer.
func (e *errorResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.status)
	return nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := &errorResponse{
		Code:      errors.GetCode(err),
		Message:   errors.UserMessage(err),
		RequestID: RequestIDFromContext(r.Context()),
		status:    statusFor(err),
	}
	if resp.Code == "" {
		resp.Code = errors.ErrCodeInternal
	}
	switch {
	case resp.status == http.StatusNotImplemented:
		s.logger.Warn("format unavailable", "err", err, "request_id", resp.RequestID)
	case resp.status >= http.StatusInternalServerError:
		s.logger.Error("request failed", "err", err, "request_id", resp.RequestID)
	default:
		s.logger.Debug("rejected request", "err", err, "request_id", resp.RequestID)
	}
	_ = render.Render(w, r, resp)
}

// statusFor maps err to an HTTP status. UNSUPPORTED means a format whose
// converter is missing on this host, so it is reported as 501.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, errors.ErrCodeTooLarge), stderrors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	case errors.IsUserError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
