// ABOUTME: Import and export endpoints for a session's feed list
// ABOUTME: Accepts CSV, Excel and OPML uploads and serves OPML or CSV downloads

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"feedlist-api/api/dto/mappers"
	"feedlist-api/api/dto/responses"
	"feedlist-api/core/exporter"
	"github.com/danielgtaylor/huma/v2"
)

// maxImportBytes bounds the size of an uploaded feed list
const maxImportBytes = 10 << 20

// TransferHandler handles feed list import and export
type TransferHandler struct {
	sessions SessionStore
}

// NewTransferHandler creates a new import/export handler
func NewTransferHandler(sessions SessionStore) *TransferHandler {
	return &TransferHandler{sessions: sessions}
}

// RegisterRoutes registers import and export routes
func (h *TransferHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "importFeeds",
		Method:       http.MethodPost,
		Path:         "/sessions/{sessionID}/import",
		Summary:      "Import feeds from a file",
		Description:  "The raw file is sent as the request body. The filename extension selects the parser: csv, xlsx, xls, opml or xml.",
		Tags:         []string{"Transfer"},
		MaxBodyBytes: maxImportBytes,
	}, h.Import)

	huma.Register(api, huma.Operation{
		OperationID: "exportOPML",
		Method:      http.MethodGet,
		Path:        "/sessions/{sessionID}/export/opml",
		Summary:     "Export feeds as OPML",
		Tags:        []string{"Transfer"},
	}, h.ExportOPML)

	huma.Register(api, huma.Operation{
		OperationID: "exportCSV",
		Method:      http.MethodGet,
		Path:        "/sessions/{sessionID}/export/csv",
		Summary:     "Export feeds as CSV",
		Tags:        []string{"Transfer"},
	}, h.ExportCSV)
}

// ImportInput defines the input for a file import
type ImportInput struct {
	SessionID string `path:"sessionID" doc:"Session identifier"`
	Filename  string `query:"filename" required:"true" doc:"Original file name"`
	RawBody   []byte
}

// ImportOutput lists the imported entries
type ImportOutput struct {
	Body responses.ImportResponse
}

// ExportOutput is a file download
type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// Import handles POST /sessions/{sessionID}/import
func (h *TransferHandler) Import(ctx context.Context, input *ImportInput) (*ImportOutput, error) {
	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}

	imported, err := s.Import(input.Filename, input.RawBody)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &ImportOutput{Body: mappers.ToImportResponse(imported)}, nil
}

// ExportOPML handles GET /sessions/{sessionID}/export/opml
func (h *TransferHandler) ExportOPML(ctx context.Context, input *SessionPathInput) (*ExportOutput, error) {
	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}

	data, err := s.ExportOPML()
	if err != nil {
		return nil, toHumaError(err)
	}
	return download(exporter.OPMLContentType, exporter.OPMLFilename, data), nil
}

// ExportCSV handles GET /sessions/{sessionID}/export/csv
func (h *TransferHandler) ExportCSV(ctx context.Context, input *SessionPathInput) (*ExportOutput, error) {
	s, err := h.sessions.Get(input.SessionID)
	if err != nil {
		return nil, toHumaError(err)
	}

	data, err := s.ExportCSV()
	if err != nil {
		return nil, toHumaError(err)
	}
	return download(exporter.CSVContentType, exporter.CSVFilename, data), nil
}

func download(contentType, filename string, data []byte) *ExportOutput {
	return &ExportOutput{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", filename),
		Body:               data,
	}
}
