package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"mailtriage/internal/app"
	"mailtriage/internal/extract"
	"mailtriage/internal/model"
	"mailtriage/internal/transport/http/response"
)

const maxUploadSize = 10 << 20 // 10 MB per file

// TriageProcessor is the slice of the triage service the handler needs.
type TriageProcessor interface {
	Process(ctx context.Context, in model.Input) (*model.Result, error)
	ProcessBatch(ctx context.Context, files []model.FileUpload) ([]model.BatchItem, error)
}

type TriageHandler struct {
	service TriageProcessor
}

func NewTriageHandler(service TriageProcessor) *TriageHandler {
	return &TriageHandler{service: service}
}

// Process accepts a multipart form with a "text" field or a "file" upload
// (.txt or .pdf) and returns the category, the generated reply, and an
// excerpt of the extracted text.
func (h *TriageHandler) Process(c *gin.Context) {
	input := model.Input{Text: c.PostForm("text")}

	if fileHeader, err := c.FormFile("file"); err == nil && fileHeader != nil {
		upload, ok := h.readUpload(c, fileHeader)
		if !ok {
			return
		}
		input.File = upload
	}

	result, err := h.service.Process(c.Request.Context(), input)
	if err != nil {
		writeProcessError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ProcessBatch accepts a multipart form with repeated "files" uploads and
// triages each one, isolating per-file failures.
func (h *TriageHandler) ProcessBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Envio inválido: esperado formulário multipart.")
		return
	}

	fileHeaders := form.File["files"]
	uploads := make([]model.FileUpload, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		upload, ok := h.readUpload(c, fileHeader)
		if !ok {
			return
		}
		uploads = append(uploads, *upload)
	}

	items, err := h.service.ProcessBatch(c.Request.Context(), uploads)
	if err != nil {
		writeProcessError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.BatchResult{Results: items})
}

// readUpload reads one multipart file fully into memory. Writes the error
// response itself and reports success through the bool.
func (h *TriageHandler) readUpload(c *gin.Context, fileHeader *multipart.FileHeader) (*model.FileUpload, bool) {
	if fileHeader.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			"Arquivo muito grande (máximo 10MB): "+fileHeader.Filename)
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			"Não foi possível abrir o arquivo enviado: "+fileHeader.Filename)
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest,
			"Não foi possível ler o arquivo enviado: "+fileHeader.Filename)
		return nil, false
	}

	return &model.FileUpload{Filename: fileHeader.Filename, Data: data}, true
}

func writeProcessError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, app.ErrNoInput):
		response.Error(c, http.StatusBadRequest, response.CodeNoInput,
			"Nenhum texto ou arquivo enviado.")
	case errors.Is(err, app.ErrNoFiles):
		response.Error(c, http.StatusBadRequest, response.CodeNoInput,
			"Nenhum arquivo enviado.")
	case errors.Is(err, app.ErrTooManyFiles):
		response.Error(c, http.StatusBadRequest, response.CodeTooManyFiles,
			"Número de arquivos acima do limite permitido.")
	case errors.Is(err, extract.ErrUnsupportedFormat):
		response.Error(c, http.StatusBadRequest, response.CodeUnsupportedFormat,
			"Formato não suportado. Envie arquivos .txt ou .pdf.")
	case errors.Is(err, extract.ErrEmptyContent):
		response.Error(c, http.StatusBadRequest, response.CodeEmptyContent,
			"O conteúdo enviado está vazio após a extração.")
	default:
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer,
			"Erro interno ao processar o email.")
	}
}
