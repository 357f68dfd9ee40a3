package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"mailtriage/internal/app"
	"mailtriage/internal/classify"
	"mailtriage/internal/model"
	"mailtriage/internal/transport/http/response"
)

type keywordClassifier struct{}

func (keywordClassifier) Classify(text string) classify.Prediction {
	if strings.Contains(strings.ToLower(text), "obrigado") {
		return classify.Prediction{Category: model.CategoryUnproductive, Score: -1}
	}
	return classify.Prediction{Category: model.CategoryProductive, Score: 1}
}

type staticGenerator struct{}

func (staticGenerator) Generate(_ context.Context, category model.Category, _ string) string {
	if category == model.CategoryProductive {
		return "Vamos verificar sua solicitação."
	}
	return "Agradecemos a mensagem."
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := app.NewTriageService(keywordClassifier{}, staticGenerator{}, nil, 300, 6)
	triage := NewTriageHandler(service)

	router := gin.New()
	router.POST("/process", triage.Process)
	router.POST("/process_batch", triage.ProcessBatch)
	return router
}

func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("WriteField() error = %v", err)
		}
	}
	for filename, data := range files {
		field := "file"
		if strings.HasPrefix(filename, "batch:") {
			field = "files"
			filename = strings.TrimPrefix(filename, "batch:")
		}
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return &body, writer.FormDataContentType()
}

func TestProcessWithText(t *testing.T) {
	router := newTestRouter()
	body, contentType := multipartBody(t, map[string]string{"text": "Preciso de ajuda com o acesso"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var result model.Result
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Category != model.CategoryProductive {
		t.Fatalf("categoria = %q", result.Category)
	}
	if result.Reply != "Vamos verificar sua solicitação." {
		t.Fatalf("resposta = %q", result.Reply)
	}
	if result.Excerpt != "Preciso de ajuda com o acesso" {
		t.Fatalf("texto_extraido = %q", result.Excerpt)
	}
}

func TestProcessWithTxtUpload(t *testing.T) {
	router := newTestRouter()
	body, contentType := multipartBody(t, nil, map[string][]byte{
		"email.txt": []byte("Muito obrigado pela ajuda, tudo certo!"),
	})

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var result model.Result
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Category != model.CategoryUnproductive {
		t.Fatalf("categoria = %q", result.Category)
	}
}

func TestProcessWithoutInput(t *testing.T) {
	router := newTestRouter()
	body, contentType := multipartBody(t, map[string]string{"text": "   "}, nil)

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}

	var envelope response.APIResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Code != response.CodeNoInput {
		t.Fatalf("code = %d", envelope.Code)
	}
}

func TestProcessUnsupportedFormat(t *testing.T) {
	router := newTestRouter()
	body, contentType := multipartBody(t, nil, map[string][]byte{"email.docx": []byte("x")})

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}

	var envelope response.APIResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Code != response.CodeUnsupportedFormat {
		t.Fatalf("code = %d", envelope.Code)
	}
}

func TestProcessEmptyFile(t *testing.T) {
	router := newTestRouter()
	body, contentType := multipartBody(t, nil, map[string][]byte{"vazio.txt": []byte("   \n")})

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}

	var envelope response.APIResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Code != response.CodeEmptyContent {
		t.Fatalf("code = %d", envelope.Code)
	}
}

func TestProcessBatchMixedFiles(t *testing.T) {
	router := newTestRouter()
	body, contentType := multipartBody(t, nil, map[string][]byte{
		"batch:pedido.txt": []byte("Preciso do extrato da minha conta"),
		"batch:ruim.docx":  []byte("x"),
	})

	req := httptest.NewRequest(http.MethodPost, "/process_batch", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var batch model.BatchResult
	if err := json.NewDecoder(res.Body).Decode(&batch); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(batch.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(batch.Results))
	}

	byName := make(map[string]model.BatchItem, len(batch.Results))
	for _, item := range batch.Results {
		byName[item.Filename] = item
	}
	if item := byName["pedido.txt"]; item.Error != "" || item.Category != model.CategoryProductive {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item := byName["ruim.docx"]; item.Error == "" {
		t.Fatalf("expected per-file error, got %+v", item)
	}
}

func TestProcessBatchWithoutFiles(t *testing.T) {
	router := newTestRouter()
	body, contentType := multipartBody(t, map[string]string{"text": "sem arquivos"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/process_batch", body)
	req.Header.Set("Content-Type", contentType)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestProcessBatchTooManyFiles(t *testing.T) {
	router := newTestRouter()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for i := 0; i < 7; i++ {
		part, err := writer.CreateFormFile("files", "email.txt")
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := part.Write([]byte("Preciso de ajuda")); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/process_batch", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}

	var envelope response.APIResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Code != response.CodeTooManyFiles {
		t.Fatalf("code = %d", envelope.Code)
	}
}
