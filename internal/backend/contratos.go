package backend

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/mustafa-app/console/internal/domain"
)

// ListContratos returns all uploaded contracts for the caller's company.
func (c *Client) ListContratos(ctx context.Context) ([]domain.Contrato, error) {
	const op = "backend.ListContratos"

	contratos := []domain.Contrato{}
	if err := c.doJSON(ctx, op, http.MethodGet, "/contratos", nil, nil, "", &contratos); err != nil {
		return nil, err
	}
	return contratos, nil
}

// UploadContrato sends a contract file plus promoter metadata as
// multipart/form-data. The caller is responsible for capping the file size;
// the upload is buffered so the request carries a Content-Length.
func (c *Client) UploadContrato(ctx context.Context, upload domain.ContratoUpload) (*domain.Contrato, error) {
	const op = "backend.UploadContrato"

	if err := upload.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("nome_promotor", upload.NomePromotor); err != nil {
		return nil, domain.Internal(err, op, "Failed to encode upload")
	}
	if err := writer.WriteField("cpf_promotor", upload.CPFPromotor); err != nil {
		return nil, domain.Internal(err, op, "Failed to encode upload")
	}

	part, err := writer.CreateFormFile("file", upload.Filename)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to encode upload")
	}
	if _, err := io.Copy(part, upload.File); err != nil {
		return nil, domain.Internal(err, op, "Failed to read the uploaded file")
	}
	if err := writer.Close(); err != nil {
		return nil, domain.Internal(err, op, "Failed to encode upload")
	}

	var created domain.Contrato
	if err := c.doJSON(ctx, op, http.MethodPost, "/contratos/upload", nil, &buf, writer.FormDataContentType(), &created); err != nil {
		return nil, err
	}
	return &created, nil
}
