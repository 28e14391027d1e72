package handler

import (
	"net/http"

	"github.com/mustafa-app/console/internal/domain"
	"github.com/mustafa-app/console/internal/metrics"
)

// maxContratoSize caps contract uploads at 20 MB, matching the backend.
const maxContratoSize = 20 << 20

// ListContratos handles GET /api/contratos.
func (h *Handler) ListContratos(w http.ResponseWriter, r *http.Request) {
	client, ok := h.authedClient(w, r)
	if !ok {
		return
	}

	contratos, err := client.ListContratos(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.writeJSON(w, http.StatusOK, contratos)
}

// UploadContrato handles POST /api/contratos.
//
// Expects multipart/form-data with fields nome_promotor, cpf_promotor and
// a PDF, JPEG or PNG file. The size cap is enforced before the body is
// read in full.
func (h *Handler) UploadContrato(w http.ResponseWriter, r *http.Request) {
	const op = "Handler.UploadContrato"

	client, ok := h.authedClient(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxContratoSize)
	if err := r.ParseMultipartForm(maxContratoSize); err != nil {
		metrics.ContratoUploads.WithLabelValues("rejected").Inc()
		ErrorResponse(w, r, h.logger, domain.Errorf(domain.ETOOLARGE, op, "The file exceeds the 20 MB limit"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.ContratoUploads.WithLabelValues("rejected").Inc()
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "A contract file is required"))
		return
	}
	defer file.Close()

	upload := domain.ContratoUpload{
		NomePromotor: r.FormValue("nome_promotor"),
		CPFPromotor:  r.FormValue("cpf_promotor"),
		Filename:     header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		File:         file,
	}

	created, err := client.UploadContrato(r.Context(), upload)
	if err != nil {
		metrics.ContratoUploads.WithLabelValues("failed").Inc()
		ErrorResponse(w, r, h.logger, err)
		return
	}

	metrics.ContratoUploads.WithLabelValues("success").Inc()
	h.logger.Info("contrato uploaded", "id", created.ID, "filename", created.NomeArquivoOriginal)
	h.writeJSON(w, http.StatusCreated, created)
}
