package domain

import "io"

// Contrato is a signed contract record as returned by the backend.
type Contrato struct {
	ID                  int       `json:"id"`
	NomePromotor        string    `json:"nome_promotor"`
	CPFPromotor         string    `json:"cpf_promotor"`
	NomeArquivoOriginal string    `json:"nome_arquivo_original"`
	URLAcesso           string    `json:"url_acesso"`
	DataUpload          Timestamp `json:"data_upload"`
	UsuarioID           int       `json:"usuario_id"`
}

// ContratoUpload carries a contract file to POST /contratos/upload.
type ContratoUpload struct {
	NomePromotor string
	CPFPromotor  string
	Filename     string
	ContentType  string
	File         io.Reader
}

// contractContentTypes is the allowlist enforced before forwarding an upload.
var contractContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// Validate checks the upload metadata. The file content itself is the
// backend's responsibility.
func (u ContratoUpload) Validate() error {
	const op = "domain.ContratoUpload"
	if u.NomePromotor == "" {
		return Invalid(op, "Promoter name is required")
	}
	if u.CPFPromotor == "" {
		return Invalid(op, "Promoter CPF is required")
	}
	if u.Filename == "" {
		return Invalid(op, "A file is required")
	}
	if !contractContentTypes[u.ContentType] {
		return Invalid(op, "Only PDF, JPEG or PNG files are accepted")
	}
	return nil
}
