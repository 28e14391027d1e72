package domain

// ContratoRef is the contract summary nested inside a promoter record.
type ContratoRef struct {
	ID                  int    `json:"id"`
	NomeArquivoOriginal string `json:"nome_arquivo_original"`
	URLAcesso           string `json:"url_acesso"`
}

// Promotor is a field promoter (backend user) as returned by GET /users.
type Promotor struct {
	ID             int           `json:"id"`
	Nome           string        `json:"nome"`
	Email          string        `json:"email"`
	Perfil         Role          `json:"perfil"`
	EmpresaID      int           `json:"empresa_id"`
	IsActive       bool          `json:"is_active"`
	WhatsappNumber string        `json:"whatsapp_number,omitempty"`
	DataCriacao    Timestamp     `json:"data_criacao"`
	Contratos      []ContratoRef `json:"contratos,omitempty"`
}

// CreatePromotorParams are the fields accepted by POST /users.
type CreatePromotorParams struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Perfil         Role   `json:"perfil"`
	EmpresaID      int    `json:"empresa_id"`
	WhatsappNumber string `json:"whatsapp_number,omitempty"`
}

// UpdatePromotorParams are the fields accepted by PUT /users/{id}.
// Nil fields are omitted so the backend applies a partial update.
type UpdatePromotorParams struct {
	Nome           *string `json:"nome,omitempty"`
	Email          *string `json:"email,omitempty"`
	Perfil         *Role   `json:"perfil,omitempty"`
	WhatsappNumber *string `json:"whatsapp_number,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

// Validate checks the create parameters against the backend's documented
// constraints so obviously bad requests fail fast at this layer.
func (p CreatePromotorParams) Validate() error {
	const op = "domain.CreatePromotorParams"
	if len(p.Nome) < 3 {
		return Invalid(op, "Name must be at least 3 characters")
	}
	if p.Email == "" {
		return Invalid(op, "Email is required")
	}
	if len(p.Password) < 6 {
		return Invalid(op, "Password must be at least 6 characters")
	}
	if !p.Perfil.Valid() {
		return Invalid(op, "Profile must be one of ADMIN, GESTOR or OPERADOR")
	}
	return nil
}
