package domain

import (
	"net/url"
	"strconv"
	"time"
)

// Foto is a promoter photo record as returned by GET /fotos.
type Foto struct {
	ID         int       `json:"id"`
	URLFoto    string    `json:"url_foto"`
	Legenda    string    `json:"legenda,omitempty"`
	Loja       string    `json:"loja,omitempty"`
	Cidade     string    `json:"cidade,omitempty"`
	PromotorID int       `json:"promotor_id"`
	EmpresaID  int       `json:"empresa_id"`
	DataEnvio  Timestamp `json:"data_envio"`
}

// FotoFilter narrows a photo listing. Zero values mean "not filtered".
// Dates are calendar days; the backend expands them to day boundaries.
type FotoFilter struct {
	PromotorID int
	DataInicio time.Time
	DataFim    time.Time
	Busca      string
}

// dateLayout is the backend's query-parameter date format.
const dateLayout = "2006-01-02"

// Query encodes the filter as backend query parameters, omitting unset fields.
func (f FotoFilter) Query() url.Values {
	q := url.Values{}
	if f.PromotorID > 0 {
		q.Set("promotor_id", strconv.Itoa(f.PromotorID))
	}
	if !f.DataInicio.IsZero() {
		q.Set("data_inicio", f.DataInicio.Format(dateLayout))
	}
	if !f.DataFim.IsZero() {
		q.Set("data_fim", f.DataFim.Format(dateLayout))
	}
	if f.Busca != "" {
		q.Set("busca", f.Busca)
	}
	return q
}

// ParseDate parses a YYYY-MM-DD filter value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
