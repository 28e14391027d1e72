package domain

// RankingItem is one row of the promoter photo ranking.
type RankingItem struct {
	Nome  string `json:"nome"`
	Total int    `json:"total"`
}

// KPIs are the dashboard indicators returned by GET /insights/kpis.
type KPIs struct {
	FotosHoje            int           `json:"fotos_hoje"`
	PromotoresAtivosHoje int           `json:"promotores_ativos_hoje"`
	FotosMes             int           `json:"fotos_mes"`
	RankingPromotores    []RankingItem `json:"ranking_promotores"`
}

// Question is a free-form question for the AI panel, with optional filters
// narrowing the data the backend feeds the model.
type Question struct {
	Question   string `json:"question"`
	PromotorID int    `json:"promotor_id,omitempty"`
	DataInicio string `json:"data_inicio,omitempty"`
	DataFim    string `json:"data_fim,omitempty"`
}

// Answer is the AI panel response.
type Answer struct {
	Answer   string `json:"answer"`
	Question string `json:"question"`
}
