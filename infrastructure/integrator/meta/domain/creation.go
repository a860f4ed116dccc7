package metadomain

// CreateResponse é a resposta das chamadas de criação (campanha, conjunto de anúncios, anúncio)
type CreateResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success,omitempty"`
}

type CreativeRef struct {
	ID string `json:"id"`
}

// AdWithCreative é a leitura de um anúncio com o criativo criado junto dele
type AdWithCreative struct {
	ID       string       `json:"id"`
	Creative *CreativeRef `json:"creative"`
}
