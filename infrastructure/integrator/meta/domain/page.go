package metadomain

type Page struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PromotePagesResponse struct {
	Data   []Page `json:"data"`
	Paging Paging `json:"paging"`
}

// Find procura a página pelo ID na lista de páginas promovíveis da conta
func (r *PromotePagesResponse) Find(pageID string) (*Page, bool) {
	for i := range r.Data {
		if r.Data[i].ID == pageID {
			return &r.Data[i], true
		}
	}
	return nil, false
}
