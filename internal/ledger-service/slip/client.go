package slip

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Suggestion é o palpite de aposta extraído de um print de bilhete pelo
// leitor externo. É só um pré-preenchimento de formulário: o usuário revisa
// antes de virar aposta de verdade, e o serviço nunca persiste isso direto.
type Suggestion struct {
	Event string `json:"event"`
	Odds  string `json:"odds"` // texto como veio do bilhete, o cliente confirma
	Stake string `json:"stake"`
	Book  string `json:"book"`
	Date  string `json:"date"`
	Note  string `json:"note,omitempty"`
}

// ErrDisabled indica que nenhum leitor de bilhetes foi configurado.
var ErrDisabled = errors.New("slip reader not configured")

// Client fala com o serviço externo de OCR/visão que lê prints de bilhete.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Read envia a imagem e devolve a sugestão não revisada.
func (c *Client) Read(ctx context.Context, imageBase64 string) (Suggestion, error) {
	if c.BaseURL == "" {
		return Suggestion{}, ErrDisabled
	}
	body, _ := json.Marshal(map[string]string{"imageBase64": imageBase64})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/read-slip", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return Suggestion{}, err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return Suggestion{}, fmt.Errorf("slip reader http %d", res.StatusCode)
	}

	var out Suggestion
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return Suggestion{}, err
	}
	return out, nil
}
