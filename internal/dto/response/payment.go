package response

type CreateIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}
