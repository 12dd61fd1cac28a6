package json

type AuthRS struct {
	Type        string `json:"type"`
	Username    string `json:"username"`
	TokenType   string `json:"token_type"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	State       string `json:"state"`
}
