package domain

// TokenPair is what a successful login returns: a short-lived access token
// and a long-lived refresh token, both JWTs signed with independent secrets.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
