package entity

// AuthToken is one token set issued by the identity provider for a login or
// refresh call. Immutable once constructed, never persisted locally;
// discarded after being serialized into a response.
type AuthToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	TokenType    string
}
