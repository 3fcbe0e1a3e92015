package sharesdk

// LoginResponse is returned from POST /user/login. The private key is the
// PEM-encoded (PKCS8) RSA key used to sign every subsequent request; it is
// provisioned by the server and never sent back over the wire.
type LoginResponse struct {
	Token      string `json:"token"`
	PrivateKey string `json:"private_key"`
}

// ShareLink is the server's record of a share link. The id is the map key in
// listings and is server-assigned; the client holds links as read-only
// snapshots only.
type ShareLink struct {
	// Username is the owner of the link.
	Username string `json:"username,omitempty"`

	// FileName is the file the link grants access to.
	FileName string `json:"file_name"`
}

// credentials is the request body for both /user/register and /user/login.
type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
