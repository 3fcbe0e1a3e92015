/*
Package sharesdk provides a client SDK for the fileshare service.

# Overview

The fileshare service authenticates every call with two independent factors: a
bearer token issued at login, and a per-request RSA signature computed over a
fresh timestamp and the target URL with a private key that never leaves the
client. This package implements that protocol together with the file and
share-link operations it protects.

# SDKClient vs Session

The package is organized around two main types:

  - SDKClient: unauthenticated operations (register, login) and session resumption
  - Session: signed, authenticated operations (files, share links)

Create an SDKClient, then either log in or resume a stored session:

	client := sharesdk.NewSDKClient("https://files.example.com")
	store := sharesdk.NewFileStore("/home/me/.fileshare/session.json")

	// Fresh login
	session, err := client.Login(ctx, store, "alice", "password")

	// Or pick up where a previous run left off. Returns ErrAuthExpired when
	// there is no stored token or the stored token has expired.
	session, err = client.Resume(store)

Use the Session for everything behind authentication:

	files, err := session.ListFiles(ctx)
	id, err := session.CreateLink(ctx, "notes.txt")
	links, err := session.ListLinks(ctx)
	err = session.RevokeLink(ctx, id)

# Request signing

Every Session call generates a fresh millisecond timestamp, signs
timestamp + "+" + url with the session's private key, and sends three headers:
Authorization (when a token is held), Hash (base64 signature), and Timestamp.
Signatures are never cached or reused; the HTTP method and body are not part of
the signed message, matching the server's verifier.

# Error handling

Failures map onto a small taxonomy:

  - ErrAuthExpired: no usable session; log in again
  - ErrNoPrivateKey: session has no signing key; treat as ErrAuthExpired
  - ErrPermissionDenied: the server answered 403
  - *RequestError: other 4xx, carrying the server's message when it sent one
  - *TransportError: network failure or an unclassified server response

The SDK never retries and never mutates the session on failure; retry policy
belongs to the caller.

# Consistency

Share-link listings are snapshots. A listing issued while a revoke is still in
flight can return the revoked link; see ListLinks. Callers refetch after
mutations instead of patching local state.
*/
package sharesdk
