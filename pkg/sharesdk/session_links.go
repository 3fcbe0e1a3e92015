package sharesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// CreateLink asks the server to issue a share link for fileName and returns
// the new link id. The call does not refresh any link listing; the server
// offers no read-after-write guarantee here, so callers refetch with
// ListLinks when they need the updated set. 403 maps to ErrPermissionDenied.
func (s *Session) CreateLink(ctx context.Context, fileName string) (string, error) {
	body, err := json.Marshal(struct {
		FileName string `json:"file_name"`
	}{FileName: fileName})
	if err != nil {
		return "", fmt.Errorf("sharesdk: failed to marshal request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
	}

	resp, err := s.doSignedRequest(ctx, http.MethodPut, "/link", bytes.NewReader(body), headers)
	if err != nil {
		return "", err
	}

	raw, err := readSuccessBody(resp)
	if err != nil {
		return "", err
	}

	// The server answers with the bare link id, either as a JSON string or as
	// plain text depending on version. Accept both.
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		id = strings.TrimSpace(string(raw))
	}
	if id == "" {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("empty link id in response")}
	}

	return id, nil
}

// ListLinks fetches every share link visible to this session, keyed by link
// id. The listing is not scoped by file server-side; use FilterByFile for a
// per-file view.
//
// The returned map is a snapshot: it is stale the moment any link is created
// or revoked, and a listing issued while a revoke is still in flight can
// legitimately include the revoked id. That ordering is decided by network
// completion order and is not guaranteed; callers refetch after mutations
// settle rather than patching the map.
func (s *Session) ListLinks(ctx context.Context) (map[string]ShareLink, error) {
	resp, err := s.doSignedRequest(ctx, http.MethodGet, "/links", nil, nil)
	if err != nil {
		return nil, err
	}

	var links map[string]ShareLink
	if err := decodeJSON(resp, &links); err != nil {
		return nil, err
	}

	return links, nil
}

// RevokeLink deletes a share link by id. On success any locally held listing
// is stale; refetch with ListLinks to reconcile with concurrent changes from
// other sessions.
func (s *Session) RevokeLink(ctx context.Context, id string) error {
	resp, err := s.doSignedRequest(ctx, http.MethodDelete, "/link/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}

	return checkStatus(resp)
}

// FilterByFile returns the subset of links that point at fileName. The filter
// is client-side; the server only serves the full set.
func FilterByFile(links map[string]ShareLink, fileName string) map[string]ShareLink {
	matched := make(map[string]ShareLink)
	for id, link := range links {
		if link.FileName == fileName {
			matched[id] = link
		}
	}
	return matched
}
