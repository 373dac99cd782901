package onedrive

import (
	"fmt"
	"regexp"
	"strings"

	"anyonedrive/pkg/models"
)

const (
	// DefaultBaseURL is the anonymous OneDrive API root
	DefaultBaseURL = "https://api.onedrive.com/v1.0"
	// DefaultShareHost is the host of public folder share links
	DefaultShareHost = "1drv.ms"
)

// newSharePattern matches https://<host>/f/<token>[?e=...].
// The token is opaque: everything up to the first "?e=" or the end of the link, less a trailing slash.
func newSharePattern(shareHost string) *regexp.Regexp {
	return regexp.MustCompile(`^https://` + regexp.QuoteMeta(shareHost) + `/f/(.*?)/?(?:\?e=|$)`)
}

// ShareToken extracts the share token from a public folder link
func (s *Service) ShareToken(shareURL string) (string, error) {
	match := s.sharePattern.FindStringSubmatch(strings.TrimSpace(shareURL))
	if len(match) < 2 || match[1] == "" {
		return "", fmt.Errorf("%w: cannot extract share id from %s", ErrInvalidShareURL, shareURL)
	}
	return match[1], nil
}

// ResolveEndpoint builds the children endpoint for a folder.
// Share links resolve to the share root; sub-folders reached through a listing resolve through
// the share they came from.
func (s *Service) ResolveEndpoint(folder models.FolderInfo) (endpoint string, shareToken string, err error) {
	shareToken, err = s.ShareToken(folder.URL)
	if err == nil {
		return fmt.Sprintf("%s/shares/%s/root/children", s.baseURL, shareToken), shareToken, nil
	}

	if folder.ShareToken != "" && folder.ID != "" {
		return fmt.Sprintf("%s/shares/%s/items/%s/children",
			s.baseURL, folder.ShareToken, folder.ID), folder.ShareToken, nil
	}

	return "", "", err
}
