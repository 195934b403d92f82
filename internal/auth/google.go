package auth

import (
	"net/url"
	"strings"
)

// GoogleStartURL pointe vers la route de l'API qui lance la redirection Google.
// L'API renvoie ensuite le navigateur sur redirect avec ?token=...
func GoogleStartURL(apiBaseURL, redirect string) string {
	u := strings.TrimRight(apiBaseURL, "/") + "/api/auth/google"
	if redirect == "" {
		return u
	}
	return u + "?" + url.Values{"redirect": {redirect}}.Encode()
}
