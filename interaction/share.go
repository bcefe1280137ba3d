package interaction

import (
	"fmt"
	"net/url"
)

// ShareTarget identifies a platform share destination.
type ShareTarget string

const (
	ShareTwitter  ShareTarget = "twitter"
	ShareFacebook ShareTarget = "facebook"
	ShareLinkedIn ShareTarget = "linkedin"
	ShareEmail    ShareTarget = "email"
	ShareCopyLink ShareTarget = "copy"
)

// ShareURL builds the share link for a faculty profile page. Share is a
// stateless side effect: nothing is written to the store. The copy target
// returns the page URL unchanged for the clipboard.
func ShareURL(target ShareTarget, pageURL, title string) (string, error) {
	switch target {
	case ShareTwitter:
		return "https://twitter.com/intent/tweet?url=" + url.QueryEscape(pageURL) +
			"&text=" + url.QueryEscape(title), nil
	case ShareFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(pageURL), nil
	case ShareLinkedIn:
		return "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(pageURL), nil
	case ShareEmail:
		return "mailto:?subject=" + url.QueryEscape(title) +
			"&body=" + url.QueryEscape(pageURL), nil
	case ShareCopyLink:
		return pageURL, nil
	}
	return "", fmt.Errorf("unknown share target %q", target)
}
