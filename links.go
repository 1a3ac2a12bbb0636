package emailkit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/storybud/emailkit/pkg/emailctx"
)

// generateLinks builds the navigation link set for one recipient. Every link
// carries UTM attribution with the template type as the medium so campaign
// reporting can split performance per email family.
func (s *Service) generateLinks(userID, childID, templateType string) emailctx.Links {
	base := s.cfg.AppBaseURL
	utm := url.Values{
		"utm_source":   {"email"},
		"utm_medium":   {templateType},
		"utm_campaign": {"email"},
	}.Encode()

	create := fmt.Sprintf("%s/stories/create?userId=%s&childId=%s&%s",
		base, url.QueryEscape(userID), url.QueryEscape(childID), utm)

	return emailctx.Links{
		MainCTALink:       create,
		CreateStoryLink:   create,
		BrowseStoriesLink: fmt.Sprintf("%s/stories/browse?userId=%s&%s", base, url.QueryEscape(userID), utm),
		ProfileLink:       fmt.Sprintf("%s/profile?userId=%s&%s", base, url.QueryEscape(userID), utm),
		SettingsLink:      fmt.Sprintf("%s/settings?userId=%s&%s", base, url.QueryEscape(userID), utm),
		FeedbackLink:      fmt.Sprintf("%s/feedback?userId=%s&%s", base, url.QueryEscape(userID), utm),
		UpgradeLink:       fmt.Sprintf("%s/upgrade?userId=%s&%s", base, url.QueryEscape(userID), utm),
		UnsubscribeLink: fmt.Sprintf("%s/unsubscribe?userId=%s&token=%s",
			base, url.QueryEscape(userID), s.unsubscribeToken(userID)),
		LogoURL: s.cfg.logoURL(),
	}
}

// unsubscribeToken signs the user ID so the one-click unsubscribe endpoint
// can verify the request without a session.
func (s *Service) unsubscribeToken(userID string) string {
	mac := hmac.New(sha256.New, []byte(s.cfg.UnsubscribeSecret))
	mac.Write([]byte(userID))
	return hex.EncodeToString(mac.Sum(nil))
}

// trackingPixelURL mints a unique open-tracking URL per rendered email.
func (s *Service) trackingPixelURL() string {
	return fmt.Sprintf("%s/t/o/%s.gif", s.cfg.trackingBaseURL(), uuid.NewString())
}

// VerifyUnsubscribeToken reports whether token authorizes an unsubscribe for
// userID. Comparison is constant-time.
func (s *Service) VerifyUnsubscribeToken(userID, token string) bool {
	return hmac.Equal([]byte(s.unsubscribeToken(userID)), []byte(token))
}
