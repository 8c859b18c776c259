package detector

import "strings"

// Classification rules in match order. Bots go first because crawler agents
// usually embed a browser signature; tablets before the desktop fallback
// because iPads announce Macintosh-era tokens.
var deviceRules = []struct {
	device   string
	keywords []string
}{
	{"bot", []string{"bot", "crawler", "spider", "scraper", "curl", "wget"}},
	{"mobile", []string{"mobile", "android", "iphone", "ipod", "blackberry", "windows phone"}},
	{"tablet", []string{"tablet", "ipad"}},
	{"desktop", []string{"mozilla", "windows", "macintosh"}},
}

// DetectDeviceType classifies a user agent into bot, mobile, tablet, desktop
// or unknown. Classification happens at capture time so visit rows carry it
// without reparsing.
func DetectDeviceType(userAgent string) string {
	ua := strings.ToLower(userAgent)

	for _, rule := range deviceRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(ua, keyword) {
				return rule.device
			}
		}
	}

	return "unknown"
}

// GetClientIP picks the visitor address from proxy headers, preferring the
// first X-Forwarded-For hop, then X-Real-IP, then the bare remote address.
func GetClientIP(remoteAddr, xForwardedFor, xRealIP string) string {
	if xForwardedFor != "" {
		first, _, _ := strings.Cut(xForwardedFor, ",")
		return strings.TrimSpace(first)
	}

	if xRealIP != "" {
		return xRealIP
	}

	if idx := strings.LastIndex(remoteAddr, ":"); idx != -1 {
		return remoteAddr[:idx]
	}

	return remoteAddr
}
