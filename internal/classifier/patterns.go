package classifier

import (
	"regexp"
	"strings"
)

// patternEntry is one compiled member of a pattern family. Most entries are
// plain regular expressions; the brand-anchor checks need a matcher function
// because RE2 has no lookahead.
type patternEntry struct {
	src string
	re  *regexp.Regexp
	fn  func(string) bool
}

func (p patternEntry) matches(text string) bool {
	if p.re != nil {
		return p.re.MatchString(text)
	}
	return p.fn(text)
}

// pat compiles a case-insensitive pattern, keeping the raw source string for
// match reporting.
func pat(src string) patternEntry {
	return patternEntry{src: src, re: regexp.MustCompile(`(?i)` + src)}
}

var (
	// anchorRe captures the href and inner text of each HTML anchor.
	anchorRe = regexp.MustCompile(`(?is)<a\s[^>]*?href\s*=\s*["']?([^"'\s>]*)["']?[^>]*>(.*?)</a>`)

	// canonicalBrandHost matches hrefs pointing at the legitimate brand sites.
	canonicalBrandHost = regexp.MustCompile(`(?i)^https?://(www\.)?(bankofamerica|paypal|amazon)\.com`)
)

// brandAnchor flags an anchor whose visible text names a brand while its href
// does not point at the brand's canonical domain.
func brandAnchor(brand string) patternEntry {
	return patternEntry{
		src: `<a href=[non-canonical]>.*?` + brand + `.*?</a>`,
		fn: func(text string) bool {
			for _, m := range anchorRe.FindAllStringSubmatch(text, -1) {
				if canonicalBrandHost.MatchString(m[1]) {
					continue
				}
				if strings.Contains(strings.ToLower(m[2]), brand) {
					return true
				}
			}
			return false
		},
	}
}

// spamPatterns are general manipulation, urgency, and SMS-spam signatures.
var spamPatterns = []patternEntry{
	pat(`\d+%\s*off`), pat(`[$€£]\d+`), pat(`\$\d+`), pat(`\d+\s*dollars`),
	pat(`https?://\S+`), pat(`\[link\]`), pat(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`),
	pat(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
	pat(`congratulations.*won`), pat(`gift\s*card`), pat(`click\s*here`), pat(`claim.*now`),
	pat(`limited\s*time`), pat(`act\s*now`), pat(`once\s*in\s*a\s*lifetime`), pat(`don'?t\s*miss`),
	pat(`attention`), pat(`urgent\s*(notice|action|alert)`), pat(`security\s*(alert|notice|warning)`),
	pat(`account\s*(verify|confirm|validate|update)`), pat(`password\s*(expired|reset|update)`),
	pat(`unusual\s*(activity|login|sign-in)`), pat(`suspicious\s*(activity|transaction|login)`),
	pat(`you'?ve?\s*(been\s*selected|won)`), pat(`you\s*are\s*(selected|chosen|picked)`),
	pat(`\bjust\s*\d+\s*(easy\s*)?payments\b`), pat(`\b(no\s*obligation|no\s*risk)\b`),
	pat(`\b(satisfaction\s*guaranteed)\b`), pat(`(verify|confirm|update).*account.*information`),
	pat(`(verify|confirm|update).*bank.*information`), pat(`(verify|confirm|update).*payment.*information`),
	pat(`(verify|confirm|update).*personal.*information`), pat(`(verify|confirm|update).*credit.*card`),
	pat(`(verify|confirm|update).*billing.*information`), pat(`bank.*account.*suspended`),
	pat(`account.*hold`), pat(`account.*locked`), pat(`account.*limited`), pat(`unusual.*activity`),
	pat(`suspicious.*activity`), pat(`action\s*required`), pat(`immediate\s*action`), pat(`attention\s*required`),
	pat(`response\s*required`), pat(`avoid.*cancellation`), pat(`prevent.*termination`), pat(`avoid.*suspension`),
	pat(`before.*terminated`), pat(`will\s*be\s*(closed|suspended|terminated|cancelled)`),
	pat(`click\s*(below|here|following)\s*(link|button)`), pat(`follow\s*(this|the)\s*link`),
	pat(`legal\s*(action|consequences|implications)`), pat(`court\s*(order|action|decision)`),
	pat(`lawsuit`), pat(`v[i1]agr[a@]`), pat(`ph[a@]rm[a@]cy`), pat(`m[e3]d[i1]c[a@]t[i1][o0]n`),
	pat(`p[i1]ll[s5]`), pat(`STOP\s+to\s+opt\s+out`), pat(`Text\s+STOP\s+to`), pat(`Msg(&Data)?\s+rates\s+may\s+apply`),
	pat(`Txt\s+\w+\s+to\s+\d{5,}`), pat(`Txt\s+\w+\s+for\s+info`), pat(`\d+/msg`), pat(`\d+/month`),
	pat(`\d+/week`), pat(`Subscription\s*service`), pat(`Free\s*msg`), pat(`Reply\s+Y\s+to`), pat(`Reply\s+with\s+YES`),
	pat(`Reply\s+to\s+subscribe`), pat(`Reminder:`), pat(`Alert:`), pat(`Service\s*MSG:`),
}

// phishingPatterns are credential, account, and identity-theft signatures.
var phishingPatterns = []patternEntry{
	pat(`(bank|financial|credit union).*?(verify|confirm|validate).*?(account|information)`),
	pat(`(update|verify|confirm).*?(personal|account|payment|billing).*?(details|information|data)`),
	pat(`account.*?(suspension|hold|locked|limited|restricted|blocked)`),
	pat(`unusual.*?(activity|login|sign-in|transaction|purchase)`),
	pat(`suspicious.*?(activity|login|sign-in|transaction|purchase)`),
	pat(`security.*?(breach|compromise|concern|issue|alert|warning)`),
	pat(`(click|follow|visit).*?(link|website|url|page).*?(verify|confirm|validate|update)`),
	pat(`(verify|confirm|validate|update).*?(now|immediately|right away|asap|urgent)`),
	pat(`(avoid|prevent).*?(suspension|cancellation|termination|closure|limitation)`),
	pat(`(enter|provide|submit|input).*?(username|password|login|credentials)`),
	pat(`(update|change|reset).*?(password|pin|security questions|security answers)`),
	pat(`(verify|confirm|update).*?(social security|ssn|tax id|passport|driver'?s license)`),
	pat(`(confirm|verify).*?(identity|identification)`),
	pat(`(action|attention|response).*?(required|needed|necessary|mandatory)`),
	pat(`limited time.*?(offer|opportunity|access)`),
	pat(`(expires|deadline).*?(today|soon|in \d+ hours)`),
	pat(`your.*?(account|subscription|membership|service).*?(will|has been|been).*?(terminate|suspend|cancel)`),
	brandAnchor("bank"),
	brandAnchor("paypal"),
	brandAnchor("amazon"),
	pat(`(verify|confirm).*?(phone|mobile|device|number)`),
	pat(`(send|reply with).*?(personal|private|sensitive).*?(information|details|data)`),
	pat(`(click|tap|follow).*?(to claim|to verify|to confirm)`),
	pat(`(suspicious|unusual).*?(activity|login|attempt|transaction).*?(detected|identified|found)`),
	pat(`(account|service|subscription).*?(suspended|on hold|locked|blocked)`),
	pat(`(reply|respond).*?(with|using).*?(code|pin|password)`),
}

// callPatterns are IVR, robocall, and telemarketing signatures.
var callPatterns = []patternEntry{
	pat(`press\s+\d+\s+to\s+(speak|continue|opt out)`),
	pat(`(offer|deal|discount).*?(expires|limited)`),
	pat(`call\s+back\s+now`),
	pat(`warranty.*extended`),
	pat(`(IRS|tax|government).*case.*against you`),
	pat(`your car.*warranty`),
	pat(`student loan.*forgiveness`),
	pat(`reduce your debt`),
	pat(`your business.*listing`),
	pat(`Google.*listing`),
}

// matchPatterns evaluates every entry of a family independently and returns
// the source strings of the entries that fired.
func matchPatterns(family []patternEntry, text string) []string {
	var matched []string
	for _, p := range family {
		if p.matches(text) {
			matched = append(matched, p.src)
		}
	}
	return matched
}
