package urlutil

import "net/url"

// Resolve interprets ref relative to base and returns the absolute form.
// Fragments and non-http schemes are kept.
func Resolve(base string, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}

// FollowTarget turns a discovered absolute link into the URL a crawler would
// fetch. It returns false for unparseable links and anything that is not
// http or https, such as javascript:, mailto:, tel: or data: links.
//
// The fragment is dropped; the rest is left as written: no case folding,
// port or trailing-slash normalization, so two spellings of one page stay distinct.
func FollowTarget(link string) (string, bool) {
	parsed, err := url.Parse(link)
	if err != nil || !IsHTTP(*parsed) {
		return "", false
	}
	stripped := StripFragment(*parsed)
	return stripped.String(), true
}

// StripFragment returns a copy of u without its fragment.
func StripFragment(u url.URL) url.URL {
	u.Fragment = ""
	u.RawFragment = ""
	return u
}

// IsHTTP reports whether u is an absolute http or https URL with a host.
func IsHTTP(u url.URL) bool {
	scheme := lowerASCII(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}

// lowerASCII converts ASCII characters to lowercase without allocating.
// This is faster than strings.ToLower for ASCII-only strings.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
