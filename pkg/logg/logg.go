package logg

const (
	Layer     = "layer"
	Operation = "op"
	URL       = "url"
	Selector  = "selector"
	Role      = "role"
	Attempt   = "attempt"
	AttemptID = "attempt_id"
	RequestID = "request_id"
	User      = "user"
	NovelID   = "novel_id"
	Count     = "count"
)

// MaskIdentity hides the local part of a login identity so credentials
// never reach the logs in clear form.
func MaskIdentity(identity string) string {
	if identity == "" {
		return ""
	}

	runes := []rune(identity)

	at := len(runes)
	for i, c := range runes {
		if c == '@' {
			at = i
			break
		}
	}

	for i := 1; i < at; i++ {
		runes[i] = '*'
	}

	return string(runes)
}
