package resolve

import "sync"

// TextProvider returns the raw text of the article being resolved.
type TextProvider func() (string, error)

// Once wraps fetch so it runs at most once. Later calls return the first
// result, including its error.
func Once(fetch TextProvider) TextProvider {
	var (
		once sync.Once
		text string
		err  error
	)
	return func() (string, error) {
		once.Do(func() {
			if fetch == nil {
				return
			}
			text, err = fetch()
		})
		return text, err
	}
}
