package deps

// SetLookPathForTests overrides binary resolution during tests.
func SetLookPathForTests(fn func(string) (string, error)) func() {
	previous := lookPath
	lookPath = fn
	return func() {
		lookPath = previous
	}
}
