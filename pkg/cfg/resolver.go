package cfg

// Resolver replaces substrings with a special meaning in configuration
// values, like references to environment variables.
type Resolver interface {
	Resolve(string) (string, error)
}
