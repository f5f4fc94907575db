package flag

const (
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatPlain = "plain"
)

// NewFormatFlag returns the --format flag of the ls commands.
func NewFormatFlag() *OneOf {
	return NewOneOfFlag("format", FormatPlain, "output format", FormatCSV, FormatJSON, FormatPlain)
}
