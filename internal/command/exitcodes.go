package command

const (
	exitCodeSuccess          = 0
	exitCodeError            = 1
	exitCodeValidationFailed = 2
)
