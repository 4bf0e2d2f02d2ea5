package cli

// Exit codes for CLI commands. These follow Unix conventions and provide
// consistent error reporting across all commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error: database faults, unexpected
	// failures, or anything that doesn't fit the categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage, such as missing
	// required flags or malformed arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested user, project, task, or comment
	// id does not exist.
	ExitNotFound = 3

	// ExitDataErr indicates a data conflict, such as a duplicate email.
	ExitDataErr = 4

	// ExitValidation indicates input that failed validation before
	// reaching a service: bad email format, bad date, bad enum value.
	ExitValidation = 5
)
