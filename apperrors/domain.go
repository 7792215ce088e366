package apperrors

// Domain errors shared by controllers and stores. Login failures use
// one message for unknown email and wrong password on purpose; do not
// split them.
var (
	ErrAllFieldsRequired  = InvalidArg("All fields are required")
	ErrPasswordTooShort   = InvalidArg("Password must be at least 6 characters long")
	ErrUserExists         = AlreadyExists("User already exists")
	ErrInvalidCredentials = Unauthorized("Invalid email or password")
	ErrUserNotFound       = NotFound("User not found")
	ErrMessageEmpty       = InvalidArg("Message cannot be empty")
	ErrProfilePicRequired = InvalidArg("Profile picture is required")
	ErrNoToken            = Unauthorized("Unauthorized - No token provided")
	ErrInvalidToken       = Unauthorized("Unauthorized - Invalid token")
)
