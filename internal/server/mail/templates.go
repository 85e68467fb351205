package mail

import "fmt"

// VerificationEmail renders the message sent after a successful registration.
// The link points at the public verification endpoint.
func VerificationEmail(baseURL, username, email, token string) (subject, body string) {
	subject = "Activating your Murof account"
	body = fmt.Sprintf(`Hi %s,

Welcome to Murof! To activate the account registered for %s, open the link
below within 24 hours:

%s/auth/verify/%s

If you did not create this account, you can ignore this message.

— The Murof team`, username, email, baseURL, token)
	return subject, body
}

// WarningEmail renders the message sent to an address that someone attempted
// to register a second account with.
func WarningEmail(username, email string) (subject, body string) {
	subject = "Murof account warning"
	body = fmt.Sprintf(`Hi,

Someone just tried to sign up on Murof with the username %q using your email
address (%s). An account for this address already exists, so nothing was
created.

If this was you, you can log in with your existing account or reset your
password. If it was not you, no action is needed.

— The Murof team`, username, email)
	return subject, body
}

// PasswordResetEmail renders the password-reset message. The link is valid
// for 15 minutes.
func PasswordResetEmail(baseURL, username, email, token string) (subject, body string) {
	subject = "Resetting your Murof password"
	body = fmt.Sprintf(`Hi %s,

A password reset was requested for the Murof account %s. Open the link below
within 15 minutes to choose a new password:

%s/auth/reset?token=%s

If you did not request a reset, you can ignore this message; your password is
unchanged.

— The Murof team`, username, email, baseURL, token)
	return subject, body
}
