// Package config provides configuration for scriptkit scripts.
//
// Settings are layered: defaults from New, environment variables with the
// SCRIPTKIT_ prefix, command-line flags registered by SetupFlags, and finally
// the per-script YAML file read by LoadFile. The YAML file carries the
// credentials for the mail and notify packages along with any free-form
// options a script wants to read.
//
// Example file:
//
//	sendEmail:
//	  gmailUsername: someone@gmail.com
//	  gmailPassword: ${GMAIL_APP_PASSWORD}
//	telegram:
//	  token: ${TELEGRAM_TOKEN}
//	lock:
//	  backend: flock
//	simpleoption: hello
//	listoption: |
//	  one
//	  two
//	dictoption:
//	  key: value
package config
