// Package lib holds integrations that do not belong to a single layer:
// background jobs (asynq), email (Resend), flash messages (Redis),
// CAPTCHA verification, the Meetup API client and small utilities.
package lib
